package service

import (
	"context"

	"github.com/coachportal/portalproxy/internal/cache"
	"github.com/coachportal/portalproxy/internal/integration/seal"
)

// cachedSubscriptionDetail serves read views from the detail cache when it is enabled.
// Admission never goes through here so it always sees the provider's current schedule.
func (p ServiceParams) cachedSubscriptionDetail(ctx context.Context, subscriptionID string) (*seal.SubscriptionDetail, error) {
	key := cache.SubscriptionDetailKey(subscriptionID)

	if p.Cache != nil {
		if v, ok := p.Cache.Get(ctx, key); ok {
			if detail, ok := v.(*seal.SubscriptionDetail); ok {
				return detail, nil
			}
		}
	}

	detail, err := p.SealClient.GetSubscriptionDetail(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}

	if p.Cache != nil {
		p.Cache.Set(ctx, key, detail, 0)
	}
	return detail, nil
}

func (p ServiceParams) invalidateSubscriptionDetail(ctx context.Context, subscriptionID string) {
	if p.Cache == nil {
		return
	}
	p.Cache.Delete(ctx, cache.SubscriptionDetailKey(subscriptionID))
}
