package cache

import (
	"context"
	"time"
)

// Cache holds provider payloads for the read views
type Cache interface {
	// Get returns the cached value and whether it was present
	Get(ctx context.Context, key string) (interface{}, bool)

	// Set stores value under key. A zero expiration uses the configured TTL.
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration)

	Delete(ctx context.Context, key string)

	Flush(ctx context.Context)
}

// subscriptionDetailPrefix is bumped whenever the cached detail shape changes
const subscriptionDetailPrefix = "seal_subscription:v1:"

// SubscriptionDetailKey is the key a subscription's provider detail is stored under
func SubscriptionDetailKey(subscriptionID string) string {
	return subscriptionDetailPrefix + subscriptionID
}
