package service

import (
	"context"

	"github.com/coachportal/portalproxy/internal/api/dto"
	"github.com/coachportal/portalproxy/internal/domain/enrollment"
	"github.com/coachportal/portalproxy/internal/integration/seal"
	"github.com/samber/lo"
)

const scheduleLength = 4

// BillingService exposes the provider billing schedule and reschedules attempts
type BillingService interface {
	GetBillingSchedule(ctx context.Context, req *dto.GetBillingScheduleRequest) (*dto.BillingScheduleResponse, error)
	RescheduleBillingAttempt(ctx context.Context, req *dto.RescheduleBillingAttemptRequest) (*dto.RescheduleBillingAttemptResponse, error)
}

type billingService struct {
	ServiceParams
}

func NewBillingService(params ServiceParams) BillingService {
	return &billingService{
		ServiceParams: params,
	}
}

// GetBillingSchedule returns the first attempts in provider order, priced from the primary line item
func (s *billingService) GetBillingSchedule(ctx context.Context, req *dto.GetBillingScheduleRequest) (*dto.BillingScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	detail, err := s.cachedSubscriptionDetail(ctx, req.SubscriptionID)
	if err != nil {
		return nil, err
	}

	amount := enrollment.FormatAmount(detail.PrimaryItem().Price.String())
	attempts := lo.Slice(detail.BillingAttempts, 0, scheduleLength)

	schedule := lo.Map(attempts, func(a seal.BillingAttempt, _ int) enrollment.ScheduledPayment {
		return enrollment.ScheduledPayment{
			ID:     a.ID.String(),
			Date:   a.Date,
			Amount: amount,
		}
	})

	return dto.NewBillingScheduleResponse(schedule), nil
}

func (s *billingService) RescheduleBillingAttempt(ctx context.Context, req *dto.RescheduleBillingAttemptRequest) (*dto.RescheduleBillingAttemptResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	result, err := s.SealClient.RescheduleBillingAttempt(ctx, req.ToSealRequest())
	if err != nil {
		return nil, err
	}

	s.invalidateSubscriptionDetail(ctx, req.SubscriptionID.String())

	s.Logger.Infow("rescheduled billing attempt",
		"billing_attempt_id", req.BillingAttemptID.String(),
		"subscription_id", req.SubscriptionID.String(),
		"date", req.Date)

	return dto.NewRescheduleBillingAttemptResponse(result), nil
}
