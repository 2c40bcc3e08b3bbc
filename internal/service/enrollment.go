package service

import (
	"context"
	"strings"
	"time"

	"github.com/coachportal/portalproxy/internal/api/dto"
	"github.com/coachportal/portalproxy/internal/domain/enrollment"
	"github.com/coachportal/portalproxy/internal/integration/seal"
	"github.com/coachportal/portalproxy/internal/types"
	"github.com/samber/lo"
	"github.com/sourcegraph/conc/iter"
)

const (
	maxPreviousPayments  = 4
	defaultPaymentStatus = "unknown"
)

// EnrollmentService turns provider subscriptions into portal enrollments
type EnrollmentService interface {
	ListEnrollments(ctx context.Context, req *dto.ListEnrollmentsRequest) (*dto.ListEnrollmentsResponse, error)

	// Project fetches each subscription's detail and normalises it. Subscriptions
	// whose detail cannot be fetched or has no line items are logged and left out.
	Project(ctx context.Context, email string, subs []seal.SubscriptionSummary) []enrollment.Enrollment
}

type enrollmentService struct {
	ServiceParams
}

func NewEnrollmentService(params ServiceParams) EnrollmentService {
	return &enrollmentService{
		ServiceParams: params,
	}
}

func (s *enrollmentService) ListEnrollments(ctx context.Context, req *dto.ListEnrollmentsRequest) (*dto.ListEnrollmentsResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	subs, err := s.SealClient.ListSubscriptionsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	return dto.NewListEnrollmentsResponse(s.Project(ctx, req.Email, subs)), nil
}

func (s *enrollmentService) Project(ctx context.Context, email string, subs []seal.SubscriptionSummary) []enrollment.Enrollment {
	now := s.now()

	mapper := iter.Mapper[seal.SubscriptionSummary, *enrollment.Enrollment]{
		MaxGoroutines: s.Config.Seal.MaxConcurrentFetches,
	}

	projected := mapper.Map(subs, func(sub *seal.SubscriptionSummary) *enrollment.Enrollment {
		detail, err := s.cachedSubscriptionDetail(ctx, sub.ID.String())
		if err != nil {
			s.Logger.Warnw("skipping subscription in enrollment listing",
				"subscription_id", sub.ID.String(),
				"error", err)
			return nil
		}
		return s.projectOne(email, sub, detail, now)
	})

	return lo.FilterMap(projected, func(e *enrollment.Enrollment, _ int) (enrollment.Enrollment, bool) {
		if e == nil {
			return enrollment.Enrollment{}, false
		}
		return *e, true
	})
}

func (s *enrollmentService) projectOne(email string, sub *seal.SubscriptionSummary, detail *seal.SubscriptionDetail, now time.Time) *enrollment.Enrollment {
	item := detail.PrimaryItem()
	if item == nil {
		return nil
	}

	amount := enrollment.FormatAmount(item.Price.String())
	past, future := s.classifyAttempts(detail.BillingAttempts, now)

	e := &enrollment.Enrollment{
		SubscriptionID:   sub.ID.String(),
		ChildFirstName:   item.Property(seal.PropChildFirstName),
		ChildLastName:    item.Property(seal.PropChildLastName),
		ExternalChildID:  item.Property(seal.PropChildClubID),
		Program:          s.programName(lo.CoalesceOrEmpty(item.Property(seal.PropProgramLevel), item.Title)),
		PaymentFrequency: lo.CoalesceOrEmpty(item.Property(seal.PropBillingInterval), sub.BillingInterval, detail.BillingInterval),
		ParentEmail:      email,
		PreviousPayments: []enrollment.Payment{},
	}

	if len(future) > 0 {
		next := future[0]
		e.NextPaymentDate = lo.ToPtr(next.Date)
		e.NextPaymentAmount = amount
	}

	recent := past[max(len(past)-maxPreviousPayments, 0):]
	e.PreviousPayments = lo.Map(recent, func(a seal.BillingAttempt, _ int) enrollment.Payment {
		return enrollment.Payment{
			Date:   a.Date,
			Amount: amount,
			Status: lo.CoalesceOrEmpty(a.Status, defaultPaymentStatus),
		}
	})

	return e
}

// classifyAttempts splits attempts into past (date < now) and future (date >= now),
// both in provider order. Attempts with unreadable dates belong to neither.
func (s *enrollmentService) classifyAttempts(attempts []seal.BillingAttempt, now time.Time) ([]seal.BillingAttempt, []seal.BillingAttempt) {
	var past, future []seal.BillingAttempt
	for _, a := range attempts {
		t, err := types.ParseTimestamp(a.Date)
		if err != nil {
			s.Logger.Warnw("ignoring billing attempt with unreadable date",
				"billing_attempt_id", a.ID.String(),
				"date", a.Date)
			continue
		}
		if t.Before(now) {
			past = append(past, a)
		} else {
			future = append(future, a)
		}
	}
	return past, future
}

// programName strips the configured provider prefix, ignoring case
func (s *enrollmentService) programName(program string) string {
	prefix := s.Config.Seal.ProgramPrefix
	if prefix != "" && len(program) >= len(prefix) && strings.EqualFold(program[:len(prefix)], prefix) {
		return strings.TrimSpace(program[len(prefix):])
	}
	return program
}
