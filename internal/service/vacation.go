package service

import (
	"context"
	"fmt"
	"time"

	"github.com/coachportal/portalproxy/internal/api/dto"
	"github.com/coachportal/portalproxy/internal/domain/vacation"
	ierr "github.com/coachportal/portalproxy/internal/errors"
	"github.com/coachportal/portalproxy/internal/integration/seal"
	"github.com/coachportal/portalproxy/internal/types"
)

// VacationService admits and lists vacation requests
type VacationService interface {
	// CreateVacationRequest runs admission: validation, the earliest billing date
	// rule, the overlap check, the insert and finally the shifted schedule.
	CreateVacationRequest(ctx context.Context, req *dto.CreateVacationRequest) (*dto.CreateVacationResponse, error)
	ListVacationRequests(ctx context.Context, req *dto.ListVacationsRequest) (*dto.ListVacationsResponse, error)
}

type vacationService struct {
	ServiceParams
}

func NewVacationService(params ServiceParams) VacationService {
	return &vacationService{
		ServiceParams: params,
	}
}

func (s *vacationService) CreateVacationRequest(ctx context.Context, req *dto.CreateVacationRequest) (*dto.CreateVacationResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	from, to, err := req.DateRange()
	if err != nil {
		return nil, err
	}

	subscriptionID := req.SubscriptionID.String()

	detail, err := s.SealClient.GetSubscriptionDetail(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}

	if err := s.checkEarliestBillingDate(detail, from); err != nil {
		return nil, err
	}

	record := req.ToVacationRequest(from, to, s.now())
	if err := s.admit(ctx, record); err != nil {
		return nil, err
	}

	s.Logger.Infow("vacation request admitted",
		"vacation_id", record.ID,
		"customer_id", record.CustomerID,
		"child_name", record.ChildName,
		"from_date", types.FormatDate(record.FromDate),
		"to_date", types.FormatDate(record.ToDate),
		"shift_days", record.ShiftDays,
		"subscription_id", record.SubscriptionID)

	// the request stays stored when the follow-up fails; its id goes back in the error
	refreshed, err := s.SealClient.GetSubscriptionDetail(ctx, subscriptionID)
	if err != nil {
		return nil, s.processingError(err, record, "Failed to fetch subscription details after saving the vacation request")
	}

	shifted, err := shiftBillingAttempts(refreshed.BillingAttempts, record.ShiftDays)
	if err != nil {
		return nil, s.processingError(err, record, "Error processing subscription billing attempts")
	}

	return dto.NewCreateVacationResponse(record, shifted), nil
}

func (s *vacationService) ListVacationRequests(ctx context.Context, req *dto.ListVacationsRequest) (*dto.ListVacationsResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var (
		items []*vacation.VacationRequest
		err   error
	)
	if req.ChildName != "" {
		items, err = s.VacationRepo.ListByCustomerAndChild(ctx, req.CustomerKey(), req.ChildName)
	} else {
		items, err = s.VacationRepo.ListByCustomer(ctx, req.CustomerKey())
	}
	if err != nil {
		return nil, err
	}

	return dto.NewListVacationsResponse(items), nil
}

// checkEarliestBillingDate rejects a vacation that starts after the earliest
// billing attempt's calendar date. No attempts means nothing to reject.
// An unreadable attempt date fails the check, nothing is stored.
func (s *vacationService) checkEarliestBillingDate(detail *seal.SubscriptionDetail, from time.Time) error {
	var earliest time.Time
	for _, a := range detail.BillingAttempts {
		t, err := types.ParseTimestamp(a.Date)
		if err != nil {
			s.Logger.Errorw("billing attempt has unreadable date",
				"billing_attempt_id", a.ID.String(),
				"subscription_id", detail.ID.String(),
				"date", a.Date)
			return ierr.WithError(err).
				WithHint("The billing provider returned a billing date that could not be read").
				WithReportableDetails(map[string]any{
					"billing_attempt_id": a.ID.String(),
					"date":               a.Date,
				}).
				Mark(ierr.ErrUpstream)
		}
		day := types.DateOf(t)
		if earliest.IsZero() || day.Before(earliest) {
			earliest = day
		}
	}

	if earliest.IsZero() || !from.After(earliest) {
		return nil
	}

	return ierr.NewError("vacation starts after the earliest billing attempt").
		WithHintf("Vacation must start on or before your next billing date (%s)", types.FormatDate(earliest)).
		WithReportableDetails(map[string]any{
			"earliest_allowed_date": types.FormatDate(earliest),
			"from_date":             types.FormatDate(from),
		}).
		Mark(ierr.ErrTooLate)
}

// admit runs the overlap check and the insert as one critical section per
// customer and child: an in-process lock plus an advisory lock in the transaction.
func (s *vacationService) admit(ctx context.Context, record *vacation.VacationRequest) error {
	unlock, err := s.Locks.Lock(ctx, record.CustomerID+"|"+record.ChildName)
	if err != nil {
		return ierr.WithError(err).
			WithHint("The request was cancelled").
			Mark(ierr.ErrInternal)
	}
	defer unlock()

	return s.DB.WithTx(ctx, func(ctx context.Context) error {
		if err := s.VacationRepo.LockChild(ctx, record.CustomerID, record.ChildName); err != nil {
			return err
		}

		conflict, err := s.VacationRepo.FindOverlapping(ctx, record.CustomerID, record.ChildName, record.FromDate, record.ToDate)
		if err != nil {
			return err
		}
		if conflict != nil {
			return overlapError(conflict)
		}

		return s.VacationRepo.Create(ctx, record)
	})
}

func overlapError(conflict *vacation.VacationRequest) error {
	from := types.FormatDate(conflict.FromDate)
	to := types.FormatDate(conflict.ToDate)

	return ierr.NewError("overlapping vacation request").
		WithHint(fmt.Sprintf(
			"You have already submitted a vacation request from %s to %s. Overlapping requests are not allowed.",
			from, to)).
		WithReportableDetails(map[string]any{
			"conflicting_id":        conflict.ID,
			"conflicting_from_date": from,
			"conflicting_to_date":   to,
		}).
		Mark(ierr.ErrOverlap)
}

func (s *vacationService) processingError(err error, record *vacation.VacationRequest, hint string) error {
	s.Logger.Errorw("vacation request saved but billing attempts could not be processed",
		"vacation_id", record.ID,
		"subscription_id", record.SubscriptionID,
		"error", err)

	// the cause is flattened into the message so its hints and marks do not reach the client
	return ierr.NewErrorf("vacation request %s saved, follow-up failed: %v", record.ID, err).
		WithHint(hint).
		WithReportableDetails(map[string]any{
			"vacation_id": record.ID,
		}).
		Mark(ierr.ErrProcessing)
}

// shiftBillingAttempts moves every attempt forward by days calendar days in its own
// UTC offset. All provider fields pass through; original_date keeps the old value.
func shiftBillingAttempts(attempts []seal.BillingAttempt, days int) ([]dto.ShiftedBillingAttempt, error) {
	shifted := make([]dto.ShiftedBillingAttempt, 0, len(attempts))
	for _, a := range attempts {
		t, err := types.ParseTimestamp(a.Date)
		if err != nil {
			return nil, ierr.WithError(err).
				WithMessage("billing attempt " + a.ID.String()).
				Mark(ierr.ErrProcessing)
		}

		shifted = append(shifted, dto.ShiftedBillingAttempt{
			Fields:       a.Raw,
			Date:         types.FormatTime(types.AddDays(t, days)),
			OriginalDate: a.Date,
		})
	}
	return shifted, nil
}
