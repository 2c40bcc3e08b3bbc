package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/coachportal/portalproxy/internal/domain/vacation"
	ierr "github.com/coachportal/portalproxy/internal/errors"
	"github.com/coachportal/portalproxy/internal/logger"
	"github.com/coachportal/portalproxy/internal/postgres"
	"github.com/coachportal/portalproxy/internal/types"
)

const vacationColumns = `
	id,
	customer_id,
	child_name,
	from_date,
	to_date,
	shift_days,
	reason,
	subscription_id,
	billing_attempt_id,
	created_at`

type vacationRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewVacationRepository(db *postgres.DB, logger *logger.Logger) vacation.Repository {
	return &vacationRepository{db: db, logger: logger}
}

func (r *vacationRepository) Create(ctx context.Context, req *vacation.VacationRequest) error {
	query := `
		INSERT INTO vacation_requests (` + vacationColumns + `
		) VALUES (
			:id,
			:customer_id,
			:child_name,
			:from_date,
			:to_date,
			:shift_days,
			:reason,
			:subscription_id,
			:billing_attempt_id,
			:created_at
		)
	`

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, req); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to save vacation request").
			WithReportableDetails(map[string]any{
				"customer_id": req.CustomerID,
			}).
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (r *vacationRepository) FindOverlapping(ctx context.Context, customerID, childName string, from, to time.Time) (*vacation.VacationRequest, error) {
	query := `
		SELECT ` + vacationColumns + `
		FROM vacation_requests
		WHERE
			customer_id = $1 AND
			child_name = $2 AND
			from_date <= $4::date AND
			$3::date <= to_date
		ORDER BY created_at ASC, id ASC
		LIMIT 1
	`

	var found vacation.VacationRequest
	err := r.db.GetQuerier(ctx).GetContext(ctx, &found, query, customerID, childName, types.FormatDate(from), types.FormatDate(to))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to check existing vacation requests").
			Mark(ierr.ErrDatabase)
	}

	return &found, nil
}

func (r *vacationRepository) ListByCustomerAndChild(ctx context.Context, customerID, childName string) ([]*vacation.VacationRequest, error) {
	query := `
		SELECT ` + vacationColumns + `
		FROM vacation_requests
		WHERE
			customer_id = $1 AND
			child_name = $2
		ORDER BY from_date DESC, created_at DESC
	`

	return r.list(ctx, query, customerID, childName)
}

func (r *vacationRepository) ListByCustomer(ctx context.Context, customerID string) ([]*vacation.VacationRequest, error) {
	query := `
		SELECT ` + vacationColumns + `
		FROM vacation_requests
		WHERE customer_id = $1
		ORDER BY from_date DESC, created_at DESC
	`

	return r.list(ctx, query, customerID)
}

// LockChild takes a transaction scoped advisory lock keyed on the pair
func (r *vacationRepository) LockChild(ctx context.Context, customerID, childName string) error {
	if err := r.db.AdvisoryXactLock(ctx, customerID+"|"+childName); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to save vacation request").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *vacationRepository) list(ctx context.Context, query string, args ...interface{}) ([]*vacation.VacationRequest, error) {
	requests := make([]*vacation.VacationRequest, 0)
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &requests, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list vacation requests").
			Mark(ierr.ErrDatabase)
	}
	return requests, nil
}
