package dto

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/coachportal/portalproxy/internal/domain/vacation"
	ierr "github.com/coachportal/portalproxy/internal/errors"
	"github.com/coachportal/portalproxy/internal/types"
	"github.com/coachportal/portalproxy/internal/validator"
)

// CreateVacationRequest is the body of POST /vacation-request
type CreateVacationRequest struct {
	CustomerID       types.FlexibleString `json:"customer_id" validate:"required"`
	ChildName        string               `json:"child_name" validate:"required,max=255"`
	FromDate         string               `json:"from_date" validate:"required,calendar_date"`
	ToDate           string               `json:"to_date" validate:"required,calendar_date"`
	ShiftDays        int                  `json:"shift_days" validate:"gt=0,lte=365"`
	Reason           string               `json:"reason,omitempty" validate:"omitempty,max=1000"`
	SubscriptionID   types.FlexibleString `json:"subscription_id" validate:"required"`
	BillingAttemptID types.FlexibleString `json:"billing_attempt_id" validate:"required"`
}

// Validate checks every field and the ordering of the range
func (r *CreateVacationRequest) Validate() error {
	r.CustomerID = r.CustomerID.Trimmed()
	r.SubscriptionID = r.SubscriptionID.Trimmed()
	r.BillingAttemptID = r.BillingAttemptID.Trimmed()
	r.ChildName = strings.TrimSpace(r.ChildName)
	r.Reason = strings.TrimSpace(r.Reason)

	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	from, to, err := r.DateRange()
	if err != nil {
		return err
	}

	if from.After(to) {
		return ierr.NewError("from_date is after to_date").
			WithHint("from_date must be on or before to_date").
			WithReportableDetails(map[string]any{
				"from_date": r.FromDate,
				"to_date":   r.ToDate,
			}).
			Mark(ierr.ErrValidation)
	}

	return nil
}

// DateRange parses from_date and to_date
func (r *CreateVacationRequest) DateRange() (time.Time, time.Time, error) {
	from, err := types.ParseDate(r.FromDate)
	if err != nil {
		return time.Time{}, time.Time{}, ierr.WithError(err).
			WithHint("from_date must be a date in YYYY-MM-DD format").
			Mark(ierr.ErrValidation)
	}

	to, err := types.ParseDate(r.ToDate)
	if err != nil {
		return time.Time{}, time.Time{}, ierr.WithError(err).
			WithHint("to_date must be a date in YYYY-MM-DD format").
			Mark(ierr.ErrValidation)
	}

	return from, to, nil
}

// ToVacationRequest builds the record to persist. Call Validate first.
func (r *CreateVacationRequest) ToVacationRequest(from, to, createdAt time.Time) *vacation.VacationRequest {
	return &vacation.VacationRequest{
		ID:               types.GenerateUUIDWithPrefix(types.UUID_PREFIX_VACATION_REQUEST),
		CustomerID:       r.CustomerID.String(),
		ChildName:        r.ChildName,
		FromDate:         from,
		ToDate:           to,
		ShiftDays:        r.ShiftDays,
		Reason:           r.Reason,
		SubscriptionID:   r.SubscriptionID.String(),
		BillingAttemptID: r.BillingAttemptID.String(),
		CreatedAt:        createdAt.UTC(),
	}
}

// VacationResponse renders a stored request with calendar dates
type VacationResponse struct {
	ID               string    `json:"id"`
	CustomerID       string    `json:"customer_id"`
	ChildName        string    `json:"child_name"`
	FromDate         string    `json:"from_date"`
	ToDate           string    `json:"to_date"`
	ShiftDays        int       `json:"shift_days"`
	Reason           string    `json:"reason,omitempty"`
	SubscriptionID   string    `json:"subscription_id"`
	BillingAttemptID string    `json:"billing_attempt_id"`
	CreatedAt        time.Time `json:"created_at"`
}

func NewVacationResponse(v *vacation.VacationRequest) *VacationResponse {
	if v == nil {
		return nil
	}
	return &VacationResponse{
		ID:               v.ID,
		CustomerID:       v.CustomerID,
		ChildName:        v.ChildName,
		FromDate:         types.FormatDate(v.FromDate),
		ToDate:           types.FormatDate(v.ToDate),
		ShiftDays:        v.ShiftDays,
		Reason:           v.Reason,
		SubscriptionID:   v.SubscriptionID,
		BillingAttemptID: v.BillingAttemptID,
		CreatedAt:        v.CreatedAt,
	}
}

// ShiftedBillingAttempt is a provider billing attempt with its date moved.
// Every provider field is kept; date is replaced and original_date added.
type ShiftedBillingAttempt struct {
	Fields       map[string]json.RawMessage
	Date         string
	OriginalDate string
}

func (a ShiftedBillingAttempt) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(a.Fields)+2)
	for k, v := range a.Fields {
		out[k] = v
	}

	date, err := json.Marshal(a.Date)
	if err != nil {
		return nil, err
	}
	original, err := json.Marshal(a.OriginalDate)
	if err != nil {
		return nil, err
	}
	out["date"] = date
	out["original_date"] = original

	return json.Marshal(out)
}

type UpdatedBillingAttempts struct {
	BillingAttempts []ShiftedBillingAttempt `json:"billing_attempts"`
}

// CreateVacationResponse reports the stored request and the shifted schedule
type CreateVacationResponse struct {
	SuccessResponse
	ID       string                 `json:"id"`
	Vacation *VacationResponse      `json:"vacation"`
	Updated  UpdatedBillingAttempts `json:"updated"`
}

func NewCreateVacationResponse(v *vacation.VacationRequest, shifted []ShiftedBillingAttempt) *CreateVacationResponse {
	if shifted == nil {
		shifted = []ShiftedBillingAttempt{}
	}
	return &CreateVacationResponse{
		SuccessResponse: ok(),
		ID:              v.ID,
		Vacation:        NewVacationResponse(v),
		Updated:         UpdatedBillingAttempts{BillingAttempts: shifted},
	}
}

// ListVacationsRequest filters stored requests. Email stands in for customer_id when it is absent.
type ListVacationsRequest struct {
	CustomerID string `form:"customer_id" json:"customer_id"`
	Email      string `form:"email" json:"email"`
	ChildName  string `form:"child_name" json:"child_name"`
}

func (r *ListVacationsRequest) Validate() error {
	r.CustomerID = strings.TrimSpace(r.CustomerID)
	r.Email = strings.TrimSpace(r.Email)
	r.ChildName = strings.TrimSpace(r.ChildName)

	if r.CustomerKey() == "" {
		return ierr.NewError("customer_id or email is required").
			WithHint("Missing customer_id or email").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// CustomerKey is the value stored in customer_id for this lookup
func (r *ListVacationsRequest) CustomerKey() string {
	if r.CustomerID != "" {
		return r.CustomerID
	}
	return r.Email
}

type ListVacationsResponse struct {
	SuccessResponse
	Vacations []*VacationResponse `json:"vacations"`
}

func NewListVacationsResponse(items []*vacation.VacationRequest) *ListVacationsResponse {
	out := make([]*VacationResponse, 0, len(items))
	for _, v := range items {
		out = append(out, NewVacationResponse(v))
	}
	return &ListVacationsResponse{
		SuccessResponse: ok(),
		Vacations:       out,
	}
}
