package dto

import (
	"encoding/json"
	"strings"

	"github.com/coachportal/portalproxy/internal/domain/enrollment"
	"github.com/coachportal/portalproxy/internal/integration/seal"
	"github.com/coachportal/portalproxy/internal/types"
	"github.com/coachportal/portalproxy/internal/validator"
)

// GetBillingScheduleRequest asks for the upcoming attempts of one subscription
type GetBillingScheduleRequest struct {
	SubscriptionID string `form:"subscription_id" json:"subscription_id" validate:"required"`
}

func (r *GetBillingScheduleRequest) Validate() error {
	r.SubscriptionID = strings.TrimSpace(r.SubscriptionID)
	return validator.ValidateRequest(r)
}

type BillingScheduleResponse struct {
	SuccessResponse
	BillingAttempts []enrollment.ScheduledPayment `json:"billing_attempts"`
}

func NewBillingScheduleResponse(items []enrollment.ScheduledPayment) *BillingScheduleResponse {
	if items == nil {
		items = []enrollment.ScheduledPayment{}
	}
	return &BillingScheduleResponse{
		SuccessResponse: ok(),
		BillingAttempts: items,
	}
}

// RescheduleBillingAttemptRequest moves one provider billing attempt
type RescheduleBillingAttemptRequest struct {
	BillingAttemptID types.FlexibleString `json:"billing_attempt_id" validate:"required"`
	SubscriptionID   types.FlexibleString `json:"subscription_id" validate:"required"`
	Date             string               `json:"date" validate:"required"`
	Time             string               `json:"time" validate:"required"`
	Timezone         string               `json:"timezone" validate:"required"`
}

func (r *RescheduleBillingAttemptRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *RescheduleBillingAttemptRequest) ToSealRequest() seal.RescheduleRequest {
	return seal.RescheduleRequest{
		ID:             r.BillingAttemptID.String(),
		SubscriptionID: r.SubscriptionID.String(),
		Date:           r.Date,
		Time:           r.Time,
		Timezone:       r.Timezone,
	}
}

type RescheduleBillingAttemptResponse struct {
	SuccessResponse
	Result json.RawMessage `json:"result"`
}

func NewRescheduleBillingAttemptResponse(result json.RawMessage) *RescheduleBillingAttemptResponse {
	if len(result) == 0 {
		result = json.RawMessage("null")
	}
	return &RescheduleBillingAttemptResponse{
		SuccessResponse: ok(),
		Result:          result,
	}
}
