package seal

import (
	"encoding/json"
	"strings"

	"github.com/coachportal/portalproxy/internal/types"
)

// Property names read from the primary line item
const (
	PropChildFirstName  = "Child First Name"
	PropChildLastName   = "Child Last Name"
	PropChildClubID     = "Child CricClub ID"
	PropProgramLevel    = "Program Level"
	PropBillingInterval = "Billing Interval"
)

// Reschedule action fields the provider expects on every billing attempt update
const (
	ActionReschedule = "reschedule"
)

// envelope wraps every Seal response
type envelope[T any] struct {
	Success *bool  `json:"success,omitempty"`
	Payload T      `json:"payload"`
	Error   string `json:"error,omitempty"`
}

// FlexibleString is re-exported for provider ids and prices
type FlexibleString = types.FlexibleString

type subscriptionsPayload struct {
	Subscriptions []SubscriptionSummary `json:"subscriptions"`
}

// SubscriptionSummary is one row of the subscription search
type SubscriptionSummary struct {
	ID              FlexibleString `json:"id"`
	Email           string         `json:"email,omitempty"`
	Status          string         `json:"status,omitempty"`
	BillingInterval string         `json:"billing_interval,omitempty"`
}

// SubscriptionDetail is the full subscription record
type SubscriptionDetail struct {
	ID              FlexibleString   `json:"id"`
	Email           string           `json:"email,omitempty"`
	Status          string           `json:"status,omitempty"`
	BillingInterval string           `json:"billing_interval,omitempty"`
	Items           []LineItem       `json:"items"`
	BillingAttempts []BillingAttempt `json:"billing_attempts"`
}

// PrimaryItem returns the first line item. Callers check for emptiness first.
func (d *SubscriptionDetail) PrimaryItem() *LineItem {
	if d == nil || len(d.Items) == 0 {
		return nil
	}
	return &d.Items[0]
}

type LineItem struct {
	Title      string         `json:"title"`
	Price      FlexibleString `json:"price"`
	Properties []Property     `json:"properties"`
}

type Property struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Property returns the value of the first property named key, or "" when absent
func (i *LineItem) Property(key string) string {
	if i == nil {
		return ""
	}
	for _, p := range i.Properties {
		if p.Key == key {
			return strings.TrimSpace(p.Value)
		}
	}
	return ""
}

// BillingAttempt keeps the raw provider fields so callers can pass them through untouched
type BillingAttempt struct {
	ID     FlexibleString `json:"id"`
	Date   string         `json:"date"`
	Status string         `json:"status,omitempty"`

	Raw map[string]json.RawMessage `json:"-"`
}

func (a *BillingAttempt) UnmarshalJSON(data []byte) error {
	type alias BillingAttempt
	var v alias
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*a = BillingAttempt(v)
	a.Raw = raw
	return nil
}

// RescheduleRequest is the body of PUT /subscription-billing-attempt
type RescheduleRequest struct {
	ID             string `json:"id"`
	SubscriptionID string `json:"subscription_id"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	Timezone       string `json:"timezone"`
	Action         string `json:"action"`
	ResetSchedule  bool   `json:"reset_schedule"`
}

// errorResponse is the body Seal returns on failures
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (e errorResponse) message() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}
