package vacation

import (
	"time"

	"github.com/coachportal/portalproxy/internal/types"
)

// VacationRequest is a customer's request to push a child's billing attempts back.
// Rows are immutable once written.
type VacationRequest struct {
	// ID is the unique identifier, prefixed with "vac_"
	ID string `db:"id" json:"id"`

	// CustomerID identifies the paying customer at the storefront
	CustomerID string `db:"customer_id" json:"customer_id"`

	// ChildName scopes the overlap rule within one customer
	ChildName string `db:"child_name" json:"child_name"`

	// FromDate and ToDate bound the vacation, both inclusive, at midnight UTC
	FromDate time.Time `db:"from_date" json:"from_date"`
	ToDate   time.Time `db:"to_date" json:"to_date"`

	// ShiftDays is how many days each billing attempt moves forward
	ShiftDays int `db:"shift_days" json:"shift_days"`

	Reason string `db:"reason" json:"reason,omitempty"`

	// SubscriptionID and BillingAttemptID reference provider records, nothing is cached
	SubscriptionID   string `db:"subscription_id" json:"subscription_id"`
	BillingAttemptID string `db:"billing_attempt_id" json:"billing_attempt_id"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Overlaps reports whether the stored range shares at least one day with [from, to]
func (v *VacationRequest) Overlaps(from, to time.Time) bool {
	return types.RangesOverlap(v.FromDate, v.ToDate, from, to)
}
