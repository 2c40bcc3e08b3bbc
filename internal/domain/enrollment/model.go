package enrollment

// Enrollment is the portal's normalized view of one provider subscription.
// It is derived on every request and never stored.
type Enrollment struct {
	SubscriptionID    string    `json:"subscription_id"`
	ChildFirstName    string    `json:"child_first_name"`
	ChildLastName     string    `json:"child_last_name"`
	ExternalChildID   string    `json:"external_child_id"`
	Program           string    `json:"program"`
	PaymentFrequency  string    `json:"payment_frequency"`
	NextPaymentDate   *string   `json:"next_payment_date"`
	NextPaymentAmount string    `json:"next_payment_amount"`
	ParentEmail       string    `json:"parent_email"`
	PreviousPayments  []Payment `json:"previous_payments"`
}

// Payment is one past billing attempt, oldest first
type Payment struct {
	Date   string `json:"date"`
	Amount string `json:"amount"`
	Status string `json:"status"`
}

// ScheduledPayment is one entry of the billing schedule
type ScheduledPayment struct {
	ID     string `json:"id"`
	Date   string `json:"date"`
	Amount string `json:"amount"`
}
