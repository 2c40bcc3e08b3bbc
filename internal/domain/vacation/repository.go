package vacation

import (
	"context"
	"time"
)

// Repository persists vacation requests
type Repository interface {
	// Create inserts the request atomically
	Create(ctx context.Context, req *VacationRequest) error

	// FindOverlapping returns the first stored request for the pair whose range
	// intersects [from, to], or nil when there is none
	FindOverlapping(ctx context.Context, customerID, childName string, from, to time.Time) (*VacationRequest, error)

	// ListByCustomerAndChild returns the pair's requests, most recent from_date first
	ListByCustomerAndChild(ctx context.Context, customerID, childName string) ([]*VacationRequest, error)

	// ListByCustomer returns all of a customer's requests, most recent from_date first
	ListByCustomer(ctx context.Context, customerID string) ([]*VacationRequest, error)

	// LockChild serialises admissions for the pair until the surrounding transaction ends
	LockChild(ctx context.Context, customerID, childName string) error
}
