package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/coachportal/portalproxy/internal/domain/vacation"
	ierr "github.com/coachportal/portalproxy/internal/errors"
)

var _ vacation.Repository = (*InMemoryVacationStore)(nil)

// InMemoryVacationStore implements vacation.Repository.
// Errors can be injected per operation to simulate database failures.
type InMemoryVacationStore struct {
	*InMemoryStore[*vacation.VacationRequest]

	mu        sync.Mutex
	createErr error
	findErr   error
	listErr   error
}

// NewInMemoryVacationStore creates a new in-memory vacation store
func NewInMemoryVacationStore() *InMemoryVacationStore {
	return &InMemoryVacationStore{
		InMemoryStore: NewInMemoryStore[*vacation.VacationRequest](),
	}
}

func copyVacation(v *vacation.VacationRequest) *vacation.VacationRequest {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// storage order: created_at then id
func byCreation(a, b *vacation.VacationRequest) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

// most recent from_date first, then most recently created
func byFromDateDesc(a, b *vacation.VacationRequest) bool {
	if !a.FromDate.Equal(b.FromDate) {
		return a.FromDate.After(b.FromDate)
	}
	return a.CreatedAt.After(b.CreatedAt)
}

func (s *InMemoryVacationStore) Create(ctx context.Context, v *vacation.VacationRequest) error {
	if err := s.injected(&s.createErr); err != nil {
		return err
	}
	if v == nil {
		return ierr.NewError("vacation request cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, v.ID, copyVacation(v))
}

func (s *InMemoryVacationStore) FindOverlapping(ctx context.Context, customerID, childName string, from, to time.Time) (*vacation.VacationRequest, error) {
	if err := s.injected(&s.findErr); err != nil {
		return nil, err
	}

	items, err := s.InMemoryStore.List(ctx, func(_ context.Context, v *vacation.VacationRequest) bool {
		return v.CustomerID == customerID && v.ChildName == childName && v.Overlaps(from, to)
	}, byCreation)
	if err != nil || len(items) == 0 {
		return nil, err
	}
	return copyVacation(items[0]), nil
}

func (s *InMemoryVacationStore) ListByCustomerAndChild(ctx context.Context, customerID, childName string) ([]*vacation.VacationRequest, error) {
	return s.list(ctx, func(_ context.Context, v *vacation.VacationRequest) bool {
		return v.CustomerID == customerID && v.ChildName == childName
	})
}

func (s *InMemoryVacationStore) ListByCustomer(ctx context.Context, customerID string) ([]*vacation.VacationRequest, error) {
	return s.list(ctx, func(_ context.Context, v *vacation.VacationRequest) bool {
		return v.CustomerID == customerID
	})
}

// LockChild is a no-op; callers serialise through the service's in-process locks
func (s *InMemoryVacationStore) LockChild(ctx context.Context, customerID, childName string) error {
	return nil
}

func (s *InMemoryVacationStore) list(ctx context.Context, filterFn FilterFunc[*vacation.VacationRequest]) ([]*vacation.VacationRequest, error) {
	if err := s.injected(&s.listErr); err != nil {
		return nil, err
	}

	items, err := s.InMemoryStore.List(ctx, filterFn, byFromDateDesc)
	if err != nil {
		return nil, err
	}

	out := make([]*vacation.VacationRequest, 0, len(items))
	for _, v := range items {
		out = append(out, copyVacation(v))
	}
	return out, nil
}

// All returns every stored request in storage order
func (s *InMemoryVacationStore) All() []*vacation.VacationRequest {
	items, _ := s.InMemoryStore.List(context.Background(), nil, byCreation)
	return items
}

// FailCreate makes every Create return err until cleared with nil
func (s *InMemoryVacationStore) FailCreate(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.createErr = err
}

// FailFind makes every FindOverlapping return err until cleared with nil
func (s *InMemoryVacationStore) FailFind(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.findErr = err
}

// FailList makes every listing return err until cleared with nil
func (s *InMemoryVacationStore) FailList(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listErr = err
}

func (s *InMemoryVacationStore) injected(slot *error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *slot
}

// Clear removes every request and injected error
func (s *InMemoryVacationStore) Clear() {
	s.InMemoryStore.Clear()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.createErr, s.findErr, s.listErr = nil, nil, nil
}
