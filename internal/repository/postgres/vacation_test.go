package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/coachportal/portalproxy/internal/config"
	"github.com/coachportal/portalproxy/internal/domain/vacation"
	"github.com/coachportal/portalproxy/internal/logger"
	"github.com/coachportal/portalproxy/internal/postgres"
	"github.com/coachportal/portalproxy/internal/types"
	"github.com/stretchr/testify/suite"
)

// testDSNEnv points the suite at a disposable database. The suite is skipped when unset.
const testDSNEnv = "PORTALPROXY_TEST_POSTGRES_DSN"

type VacationRepositorySuite struct {
	suite.Suite
	ctx  context.Context
	db   *postgres.DB
	repo vacation.Repository
}

func TestVacationRepository(t *testing.T) {
	if os.Getenv(testDSNEnv) == "" {
		t.Skipf("%s not set", testDSNEnv)
	}
	suite.Run(t, new(VacationRepositorySuite))
}

func (s *VacationRepositorySuite) SetupSuite() {
	cfg := config.GetDefaultConfig()
	cfg.Postgres.DSN = os.Getenv(testDSNEnv)
	cfg.Postgres.AutoMigrate = true
	cfg.Postgres.MigrationsPath = "../../../migrations/postgres"

	log := logger.NewNopLogger()
	db, err := postgres.NewDB(cfg, log)
	s.Require().NoError(err)

	s.ctx = context.Background()
	s.db = db
	s.repo = NewVacationRepository(db, log)
}

func (s *VacationRepositorySuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
}

func (s *VacationRepositorySuite) SetupTest() {
	_, err := s.db.ExecContext(s.ctx, `DELETE FROM vacation_requests`)
	s.Require().NoError(err)
}

func (s *VacationRepositorySuite) insert(child, from, to string, createdAt time.Time) *vacation.VacationRequest {
	fromDate, err := types.ParseDate(from)
	s.Require().NoError(err)
	toDate, err := types.ParseDate(to)
	s.Require().NoError(err)

	req := &vacation.VacationRequest{
		ID:               types.GenerateUUIDWithPrefix(types.UUID_PREFIX_VACATION_REQUEST),
		CustomerID:       "12345",
		ChildName:        child,
		FromDate:         fromDate,
		ToDate:           toDate,
		ShiftDays:        7,
		SubscriptionID:   "55",
		BillingAttemptID: "9001",
		CreatedAt:        createdAt,
	}
	s.Require().NoError(s.repo.Create(s.ctx, req))
	return req
}

func (s *VacationRepositorySuite) TestFindOverlapping() {
	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	first := s.insert("Ava", "2025-05-20", "2025-05-25", base)
	s.insert("Ava", "2025-05-24", "2025-05-30", base.Add(time.Hour))

	tests := []struct {
		name   string
		child  string
		from   string
		to     string
		wantID string
	}{
		{"shared end day", "Ava", "2025-05-25", "2025-05-28", first.ID},
		{"contained", "Ava", "2025-05-21", "2025-05-22", first.ID},
		{"day after", "Ava", "2025-05-31", "2025-06-02", ""},
		{"other child", "Ben", "2025-05-20", "2025-05-25", ""},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			from, _ := types.ParseDate(tt.from)
			to, _ := types.ParseDate(tt.to)

			found, err := s.repo.FindOverlapping(s.ctx, "12345", tt.child, from, to)
			s.Require().NoError(err)
			if tt.wantID == "" {
				s.Nil(found)
				return
			}
			s.Require().NotNil(found)
			s.Equal(tt.wantID, found.ID)
			s.Equal("2025-05-20", types.FormatDate(found.FromDate))
		})
	}
}

func (s *VacationRepositorySuite) TestList() {
	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	s.insert("Ava", "2025-05-01", "2025-05-03", base)
	s.insert("Ava", "2025-07-01", "2025-07-03", base.Add(time.Hour))
	s.insert("Ben", "2025-06-01", "2025-06-03", base.Add(2*time.Hour))

	ava, err := s.repo.ListByCustomerAndChild(s.ctx, "12345", "Ava")
	s.Require().NoError(err)
	s.Require().Len(ava, 2)
	s.Equal("2025-07-01", types.FormatDate(ava[0].FromDate))
	s.Equal("2025-05-01", types.FormatDate(ava[1].FromDate))

	all, err := s.repo.ListByCustomer(s.ctx, "12345")
	s.Require().NoError(err)
	s.Len(all, 3)

	none, err := s.repo.ListByCustomer(s.ctx, "99999")
	s.Require().NoError(err)
	s.NotNil(none)
	s.Empty(none)
}

func (s *VacationRepositorySuite) TestLockChild() {
	err := s.repo.LockChild(s.ctx, "12345", "Ava")
	s.Error(err)

	err = s.db.WithTx(s.ctx, func(ctx context.Context) error {
		return s.repo.LockChild(ctx, "12345", "Ava")
	})
	s.NoError(err)
}
