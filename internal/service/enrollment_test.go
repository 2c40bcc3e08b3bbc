package service

import (
	"net/http"
	"testing"

	"github.com/coachportal/portalproxy/internal/api/dto"
	"github.com/coachportal/portalproxy/internal/domain/enrollment"
	ierr "github.com/coachportal/portalproxy/internal/errors"
	"github.com/coachportal/portalproxy/internal/integration/seal"
	"github.com/coachportal/portalproxy/internal/testutil"
	"github.com/stretchr/testify/suite"
)

const parentEmail = "parent@example.com"

type EnrollmentServiceSuite struct {
	testutil.BaseServiceTestSuite
	service EnrollmentService
}

func TestEnrollmentService(t *testing.T) {
	suite.Run(t, new(EnrollmentServiceSuite))
}

func (s *EnrollmentServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	params := NewServiceParams(
		s.GetLogger(),
		s.GetConfig(),
		s.GetDB(),
		s.GetStores().VacationRepo,
		s.GetSealClient(),
		s.GetCache(),
	)
	params.Now = s.GetNow
	s.service = NewEnrollmentService(params)
}

func (s *EnrollmentServiceSuite) list() []enrollment.Enrollment {
	resp, err := s.service.ListEnrollments(s.GetContext(), &dto.ListEnrollmentsRequest{Email: parentEmail})
	s.Require().NoError(err)
	s.True(resp.Success)
	return resp.Enrollments
}

func (s *EnrollmentServiceSuite) TestListEnrollments() {
	testutil.RegisterSealSearch(s.GetHTTPClient(), parentEmail,
		testutil.SealSummary{ID: 55, BillingInterval: "monthly"},
	)
	testutil.RegisterSealDetail(s.GetHTTPClient(), testutil.SealDetail{
		ID:    "55",
		Title: "coach-U11 Spring",
		Price: "120",
		Properties: map[string]string{
			seal.PropChildFirstName: "Ava",
			seal.PropChildLastName:  "Smith",
			seal.PropChildClubID:    "CC-42",
			seal.PropProgramLevel:   "COACH-Elite Squad",
		},
		// now is 2025-05-15T12:00:00Z
		Attempts: []testutil.SealAttempt{
			{ID: 1, Date: "2025-01-15T00:00:00Z", Status: "completed"},
			{ID: 2, Date: "2025-02-15T00:00:00Z", Status: "completed"},
			{ID: 3, Date: "2025-03-15T00:00:00Z", Status: "failed"},
			{ID: 4, Date: "2025-04-15T00:00:00Z", Status: "completed"},
			{ID: 5, Date: "2025-05-15T00:00:00Z"},
			{ID: 6, Date: "2025-06-15T00:00:00Z"},
			{ID: 7, Date: "2025-07-15T00:00:00Z"},
		},
	})

	items := s.list()
	s.Require().Len(items, 1)

	e := items[0]
	s.Equal("55", e.SubscriptionID)
	s.Equal("Ava", e.ChildFirstName)
	s.Equal("Smith", e.ChildLastName)
	s.Equal("CC-42", e.ExternalChildID)
	s.Equal("Elite Squad", e.Program)
	s.Equal("monthly", e.PaymentFrequency)
	s.Equal(parentEmail, e.ParentEmail)
	s.Require().NotNil(e.NextPaymentDate)
	s.Equal("2025-06-15T00:00:00Z", *e.NextPaymentDate)
	s.Equal("$120.00", e.NextPaymentAmount)

	s.Equal([]enrollment.Payment{
		{Date: "2025-02-15T00:00:00Z", Amount: "$120.00", Status: "completed"},
		{Date: "2025-03-15T00:00:00Z", Amount: "$120.00", Status: "failed"},
		{Date: "2025-04-15T00:00:00Z", Amount: "$120.00", Status: "completed"},
		{Date: "2025-05-15T00:00:00Z", Amount: "$120.00", Status: "unknown"},
	}, e.PreviousPayments)
}

func (s *EnrollmentServiceSuite) TestListEnrollments_FallbacksWithoutProperties() {
	testutil.RegisterSealSearch(s.GetHTTPClient(), parentEmail, testutil.SealSummary{ID: "77"})
	testutil.RegisterSealDetail(s.GetHTTPClient(), testutil.SealDetail{
		ID:              "77",
		Title:           "Coach-Summer Camp",
		Price:           "abc",
		BillingInterval: "weekly",
		Attempts: []testutil.SealAttempt{
			{ID: 1, Date: "2025-04-01T00:00:00Z", Status: "completed"},
		},
	})

	items := s.list()
	s.Require().Len(items, 1)

	e := items[0]
	s.Equal("", e.ChildFirstName)
	s.Equal("", e.ExternalChildID)
	s.Equal("Summer Camp", e.Program)
	s.Equal("weekly", e.PaymentFrequency)
	s.Nil(e.NextPaymentDate)
	s.Equal("", e.NextPaymentAmount)
	s.Equal([]enrollment.Payment{
		{Date: "2025-04-01T00:00:00Z", Amount: "$abc", Status: "completed"},
	}, e.PreviousPayments)
}

func (s *EnrollmentServiceSuite) TestListEnrollments_SkipsFailedSubscriptions() {
	testutil.RegisterSealSearch(s.GetHTTPClient(), parentEmail,
		testutil.SealSummary{ID: 1},
		testutil.SealSummary{ID: 2},
		testutil.SealSummary{ID: 3},
		testutil.SealSummary{ID: 4},
	)
	testutil.RegisterSealDetail(s.GetHTTPClient(), testutil.SealDetail{ID: "1", Title: "First", Price: "10"})
	testutil.RegisterSealError(s.GetHTTPClient(), testutil.SealDetailRoute("2"), http.StatusInternalServerError, "boom")
	testutil.RegisterSealDetail(s.GetHTTPClient(), testutil.SealDetail{ID: "3", Title: "Third", Price: "30"})
	testutil.RegisterSealDetail(s.GetHTTPClient(), testutil.SealDetail{ID: "4", NoItems: true})

	items := s.list()
	s.Require().Len(items, 2)
	s.Equal("1", items[0].SubscriptionID)
	s.Equal("First", items[0].Program)
	s.Equal("3", items[1].SubscriptionID)
	s.Equal("Third", items[1].Program)
	s.NotNil(items[0].PreviousPayments)
}

func (s *EnrollmentServiceSuite) TestListEnrollments_KeepsProviderOrder() {
	summaries := make([]testutil.SealSummary, 0, 12)
	for i := 12; i >= 1; i-- {
		id := string(rune('a' + i))
		summaries = append(summaries, testutil.SealSummary{ID: id})
		testutil.RegisterSealDetail(s.GetHTTPClient(), testutil.SealDetail{ID: id, Title: "P" + id, Price: "1"})
	}
	testutil.RegisterSealSearch(s.GetHTTPClient(), parentEmail, summaries...)

	items := s.list()
	s.Require().Len(items, len(summaries))
	for i, e := range items {
		s.Equal(summaries[i].ID, e.SubscriptionID)
	}
}

func (s *EnrollmentServiceSuite) TestListEnrollments_NoSubscriptions() {
	testutil.RegisterSealSearch(s.GetHTTPClient(), parentEmail)

	items := s.list()
	s.NotNil(items)
	s.Empty(items)
}

func (s *EnrollmentServiceSuite) TestListEnrollments_SearchFails() {
	testutil.RegisterSealError(s.GetHTTPClient(), testutil.SealSearchRoute(parentEmail), http.StatusUnauthorized, "Invalid token")

	_, err := s.service.ListEnrollments(s.GetContext(), &dto.ListEnrollmentsRequest{Email: parentEmail})
	s.Require().Error(err)
	s.True(ierr.IsUpstream(err))
	s.Equal(http.StatusBadGateway, ierr.HTTPStatusFromErr(err))
}

func (s *EnrollmentServiceSuite) TestListEnrollments_MissingEmail() {
	_, err := s.service.ListEnrollments(s.GetContext(), &dto.ListEnrollmentsRequest{Email: "  "})
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))
	s.Empty(s.GetHTTPClient().Requests())
}

func (s *EnrollmentServiceSuite) TestListEnrollments_UsesDetailCache() {
	testutil.RegisterSealSearch(s.GetHTTPClient(), parentEmail, testutil.SealSummary{ID: 55})
	testutil.RegisterSealDetail(s.GetHTTPClient(), testutil.SealDetail{ID: "55", Title: "Camp", Price: "5"})

	s.list()
	s.list()

	s.Equal(2, s.GetHTTPClient().CallCount(testutil.SealSearchRoute(parentEmail)))
	s.Equal(1, s.GetHTTPClient().CallCount(testutil.SealDetailRoute("55")))
}
