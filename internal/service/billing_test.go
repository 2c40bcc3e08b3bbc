package service

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/coachportal/portalproxy/internal/api/dto"
	"github.com/coachportal/portalproxy/internal/domain/enrollment"
	ierr "github.com/coachportal/portalproxy/internal/errors"
	"github.com/coachportal/portalproxy/internal/httpclient"
	"github.com/coachportal/portalproxy/internal/testutil"
	"github.com/stretchr/testify/suite"
)

type BillingServiceSuite struct {
	testutil.BaseServiceTestSuite
	service BillingService
}

func TestBillingService(t *testing.T) {
	suite.Run(t, new(BillingServiceSuite))
}

func (s *BillingServiceSuite) SetupTest() {
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
	s.service = NewBillingService(params)
}

func (s *BillingServiceSuite) registerSchedule(attempts int) {
	rows := make([]testutil.SealAttempt, 0, attempts)
	for i := 1; i <= attempts; i++ {
		rows = append(rows, testutil.SealAttempt{
			ID:   9000 + i,
			Date: "2025-0" + string(rune('0'+i)) + "-01T00:00:00Z",
		})
	}
	testutil.RegisterSealDetail(s.GetHTTPClient(), testutil.SealDetail{
		ID:       "55",
		Title:    "Camp",
		Price:    "49.5",
		Attempts: rows,
	})
}

func (s *BillingServiceSuite) TestGetBillingSchedule() {
	s.registerSchedule(6)

	resp, err := s.service.GetBillingSchedule(s.GetContext(), &dto.GetBillingScheduleRequest{SubscriptionID: "55"})
	s.Require().NoError(err)
	s.True(resp.Success)
	s.Equal([]enrollment.ScheduledPayment{
		{ID: "9001", Date: "2025-01-01T00:00:00Z", Amount: "$49.50"},
		{ID: "9002", Date: "2025-02-01T00:00:00Z", Amount: "$49.50"},
		{ID: "9003", Date: "2025-03-01T00:00:00Z", Amount: "$49.50"},
		{ID: "9004", Date: "2025-04-01T00:00:00Z", Amount: "$49.50"},
	}, resp.BillingAttempts)
}

func (s *BillingServiceSuite) TestGetBillingSchedule_Short() {
	s.registerSchedule(2)

	resp, err := s.service.GetBillingSchedule(s.GetContext(), &dto.GetBillingScheduleRequest{SubscriptionID: "55"})
	s.Require().NoError(err)
	s.Len(resp.BillingAttempts, 2)

	s.registerSchedule(0)
	s.GetCache().Flush(s.GetContext())

	resp, err = s.service.GetBillingSchedule(s.GetContext(), &dto.GetBillingScheduleRequest{SubscriptionID: "55"})
	s.Require().NoError(err)
	s.NotNil(resp.BillingAttempts)
	s.Empty(resp.BillingAttempts)
}

func (s *BillingServiceSuite) TestGetBillingSchedule_Errors() {
	_, err := s.service.GetBillingSchedule(s.GetContext(), &dto.GetBillingScheduleRequest{})
	s.True(ierr.IsValidation(err))

	testutil.RegisterSealDetail(s.GetHTTPClient(), testutil.SealDetail{ID: "56", NoItems: true})
	_, err = s.service.GetBillingSchedule(s.GetContext(), &dto.GetBillingScheduleRequest{SubscriptionID: "56"})
	s.True(ierr.Is(err, ierr.ErrEmptyDetail))
	s.Equal(http.StatusBadGateway, ierr.HTTPStatusFromErr(err))
}

func (s *BillingServiceSuite) rescheduleRequest() *dto.RescheduleBillingAttemptRequest {
	return &dto.RescheduleBillingAttemptRequest{
		BillingAttemptID: "9001",
		SubscriptionID:   "55",
		Date:             "2025-08-01",
		Time:             "10:00",
		Timezone:         "America/New_York",
	}
}

func (s *BillingServiceSuite) TestRescheduleBillingAttempt_InvalidatesSchedule() {
	s.registerSchedule(1)

	_, err := s.service.GetBillingSchedule(s.GetContext(), &dto.GetBillingScheduleRequest{SubscriptionID: "55"})
	s.Require().NoError(err)

	s.GetHTTPClient().RegisterJSONResponse(testutil.SealRescheduleRoute, http.StatusOK, map[string]any{
		"success": true,
		"payload": map[string]any{"id": 9001, "date": "2025-08-01T10:00:00-04:00"},
	})

	resp, err := s.service.RescheduleBillingAttempt(s.GetContext(), s.rescheduleRequest())
	s.Require().NoError(err)
	s.True(resp.Success)

	var result map[string]any
	s.Require().NoError(json.Unmarshal(resp.Result, &result))
	s.Equal(true, result["success"])

	testutil.RegisterSealDetail(s.GetHTTPClient(), testutil.SealDetail{
		ID:       "55",
		Title:    "Camp",
		Price:    "49.5",
		Attempts: []testutil.SealAttempt{{ID: 9001, Date: "2025-08-01T10:00:00-04:00"}},
	})

	schedule, err := s.service.GetBillingSchedule(s.GetContext(), &dto.GetBillingScheduleRequest{SubscriptionID: "55"})
	s.Require().NoError(err)
	s.Require().Len(schedule.BillingAttempts, 1)
	s.Equal("2025-08-01T10:00:00-04:00", schedule.BillingAttempts[0].Date)
	s.Equal(2, s.GetHTTPClient().CallCount(testutil.SealDetailRoute("55")))
}

func (s *BillingServiceSuite) TestRescheduleBillingAttempt_ProviderRejects() {
	testutil.RegisterSealError(s.GetHTTPClient(), testutil.SealRescheduleRoute, http.StatusUnprocessableEntity, "Date is in the past")

	_, err := s.service.RescheduleBillingAttempt(s.GetContext(), s.rescheduleRequest())
	s.Require().Error(err)
	s.True(ierr.IsUpstream(err))
	s.Equal("Date is in the past", ierr.DisplayMessage(err))

	httpErr, ok := httpclient.IsHTTPError(err)
	s.Require().True(ok)
	s.Equal(http.StatusUnprocessableEntity, httpErr.StatusCode)
}

func (s *BillingServiceSuite) TestRescheduleBillingAttempt_Validation() {
	req := s.rescheduleRequest()
	req.Timezone = ""

	_, err := s.service.RescheduleBillingAttempt(s.GetContext(), req)
	s.True(ierr.IsValidation(err))
	s.Empty(s.GetHTTPClient().Requests())
}
