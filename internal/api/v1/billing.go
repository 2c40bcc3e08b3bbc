package v1

import (
	"net/http"

	"github.com/coachportal/portalproxy/internal/api/dto"
	"github.com/coachportal/portalproxy/internal/logger"
	"github.com/coachportal/portalproxy/internal/service"
	"github.com/gin-gonic/gin"
)

type BillingHandler struct {
	service service.BillingService
	log     *logger.Logger
}

func NewBillingHandler(service service.BillingService, log *logger.Logger) *BillingHandler {
	return &BillingHandler{
		service: service,
		log:     log,
	}
}

// @Summary Get billing schedule
// @Description Returns the first four billing attempts of a subscription
// @Tags Billing
// @Produce json
// @Param subscription_id query string true "Subscription ID"
// @Success 200 {object} dto.BillingScheduleResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 502 {object} ierr.ErrorResponse
// @Router /billing-schedule [get]
func (h *BillingHandler) GetBillingSchedule(c *gin.Context) {
	var req dto.GetBillingScheduleRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.service.GetBillingSchedule(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Reschedule a billing attempt
// @Description Forwards the new date to the provider. Provider failures keep their status code.
// @Tags Billing
// @Accept json
// @Produce json
// @Param request body dto.RescheduleBillingAttemptRequest true "Reschedule request"
// @Success 200 {object} dto.RescheduleBillingAttemptResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /reschedule-billing-attempt [put]
func (h *BillingHandler) RescheduleBillingAttempt(c *gin.Context) {
	var req dto.RescheduleBillingAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.service.RescheduleBillingAttempt(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
