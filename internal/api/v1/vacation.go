package v1

import (
	"net/http"

	"github.com/coachportal/portalproxy/internal/api/dto"
	"github.com/coachportal/portalproxy/internal/logger"
	"github.com/coachportal/portalproxy/internal/service"
	"github.com/gin-gonic/gin"
)

type VacationHandler struct {
	service service.VacationService
	log     *logger.Logger
}

func NewVacationHandler(service service.VacationService, log *logger.Logger) *VacationHandler {
	return &VacationHandler{
		service: service,
		log:     log,
	}
}

// @Summary Submit a vacation request
// @Description Stores the request and returns the billing attempts shifted by shift_days
// @Tags Vacations
// @Accept json
// @Produce json
// @Param request body dto.CreateVacationRequest true "Vacation request"
// @Success 200 {object} dto.CreateVacationResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Failure 502 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /vacation-request [post]
func (h *VacationHandler) CreateVacationRequest(c *gin.Context) {
	var req dto.CreateVacationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.service.CreateVacationRequest(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List vacation requests
// @Description Lists a customer's vacation requests, most recent first
// @Tags Vacations
// @Produce json
// @Param customer_id query string false "Customer ID"
// @Param email query string false "Customer email, used when customer_id is absent"
// @Param child_name query string false "Child name"
// @Success 200 {object} dto.ListVacationsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /vacations [get]
func (h *VacationHandler) ListVacationRequests(c *gin.Context) {
	var req dto.ListVacationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.service.ListVacationRequests(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
