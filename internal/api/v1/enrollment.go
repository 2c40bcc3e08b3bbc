package v1

import (
	"net/http"

	"github.com/coachportal/portalproxy/internal/api/dto"
	"github.com/coachportal/portalproxy/internal/logger"
	"github.com/coachportal/portalproxy/internal/service"
	"github.com/gin-gonic/gin"
)

type EnrollmentHandler struct {
	service service.EnrollmentService
	log     *logger.Logger
}

func NewEnrollmentHandler(service service.EnrollmentService, log *logger.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{
		service: service,
		log:     log,
	}
}

// @Summary List enrollments
// @Description List a parent's enrollments, one per provider subscription
// @Tags Enrollments
// @Produce json
// @Param email query string true "Parent email"
// @Success 200 {object} dto.ListEnrollmentsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 502 {object} ierr.ErrorResponse
// @Router /enrollments [get]
func (h *EnrollmentHandler) ListEnrollments(c *gin.Context) {
	var req dto.ListEnrollmentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.service.ListEnrollments(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
