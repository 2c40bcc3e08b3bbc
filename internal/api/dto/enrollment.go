package dto

import (
	"strings"

	"github.com/coachportal/portalproxy/internal/domain/enrollment"
	"github.com/coachportal/portalproxy/internal/validator"
)

// ListEnrollmentsRequest looks up a parent's enrollments by email
type ListEnrollmentsRequest struct {
	Email string `form:"email" json:"email" validate:"required"`
}

func (r *ListEnrollmentsRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	return validator.ValidateRequest(r)
}

type ListEnrollmentsResponse struct {
	SuccessResponse
	Enrollments []enrollment.Enrollment `json:"enrollments"`
}

func NewListEnrollmentsResponse(items []enrollment.Enrollment) *ListEnrollmentsResponse {
	if items == nil {
		items = []enrollment.Enrollment{}
	}
	return &ListEnrollmentsResponse{
		SuccessResponse: ok(),
		Enrollments:     items,
	}
}
