package validator

import (
	"testing"

	ierr "github.com/coachportal/portalproxy/internal/errors"
	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name string `json:"name" validate:"required"`
	From string `json:"from_date" validate:"required,calendar_date"`
	Days int    `json:"shift_days" validate:"gt=0"`
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(&sample{Name: "a", From: "2025-01-31", Days: 1}))

	err := ValidateRequest(&sample{From: "31/01/2025"})
	assert.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestCalendarDate(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
	}{
		{"2025-02-28", true},
		{"2024-02-29", true},
		{"2025-02-29", false},
		{"2025-13-01", false},
		{"2025-1-5", false},
		{"2025-01-05T00:00:00Z", false},
	}

	for _, tt := range tests {
		err := ValidateRequest(&sample{Name: "a", From: tt.in, Days: 1})
		if tt.valid {
			assert.NoError(t, err, tt.in)
		} else {
			assert.Error(t, err, tt.in)
		}
	}
}
