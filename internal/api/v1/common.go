package v1

import (
	ierr "github.com/coachportal/portalproxy/internal/errors"
	"github.com/gin-gonic/gin"
)

// bindError reports a body or query that could not be decoded at all
func bindError(c *gin.Context, err error) {
	_ = c.Error(ierr.WithError(err).
		WithHint("Invalid request format").
		Mark(ierr.ErrValidation))
}
