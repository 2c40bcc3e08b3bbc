package middleware

import (
	"net/http"

	ierr "github.com/coachportal/portalproxy/internal/errors"
	"github.com/coachportal/portalproxy/internal/httpclient"
	"github.com/coachportal/portalproxy/internal/sentry"
	"github.com/coachportal/portalproxy/internal/types"
	"github.com/gin-gonic/gin"
)

const ctxUpstreamStatus = "upstream_status_passthrough"

// UpstreamStatusPassthrough makes ErrorHandler answer provider failures on this
// route with the provider's own status code instead of 502
func UpstreamStatusPassthrough(c *gin.Context) {
	c.Set(ctxUpstreamStatus, true)
	c.Next()
}

// ErrorHandler renders the last error pushed by a handler.
// 5xx responses are reported to sentry.
func ErrorHandler(sentrySvc *sentry.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := statusFor(c, err)

		if status >= http.StatusInternalServerError {
			sentrySvc.CaptureException(c.Request.Context(), err, map[string]string{
				"route":      c.FullPath(),
				"request_id": types.GetRequestID(c.Request.Context()),
			})
		}

		if c.Writer.Written() {
			return
		}
		c.JSON(status, ierr.NewErrorResponse(err))
	}
}

func statusFor(c *gin.Context, err error) int {
	if c.GetBool(ctxUpstreamStatus) && ierr.IsUpstream(err) {
		if httpErr, ok := httpclient.IsHTTPError(err); ok && httpErr.StatusCode >= 400 && httpErr.StatusCode < 600 {
			return httpErr.StatusCode
		}
	}
	return ierr.HTTPStatusFromErr(err)
}
