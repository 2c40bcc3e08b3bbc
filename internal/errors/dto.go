package errors

import (
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
)

const detailsPrefix = "__json__:"

// ErrorResponse represents the standard error response structure
type ErrorResponse struct {
	Success bool           `json:"success"`
	Error   string         `json:"error" example:"Overlapping requests are not allowed"`
	Details map[string]any `json:"details,omitempty"`
}

// NewErrorResponse renders err for clients: the first hint as the message
// plus every reportable detail.
func NewErrorResponse(err error) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error:   DisplayMessage(err),
		Details: ReportableDetails(err),
	}
}

// DisplayMessage returns the first non-empty hint attached to err
func DisplayMessage(err error) string {
	// GetAllHints is a post-order traversal, the innermost hint comes first
	for _, hint := range errors.GetAllHints(err) {
		if hint = strings.TrimSpace(hint); hint != "" {
			return hint
		}
	}
	return "An unexpected error occurred"
}

// ReportableDetails merges every WithReportableDetails payload on err.
// Returns nil when there are none.
func ReportableDetails(err error) map[string]any {
	var details map[string]any

	for _, sdp := range errors.GetAllSafeDetails(err) {
		for _, payload := range sdp.SafeDetails {
			raw, ok := strings.CutPrefix(payload, detailsPrefix)
			if !ok {
				continue
			}

			var m map[string]any
			if err := json.Unmarshal([]byte(raw), &m); err != nil {
				continue
			}
			if details == nil {
				details = make(map[string]any, len(m))
			}
			for k, v := range m {
				details[k] = v
			}
		}
	}

	return details
}
