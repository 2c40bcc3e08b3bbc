package errors

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusFromErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", NewError("bad").Mark(ErrValidation), http.StatusBadRequest},
		{"too late", NewError("late").Mark(ErrTooLate), http.StatusBadRequest},
		{"overlap", NewError("overlap").Mark(ErrOverlap), http.StatusConflict},
		{"empty detail", NewError("empty").Mark(ErrEmptyDetail), http.StatusBadGateway},
		{"processing", NewError("boom").Mark(ErrProcessing), http.StatusInternalServerError},
		{"database", NewError("db").Mark(ErrDatabase), http.StatusInternalServerError},
		{"unmarked", NewError("plain").WithHint("plain").Mark(New("other", "other")), http.StatusInternalServerError},
		{
			name: "upstream wins over http client",
			err:  WithError(NewError("transport").Mark(ErrHTTPClient)).Mark(ErrUpstream),
			want: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatusFromErr(tt.err))
		})
	}
}

func TestPredicates(t *testing.T) {
	err := NewError("conflict").
		WithHint("overlapping").
		WithReportableDetails(map[string]any{"conflicting_id": "vac_1"}).
		Mark(ErrOverlap)

	assert.True(t, IsOverlap(err))
	assert.False(t, IsTooLate(err))
	assert.False(t, IsValidation(err))

	empty := NewError("no items").Mark(ErrEmptyDetail)
	assert.True(t, IsUpstream(empty))
	assert.True(t, Is(empty, ErrEmptyDetail))
	assert.False(t, Is(empty, ErrUpstream))
}

func TestNewErrorResponse(t *testing.T) {
	err := WithError(
		NewError("conflict").
			WithHint("You have already submitted a vacation request").
			WithReportableDetails(map[string]any{"conflicting_id": "vac_1"}).
			Mark(ErrOverlap),
	).
		WithReportableDetails(map[string]any{"from_date": "2025-06-01"}).
		Mark(ErrOverlap)

	resp := NewErrorResponse(err)
	assert.False(t, resp.Success)
	assert.Equal(t, "You have already submitted a vacation request", resp.Error)
	assert.Equal(t, map[string]any{
		"conflicting_id": "vac_1",
		"from_date":      "2025-06-01",
	}, resp.Details)
}

func TestNewErrorResponse_NoHint(t *testing.T) {
	resp := NewErrorResponse(NewError("plain").Mark(ErrInternal))
	assert.Equal(t, "An unexpected error occurred", resp.Error)
	assert.Nil(t, resp.Details)
}
