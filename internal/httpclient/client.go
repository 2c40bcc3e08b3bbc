package httpclient

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/coachportal/portalproxy/internal/config"
	ierr "github.com/coachportal/portalproxy/internal/errors"
)

const (
	defaultTimeout = 10 * time.Second

	// maxResponseBytes caps how much of a provider response is read into memory
	maxResponseBytes = 4 << 20
)

// Request is one outbound call to the billing provider
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
}

// Response carries the status, first header values and the body
type Response struct {
	StatusCode int
	Body       []byte
	Headers    map[string]string
}

// Client sends outbound requests. Implementations must honour ctx cancellation.
type Client interface {
	Send(ctx context.Context, req *Request) (*Response, error)
}

// DefaultClient sends requests over net/http with the provider timeout
type DefaultClient struct {
	client *http.Client
}

// NewDefaultClient creates a client bounded by seal.timeout
func NewDefaultClient(cfg *config.Configuration) Client {
	timeout := cfg.Seal.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &DefaultClient{
		client: &http.Client{Timeout: timeout},
	}
}

// Send performs req. Any status of 400 or above is returned as *Error with the
// raw body attached so callers can surface the provider's own message.
func (c *DefaultClient) Send(ctx context.Context, req *Request) (*Response, error) {
	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to build the billing provider request").
			Mark(ierr.ErrHTTPClient)
	}

	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, transportError(ctx, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to read the billing provider response").
			Mark(ierr.ErrHTTPClient)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, NewError(resp.StatusCode, respBody)
	}

	headers := make(map[string]string, len(resp.Header))
	for k, v := range resp.Header {
		if len(v) > 0 {
			headers[k] = v[0]
		}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       respBody,
		Headers:    headers,
	}, nil
}

func transportError(ctx context.Context, err error) error {
	hint := "The billing provider could not be reached"

	var netErr interface{ Timeout() bool }
	switch {
	case ctx.Err() == context.Canceled:
		hint = "The request was cancelled"
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		hint = "The billing provider did not respond in time"
	}

	return ierr.WithError(err).
		WithHint(hint).
		Mark(ierr.ErrHTTPClient)
}
