package seal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/coachportal/portalproxy/internal/config"
	ierr "github.com/coachportal/portalproxy/internal/errors"
	"github.com/coachportal/portalproxy/internal/httpclient"
	"github.com/coachportal/portalproxy/internal/logger"
	"github.com/samber/lo"
	"golang.org/x/time/rate"
)

// SealClient defines the Seal Subscriptions operations the portal needs.
// Every failure is marked ErrUpstream; the provider's status code stays
// reachable through httpclient.IsHTTPError.
type SealClient interface {
	ListSubscriptionsByEmail(ctx context.Context, email string) ([]SubscriptionSummary, error)

	// GetSubscriptionDetail fails with ErrEmptyDetail when the subscription has no line items
	GetSubscriptionDetail(ctx context.Context, subscriptionID string) (*SubscriptionDetail, error)

	// RescheduleBillingAttempt returns the provider's response body untouched
	RescheduleBillingAttempt(ctx context.Context, req RescheduleRequest) (json.RawMessage, error)
}

// Client talks to the Seal merchant API with the configured token
type Client struct {
	baseURL    string
	token      string
	httpClient httpclient.Client
	limiter    *rate.Limiter
	logger     *logger.Logger
}

// NewClient creates a new Seal client
func NewClient(cfg *config.Configuration, httpClient httpclient.Client, logger *logger.Logger) SealClient {
	limit := rate.Inf
	if cfg.Seal.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.Seal.RequestsPerSecond)
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.Seal.BaseURL, "/"),
		token:      cfg.Seal.Token,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(limit, max(cfg.Seal.Burst, 1)),
		logger:     logger,
	}
}

func (c *Client) ListSubscriptionsByEmail(ctx context.Context, email string) ([]SubscriptionSummary, error) {
	q := url.Values{}
	q.Set("query", email)

	var resp envelope[*subscriptionsPayload]
	if _, err := c.makeRequest(ctx, http.MethodGet, "/subscriptions?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}

	if resp.Payload == nil || resp.Payload.Subscriptions == nil {
		return []SubscriptionSummary{}, nil
	}
	return resp.Payload.Subscriptions, nil
}

func (c *Client) GetSubscriptionDetail(ctx context.Context, subscriptionID string) (*SubscriptionDetail, error) {
	q := url.Values{}
	q.Set("id", subscriptionID)

	var resp envelope[*SubscriptionDetail]
	if _, err := c.makeRequest(ctx, http.MethodGet, "/subscription?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}

	if resp.Payload == nil {
		return nil, ierr.NewError("seal returned no subscription").
			WithHint("Subscription details are unavailable right now").
			WithReportableDetails(map[string]any{
				"subscription_id": subscriptionID,
			}).
			Mark(ierr.ErrUpstream)
	}

	if len(resp.Payload.Items) == 0 {
		return nil, ierr.NewError("subscription has no line items").
			WithHint("Could not find any items for this subscription").
			WithReportableDetails(map[string]any{
				"subscription_id": subscriptionID,
			}).
			Mark(ierr.ErrEmptyDetail)
	}

	return resp.Payload, nil
}

func (c *Client) RescheduleBillingAttempt(ctx context.Context, req RescheduleRequest) (json.RawMessage, error) {
	req.Action = ActionReschedule
	req.ResetSchedule = true

	var resp envelope[json.RawMessage]
	body, err := c.makeRequest(ctx, http.MethodPut, "/subscription-billing-attempt", req, &resp)
	if err != nil {
		return nil, err
	}

	c.logger.Infow("seal billing attempt rescheduled",
		"billing_attempt_id", req.ID,
		"subscription_id", req.SubscriptionID,
		"date", req.Date)

	return json.RawMessage(body), nil
}

// makeRequest sends one request and decodes the envelope into out.
// The raw body is returned for callers that pass it through.
func (c *Client) makeRequest(ctx context.Context, method, endpoint string, body any, out any) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, c.upstreamError(err, method, endpoint, "Billing provider request was cancelled")
	}

	var jsonBody []byte
	if body != nil {
		var err error
		jsonBody, err = json.Marshal(body)
		if err != nil {
			return nil, ierr.WithError(err).
				WithHint("Invalid request data").
				Mark(ierr.ErrInternal)
		}
	}

	fullURL := fmt.Sprintf("%s%s", c.baseURL, endpoint)
	httpReq := &httpclient.Request{
		Method: method,
		URL:    fullURL,
		Headers: map[string]string{
			"X-Seal-Token": c.token,
			"Content-Type": "application/json",
			"Accept":       "application/json",
		},
		Body: jsonBody,
	}

	resp, err := c.httpClient.Send(ctx, httpReq)
	if err != nil {
		hint := "Unable to reach the billing provider"
		if httpErr, ok := httpclient.IsHTTPError(err); ok {
			hint = lo.CoalesceOrEmpty(providerMessage(httpErr.Response), fmt.Sprintf("Billing provider returned status %d", httpErr.StatusCode))
		}
		return nil, c.upstreamError(err, method, endpoint, hint)
	}

	if err := json.Unmarshal(resp.Body, out); err != nil {
		return nil, c.upstreamError(err, method, endpoint, "Invalid response from the billing provider")
	}

	var status envelope[json.RawMessage]
	if err := json.Unmarshal(resp.Body, &status); err == nil && status.Success != nil && !*status.Success {
		msg := lo.CoalesceOrEmpty(status.Error, "Billing provider rejected the request")
		return nil, c.upstreamError(ierr.NewErrorf("seal rejected request: %s", msg).Mark(ierr.ErrHTTPClient), method, endpoint, msg)
	}

	return resp.Body, nil
}

func (c *Client) upstreamError(err error, method, endpoint, hint string) error {
	details := map[string]any{
		"method":   method,
		"endpoint": endpoint,
	}
	if httpErr, ok := httpclient.IsHTTPError(err); ok {
		details["status_code"] = httpErr.StatusCode
	}

	c.logger.Errorw("seal API request failed",
		"method", method,
		"endpoint", endpoint,
		"error", err)

	return ierr.WithError(err).
		WithHint(hint).
		WithReportableDetails(details).
		Mark(ierr.ErrUpstream)
}

// providerMessage extracts the error text from a Seal error body
func providerMessage(body []byte) string {
	var e errorResponse
	if err := json.Unmarshal(body, &e); err != nil {
		return ""
	}
	return strings.TrimSpace(e.message())
}
