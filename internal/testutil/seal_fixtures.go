package testutil

import (
	"net/http"
	"net/url"
	"sort"
)

// SealAttempt describes one billing attempt in a detail fixture
type SealAttempt struct {
	ID     any
	Date   string
	Status string
	Extra  map[string]any
}

// SealDetail describes a Seal subscription detail fixture
type SealDetail struct {
	ID              string
	Title           string
	Price           any
	BillingInterval string
	Properties      map[string]string
	Attempts        []SealAttempt
	NoItems         bool
}

// SealSummary describes one row of a Seal subscription search fixture
type SealSummary struct {
	ID              any
	BillingInterval string
}

// SealDetailRoute is the URL suffix the Seal client requests for a subscription detail
func SealDetailRoute(id string) string {
	q := url.Values{}
	q.Set("id", id)
	return "/subscription?" + q.Encode()
}

// SealSearchRoute is the URL suffix the Seal client requests for an email search
func SealSearchRoute(email string) string {
	q := url.Values{}
	q.Set("query", email)
	return "/subscriptions?" + q.Encode()
}

const SealRescheduleRoute = "/subscription-billing-attempt"

// Payload renders the fixture as Seal would return it
func (d SealDetail) Payload() map[string]any {
	attempts := make([]map[string]any, 0, len(d.Attempts))
	for _, a := range d.Attempts {
		row := map[string]any{
			"id":   a.ID,
			"date": a.Date,
		}
		if a.Status != "" {
			row["status"] = a.Status
		}
		for k, v := range a.Extra {
			row[k] = v
		}
		attempts = append(attempts, row)
	}

	keys := make([]string, 0, len(d.Properties))
	for k := range d.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	props := make([]map[string]string, 0, len(keys))
	for _, k := range keys {
		props = append(props, map[string]string{"key": k, "value": d.Properties[k]})
	}

	items := []map[string]any{}
	if !d.NoItems {
		items = append(items, map[string]any{
			"title":      d.Title,
			"price":      d.Price,
			"properties": props,
		})
	}

	return map[string]any{
		"success": true,
		"payload": map[string]any{
			"id":               d.ID,
			"billing_interval": d.BillingInterval,
			"items":            items,
			"billing_attempts": attempts,
		},
	}
}

// RegisterSealDetail registers a successful detail response for the fixture
func RegisterSealDetail(m *MockHTTPClient, d SealDetail) {
	m.RegisterJSONResponse(SealDetailRoute(d.ID), http.StatusOK, d.Payload())
}

// RegisterSealSearch registers a successful email search response
func RegisterSealSearch(m *MockHTTPClient, email string, subs ...SealSummary) {
	rows := make([]map[string]any, 0, len(subs))
	for _, s := range subs {
		rows = append(rows, map[string]any{
			"id":               s.ID,
			"billing_interval": s.BillingInterval,
		})
	}

	m.RegisterJSONResponse(SealSearchRoute(email), http.StatusOK, map[string]any{
		"success": true,
		"payload": map[string]any{
			"subscriptions": rows,
		},
	})
}

// RegisterSealError registers a Seal error body for the route with the given status
func RegisterSealError(m *MockHTTPClient, route string, statusCode int, message string) {
	m.RegisterJSONResponse(route, statusCode, map[string]any{
		"success": false,
		"error":   message,
	})
}
