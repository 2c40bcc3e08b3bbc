package testutil

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/coachportal/portalproxy/internal/httpclient"
)

// MockHTTPClient implements a mock HTTP client for testing.
// Routes match on URL suffix; the longest matching route wins.
type MockHTTPClient struct {
	mu       sync.RWMutex
	routes   map[string]MockResponse
	requests []httpclient.Request
}

// MockResponse represents a mock HTTP response
type MockResponse struct {
	StatusCode int
	Body       []byte
	Headers    map[string]string
	// Err simulates a transport failure such as a timeout
	Err error
}

// NewMockHTTPClient creates a new mock HTTP client
func NewMockHTTPClient() *MockHTTPClient {
	return &MockHTTPClient{
		routes: make(map[string]MockResponse),
	}
}

// RegisterResponse registers a mock response for a given URL suffix
func (m *MockHTTPClient) RegisterResponse(url string, resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes[url] = resp
}

// RegisterJSONResponse marshals body and registers it with the given status
func (m *MockHTTPClient) RegisterJSONResponse(url string, statusCode int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		panic(err)
	}

	m.RegisterResponse(url, MockResponse{
		StatusCode: statusCode,
		Body:       data,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	})
}

// Send implements the httpclient.Client interface
func (m *MockHTTPClient) Send(ctx context.Context, req *httpclient.Request) (*httpclient.Response, error) {
	m.mu.Lock()
	m.requests = append(m.requests, *req)
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var matchedRoute string
	var matchedResponse MockResponse
	for route, resp := range m.routes {
		if strings.HasSuffix(req.URL, route) && len(route) > len(matchedRoute) {
			matchedRoute = route
			matchedResponse = resp
		}
	}

	if matchedRoute == "" {
		return nil, httpclient.NewError(http.StatusNotFound, []byte(`{"error":"Not Found"}`))
	}

	if matchedResponse.Err != nil {
		return nil, matchedResponse.Err
	}

	if matchedResponse.StatusCode >= 400 {
		return nil, httpclient.NewError(matchedResponse.StatusCode, matchedResponse.Body)
	}

	return &httpclient.Response{
		StatusCode: matchedResponse.StatusCode,
		Body:       matchedResponse.Body,
		Headers:    matchedResponse.Headers,
	}, nil
}

// Requests returns a copy of every request sent so far
func (m *MockHTTPClient) Requests() []httpclient.Request {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]httpclient.Request, len(m.requests))
	copy(out, m.requests)
	return out
}

// CallCount returns how many requests hit a URL ending in suffix
func (m *MockHTTPClient) CallCount(suffix string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, r := range m.requests {
		if strings.HasSuffix(r.URL, suffix) {
			n++
		}
	}
	return n
}

// Clear removes all registered responses and recorded requests
func (m *MockHTTPClient) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes = make(map[string]MockResponse)
	m.requests = nil
}
