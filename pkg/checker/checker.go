// Package checker triggers the external weather-warning check. The check
// itself (feed parsing, record upserts) belongs to the ingestion service;
// this package only invokes it and reports success or failure.
package checker

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Checker is the external weather-check unit of work. It either succeeds or
// fails; the daemon never inspects partial progress.
type Checker interface {
	Check(ctx context.Context) error
}

// CheckFunc adapts a plain function to the Checker interface.
type CheckFunc func(ctx context.Context) error

func (f CheckFunc) Check(ctx context.Context) error {
	return f(ctx)
}

// HTTPChecker triggers the ingestion service's check endpoint over HTTP.
// A non-2xx response is a failure. Response bodies are not interpreted here;
// parsing and persistence belong to the ingestion service.
//
// The scheduler loop is single-threaded and a Checker that never returns
// blocks it. HTTPChecker bounds that exposure: its default client times the
// request out after five minutes, and the timed-out run counts as a failure.
// Custom Checker implementations carry no such bound.
type HTTPChecker struct {
	URL    string
	Client *http.Client
}

// NewHTTPChecker creates an HTTP checker for the given endpoint with the
// default five-minute request timeout.
func NewHTTPChecker(url string) *HTTPChecker {
	return &HTTPChecker{
		URL:    url,
		Client: &http.Client{Timeout: 5 * time.Minute},
	}
}

// Check performs one GET against the check endpoint.
func (c *HTTPChecker) Check(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return fmt.Errorf("build check request: %w", err)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("weather check request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("weather check returned status %d", resp.StatusCode)
	}

	return nil
}
