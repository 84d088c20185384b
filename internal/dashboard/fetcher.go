// Package dashboard builds the stats dashboard: it fetches the player
// rankings and team stats datasets and draws one bar chart for each.
package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/okian/courtside/pkg/logger"
	"github.com/okian/courtside/pkg/metrics"
)

// apiPath is the fixed prefix every endpoint is appended to.
const apiPath = "/api/"

// Fetch outcomes reported to metrics.
const (
	outcomeSuccess        = "success"
	outcomeHTTPError      = "http_error"
	outcomeDecodeError    = "decode_error"
	outcomeTransportError = "transport_error"
)

// DataFetcher retrieves a named dataset.
type DataFetcher interface {
	// Fetch decodes the endpoint's JSON body into out and reports whether
	// that succeeded. Failures are logged, never returned.
	Fetch(ctx context.Context, endpoint string, out any) bool
}

// Fetcher issues GET <baseURL>/api/<endpoint>. It does not retry or cache.
type Fetcher struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
	logger  logger.Logger
}

var _ DataFetcher = (*Fetcher)(nil)

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) FetcherOption {
	return func(f *Fetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// WithTimeout bounds each request.
func WithTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithFetcherLogger sets the logger failures are reported to.
func WithFetcherLogger(l logger.Logger) FetcherOption {
	return func(f *Fetcher) {
		if l != nil {
			f.logger = l
		}
	}
}

// NewFetcher creates a Fetcher for the server at baseURL.
func NewFetcher(baseURL string, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.logger == nil {
		f.logger = logger.Get()
	}
	return f
}

// Fetch implements DataFetcher.
func (f *Fetcher) Fetch(ctx context.Context, endpoint string, out any) bool {
	start := time.Now()
	err := f.get(ctx, endpoint, out)
	outcome := classify(err)
	metrics.RecordDashboardFetch(endpoint, outcome, time.Since(start))
	if err != nil {
		metrics.RecordErrorByComponent("dashboard", outcome)
		f.logger.Error(ctx, "error fetching data",
			logger.String("endpoint", endpoint),
			logger.Error(err),
		)
		return false
	}
	return true
}

func (f *Fetcher) get(ctx context.Context, endpoint string, out any) error {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	target := f.baseURL + apiPath + url.PathEscape(endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: %s", ErrBadStatus, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return nil
}

func classify(err error) string {
	switch {
	case err == nil:
		return outcomeSuccess
	case errors.Is(err, ErrBadStatus):
		return outcomeHTTPError
	case errors.Is(err, ErrDecode):
		return outcomeDecodeError
	default:
		return outcomeTransportError
	}
}
