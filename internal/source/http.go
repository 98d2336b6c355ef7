// Package source fetches published week documents.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/classwatch/internal/common"
	"github.com/Veraticus/classwatch/internal/model"
	"github.com/Veraticus/classwatch/internal/service"
)

// DefaultTimeout bounds a single week request.
const DefaultTimeout = 10 * time.Second

// maxBodySize caps how much of a response is decoded.
const maxBodySize = 4 << 20

// HTTPFetcher retrieves {base}/{week}.json over HTTP.
type HTTPFetcher struct {
	baseURL    *url.URL
	httpClient *http.Client
	retry      service.RetryOptions
	timeout    time.Duration
}

// HTTPOption configures an HTTPFetcher.
type HTTPOption func(*HTTPFetcher)

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(f *HTTPFetcher) {
		f.httpClient = c
	}
}

// WithTimeout sets the per-request deadline.
func WithTimeout(d time.Duration) HTTPOption {
	return func(f *HTTPFetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithRetry sets the retry policy for transient failures.
func WithRetry(opts service.RetryOptions) HTTPOption {
	return func(f *HTTPFetcher) {
		f.retry = opts
	}
}

// NewHTTPFetcher creates a fetcher rooted at baseURL.
func NewHTTPFetcher(baseURL string, opts ...HTTPOption) (*HTTPFetcher, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("%w: source base URL", common.ErrMissingConfig)
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: source base URL: %w", common.ErrInvalidConfig, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: source base URL must be http or https, got %q", common.ErrInvalidConfig, baseURL)
	}

	f := &HTTPFetcher{
		baseURL:    u,
		httpClient: &http.Client{},
		timeout:    DefaultTimeout,
		retry: service.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: 500 * time.Millisecond,
			MaxDelay:     5 * time.Second,
			Multiplier:   2,
		},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// WeekURL returns the address of week's document.
func (f *HTTPFetcher) WeekURL(week int) string {
	return f.baseURL.JoinPath(strconv.Itoa(week) + ".json").String()
}

// FetchWeek implements service.Fetcher.
func (f *HTTPFetcher) FetchWeek(ctx context.Context, week int, opts service.FetchOptions) (*model.WeekPayload, error) {
	var payload *model.WeekPayload
	err := common.WithRetry(ctx, func() error {
		p, err := f.fetchOnce(ctx, week, opts)
		if err != nil {
			return err
		}
		payload = p
		return nil
	}, f.retry)
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func (f *HTTPFetcher) fetchOnce(ctx context.Context, week int, opts service.FetchOptions) (*model.WeekPayload, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	target := f.WeekURL(week)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if opts.NoCache {
		req.Header.Set("Cache-Control", "no-cache")
		req.Header.Set("Pragma", "no-cache")
	}

	slog.Debug("Requesting week", "week", week, "url", target, "no_cache", opts.NoCache)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, &common.RetryableError{
			Err:       fmt.Errorf("%w: week %d: %w", common.ErrNetwork, week, err),
			Retryable: true,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: week %d", common.ErrWeekNotFound, week)
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, &common.RetryableError{
			Err:       fmt.Errorf("%w: week %d: status %d", common.ErrNetwork, week, resp.StatusCode),
			Retryable: true,
		}
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: week %d: status %d - %s", common.ErrNetwork, week, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return decode(io.LimitReader(resp.Body, maxBodySize), week)
}

func decode(r io.Reader, week int) (*model.WeekPayload, error) {
	var payload model.WeekPayload
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: week %d: %w", common.ErrShape, week, err)
	}
	return &payload, nil
}
