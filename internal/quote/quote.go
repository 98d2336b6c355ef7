// Package quote fetches the decorative quote shown beside the status.
package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// DefaultURL is the public hitokoto endpoint.
const DefaultURL = "https://v1.hitokoto.cn/?encode=json"

// DefaultText replaces the quote whenever fetching fails.
const DefaultText = "愿你的每一天都充满阳光"

// Quote is a sentence and its attribution.
type Quote struct {
	Text string `json:"hitokoto"`
	From string `json:"from"`
}

// Default returns the fallback quote.
func Default() Quote {
	return Quote{Text: DefaultText}
}

// String renders the quote with its attribution when present.
func (q Quote) String() string {
	if q.From == "" {
		return q.Text
	}
	return fmt.Sprintf("%s —— %s", q.Text, q.From)
}

// Client fetches quotes.
type Client struct {
	httpClient *http.Client
	url        string
}

// NewClient creates a client for url, or DefaultURL when url is empty.
func NewClient(url string, timeout time.Duration) *Client {
	if url == "" {
		url = DefaultURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves one quote.
func (c *Client) Fetch(ctx context.Context) (Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return Quote{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Quote{}, fmt.Errorf("failed to fetch quote: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return Quote{}, fmt.Errorf("quote service returned %d", resp.StatusCode)
	}

	var q Quote
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&q); err != nil {
		return Quote{}, fmt.Errorf("failed to decode quote: %w", err)
	}
	q.Text = strings.TrimSpace(q.Text)
	q.From = strings.TrimSpace(q.From)
	return q, nil
}

// Get returns a quote, substituting Default on any failure.
func (c *Client) Get(ctx context.Context) Quote {
	q, err := c.Fetch(ctx)
	if err != nil {
		slog.Debug("Using default quote", "error", err)
		return Default()
	}
	if q.Text == "" {
		return Quote{Text: DefaultText, From: q.From}
	}
	return q
}
