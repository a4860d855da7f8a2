package experiments

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	go_json "github.com/goccy/go-json"

	"github.com/garrettladley/liftoff/internal/experiments"
	"github.com/garrettladley/liftoff/internal/xhttp"
)

const (
	defaultTimeout  = 10 * time.Second
	pathExperiments = "/api/experiments"
	maxErrorBody    = 1 << 10
)

var _ experiments.Client = (*Client)(nil)

type Client struct {
	httpClient *http.Client
	baseURL    string
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) { client.httpClient = c }
}

func WithTimeout(d time.Duration) Option {
	return func(client *Client) {
		client.httpClient = xhttp.NewHTTPClient(xhttp.WithTimeout(d))
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: xhttp.NewHTTPClient(xhttp.WithTimeout(defaultTimeout)),
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StatusError is returned for any non-200 response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

func (c *Client) GetExperiments(ctx context.Context) (*experiments.Payload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+pathExperiments, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	xhttp.SetRequestHeaderAcceptJSON(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var payload experiments.Payload
	if err := go_json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &payload, nil
}
