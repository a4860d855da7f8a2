package sse

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	go_json "github.com/goccy/go-json"

	"github.com/garrettladley/liftoff/internal/experiments"
	"github.com/garrettladley/liftoff/internal/xhttp"
	"github.com/garrettladley/liftoff/internal/xslog"
)

const (
	initialBackoff = 1 * time.Second
	maxBackoff     = 30 * time.Second
	backoffFactor  = 2
)

const streamPath = "/api/experiments/stream"

type Event struct {
	Type string
	Data []byte
}

// Client follows the experiments stream of a liftoff server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	backoff    time.Duration
}

func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		// no timeout for SSE
		httpClient: xhttp.NewHTTPClient(),
		logger:     logger,
		backoff:    initialBackoff,
	}
}

type PayloadHandler func(ctx context.Context, p experiments.Payload) error

// Connect establishes an SSE connection and calls the handler for each
// experiments event. It reconnects with exponential backoff and returns when
// the context is cancelled.
func (c *Client) Connect(ctx context.Context, handler PayloadHandler) error {
	backoff := c.backoff

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		err := c.connectOnce(ctx, handler)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			c.logger.WarnContext(ctx, "SSE connection failed, reconnecting",
				xslog.Error(err),
				xslog.Duration(backoff),
			)
		} else {
			// connection closed cleanly, reset backoff
			backoff = c.backoff
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		if err != nil {
			backoff = min(backoff*backoffFactor, maxBackoff)
		}
	}
}

// connectOnce processes events until the server disconnects.
func (c *Client) connectOnce(ctx context.Context, handler PayloadHandler) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+streamPath, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set(xhttp.CacheControl, "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("connecting: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	c.logger.InfoContext(ctx, "SSE connection established")

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	var current Event

	for scanner.Scan() {
		line := scanner.Text()

		if line == "" {
			// empty line signals end of event
			if current.Type != "" {
				if done := c.handleEvent(ctx, current, handler); done {
					return nil
				}
			}
			current = Event{}
			continue
		}

		if eventType, found := strings.CutPrefix(line, "event:"); found {
			current.Type = strings.TrimSpace(eventType)
		} else if data, found := strings.CutPrefix(line, "data:"); found {
			current.Data = []byte(strings.TrimSpace(data))
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading stream: %w", err)
	}

	return nil
}

// handleEvent reports whether the server asked the client to disconnect.
func (c *Client) handleEvent(ctx context.Context, event Event, handler PayloadHandler) bool {
	switch event.Type {
	case "experiments":
		var p experiments.Payload
		if err := go_json.Unmarshal(event.Data, &p); err != nil {
			c.logger.WarnContext(ctx, "failed to parse experiments event", xslog.Error(err))
			return false
		}
		if err := handler(ctx, p); err != nil {
			c.logger.WarnContext(ctx, "failed to apply experiments event", xslog.Error(err))
		}

	case "heartbeat":
		c.logger.DebugContext(ctx, "received heartbeat")

	case "shutdown":
		c.logger.InfoContext(ctx, "server is shutting down")
		return true

	default:
		c.logger.DebugContext(ctx, "received unknown event type", xslog.Source(event.Type))
	}
	return false
}
