package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	go_json "github.com/goccy/go-json"

	"github.com/garrettladley/liftoff/internal/service/remoteconfig"
	"github.com/garrettladley/liftoff/internal/xhttp"
	"github.com/garrettladley/liftoff/internal/xslog"
)

const (
	sseHeartbeatInterval = 30 * time.Second
	sseWriteTimeout      = 45 * time.Second
)

type Stream struct {
	service   remoteconfig.Service
	shutdown  <-chan struct{}
	heartbeat time.Duration
}

// NewStream streams experiment updates. shutdown is closed when the server
// starts draining connections.
func NewStream(service remoteconfig.Service, shutdown <-chan struct{}) *Stream {
	return &Stream{
		service:   service,
		shutdown:  shutdown,
		heartbeat: sseHeartbeatInterval,
	}
}

// HandleStream handles GET /api/experiments/stream requests.
func (h *Stream) HandleStream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := xslog.FromContext(ctx)

	updates, unsubscribe, err := h.service.Subscribe(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to subscribe to experiments", xslog.Error(err))
		xhttp.WriteErrorMessage(w, http.StatusInternalServerError, "failed to subscribe")
		return
	}
	defer unsubscribe()

	w.Header().Set(xhttp.ContentType, "text/event-stream")
	w.Header().Set(xhttp.CacheControl, "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	rc := http.NewResponseController(w)
	if err := rc.Flush(); err != nil {
		logger.ErrorContext(ctx, "streaming unsupported", xslog.Error(err))
		return
	}

	current, _, err := h.service.Current(ctx)
	if err != nil {
		logger.WarnContext(ctx, "failed to load current experiments for stream", xslog.Error(err))
	} else if err := writeSSEEvent(rc, w, "experiments", current); err != nil {
		logger.ErrorContext(ctx, "failed to send initial event", xslog.Error(err))
		return
	}

	heartbeat := time.NewTicker(h.heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-h.shutdown:
			_ = writeSSEEvent(rc, w, "shutdown", map[string]string{
				"reason": "server-restart",
				"time":   time.Now().Format(time.RFC3339),
			})
			return

		case <-ctx.Done():
			logger.DebugContext(ctx, "experiments stream closed by client")
			return

		case p, ok := <-updates:
			if !ok {
				return
			}
			if err := writeSSEEvent(rc, w, "experiments", p); err != nil {
				logger.ErrorContext(ctx, "failed to send experiments event", xslog.Error(err))
				return
			}

		case t := <-heartbeat.C:
			if err := writeSSEEvent(rc, w, "heartbeat", map[string]string{
				"time": t.Format(time.RFC3339),
			}); err != nil {
				logger.ErrorContext(ctx, "failed to send heartbeat", xslog.Error(err))
				return
			}
		}
	}
}

func writeSSEEvent(rc *http.ResponseController, w http.ResponseWriter, event string, data any) error {
	if err := rc.SetWriteDeadline(time.Now().Add(sseWriteTimeout)); err != nil && !errors.Is(err, http.ErrNotSupported) {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	jsonData, err := go_json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, jsonData); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}

	return rc.Flush()
}
