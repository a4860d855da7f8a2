package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/garrettladley/liftoff/internal/version"
	"github.com/garrettladley/liftoff/internal/xhttp"
	"github.com/garrettladley/liftoff/internal/xslog"
)

const healthTimeout = 2 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

type Health struct {
	deps map[string]Pinger
}

func NewHealth(deps map[string]Pinger) *Health {
	return &Health{deps: deps}
}

type healthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// HandleHealth handles GET /health requests.
func (h *Health) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	resp := healthResponse{Status: "ok", Version: version.Get()}
	status := http.StatusOK

	for name, dep := range h.deps {
		if resp.Checks == nil {
			resp.Checks = make(map[string]string, len(h.deps))
		}
		if err := dep.Ping(ctx); err != nil {
			xslog.FromContext(ctx).WarnContext(ctx, "health check failed",
				xslog.Source(name),
				xslog.Error(err),
			)
			resp.Checks[name] = "unavailable"
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}

	xhttp.WriteJSON(w, status, resp)
}
