package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/garrettladley/liftoff/internal/xcontext"
	"github.com/garrettladley/liftoff/internal/xhttp"
)

type RequestIDOption func(*requestIDConfig)

type requestIDConfig struct {
	idFunc      func(*http.Request) string
	trustHeader bool
}

// WithIDFunc overrides how request ids are generated.
func WithIDFunc(fn func(*http.Request) string) RequestIDOption {
	return func(c *requestIDConfig) { c.idFunc = fn }
}

// WithTrustedHeader reuses an inbound X-Request-ID when present.
func WithTrustedHeader() RequestIDOption {
	return func(c *requestIDConfig) { c.trustHeader = true }
}

func RequestID(opts ...RequestIDOption) func(http.Handler) http.Handler {
	cfg := &requestIDConfig{
		idFunc: func(_ *http.Request) string {
			return uuid.New().String()
		},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if cfg.trustHeader {
				id = r.Header.Get(xhttp.XRequestID)
			}
			if id == "" {
				id = cfg.idFunc(r)
			}
			ctx := xcontext.SetRequestID(r.Context(), id)
			xhttp.SetHeaderRequestID(w, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
