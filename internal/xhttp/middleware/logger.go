package middleware

import (
	"log/slog"
	"net/http"

	"github.com/garrettladley/liftoff/internal/version"
	"github.com/garrettladley/liftoff/internal/xcontext"
	"github.com/garrettladley/liftoff/internal/xslog"
)

// Logger injects an enriched logger into request context.
// Must run AFTER RequestID middleware.
func Logger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := xslog.WithLogger(r.Context(), base)

			var attrs []slog.Attr
			if id, ok := xcontext.GetRequestID(ctx); ok {
				attrs = append(attrs, xslog.RequestID(id))
			}
			if v := r.Header.Get(version.Header); v != "" {
				ctx = xcontext.SetClientVersion(ctx, v)
				attrs = append(attrs, xslog.AppVersion(v))
			}

			next.ServeHTTP(w, r.WithContext(xslog.With(ctx, attrs...)))
		})
	}
}
