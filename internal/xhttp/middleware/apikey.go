package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/garrettladley/liftoff/internal/xhttp"
	"github.com/garrettladley/liftoff/internal/xslog"
)

// AdminAPIKey rejects requests whose X-API-Key does not match key.
// An empty key disables every guarded route.
func AdminAPIKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := xslog.FromContext(r.Context())

			got := xhttp.GetRequestHeaderAPIKey(r)
			if got == "" {
				logger.WarnContext(r.Context(), "missing API key header", xslog.RequestPath(r))
				xhttp.WriteErrorMessage(w, http.StatusUnauthorized, "missing API key")
				return
			}

			if key == "" || subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				logger.WarnContext(r.Context(), "invalid API key", xslog.RequestPath(r))
				xhttp.WriteErrorMessage(w, http.StatusUnauthorized, "invalid API key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
