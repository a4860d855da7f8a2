package middleware

import (
	"net/http"

	"github.com/garrettladley/liftoff/internal/xhttp"
)

func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set(xhttp.XContentTypeOpts, "nosniff")
		h.Set(xhttp.XFrameOpts, "DENY")
		h.Set(xhttp.XXSSProtection, "1; mode=block")
		h.Set(xhttp.ReferrerPolicy, "no-referrer")
		next.ServeHTTP(w, r)
	})
}
