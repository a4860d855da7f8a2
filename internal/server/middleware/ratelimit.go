package middleware

import (
	"net/http"

	"github.com/garrettladley/liftoff/internal/storage"
	"github.com/garrettladley/liftoff/internal/xerrors"
	"github.com/garrettladley/liftoff/internal/xhttp"
	"github.com/garrettladley/liftoff/internal/xslog"
)

// RateLimit applies per-IP rate limiting. A limiter failure lets the request
// through; clients poll experiments on every launch.
func RateLimit(limiter storage.RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ip := xhttp.GetRequestIP(r)

			result, err := limiter.Allow(ctx, ip)
			if err != nil {
				xslog.FromContext(ctx).WarnContext(ctx, "rate limit check failed",
					xslog.Error(err),
					xslog.RequestIP(r),
				)
				next.ServeHTTP(w, r)
				return
			}

			if !result.Allowed {
				xerrors.WriteError(ctx, w, xerrors.TooManyRequests(xerrors.WithRetryAfter(result.RetryAfter)))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
