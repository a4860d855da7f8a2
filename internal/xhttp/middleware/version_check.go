package middleware

import (
	"errors"
	"net/http"

	"github.com/garrettladley/liftoff/internal/version"
	"github.com/garrettladley/liftoff/internal/xhttp"
	"github.com/garrettladley/liftoff/internal/xslog"
)

// MinClientVersion rejects liftoff clients older than min with 426. An empty
// min disables the check.
func MinClientVersion(min string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if min == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientVersion := r.Header.Get(version.Header)

			err := version.CheckCompatibility(clientVersion, min)
			if err == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			logger := xslog.FromContext(ctx)

			var verr *version.IncompatibleError
			if !errors.As(err, &verr) {
				logger.ErrorContext(ctx, "version check misconfigured", xslog.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			logger.WarnContext(ctx, "client version incompatible",
				xslog.AppVersion(verr.ClientVersion),
				xslog.MinVersion(verr.MinVersion),
			)
			xhttp.WriteJSON(w, http.StatusUpgradeRequired, map[string]string{
				"error":       "upgrade_required",
				"message":     verr.Error(),
				"min_version": verr.MinVersion,
			})
		})
	}
}
