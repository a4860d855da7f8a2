package xerrors

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/garrettladley/liftoff/internal/xhttp"
	"github.com/garrettladley/liftoff/internal/xslog"
)

const headerRetryAfter = "Retry-After"

// WriteError writes err as the JSON error envelope. Errors that are not an
// *Error are reported as internal errors without leaking their text.
func WriteError(ctx context.Context, w http.ResponseWriter, err error) {
	appErr := As(err)
	if appErr == nil {
		appErr = Internal(WithCause(err))
	}

	logError(ctx, appErr)

	if appErr.RetryAfter > 0 {
		w.Header().Set(headerRetryAfter, strconv.Itoa(int(appErr.RetryAfter.Seconds())))
	}

	if appErr.Fields != nil {
		xhttp.WriteValidationError(w, appErr.Fields)
		return
	}
	xhttp.WriteErrorMessage(w, appErr.StatusCode, appErr.Message)
}

func logError(ctx context.Context, err *Error) {
	logger := xslog.FromContext(ctx)
	attrs := []any{
		xslog.HTTPStatus(err.StatusCode),
		slog.String("message", err.Message),
	}
	if err.Cause != nil {
		attrs = append(attrs, xslog.Error(err.Cause))
	}
	if err.Fields != nil {
		attrs = append(attrs, slog.Any("fields", err.Fields))
	}

	switch err.StatusCode / 100 {
	case 5:
		logger.ErrorContext(ctx, "server error", attrs...)
	case 4:
		logger.WarnContext(ctx, "client error", attrs...)
	default:
		logger.InfoContext(ctx, "error response", attrs...)
	}
}
