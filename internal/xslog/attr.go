package xslog

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/garrettladley/liftoff/internal/version"
	"github.com/garrettladley/liftoff/internal/xhttp"
)

const (
	keyError = "error"
)

func Error(err error) slog.Attr {
	return slog.String(keyError, err.Error())
}

func ErrorAny(err any) slog.Attr {
	return slog.Any(keyError, err)
}

func RequestID(requestID string) slog.Attr {
	const requestIDKey = "request_id"
	return slog.String(requestIDKey, requestID)
}

func Stack() slog.Attr {
	const stackKey = "stack"
	return slog.String(stackKey, string(debug.Stack()))
}

func HTTPStatus(status int) slog.Attr {
	const statusKey = "status"
	return slog.Int(statusKey, status)
}

func Duration(duration time.Duration) slog.Attr {
	const durationKey = "duration"
	return slog.Duration(durationKey, duration)
}

func RequestMethod(r *http.Request) slog.Attr {
	const methodKey = "method"
	return slog.String(methodKey, r.Method)
}

func RequestPath(r *http.Request) slog.Attr {
	const pathKey = "path"
	return slog.String(pathKey, r.URL.Path)
}

func RequestIP(r *http.Request) slog.Attr {
	const ipKey = "ip"
	return slog.String(ipKey, xhttp.GetRequestIP(r))
}

func Version() slog.Attr {
	const versionKey = "version"
	return slog.String(versionKey, version.Get())
}

func AppVersion(v string) slog.Attr {
	const appVersionKey = "app_version"
	return slog.String(appVersionKey, v)
}

func MinVersion(v string) slog.Attr {
	const minVersionKey = "min_version"
	return slog.String(minVersionKey, v)
}

func Count(count int) slog.Attr {
	const countKey = "count"
	return slog.Int(countKey, count)
}

func LaunchType(t string) slog.Attr {
	const launchTypeKey = "launch_type"
	return slog.String(launchTypeKey, t)
}

func WindowUUID(id string) slog.Attr {
	const windowKey = "window_uuid"
	return slog.String(windowKey, id)
}

func Action(action string) slog.Attr {
	const actionKey = "action"
	return slog.String(actionKey, action)
}

func MessageID(id string) slog.Attr {
	const messageIDKey = "message_id"
	return slog.String(messageIDKey, id)
}

func Surface(surface string) slog.Attr {
	const surfaceKey = "surface"
	return slog.String(surfaceKey, surface)
}

func Flag(name string, enabled bool) slog.Attr {
	return slog.Bool("flag."+name, enabled)
}

func SplashOutcome(outcome string) slog.Attr {
	const splashKey = "splash"
	return slog.String(splashKey, outcome)
}

func Source(source string) slog.Attr {
	const sourceKey = "source"
	return slog.String(sourceKey, source)
}
