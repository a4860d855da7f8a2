package xcontext

import "context"

type (
	requestIDKey     struct{}
	clientVersionKey struct{}
)

func SetRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func GetRequestID(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(requestIDKey{}).(string)
	return requestID, ok
}

// SetClientVersion records the liftoff client version that sent the request.
func SetClientVersion(ctx context.Context, v string) context.Context {
	return context.WithValue(ctx, clientVersionKey{}, v)
}

func GetClientVersion(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(clientVersionKey{}).(string)
	return v, ok && v != ""
}
