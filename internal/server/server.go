package server

import (
	"log/slog"
	"net/http"

	"github.com/garrettladley/liftoff/internal/server/handler"
	servermw "github.com/garrettladley/liftoff/internal/server/middleware"
	"github.com/garrettladley/liftoff/internal/service/remoteconfig"
	"github.com/garrettladley/liftoff/internal/storage"
	"github.com/garrettladley/liftoff/internal/xhttp/middleware"
)

type Deps struct {
	Logger      *slog.Logger
	Service     remoteconfig.Service
	Limiter     storage.RateLimiter
	Health      map[string]handler.Pinger
	AdminAPIKey string
	Draining    <-chan struct{}

	// MinClientVersion rejects older clients on the public API when set.
	MinClientVersion string
}

// NewHandler wires every route behind the shared middleware chain.
func NewHandler(deps Deps) http.Handler {
	experimentsHandler := handler.NewExperiments(deps.Service)
	streamHandler := handler.NewStream(deps.Service, deps.Draining)
	healthHandler := handler.NewHealth(deps.Health)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", healthHandler.HandleHealth)

	publicMux := http.NewServeMux()
	publicMux.HandleFunc("GET /api/experiments", experimentsHandler.HandleGet)
	publicMux.HandleFunc("GET /api/experiments/stream", streamHandler.HandleStream)
	public := middleware.Chain(publicMux,
		servermw.RateLimit(deps.Limiter),
		middleware.MinClientVersion(deps.MinClientVersion),
	)
	mux.Handle("GET /api/experiments", public)
	mux.Handle("GET /api/experiments/stream", public)

	admin := middleware.Chain(http.HandlerFunc(experimentsHandler.HandlePut),
		middleware.AdminAPIKey(deps.AdminAPIKey),
	)
	mux.Handle("PUT /api/experiments", admin)

	return middleware.Chain(mux,
		middleware.Recovery(deps.Logger),
		middleware.RequestID(),
		middleware.Logger(deps.Logger),
		middleware.Logging,
		middleware.SecurityHeaders,
	)
}
