package server

import (
	"time"

	"github.com/caarlos0/env/v11"

	appenv "github.com/garrettladley/liftoff/internal/env"
)

type Config struct {
	Port        string             `env:"PORT" envDefault:"8080"`
	Env         appenv.Environment `env:"ENV" envDefault:"development"`
	AdminAPIKey string             `env:"ADMIN_API_KEY"`
	CacheTTL    time.Duration      `env:"CACHE_TTL" envDefault:"1m"`
	Database    Database           `envPrefix:"DATABASE_"`
	Redis       Redis              `envPrefix:"REDIS_"`
	RateLimit   RateLimit          `envPrefix:"RATE_"`

	// MinClientVersion is the oldest client release the API serves.
	MinClientVersion string `env:"MIN_CLIENT_VERSION"`
}

type Database struct {
	URL string `env:"URL,required"`
}

// Redis is optional in development; without it the server uses in-process
// cache, pub/sub and rate limiting.
type Redis struct {
	URL string `env:"URL"`
}

type RateLimit struct {
	Limit  int           `env:"LIMIT" envDefault:"60"`
	Window time.Duration `env:"WINDOW" envDefault:"1m"`
}

func ReadConfig() (Config, error) {
	return env.ParseAs[Config]()
}
