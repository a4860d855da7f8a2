package config

import (
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/garrettladley/liftoff/internal/featureflag"
)

const DefaultServerURL = "https://liftoff.fly.dev"

type Config struct {
	ServerURL          string        `env:"SERVER_URL" envDefault:"https://liftoff.fly.dev"`
	ExperimentsTimeout time.Duration `env:"EXPERIMENTS_TIMEOUT" envDefault:"10s"`
	LiveUpdates        bool          `env:"LIVE_UPDATES" envDefault:"true"`
	Features           Features      `envPrefix:"FEATURE_"`
}

type Features struct {
	SplashScreen bool `env:"SPLASH_SCREEN" envDefault:"true"`
	MicroSurvey  bool `env:"MICRO_SURVEY" envDefault:"true"`
}

func (c Config) Flags() featureflag.Flags {
	return featureflag.New(map[featureflag.Flag]bool{
		featureflag.SplashScreen: c.Features.SplashScreen,
		featureflag.MicroSurvey:  c.Features.MicroSurvey,
	})
}

func Read() (Config, error) {
	return env.ParseAs[Config]()
}
