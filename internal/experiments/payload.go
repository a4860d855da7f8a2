package experiments

import (
	"fmt"
	"time"

	"github.com/garrettladley/liftoff/internal/messaging"
)

const DefaultSplashMaxDurationMs = 1500

// Payload is the remote feature configuration served by the experiments server.
type Payload struct {
	SplashScreen SplashScreen        `json:"splash_screen"`
	Messages     []messaging.Message `json:"messages"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

type SplashScreen struct {
	MaximumDurationMs int `json:"maximum_duration_ms"`
}

func Defaults() Payload {
	return Payload{
		SplashScreen: SplashScreen{MaximumDurationMs: DefaultSplashMaxDurationMs},
	}
}

// Validate checks message identity and surfaces. A negative splash duration is
// accepted and clamped by Layer.MaximumDuration.
func (p Payload) Validate() error {
	seen := make(map[string]struct{}, len(p.Messages))
	for i, m := range p.Messages {
		if m.ID == "" {
			return fmt.Errorf("messages[%d]: id is required", i)
		}
		if _, dup := seen[m.ID]; dup {
			return fmt.Errorf("messages[%d]: duplicate id %q", i, m.ID)
		}
		seen[m.ID] = struct{}{}
		switch m.Surface {
		case messaging.SurfaceSurvey, messaging.SurfaceMicroSurvey:
		default:
			return fmt.Errorf("messages[%d]: unknown surface %q", i, m.Surface)
		}
	}
	return nil
}
