package survey

import (
	"context"
	"log/slog"

	"github.com/garrettladley/liftoff/internal/messaging"
	"github.com/garrettladley/liftoff/internal/xslog"
)

type MessageFinder interface {
	NextMessage(ctx context.Context, surface messaging.Surface) (*messaging.Message, error)
}

// SurfaceManager answers whether the full-screen survey surface has a message
// to show at launch.
type SurfaceManager struct {
	messages MessageFinder
	logger   *slog.Logger
}

func NewSurfaceManager(messages MessageFinder, logger *slog.Logger) *SurfaceManager {
	return &SurfaceManager{messages: messages, logger: logger}
}

func (m *SurfaceManager) ShouldShowSurveySurface(ctx context.Context) bool {
	_, ok := m.Message(ctx)
	return ok
}

// Message returns the survey message to present, if any.
func (m *SurfaceManager) Message(ctx context.Context) (messaging.Message, bool) {
	msg, err := m.messages.NextMessage(ctx, messaging.SurfaceSurvey)
	if err != nil {
		m.logger.WarnContext(ctx, "failed to look up survey message", xslog.Error(err))
		return messaging.Message{}, false
	}
	if msg == nil {
		return messaging.Message{}, false
	}
	return *msg, true
}
