package microsurvey

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/garrettladley/liftoff/internal/featureflag"
	"github.com/garrettladley/liftoff/internal/messaging"
	"github.com/garrettladley/liftoff/internal/windowid"
	"github.com/garrettladley/liftoff/internal/xslog"
)

var ErrNoPrompt = errors.New("no micro-survey prompt is showing")

type Dispatcher interface {
	Dispatch(ctx context.Context, action Action) error
}

type MessageManager interface {
	NextMessage(ctx context.Context, surface messaging.Surface) (*messaging.Message, error)
	OnMessageDisplayed(ctx context.Context, msg messaging.Message) error
	OnMessagePressed(ctx context.Context, msg messaging.Message) error
	OnMessageDismissed(ctx context.Context, msg messaging.Message) error
}

type FeatureFlags interface {
	IsEnabled(flag featureflag.Flag) bool
}

// Prompt is what the window renders while the prompt is shown.
type Prompt struct {
	MessageID   string
	Title       string
	Text        string
	ButtonLabel string
}

// Manager drives the micro-survey prompt of a single window.
type Manager struct {
	window     windowid.UUID
	messages   MessageManager
	dispatcher Dispatcher
	flags      FeatureFlags
	logger     *slog.Logger

	mu      sync.Mutex
	current *messaging.Message
}

func NewManager(
	window windowid.UUID,
	messages MessageManager,
	dispatcher Dispatcher,
	flags FeatureFlags,
	logger *slog.Logger,
) *Manager {
	return &Manager{
		window:     window,
		messages:   messages,
		dispatcher: dispatcher,
		flags:      flags,
		logger:     logger.With(xslog.WindowUUID(window.String())),
	}
}

// ShowSurface looks up a micro-survey message and, if one is due, shows the
// prompt for this window.
func (m *Manager) ShowSurface(ctx context.Context) (Prompt, bool, error) {
	if !m.flags.IsEnabled(featureflag.MicroSurvey) {
		return Prompt{}, false, nil
	}

	msg, err := m.messages.NextMessage(ctx, messaging.SurfaceMicroSurvey)
	if err != nil {
		return Prompt{}, false, fmt.Errorf("failed to find micro-survey message: %w", err)
	}
	if msg == nil {
		return Prompt{}, false, nil
	}

	if err := m.dispatcher.Dispatch(ctx, ShowPrompt(m.window)); err != nil {
		return Prompt{}, false, err
	}

	m.mu.Lock()
	m.current = msg
	m.mu.Unlock()

	m.logger.DebugContext(ctx, "micro-survey prompt shown", xslog.MessageID(msg.ID))

	return Prompt{
		MessageID:   msg.ID,
		Title:       msg.Title,
		Text:        msg.Text,
		ButtonLabel: msg.ButtonLabel,
	}, true, nil
}

// HandleMessageDisplayed records an impression once the prompt is on screen.
func (m *Manager) HandleMessageDisplayed(ctx context.Context) error {
	msg, err := m.message()
	if err != nil {
		return err
	}
	return m.messages.OnMessageDisplayed(ctx, msg)
}

// Open opens the survey sheet from the prompt's button.
func (m *Manager) Open(ctx context.Context) error {
	msg, err := m.message()
	if err != nil {
		return err
	}
	if err := m.dispatcher.Dispatch(ctx, PressedPromptButton(m.window)); err != nil {
		return err
	}
	if err := m.dispatcher.Dispatch(ctx, ShowSurvey(m.window)); err != nil {
		return err
	}
	if err := m.messages.OnMessagePressed(ctx, msg); err != nil {
		m.logger.WarnContext(ctx, "failed to record prompt press", xslog.Error(err))
	}
	return nil
}

// Dismiss closes both the prompt and the survey sheet.
func (m *Manager) Dismiss(ctx context.Context) error {
	msg, err := m.message()
	if err != nil {
		return err
	}
	if err := m.dispatcher.Dispatch(ctx, DismissPrompt(m.window)); err != nil {
		return err
	}

	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()

	if err := m.messages.OnMessageDismissed(ctx, msg); err != nil {
		m.logger.WarnContext(ctx, "failed to record prompt dismissal", xslog.Error(err))
	}
	return nil
}

// CloseSurvey hides the survey sheet and leaves the prompt as it was.
func (m *Manager) CloseSurvey(ctx context.Context) error {
	return m.dispatcher.Dispatch(ctx, DismissSurvey(m.window))
}

func (m *Manager) message() (messaging.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return messaging.Message{}, ErrNoPrompt
	}
	return *m.current, nil
}
