package microsurvey

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/garrettladley/liftoff/internal/featureflag"
	"github.com/garrettladley/liftoff/internal/messaging"
	"github.com/garrettladley/liftoff/internal/xslog"
)

type recordingDispatcher struct {
	mu      sync.Mutex
	actions []Action
}

func (d *recordingDispatcher) Dispatch(_ context.Context, a Action) error {
	d.mu.Lock()
	d.actions = append(d.actions, a)
	d.mu.Unlock()
	return nil
}

type fakeMessages struct {
	next      *messaging.Message
	displayed []string
	pressed   []string
	dismissed []string
}

func (f *fakeMessages) NextMessage(_ context.Context, surface messaging.Surface) (*messaging.Message, error) {
	if f.next == nil || f.next.Surface != surface {
		return nil, nil
	}
	return f.next, nil
}

func (f *fakeMessages) OnMessageDisplayed(_ context.Context, m messaging.Message) error {
	f.displayed = append(f.displayed, m.ID)
	return nil
}

func (f *fakeMessages) OnMessagePressed(_ context.Context, m messaging.Message) error {
	f.pressed = append(f.pressed, m.ID)
	return nil
}

func (f *fakeMessages) OnMessageDismissed(_ context.Context, m messaging.Message) error {
	f.dismissed = append(f.dismissed, m.ID)
	return nil
}

var surveyMessage = &messaging.Message{
	ID:          "ms-1",
	Surface:     messaging.SurfaceMicroSurvey,
	Title:       "Help us improve",
	Text:        "How satisfied are you with tabs?",
	ButtonLabel: "Take survey",
}

func enabled(on bool) featureflag.Flags {
	return featureflag.New(map[featureflag.Flag]bool{featureflag.MicroSurvey: on})
}

func TestManagerFlow(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	msgs := &fakeMessages{next: surveyMessage}
	d := &recordingDispatcher{}
	m := NewManager(w1, msgs, d, enabled(true), xslog.Discard())

	prompt, ok, err := m.ShowSurface(ctx)
	if err != nil || !ok {
		t.Fatalf("ShowSurface() = %v, %v", ok, err)
	}
	wantPrompt := Prompt{
		MessageID:   "ms-1",
		Title:       "Help us improve",
		Text:        "How satisfied are you with tabs?",
		ButtonLabel: "Take survey",
	}
	if diff := cmp.Diff(wantPrompt, prompt); diff != "" {
		t.Errorf("ShowSurface() prompt mismatch (-want +got):\n%s", diff)
	}

	if err := m.HandleMessageDisplayed(ctx); err != nil {
		t.Fatalf("HandleMessageDisplayed() error = %v", err)
	}
	if err := m.Open(ctx); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := m.CloseSurvey(ctx); err != nil {
		t.Fatalf("CloseSurvey() error = %v", err)
	}
	if err := m.Dismiss(ctx); err != nil {
		t.Fatalf("Dismiss() error = %v", err)
	}

	wantActions := []Action{
		ShowPrompt(w1),
		PressedPromptButton(w1),
		ShowSurvey(w1),
		DismissSurvey(w1),
		DismissPrompt(w1),
	}
	if diff := cmp.Diff(wantActions, d.actions); diff != "" {
		t.Errorf("dispatched actions mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"ms-1"}, msgs.displayed); diff != "" {
		t.Errorf("displayed mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"ms-1"}, msgs.pressed); diff != "" {
		t.Errorf("pressed mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"ms-1"}, msgs.dismissed); diff != "" {
		t.Errorf("dismissed mismatch (-want +got):\n%s", diff)
	}

	if err := m.Open(ctx); !errors.Is(err, ErrNoPrompt) {
		t.Errorf("Open() after Dismiss error = %v, want ErrNoPrompt", err)
	}
}

func TestManagerShowSurfaceNothingToShow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		next  *messaging.Message
		flags featureflag.Flags
	}{
		{name: "no message", flags: enabled(true)},
		{name: "flag disabled", next: surveyMessage, flags: enabled(false)},
		{
			name:  "survey surface only",
			next:  &messaging.Message{ID: "s-1", Surface: messaging.SurfaceSurvey},
			flags: enabled(true),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := &recordingDispatcher{}
			m := NewManager(w1, &fakeMessages{next: tt.next}, d, tt.flags, xslog.Discard())

			_, ok, err := m.ShowSurface(t.Context())
			if err != nil || ok {
				t.Fatalf("ShowSurface() = %v, %v, want false, nil", ok, err)
			}
			if len(d.actions) != 0 {
				t.Errorf("dispatched %v, want nothing", d.actions)
			}
			if err := m.HandleMessageDisplayed(t.Context()); !errors.Is(err, ErrNoPrompt) {
				t.Errorf("HandleMessageDisplayed() error = %v, want ErrNoPrompt", err)
			}
		})
	}
}

func TestManagersDriveTheirOwnWindow(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	s := startStore(t)
	s.Register(w1)
	s.Register(w2)
	sub1, unsub1 := s.Subscribe(w1)
	defer unsub1()
	sub2, unsub2 := s.Subscribe(w2)
	defer unsub2()

	m1 := NewManager(w1, &fakeMessages{next: surveyMessage}, s, enabled(true), xslog.Discard())
	m2 := NewManager(w2, &fakeMessages{next: surveyMessage}, s, enabled(true), xslog.Discard())

	if _, _, err := m1.ShowSurface(ctx); err != nil {
		t.Fatal(err)
	}
	recv(t, sub1)
	if _, _, err := m2.ShowSurface(ctx); err != nil {
		t.Fatal(err)
	}
	recv(t, sub2)

	if err := m1.Open(ctx); err != nil {
		t.Fatal(err)
	}
	if got, want := recv(t, sub1), (State{WindowUUID: w1, IsPromptShown: true, IsSurveyShown: true}); got != want {
		t.Errorf("w1 = %+v, want %+v", got, want)
	}
	if got, _ := s.State(w2); got != (State{WindowUUID: w2, IsPromptShown: true}) {
		t.Errorf("w2 = %+v, want prompt only", got)
	}
}
