package microsurvey

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/garrettladley/liftoff/internal/windowid"
	"github.com/garrettladley/liftoff/internal/xslog"
)

func startStore(t *testing.T) *Store {
	t.Helper()

	s := NewStore(xslog.Discard(), 0)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = s.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return s
}

func recv(t *testing.T, ch <-chan State) State {
	t.Helper()

	select {
	case s, ok := <-ch:
		if !ok {
			t.Fatal("subscription closed")
		}
		return s
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for state")
		return State{}
	}
}

func TestStoreWindowsAreIndependent(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	s := startStore(t)
	s.Register(w1)
	s.Register(w2)

	sub1, unsub1 := s.Subscribe(w1)
	defer unsub1()
	sub2, unsub2 := s.Subscribe(w2)
	defer unsub2()

	if err := s.Dispatch(ctx, ShowPrompt(w1)); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if got, want := recv(t, sub1), (State{WindowUUID: w1, IsPromptShown: true}); got != want {
		t.Errorf("w1 state = %+v, want %+v", got, want)
	}
	if got, _ := s.State(w2); got != NewState(w2) {
		t.Errorf("w2 state = %+v, want untouched", got)
	}

	if err := s.Dispatch(ctx, ShowPrompt(w2)); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if got, want := recv(t, sub2), (State{WindowUUID: w2, IsPromptShown: true}); got != want {
		t.Errorf("w2 state = %+v, want %+v", got, want)
	}

	if err := s.Dispatch(ctx, ShowSurvey(w1)); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	recv(t, sub1)

	want := map[windowid.UUID]State{
		w1: {WindowUUID: w1, IsPromptShown: true, IsSurveyShown: true},
		w2: {WindowUUID: w2, IsPromptShown: true},
	}
	got := map[windowid.UUID]State{}
	for w := range want {
		got[w], _ = s.State(w)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("states mismatch (-want +got):\n%s", diff)
	}
}

func TestStoreWildcardReachesEveryWindow(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	s := startStore(t)
	s.Register(w1)
	s.Register(w2)

	sub1, unsub1 := s.Subscribe(w1)
	defer unsub1()
	sub2, unsub2 := s.Subscribe(w2)
	defer unsub2()

	for _, a := range []Action{ShowPrompt(w1), ShowPrompt(w2)} {
		if err := s.Dispatch(ctx, a); err != nil {
			t.Fatalf("Dispatch() error = %v", err)
		}
	}
	recv(t, sub1)
	recv(t, sub2)

	if err := s.Dispatch(ctx, DismissPrompt(windowid.Unavailable)); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if got := recv(t, sub1); got != NewState(w1) {
		t.Errorf("w1 state = %+v, want hidden", got)
	}
	if got := recv(t, sub2); got != NewState(w2) {
		t.Errorf("w2 state = %+v, want hidden", got)
	}
}

func TestStoreUnchangedStateIsNotPublished(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	s := startStore(t)
	s.Register(w1)

	sub, unsub := s.Subscribe(w1)
	defer unsub()

	// no-op for a hidden window, followed by a real change
	if err := s.Dispatch(ctx, DismissSurvey(w1)); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if err := s.Dispatch(ctx, ShowPrompt(w1)); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if got := recv(t, sub); !got.IsPromptShown {
		t.Errorf("first published state = %+v, want prompt shown", got)
	}
}

func TestStoreUnregisterClosesSubscriptions(t *testing.T) {
	t.Parallel()

	s := NewStore(xslog.Discard(), 1)
	s.Register(w1)
	sub, unsub := s.Subscribe(w1)

	s.Unregister(w1)
	if _, ok := <-sub; ok {
		t.Error("subscription still open after Unregister")
	}
	unsub()

	if _, ok := s.State(w1); ok {
		t.Error("State() found unregistered window")
	}
}

func TestStoreDispatchAfterClose(t *testing.T) {
	t.Parallel()

	s := NewStore(xslog.Discard(), 1)
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	if err := s.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if err := s.Dispatch(t.Context(), ShowPrompt(w1)); !errors.Is(err, ErrStoreClosed) {
		t.Errorf("Dispatch() error = %v, want ErrStoreClosed", err)
	}
}
