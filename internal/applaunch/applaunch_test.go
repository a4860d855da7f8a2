package applaunch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/garrettladley/liftoff/internal/experiments"
	"github.com/garrettladley/liftoff/internal/messaging"
	"github.com/garrettladley/liftoff/internal/prefs"
	"github.com/garrettladley/liftoff/internal/xslog"
)

type stubPruner struct {
	calls int
	err   error
}

func (p *stubPruner) PruneStale(context.Context) (int, error) {
	p.calls++
	return 1, p.err
}

type payloadState bool

func (p payloadState) FromRemote() bool { return bool(p) }

func TestSetup(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	store := prefs.NewMemoryStore()
	pruner := &stubPruner{}
	now := time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

	s := New(store, pruner, payloadState(true), xslog.Discard())
	s.now = func() time.Time { return now }

	for range 3 {
		if err := s.Setup(ctx); err != nil {
			t.Fatalf("Setup() error = %v", err)
		}
	}

	count, err := LaunchCount(ctx, store)
	if err != nil {
		t.Fatalf("LaunchCount() error = %v", err)
	}
	if count != 3 {
		t.Errorf("LaunchCount() = %d, want 3", count)
	}
	if got, _ := store.Get(ctx, prefs.KeyLastLaunchAt); got != "2026-10-15T09:30:00Z" {
		t.Errorf("last launch = %q", got)
	}
	if pruner.calls != 3 {
		t.Errorf("PruneStale calls = %d, want 3", pruner.calls)
	}
}

func TestSetupPruneFailureStillCounts(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	store := prefs.NewMemoryStore()
	pruneErr := errors.New("locked")

	err := New(store, &stubPruner{err: pruneErr}, payloadState(true), xslog.Discard()).Setup(ctx)
	if !errors.Is(err, pruneErr) {
		t.Fatalf("Setup() error = %v, want %v", err, pruneErr)
	}
	if count, _ := LaunchCount(ctx, store); count != 1 {
		t.Errorf("LaunchCount() = %d, want 1", count)
	}
}

func TestSetupSkipsPruneOnDefaults(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	survey := messaging.Message{ID: "s1", Surface: messaging.SurfaceSurvey, Text: "How are we doing?"}

	layer := experiments.NewLayer()
	states := messaging.NewMemoryStateStore()
	messages := messaging.NewManager(layer, states, xslog.Discard())

	if err := messages.OnMessageDismissed(ctx, survey); err != nil {
		t.Fatalf("OnMessageDismissed() error = %v", err)
	}

	if err := New(prefs.NewMemoryStore(), messages, layer, xslog.Discard()).Setup(ctx); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}

	layer.Apply(experiments.Payload{Messages: []messaging.Message{survey}})

	got, err := messages.NextMessage(ctx, messaging.SurfaceSurvey)
	if err != nil {
		t.Fatalf("NextMessage() error = %v", err)
	}
	if got != nil {
		t.Errorf("NextMessage() = %q, want nil for a dismissed survey", got.ID)
	}
}

func TestSetupPrunesAgainstRemotePayload(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	kept := messaging.Message{ID: "s1", Surface: messaging.SurfaceSurvey, Text: "How are we doing?"}
	stale := messaging.Message{ID: "s0", Surface: messaging.SurfaceSurvey, Text: "Old survey"}

	layer := experiments.NewLayer()
	layer.Apply(experiments.Payload{Messages: []messaging.Message{kept}})
	states := messaging.NewMemoryStateStore()
	messages := messaging.NewManager(layer, states, xslog.Discard())

	for _, msg := range []messaging.Message{kept, stale} {
		if err := messages.OnMessageDismissed(ctx, msg); err != nil {
			t.Fatalf("OnMessageDismissed(%s) error = %v", msg.ID, err)
		}
	}

	if err := New(prefs.NewMemoryStore(), messages, layer, xslog.Discard()).Setup(ctx); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}

	if st, _ := states.Get(ctx, kept.ID); !st.Done() {
		t.Errorf("state for %q was pruned", kept.ID)
	}
	if st, _ := states.Get(ctx, stale.ID); st.Done() {
		t.Errorf("state for %q survived prune", stale.ID)
	}
}
