package remoteconfig

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/garrettladley/liftoff/internal/experiments"
	"github.com/garrettladley/liftoff/internal/messaging"
	"github.com/garrettladley/liftoff/internal/storage"
	"github.com/garrettladley/liftoff/internal/xerrors"
)

type failingStore struct{ storage.ExperimentsStore }

func (failingStore) Latest(context.Context) (experiments.Payload, error) {
	return experiments.Payload{}, errors.New("connection refused")
}

func TestCurrentReadsThroughCache(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	store := storage.NewMemoryExperimentsStore()
	cache := storage.NewMemoryExperimentsCache()
	svc := NewCachedService(store, cache, time.Minute)

	got, hit, err := svc.Current(ctx)
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if hit {
		t.Error("first Current() was a cache hit")
	}
	if diff := cmp.Diff(experiments.Defaults(), got); diff != "" {
		t.Errorf("Current() with empty store mismatch (-want +got):\n%s", diff)
	}

	if _, hit, _ := svc.Current(ctx); !hit {
		t.Error("second Current() missed the cache")
	}
}

func TestReplaceInvalidatesAndPublishes(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	cache := storage.NewMemoryExperimentsCache()
	svc := NewCachedService(storage.NewMemoryExperimentsStore(), cache, time.Minute)

	if _, _, err := svc.Current(ctx); err != nil {
		t.Fatal(err)
	}

	updates, unsubscribe, err := svc.Subscribe(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer unsubscribe()

	next := experiments.Payload{
		SplashScreen: experiments.SplashScreen{MaximumDurationMs: 800},
		Messages:     []messaging.Message{{ID: "ms-1", Surface: messaging.SurfaceMicroSurvey}},
	}
	saved, err := svc.Replace(ctx, next)
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}

	select {
	case got := <-updates:
		if diff := cmp.Diff(saved, got); diff != "" {
			t.Errorf("published mismatch (-want +got):\n%s", diff)
		}
	case <-time.After(time.Second):
		t.Fatal("no update published")
	}

	got, hit, err := svc.Current(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("Current() after Replace served the stale cache")
	}
	if diff := cmp.Diff(saved, got); diff != "" {
		t.Errorf("Current() mismatch (-want +got):\n%s", diff)
	}
}

func TestReplaceRejectsInvalid(t *testing.T) {
	t.Parallel()

	svc := NewCachedService(storage.NewMemoryExperimentsStore(), storage.NewMemoryExperimentsCache(), time.Minute)
	_, err := svc.Replace(t.Context(), experiments.Payload{
		Messages: []messaging.Message{{ID: "", Surface: messaging.SurfaceSurvey}},
	})

	appErr := xerrors.As(err)
	if appErr == nil || appErr.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("Replace() error = %v, want validation error", err)
	}
}

func TestCurrentStoreFailure(t *testing.T) {
	t.Parallel()

	svc := NewCachedService(failingStore{}, storage.NewMemoryExperimentsCache(), time.Minute)
	_, _, err := svc.Current(t.Context())

	appErr := xerrors.As(err)
	if appErr == nil || appErr.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("Current() error = %v, want service unavailable", err)
	}
}
