package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/garrettladley/liftoff/internal/experiments"
	"github.com/garrettladley/liftoff/internal/messaging"
)

func TestMemoryExperimentsStore(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	s := NewMemoryExperimentsStore()
	now := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	if _, err := s.Latest(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Latest() on empty store error = %v, want ErrNotFound", err)
	}

	first := experiments.Payload{SplashScreen: experiments.SplashScreen{MaximumDurationMs: 100}}
	second := experiments.Payload{
		SplashScreen: experiments.SplashScreen{MaximumDurationMs: 200},
		Messages:     []messaging.Message{{ID: "m1", Surface: messaging.SurfaceSurvey}},
	}
	for _, p := range []experiments.Payload{first, second} {
		if _, err := s.Save(ctx, p); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	got, err := s.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	want := second
	want.UpdatedAt = now
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Latest() mismatch (-want +got):\n%s", diff)
	}
}

func TestMemoryExperimentsCacheTTL(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	c := NewMemoryExperimentsCache()
	now := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	p := experiments.Defaults()
	if err := c.Set(ctx, p, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, err := c.Get(ctx); err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	now = now.Add(2 * time.Minute)
	if _, err := c.Get(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after expiry error = %v, want ErrNotFound", err)
	}

	_ = c.Set(ctx, p, 0)
	_ = c.Invalidate(ctx)
	if _, err := c.Get(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after Invalidate error = %v, want ErrNotFound", err)
	}
}

func TestMemoryExperimentsCachePubSub(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	c := NewMemoryExperimentsCache()

	updates, unsubscribe, err := c.Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	p := experiments.Payload{SplashScreen: experiments.SplashScreen{MaximumDurationMs: 42}}
	if err := c.Publish(ctx, p); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	select {
	case got := <-updates:
		if diff := cmp.Diff(p, got); diff != "" {
			t.Errorf("update mismatch (-want +got):\n%s", diff)
		}
	case <-time.After(time.Second):
		t.Fatal("no update received")
	}

	unsubscribe()
	unsubscribe()
	if _, ok := <-updates; ok {
		t.Error("channel open after unsubscribe")
	}
}

func TestMemoryRateLimiter(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	l := NewMemoryRateLimiter(2, time.Hour)

	for i := range 2 {
		res, err := l.Allow(ctx, "10.0.0.1")
		if err != nil || !res.Allowed {
			t.Fatalf("Allow() #%d = %+v, %v, want allowed", i, res, err)
		}
	}

	res, err := l.Allow(ctx, "10.0.0.1")
	if err != nil {
		t.Fatalf("Allow() error = %v", err)
	}
	if res.Allowed || res.RetryAfter <= 0 {
		t.Errorf("Allow() over limit = %+v, want denied with RetryAfter", res)
	}

	if res, _ := l.Allow(ctx, "10.0.0.2"); !res.Allowed {
		t.Error("Allow() for a different key was denied")
	}
}
