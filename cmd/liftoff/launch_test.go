package main

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/garrettladley/liftoff/internal/launch"
)

func TestWithBackgroundFetchWaitsForFetch(t *testing.T) {
	t.Parallel()

	var (
		started  = make(chan struct{})
		finished atomic.Bool
	)
	fetch := func(ctx context.Context) {
		close(started)
		<-ctx.Done()
		// stands in for a cache write racing the store close
		time.Sleep(10 * time.Millisecond)
		finished.Store(true)
	}
	run := func(context.Context) error {
		<-started
		return nil
	}

	if err := withBackgroundFetch(t.Context(), fetch, run); err != nil {
		t.Fatalf("withBackgroundFetch() error = %v", err)
	}
	if !finished.Load() {
		t.Error("withBackgroundFetch() returned before fetch finished")
	}
}

func TestWithBackgroundFetch(t *testing.T) {
	t.Parallel()

	runErr := errors.New("launch failed")

	tests := []struct {
		name    string
		fetch   func(context.Context)
		runErr  error
		wantErr error
	}{
		{name: "offline", runErr: nil},
		{name: "offline run error", runErr: runErr, wantErr: runErr},
		{name: "fetch done first", fetch: func(context.Context) {}, runErr: nil},
		{name: "run error with fetch", fetch: func(ctx context.Context) { <-ctx.Done() }, runErr: runErr, wantErr: runErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := withBackgroundFetch(t.Context(), tt.fetch, func(context.Context) error { return tt.runErr })
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("withBackgroundFetch() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPrintDelegate(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	d := printDelegate{w: &buf}
	d.LaunchWith(launch.Intro())
	d.LaunchBrowser()

	if got, want := buf.String(), launch.Intro().String()+"\n"+launch.BrowserOutcome+"\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}
