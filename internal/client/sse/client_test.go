package sse

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/garrettladley/liftoff/internal/experiments"
	"github.com/garrettladley/liftoff/internal/xslog"
)

func TestClient_Connect(t *testing.T) {
	t.Parallel()

	var connections atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != streamPath {
			t.Errorf("path = %s", r.URL.Path)
		}
		n := connections.Add(1)

		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = fmt.Fprint(w, "event: heartbeat\ndata: {}\n\n")
		_, _ = fmt.Fprintf(w, "event: experiments\ndata: {\"splash_screen\":{\"maximum_duration_ms\":%d}}\n\n", n*100)
		_, _ = fmt.Fprint(w, "event: shutdown\ndata: {\"reason\":\"server-restart\"}\n\n")
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, xslog.Discard())
	c.backoff = time.Millisecond

	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()

	var got []int
	err := c.Connect(ctx, func(_ context.Context, p experiments.Payload) error {
		got = append(got, p.SplashScreen.MaximumDurationMs)
		if len(got) == 2 {
			cancel()
		}
		return nil
	})

	if err != context.Canceled {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if len(got) != 2 || got[0] != 100 || got[1] != 200 {
		t.Errorf("payloads = %v, want [100 200]", got)
	}
}

func TestClient_ConnectRetriesOnError(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = fmt.Fprint(w, "event: experiments\ndata: {}\n\n")
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, xslog.Discard())
	c.backoff = time.Millisecond

	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()

	_ = c.Connect(ctx, func(context.Context, experiments.Payload) error {
		cancel()
		return nil
	})

	if n := attempts.Load(); n != 3 {
		t.Errorf("attempts = %d, want 3", n)
	}
}
