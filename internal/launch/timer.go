package launch

import (
	"context"
	"sync"
	"time"
)

type WaitResult uint8

const (
	Elapsed WaitResult = iota + 1
	Cancelled
)

func (r WaitResult) String() string {
	switch r {
	case Elapsed:
		return "elapsed"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// SplashTimer is a single-shot delay with at most one pending wait. Each wait
// gets its own cancellation token; starting a new wait or calling Cancel
// fires the pending token.
type SplashTimer struct {
	mu      sync.Mutex
	cancel  context.CancelFunc
	pending uint64
	seq     uint64
}

func NewSplashTimer() *SplashTimer {
	return &SplashTimer{}
}

// Wait blocks for d unless the wait is cancelled or ctx ends first. A
// superseded or cancelled wait reports Cancelled, never an error.
func (t *SplashTimer) Wait(ctx context.Context, d time.Duration) WaitResult {
	waitCtx, cancel := context.WithCancel(ctx)

	t.mu.Lock()
	if t.cancel != nil {
		t.cancel()
	}
	t.seq++
	id := t.seq
	t.cancel = cancel
	t.pending = id
	t.mu.Unlock()

	defer t.release(id, cancel)

	if d <= 0 {
		return Elapsed
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return Elapsed
	case <-waitCtx.Done():
		return Cancelled
	}
}

// Cancel ends the pending wait, if any. It reports whether one was pending.
func (t *SplashTimer) Cancel() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel == nil {
		return false
	}
	t.cancel()
	t.cancel = nil
	t.pending = 0
	return true
}

func (t *SplashTimer) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancel != nil
}

func (t *SplashTimer) release(id uint64, cancel context.CancelFunc) {
	cancel()

	t.mu.Lock()
	if t.pending == id {
		t.cancel = nil
		t.pending = 0
	}
	t.mu.Unlock()
}
