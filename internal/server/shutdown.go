package server

import (
	"context"
	"time"
)

// ShutdownCoordinator lets long-lived streams say goodbye before the HTTP
// server stops accepting work.
type ShutdownCoordinator struct {
	baseCtx     context.Context
	cancel      context.CancelFunc
	draining    chan struct{}
	gracePeriod time.Duration
}

func NewShutdownCoordinator(gracePeriod time.Duration) *ShutdownCoordinator {
	ctx, cancel := context.WithCancel(context.Background())
	return &ShutdownCoordinator{
		baseCtx:     ctx,
		cancel:      cancel,
		draining:    make(chan struct{}),
		gracePeriod: gracePeriod,
	}
}

// BaseContext is the parent of every request context.
func (sc *ShutdownCoordinator) BaseContext() context.Context {
	return sc.baseCtx
}

// Draining is closed once InitiateShutdown is called.
func (sc *ShutdownCoordinator) Draining() <-chan struct{} {
	return sc.draining
}

// InitiateShutdown signals streams to finish, waits the grace period, then
// cancels every request context. It blocks for the grace period.
func (sc *ShutdownCoordinator) InitiateShutdown() {
	close(sc.draining)
	time.Sleep(sc.gracePeriod)
	sc.cancel()
}
