package cli

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// SignalContext stops a runner gracefully on the first SIGINT or SIGTERM and
// cancels its context on the second.
type SignalContext struct {
	context.Context
	Cancel func()
	stopFn func()
	sigCh  chan os.Signal
	stop   sync.Once
	mu     sync.Mutex
	sigVal os.Signal
}

// NewSignalContext starts listening for signals. stop is called on the first one.
func NewSignalContext(parent context.Context, stop func()) *SignalContext {
	sc := newSignalContext(parent, stop)
	signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
	go sc.watch()
	return sc
}

func newSignalContext(parent context.Context, stop func()) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	return &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		stopFn:  stop,
		sigCh:   make(chan os.Signal, 2),
	}
}

func (sc *SignalContext) watch() {
	defer sc.Close()
	for received := 0; ; received++ {
		select {
		case sig := <-sc.sigCh:
			sc.mu.Lock()
			sc.sigVal = sig
			sc.mu.Unlock()
			if received == 0 {
				sc.stopFn()
				continue
			}
			sc.Cancel()
			return
		case <-sc.Done():
			return
		}
	}
}

// Signal returns the last signal received, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// Close stops listening for signals and cancels the context.
func (sc *SignalContext) Close() {
	sc.stop.Do(func() {
		signal.Stop(sc.sigCh)
		sc.Cancel()
	})
}
