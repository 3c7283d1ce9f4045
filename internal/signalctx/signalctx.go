// Package signalctx provides a single top-level context cancelled on
// SIGINT/SIGTERM, for the driver to hand to a running transversal
// search.
package signalctx

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

var (
	shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
)

// Context returns a context cancelled on the first SIGINT/SIGTERM. A
// second signal terminates the process immediately with exit code 1,
// for a search stuck ignoring cancellation.
func Context() context.Context {
	once.Do(func() {
		c := make(chan os.Signal, 2)
		signal.Notify(c, shutdownSignals...)
		ctx, cancel = context.WithCancel(context.Background())
		go func() {
			<-c
			cancel()
			<-c
			os.Exit(1)
		}()
	})
	return ctx
}
