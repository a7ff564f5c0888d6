package app

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/npsdata/bqfirestoresync/internal/common/jobcontext"
)

// CreateContextWithShutdown returns a copy of parent that is cancelled when SIGINT or SIGTERM is received.
// Whatever call is in flight at that point fails with a context error, which ends the run.
func CreateContextWithShutdown(parent *jobcontext.Context) *jobcontext.Context {
	ctx, cancel := jobcontext.WithCancel(parent)
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		defer signal.Stop(c)
		select {
		case sig := <-c:
			ctx.Log.Warnf("Received %s, aborting", sig)
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx
}
