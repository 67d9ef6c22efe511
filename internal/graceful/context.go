// Package graceful provides a context canceled on termination signals.
package graceful

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
)

// Context creates a context that is canceled when SIGINT or SIGTERM is received.
func Context(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			log.Info().Stringer("signal", sig).Msg("Received termination signal, shutting down")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
