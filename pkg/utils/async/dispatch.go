package async

import (
	"context"

	"github.com/gemledger-lab/gemledger/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// Dispatch runs the handler in its own goroutine with a fresh background
// context, so the work survives the request that spawned it (blob cleanup
// after a failed customer create, for example). The request's logger is
// carried over; errors and panics are logged, never propagated.
func Dispatch(ctx context.Context, handler func(ctx context.Context) error) {
	bgCtx := context.Background()
	if logger := logging.From(ctx); logger != nil {
		bgCtx = logging.With(bgCtx, logger)
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logging.From(bgCtx).Error("panic in async handler", "panic", r)
			}
		}()

		if err := handler(bgCtx); err != nil {
			logging.From(bgCtx).Error("async handler failed", "error", goerr.Unwrap(err))
		}
	}()
}
