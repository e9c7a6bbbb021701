package safe

import (
	"context"
	"io"
	"log/slog"

	"github.com/gemledger-lab/gemledger/pkg/utils/logging"
)

// Close closes the closer and routes a failure to the context logger, for
// defer sites where the error cannot change the outcome (uploaded files,
// response bodies). A nil closer is a no-op.
func Close(ctx context.Context, closer io.Closer) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.From(ctx).Error("Failed to close", slog.Any("error", err))
	}
}
