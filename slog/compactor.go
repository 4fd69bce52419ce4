package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/archeion"
)

// Ensure LoggingCompactor implements archeion.Compactor.
var _ archeion.Compactor = (*LoggingCompactor)(nil)

// LoggingCompactor wraps a Compactor with debug logging.
type LoggingCompactor struct {
	next   archeion.Compactor
	logger *slog.Logger
}

// NewLoggingCompactor creates a new LoggingCompactor.
func NewLoggingCompactor(next archeion.Compactor, logger *slog.Logger) *LoggingCompactor {
	return &LoggingCompactor{next: next, logger: logger}
}

// Compact delegates to the wrapped compactor and logs the operation.
func (c *LoggingCompactor) Compact(ctx context.Context, doc map[string]any, contextIRI string) (out map[string]any, err error) {
	defer func(begin time.Time) {
		c.logger.Debug("json-ld compaction",
			"context", contextIRI,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Compact(ctx, doc, contextIRI)
}
