package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/archeion"
)

// Ensure LoggingNormalizer implements archeion.Normalizer.
var _ archeion.Normalizer = (*LoggingNormalizer)(nil)

// LoggingNormalizer wraps a Normalizer with debug logging of the fields each
// schema contributes.
type LoggingNormalizer struct {
	next   archeion.Normalizer
	logger *slog.Logger
}

// NewLoggingNormalizer creates a new LoggingNormalizer.
func NewLoggingNormalizer(next archeion.Normalizer, logger *slog.Logger) *LoggingNormalizer {
	return &LoggingNormalizer{next: next, logger: logger}
}

// Schema delegates to the wrapped normalizer.
func (n *LoggingNormalizer) Schema() archeion.Schema {
	return n.next.Schema()
}

// Normalize delegates to the wrapped normalizer and logs the result.
func (n *LoggingNormalizer) Normalize(ctx context.Context, raw *archeion.RawMetadata) (fields *archeion.Fields, err error) {
	defer func(begin time.Time) {
		n.logger.Debug("normalize",
			"schema", string(n.next.Schema()),
			"empty", fields.IsEmpty(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return n.next.Normalize(ctx, raw)
}
