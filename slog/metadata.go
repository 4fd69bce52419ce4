package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/archeion"
)

// Ensure LoggingMetadataService implements archeion.MetadataService.
var _ archeion.MetadataService = (*LoggingMetadataService)(nil)

// LoggingMetadataService wraps a MetadataService with logging.
type LoggingMetadataService struct {
	next   archeion.MetadataService
	logger *slog.Logger
}

// NewLoggingMetadataService creates a new LoggingMetadataService.
func NewLoggingMetadataService(next archeion.MetadataService, logger *slog.Logger) *LoggingMetadataService {
	return &LoggingMetadataService{next: next, logger: logger}
}

// ExtractMetadata delegates to the wrapped service and logs the outcome.
func (s *LoggingMetadataService) ExtractMetadata(ctx context.Context, html, sourceURL string) (md *archeion.Metadata, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", sourceURL,
			"bytes", len(html),
			"duration", time.Since(begin),
		}
		if md != nil {
			attrs = append(attrs, "type", md.Type, "keywords", len(md.Keywords))
		}
		attrs = append(attrs, "err", err)
		s.logger.Info("metadata extraction", attrs...)
	}(time.Now())
	return s.next.ExtractMetadata(ctx, html, sourceURL)
}
