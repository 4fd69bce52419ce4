package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/archeion"
)

// Ensure LoggingFetcher implements archeion.Fetcher.
var _ archeion.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging. Captures are logged at debug
// level and failures at warn level with their error code.
type LoggingFetcher struct {
	next   archeion.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next archeion.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the capture.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (string, error) {
	begin := time.Now()
	html, err := f.next.Fetch(ctx, url)
	if err != nil {
		f.logger.Warn("capture failed",
			"url", url,
			"code", archeion.ErrorCode(err),
			"duration", time.Since(begin),
			"err", err,
		)
		return "", err
	}
	f.logger.Debug("captured",
		"url", url,
		"bytes", len(html),
		"duration", time.Since(begin),
	)
	return html, nil
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
