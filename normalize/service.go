package normalize

import (
	"context"
	"log/slog"

	"github.com/fwojciec/archeion"
)

// Ensure Service implements archeion.MetadataService at compile time.
var _ archeion.MetadataService = (*Service)(nil)

// Service extracts, normalizes and merges the metadata of a document.
type Service struct {
	extractor archeion.MetadataExtractor
	registry  *Registry
	logger    *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used to report extraction and normalization
// failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates a new Service.
func NewService(extractor archeion.MetadataExtractor, registry *Registry, opts ...Option) *Service {
	s := &Service{
		extractor: extractor,
		registry:  registry,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ExtractMetadata implements archeion.MetadataService. Extraction and
// normalization failures are logged and the affected schema contributes
// nothing, so malformed input still yields default metadata.
func (s *Service) ExtractMetadata(ctx context.Context, html, sourceURL string) (*archeion.Metadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := s.extractor.Extract(html, sourceURL)
	if err != nil || raw == nil {
		s.logger.Warn("metadata extraction failed", "url", sourceURL, "error", err)
		raw = &archeion.RawMetadata{}
	}

	var layers []*archeion.Fields
	for _, schema := range s.registry.List() {
		fields, err := s.registry.Get(schema).Normalize(ctx, raw)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			s.logger.Warn("metadata normalization failed", "url", sourceURL, "schema", schema, "error", err)
			continue
		}
		if fields.IsEmpty() {
			continue
		}
		s.logger.Debug("normalized metadata", "url", sourceURL, "schema", schema)
		layers = append(layers, fields)
	}

	return Merge(layers, sourceURL), nil
}
