package mock

import (
	"context"

	"github.com/fwojciec/archeion"
)

var _ archeion.MetadataExtractor = (*MetadataExtractor)(nil)

// MetadataExtractor is a mock implementation of archeion.MetadataExtractor.
type MetadataExtractor struct {
	ExtractFn func(html, baseURL string) (*archeion.RawMetadata, error)
}

func (e *MetadataExtractor) Extract(html, baseURL string) (*archeion.RawMetadata, error) {
	return e.ExtractFn(html, baseURL)
}

var _ archeion.Compactor = (*Compactor)(nil)

// Compactor is a mock implementation of archeion.Compactor.
type Compactor struct {
	CompactFn func(ctx context.Context, doc map[string]any, contextIRI string) (map[string]any, error)
}

func (c *Compactor) Compact(ctx context.Context, doc map[string]any, contextIRI string) (map[string]any, error) {
	return c.CompactFn(ctx, doc, contextIRI)
}

var _ archeion.MetadataService = (*MetadataService)(nil)

// MetadataService is a mock implementation of archeion.MetadataService.
type MetadataService struct {
	ExtractMetadataFn func(ctx context.Context, html, sourceURL string) (*archeion.Metadata, error)
}

func (s *MetadataService) ExtractMetadata(ctx context.Context, html, sourceURL string) (*archeion.Metadata, error) {
	return s.ExtractMetadataFn(ctx, html, sourceURL)
}

var _ archeion.Normalizer = (*Normalizer)(nil)

// Normalizer is a mock implementation of archeion.Normalizer.
type Normalizer struct {
	SchemaFn    func() archeion.Schema
	NormalizeFn func(ctx context.Context, raw *archeion.RawMetadata) (*archeion.Fields, error)
}

func (n *Normalizer) Schema() archeion.Schema {
	return n.SchemaFn()
}

func (n *Normalizer) Normalize(ctx context.Context, raw *archeion.RawMetadata) (*archeion.Fields, error) {
	return n.NormalizeFn(ctx, raw)
}
