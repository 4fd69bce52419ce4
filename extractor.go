package archeion

import "context"

// RawMetadata holds the schema-specific fragments extracted from one HTML
// document. It exists only for the duration of one extraction.
type RawMetadata struct {
	// JSONLD holds one decoded object per JSON-LD node or document.
	JSONLD []map[string]any `json:"json-ld"`

	// Microdata holds the top-level items of the document.
	Microdata []*MicrodataItem `json:"microdata"`

	// OpenGraph holds the OpenGraph properties in document order.
	OpenGraph []*OpenGraphItem `json:"opengraph"`

	// HTML holds plain meta tags keyed by name, plus "title".
	HTML []map[string]string `json:"html"`

	// Twitter holds twitter: meta tags keyed by the name after the prefix.
	Twitter []map[string]string `json:"twitter"`

	// GitHub holds the repository topic tags.
	GitHub []string `json:"github"`
}

// MicrodataItem is one itemscope element. Property values are strings,
// nested *MicrodataItem values, or []any when a property repeats.
type MicrodataItem struct {
	Type       string         `json:"type,omitempty"`
	ID         string         `json:"id,omitempty"`
	Properties map[string]any `json:"properties"`
}

// OpenGraphItem holds the OpenGraph meta tags of a document.
type OpenGraphItem struct {
	Namespace  map[string]string   `json:"namespace"`
	Properties []OpenGraphProperty `json:"properties"`
}

// OpenGraphProperty is one property/content pair, e.g. og:title.
type OpenGraphProperty struct {
	Tag   string `json:"tag"`
	Value string `json:"value"`
}

// MetadataExtractor parses raw HTML into per-schema fragments.
type MetadataExtractor interface {
	// Extract parses html and returns the fragments of every schema.
	// baseURL resolves relative URLs and may be empty. Extraction degrades
	// to partial results on malformed markup.
	Extract(html, baseURL string) (*RawMetadata, error)
}

// Compactor compacts a JSON-LD document against a context so that property
// names become short terms (e.g. "headline", "type", "id").
type Compactor interface {
	Compact(ctx context.Context, doc map[string]any, contextIRI string) (map[string]any, error)
}
