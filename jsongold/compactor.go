// Package jsongold compacts JSON-LD documents using
// github.com/piprate/json-gold.
package jsongold

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/fwojciec/archeion"
	"github.com/piprate/json-gold/ld"
)

// Ensure Compactor implements archeion.Compactor at compile time.
var _ archeion.Compactor = (*Compactor)(nil)

// Compactor compacts JSON-LD documents. The schema.org context is served
// from memory; other remote contexts are rejected unless remote loading is
// enabled.
type Compactor struct {
	loader *documentLoader
}

// Option configures a Compactor.
type Option func(*Compactor)

// WithRemoteContexts allows contexts other than schema.org to be fetched
// with client. Fetched contexts are cached for the life of the Compactor.
func WithRemoteContexts(client *http.Client) Option {
	return func(c *Compactor) {
		c.loader.remote = ld.NewCachingDocumentLoader(ld.NewDefaultDocumentLoader(client))
	}
}

// NewCompactor creates a new Compactor.
func NewCompactor(opts ...Option) *Compactor {
	c := &Compactor{loader: &documentLoader{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compact compacts doc against contextIRI. doc is not modified.
// Returns EINVALID if doc cannot be expanded or compacted.
func (c *Compactor) Compact(ctx context.Context, doc map[string]any, contextIRI string) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	proc := ld.NewJsonLdProcessor()
	opts := ld.NewJsonLdOptions("")
	opts.DocumentLoader = c.loader

	out, err := proc.Compact(archeion.CloneValue(doc), contextIRI, opts)
	if err != nil {
		return nil, archeion.Errorf(archeion.EINVALID, "failed to compact json-ld: %v", err)
	}
	return out, nil
}

// documentLoader serves the schema.org context without network access.
type documentLoader struct {
	remote ld.DocumentLoader
}

func (l *documentLoader) LoadDocument(u string) (*ld.RemoteDocument, error) {
	if isSchemaOrgContext(u) {
		return &ld.RemoteDocument{DocumentURL: u, Document: schemaOrgContext()}, nil
	}
	if l.remote == nil {
		return nil, ld.NewJsonLdError(ld.LoadingRemoteContextFailed, fmt.Sprintf("remote context %s is not allowed", u))
	}
	return l.remote.LoadDocument(u)
}

// schemaOrgContext returns a minimal schema.org context: every term maps into
// the schema.org vocabulary and id/type alias the JSON-LD keywords.
func schemaOrgContext() map[string]any {
	return map[string]any{
		"@context": map[string]any{
			"@vocab": archeion.SchemaOrgContext,
			"id":     "@id",
			"type":   "@type",
			"schema": archeion.SchemaOrgContext,
		},
	}
}

// isSchemaOrgContext reports whether u names the schema.org context document,
// regardless of scheme, www prefix or trailing slash.
func isSchemaOrgContext(u string) bool {
	parsed, err := url.Parse(u)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	if strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.") != "schema.org" {
		return false
	}
	switch strings.TrimSuffix(parsed.Path, "/") {
	case "", "/docs/jsonldcontext.json", "/docs/jsonldcontext.jsonld":
		return true
	}
	return false
}
