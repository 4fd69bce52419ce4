// Package normalize turns per-schema metadata fragments into normalized
// fields and merges them into canonical metadata.
package normalize

import (
	"context"
	"strings"

	"github.com/fwojciec/archeion"
	"github.com/fwojciec/archeion/dateparse"
)

// Ensure Normalizer implements archeion.Normalizer at compile time.
var _ archeion.Normalizer = (*Normalizer)(nil)

// Normalizer normalizes the fragments of one schema with a pure function.
type Normalizer struct {
	schema archeion.Schema
	fn     func(raw *archeion.RawMetadata) *archeion.Fields
}

// Schema returns the schema the normalizer reads.
func (n *Normalizer) Schema() archeion.Schema {
	return n.schema
}

// Normalize returns the fields of the schema's fragments in raw.
func (n *Normalizer) Normalize(ctx context.Context, raw *archeion.RawMetadata) (*archeion.Fields, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return n.fn(raw), nil
}

// NewHTMLNormalizer returns a normalizer for plain meta tags. Only the first
// fragment is read.
func NewHTMLNormalizer() *Normalizer {
	return &Normalizer{
		schema: archeion.SchemaHTML,
		fn: func(raw *archeion.RawMetadata) *archeion.Fields {
			if len(raw.HTML) == 0 {
				return newFields()
			}
			return NormalizeHTML(raw.HTML[0])
		},
	}
}

// NewOpenGraphNormalizer returns a normalizer for OpenGraph properties. Only
// the first fragment is read.
func NewOpenGraphNormalizer() *Normalizer {
	return &Normalizer{
		schema: archeion.SchemaOpenGraph,
		fn: func(raw *archeion.RawMetadata) *archeion.Fields {
			if len(raw.OpenGraph) == 0 || raw.OpenGraph[0] == nil {
				return newFields()
			}
			return NormalizeOpenGraph(raw.OpenGraph[0])
		},
	}
}

// NewTwitterNormalizer returns a normalizer for Twitter card tags. Only the
// first fragment is read.
func NewTwitterNormalizer() *Normalizer {
	return &Normalizer{
		schema: archeion.SchemaTwitter,
		fn: func(raw *archeion.RawMetadata) *archeion.Fields {
			if len(raw.Twitter) == 0 {
				return newFields()
			}
			return NormalizeTwitter(raw.Twitter[0])
		},
	}
}

// NewMicrodataNormalizer returns a normalizer for microdata. Only the first
// top-level item is read.
func NewMicrodataNormalizer() *Normalizer {
	return &Normalizer{
		schema: archeion.SchemaMicrodata,
		fn: func(raw *archeion.RawMetadata) *archeion.Fields {
			if len(raw.Microdata) == 0 || raw.Microdata[0] == nil {
				return newFields()
			}
			return NormalizeMicrodata(raw.Microdata[0])
		},
	}
}

// NewGitHubNormalizer returns a normalizer for GitHub repository topics.
func NewGitHubNormalizer() *Normalizer {
	return &Normalizer{
		schema: archeion.SchemaGitHub,
		fn: func(raw *archeion.RawMetadata) *archeion.Fields {
			return NormalizeGitHub(raw.GitHub)
		},
	}
}

func newFields() *archeion.Fields {
	return &archeion.Fields{Keywords: archeion.NewKeywordSet()}
}

// addDate parses s and appends it to f. Unparseable dates are dropped.
func addDate(f *archeion.Fields, s string) {
	if s == "" {
		return
	}
	t, err := dateparse.Parse(s)
	if err != nil {
		return
	}
	f.DatePublished = append(f.DatePublished, t)
}

// splitKeywords returns the trimmed, non-empty members of a comma-separated
// list.
func splitKeywords(s string) []string {
	var out []string
	for _, w := range strings.Split(s, ",") {
		if w = strings.TrimSpace(w); w != "" {
			out = append(out, w)
		}
	}
	return out
}

