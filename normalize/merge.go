package normalize

import (
	"time"

	"github.com/fwojciec/archeion"
)

// Merge combines per-schema fields, given highest priority first, into
// canonical metadata. Every field except keywords takes the first non-empty
// value; keywords are the union of every layer. Fields no layer supplies
// fall back to the defaults, with sourceURL as the default source.
// The layers are not modified and share no state with the result.
func Merge(layers []*archeion.Fields, sourceURL string) *archeion.Metadata {
	md := &archeion.Metadata{
		Type: lookupOr(layers, archeion.TypeCreativeWork, func(f *archeion.Fields) string {
			return f.Type
		}),
		Headline: lookupOr(layers, "", func(f *archeion.Fields) string {
			return f.Headline.First()
		}),
		Description: lookupOr(layers, "", func(f *archeion.Fields) string {
			return f.Description.First()
		}),
		Author:    cloneAgents(lookupOr(layers, nil, func(f *archeion.Fields) []archeion.Agent { return f.Author })),
		Publisher: cloneAgents(lookupOr(layers, nil, func(f *archeion.Fields) []archeion.Agent { return f.Publisher })),
		Keywords:  mergeKeywords(layers),
		Source: lookupOr(layers, sourceURL, func(f *archeion.Fields) string {
			return f.Source.First()
		}),
		SourceEncodingFormat: lookupOr(layers, archeion.DefaultEncodingFormat, func(f *archeion.Fields) string {
			return f.SourceEncodingFormat
		}),
	}
	if dates := lookupOr(layers, nil, func(f *archeion.Fields) []time.Time { return f.DatePublished }); len(dates) > 0 {
		t := dates[0]
		md.DatePublished = &t
	}
	md.EncodingFormat = md.SourceEncodingFormat
	return md
}

// lookupOr returns the first non-empty value get yields across layers, or
// def when every layer is empty.
func lookupOr[T string | []archeion.Agent | []time.Time](layers []*archeion.Fields, def T, get func(*archeion.Fields) T) T {
	for _, f := range layers {
		if f == nil {
			continue
		}
		if v := get(f); len(v) > 0 {
			return v
		}
	}
	return def
}

// mergeKeywords returns the union of every layer's keywords.
func mergeKeywords(layers []*archeion.Fields) archeion.KeywordSet {
	out := archeion.NewKeywordSet()
	for _, f := range layers {
		if f != nil {
			out = out.Union(f.Keywords)
		}
	}
	return out
}

func cloneAgents(agents []archeion.Agent) []archeion.Agent {
	if len(agents) == 0 {
		return nil
	}
	out := make([]archeion.Agent, len(agents))
	for i, a := range agents {
		out[i] = a.Clone()
	}
	return out
}
