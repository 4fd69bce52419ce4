package normalize

import (
	"strings"

	"github.com/fwojciec/archeion"
)

// NormalizeMicrodata normalizes a top-level microdata item.
func NormalizeMicrodata(item *archeion.MicrodataItem) *archeion.Fields {
	f := newFields()
	f.Type = item.Type
	f.Headline.Add(textProperty(item, "name"))
	f.Description.Add(textProperty(item, "description"))
	f.Source.Add(textProperty(item, "url"))
	addDate(f, textProperty(item, "datePublished"))

	for _, v := range listProperty(item, "author") {
		switch t := v.(type) {
		case string:
			if name := strings.TrimSpace(t); name != "" {
				f.Author = append(f.Author, archeion.Agent{Type: archeion.TypePerson, Name: name})
			}
		case *archeion.MicrodataItem:
			f.Author = append(f.Author, microdataAgent(t))
		}
	}

	f.SourceEncodingFormat = archeion.DefaultEncodingFormat
	return f
}

// microdataAgent flattens a nested item into an agent: its properties plus
// its type, defaulting to Person.
func microdataAgent(item *archeion.MicrodataItem) archeion.Agent {
	m := make(map[string]any, len(item.Properties)+1)
	for k, v := range item.Properties {
		m[k] = microdataValue(v)
	}
	typ := item.Type
	if typ == "" {
		typ = archeion.TypePerson
	}
	m["type"] = typ
	return archeion.AgentFromMap(m)
}

// microdataValue converts nested items into plain JSON objects.
func microdataValue(v any) any {
	switch t := v.(type) {
	case *archeion.MicrodataItem:
		props := make(map[string]any, len(t.Properties))
		for k, val := range t.Properties {
			props[k] = microdataValue(val)
		}
		out := map[string]any{"properties": props}
		if t.Type != "" {
			out["type"] = t.Type
		}
		if t.ID != "" {
			out["id"] = t.ID
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = microdataValue(val)
		}
		return out
	default:
		return v
	}
}

// textProperty returns the first string value of a property.
func textProperty(item *archeion.MicrodataItem, name string) string {
	for _, v := range listProperty(item, name) {
		if s, ok := v.(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		}
	}
	return ""
}

func listProperty(item *archeion.MicrodataItem, name string) []any {
	switch v := item.Properties[name].(type) {
	case nil:
		return nil
	case []any:
		return v
	default:
		return []any{v}
	}
}
