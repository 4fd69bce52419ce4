// Package jsonld resolves compacted JSON-LD fragments into normalized
// metadata fields. Fragments are compacted against schema.org, indexed by
// node identity, and reduced to the node that describes the page itself.
package jsonld

import "strings"

// Contextify expands a compact term against a JSON-LD context IRI.
// Values that are already absolute are returned unchanged.
func Contextify(context, value string) string {
	if strings.HasPrefix(value, "http") {
		return value
	}
	if strings.HasSuffix(context, "#") {
		return context + value
	}
	return strings.TrimRight(context, "/") + "/" + value
}

// stringList returns the string members of a scalar-or-list JSON value.
func stringList(v any) []string {
	switch t := v.(type) {
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	case []any:
		var out []string
		for _, item := range t {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// firstString returns the first string member of a scalar-or-list value.
func firstString(v any) string {
	if list := stringList(v); len(list) > 0 {
		return list[0]
	}
	return ""
}

// asList wraps a scalar value into a list.
func asList(v any) []any {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		return t
	default:
		return []any{t}
	}
}
