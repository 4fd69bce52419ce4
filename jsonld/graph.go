package jsonld

// PrimaryNode picks the node that describes the page itself.
//
// Every isPartOf reference is an edge from the referenced container to the
// referencing part. The primary node is the unique node that contains
// nothing and is part of exactly one container. A single indexed node is
// always primary. Returns false when there is no unique candidate.
func PrimaryNode(idx *Index) (map[string]any, bool) {
	if idx.Len() == 1 {
		return idx.Get(idx.keys[0])
	}

	in := make(map[string]int)
	out := make(map[string]int)
	for _, key := range idx.keys {
		node := idx.nodes[key]
		for _, container := range references(node["isPartOf"]) {
			out[container]++
			in[key]++
		}
	}

	var candidate string
	var found int
	for _, key := range idx.keys {
		if out[key] == 0 && in[key] == 1 {
			candidate = key
			found++
		}
	}
	if found != 1 {
		return nil, false
	}
	return idx.Get(candidate)
}

// references returns the keys referenced by an isPartOf value, which may be
// an IRI, a node reference, or a list of either.
func references(v any) []string {
	switch t := v.(type) {
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	case map[string]any:
		if id, ok := t["id"].(string); ok && id != "" {
			return []string{id}
		}
		if u, ok := t["url"].(string); ok && u != "" {
			return []string{u}
		}
	case []any:
		var out []string
		for _, item := range t {
			out = append(out, references(item)...)
		}
		return out
	}
	return nil
}
