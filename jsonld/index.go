package jsonld

import "strings"

// Index maps node keys to nodes in order of first appearance.
// When several fragments describe the same key, the first one wins.
type Index struct {
	keys  []string
	nodes map[string]map[string]any
}

// BuildIndex indexes the nodes of compacted fragments. Nodes inside @graph
// are indexed individually; a fragment without @graph is a single node.
// A node is keyed by its id, then its url, then "#" plus its lowercased type.
// Nodes with none of these are not indexed.
func BuildIndex(fragments []map[string]any) *Index {
	idx := &Index{nodes: make(map[string]map[string]any)}
	for _, frag := range fragments {
		graph, ok := frag["@graph"]
		if !ok {
			idx.add(frag)
			continue
		}
		for _, item := range asList(graph) {
			if node, ok := item.(map[string]any); ok {
				idx.add(node)
			}
		}
	}
	return idx
}

func (idx *Index) add(node map[string]any) {
	key := nodeKey(node)
	if key == "" {
		return
	}
	if _, ok := idx.nodes[key]; ok {
		return
	}
	idx.keys = append(idx.keys, key)
	idx.nodes[key] = node
}

// Len returns the number of indexed nodes.
func (idx *Index) Len() int {
	return len(idx.keys)
}

// Keys returns the node keys in order of first appearance.
func (idx *Index) Keys() []string {
	return append([]string(nil), idx.keys...)
}

// Get returns the node stored under key.
func (idx *Index) Get(key string) (map[string]any, bool) {
	node, ok := idx.nodes[key]
	return node, ok
}

// Nodes returns every indexed node in key order.
func (idx *Index) Nodes() []map[string]any {
	out := make([]map[string]any, 0, len(idx.keys))
	for _, k := range idx.keys {
		out = append(out, idx.nodes[k])
	}
	return out
}

func nodeKey(node map[string]any) string {
	if id, ok := node["id"].(string); ok && id != "" {
		return id
	}
	if u, ok := node["url"].(string); ok && u != "" {
		return u
	}
	if t := firstString(node["type"]); t != "" {
		return "#" + strings.ToLower(t)
	}
	return ""
}
