package jsonld

import (
	"context"
	"log/slog"
	"strings"

	"github.com/fwojciec/archeion"
	"github.com/fwojciec/archeion/dateparse"
)

// blacklist names node types that never describe the page itself.
var blacklist = map[string]bool{
	"ReadAction":     true,
	"BreadcrumbList": true,
	"ListItem":       true,
	"SearchAction":   true,
}

// Ensure Resolver implements archeion.Normalizer at compile time.
var _ archeion.Normalizer = (*Resolver)(nil)

// Resolver reduces JSON-LD fragments to normalized fields.
type Resolver struct {
	compactor archeion.Compactor
	logger    *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used to report fragments that fail to compact
// or carry unparseable values.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver creates a Resolver that compacts fragments with compactor.
func NewResolver(compactor archeion.Compactor, opts ...Option) *Resolver {
	r := &Resolver{
		compactor: compactor,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Schema returns archeion.SchemaJSONLD.
func (r *Resolver) Schema() archeion.Schema {
	return archeion.SchemaJSONLD
}

// Normalize resolves the JSON-LD fragments of raw.
func (r *Resolver) Normalize(ctx context.Context, raw *archeion.RawMetadata) (*archeion.Fields, error) {
	return r.Resolve(ctx, raw.JSONLD)
}

// Resolve compacts fragments, selects the primary node and accumulates its
// fields. When no unique primary node exists, every indexed node contributes.
// A fragment that fails to compact is logged and contributes nothing.
// The fragments are not modified. Returns an error only when ctx is done.
func (r *Resolver) Resolve(ctx context.Context, fragments []map[string]any) (*archeion.Fields, error) {
	compacted := make([]map[string]any, 0, len(fragments))
	for i, frag := range fragments {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doc, err := r.compactor.Compact(ctx, normalizeContext(frag), archeion.SchemaOrgContext)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			r.logger.Warn("failed to compact json-ld", "fragment", i, "error", err)
			continue
		}
		compacted = append(compacted, doc)
	}

	idx := BuildIndex(compacted)
	nodes := idx.Nodes()
	if primary, ok := PrimaryNode(idx); ok {
		nodes = []map[string]any{primary}
	}
	return r.accumulate(nodes, idx), nil
}

func (r *Resolver) accumulate(nodes []map[string]any, idx *Index) *archeion.Fields {
	fields := &archeion.Fields{Keywords: archeion.NewKeywordSet()}
	for _, node := range nodes {
		types := stringList(node["type"])
		if isBlacklisted(types) {
			continue
		}

		nodeContext := archeion.SchemaOrgContext
		if c, ok := node["@context"].(string); ok && c != "" {
			nodeContext = c
		}

		fields.Source.Add(firstString(node["url"]), firstString(node["id"]))

		typ := "CreativeWork"
		if len(types) > 0 {
			typ = types[0]
		}
		fields.Type = Contextify(nodeContext, typ)

		if headline := firstString(node["headline"]); headline != "" {
			fields.Headline.Add(headline)
		} else {
			fields.Headline.Add(firstString(node["name"]))
		}
		fields.Description.Add(firstString(node["description"]))

		for _, v := range asList(node["author"]) {
			if agent, ok := resolveAgent(v, idx, nodeContext, "Person"); ok {
				fields.Author = append(fields.Author, agent)
			}
		}
		for _, v := range asList(node["publisher"]) {
			if agent, ok := resolveAgent(v, idx, nodeContext, "Organization"); ok {
				fields.Publisher = append(fields.Publisher, agent)
			}
		}

		addKeywords(fields.Keywords, node["keywords"])

		for _, s := range stringList(node["datePublished"]) {
			t, err := dateparse.Parse(s)
			if err != nil {
				r.logger.Warn("invalid json-ld datePublished", "value", s, "error", err)
				continue
			}
			fields.DatePublished = append(fields.DatePublished, t)
		}

		fields.SourceEncodingFormat = archeion.DefaultEncodingFormat
	}
	return fields
}

// resolveAgent turns an author or publisher value into an Agent. Plain
// strings become named agents of defaultType. Bare node references are
// dereferenced through idx; unresolvable references are kept as they are.
func resolveAgent(v any, idx *Index, nodeContext, defaultType string) (archeion.Agent, bool) {
	switch t := v.(type) {
	case string:
		if t == "" {
			return archeion.Agent{}, false
		}
		return archeion.Agent{Type: Contextify(nodeContext, defaultType), Name: t}, true
	case map[string]any:
		m := t
		if id, ok := m["id"].(string); ok && len(m) == 1 {
			if node, found := idx.Get(id); found {
				m = node
			}
		}
		agent := archeion.AgentFromMap(withoutKeywords(m))
		if types := stringList(m["type"]); len(types) > 0 {
			agent.Type = Contextify(nodeContext, types[0])
			delete(agent.Extra, "type")
			if len(agent.Extra) == 0 {
				agent.Extra = nil
			}
		}
		return agent, true
	}
	return archeion.Agent{}, false
}

// withoutKeywords drops JSON-LD keywords such as @context, which a
// dereferenced top-level node still carries.
func withoutKeywords(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if !strings.HasPrefix(k, "@") {
			out[k] = v
		}
	}
	return out
}

// addKeywords adds keywords given either as a list of strings or as a
// comma-separated string.
func addKeywords(set archeion.KeywordSet, v any) {
	switch t := v.(type) {
	case string:
		for _, w := range strings.Split(t, ",") {
			set.Add(strings.TrimSpace(w))
		}
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok {
				set.Add(strings.TrimSpace(s))
			}
		}
	}
}

func isBlacklisted(types []string) bool {
	for _, t := range types {
		if blacklist[t] {
			return true
		}
	}
	return false
}

// normalizeContext rewrites the insecure schema.org IRI wherever it appears
// in the fragment's @context, whether the context is a string, a list or an
// inline object with @vocab or prefix definitions. The input is not modified.
func normalizeContext(frag map[string]any) map[string]any {
	c, ok := frag["@context"]
	if !ok || !mentionsInsecureSchemaOrg(c) {
		return frag
	}
	out := make(map[string]any, len(frag))
	for k, v := range frag {
		out[k] = v
	}
	out["@context"] = secureContext(c)
	return out
}

const insecureSchemaOrg = "http://schema.org"

func secureContext(v any) any {
	switch t := v.(type) {
	case string:
		return strings.ReplaceAll(t, insecureSchemaOrg, "https://schema.org")
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = secureContext(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = secureContext(item)
		}
		return out
	default:
		return v
	}
}

func mentionsInsecureSchemaOrg(v any) bool {
	switch t := v.(type) {
	case string:
		return strings.Contains(t, insecureSchemaOrg)
	case []any:
		for _, item := range t {
			if mentionsInsecureSchemaOrg(item) {
				return true
			}
		}
	case map[string]any:
		for _, item := range t {
			if mentionsInsecureSchemaOrg(item) {
				return true
			}
		}
	}
	return false
}
