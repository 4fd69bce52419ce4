package normalize

import "github.com/fwojciec/archeion"

// Registry holds the normalizer of each enabled schema.
type Registry struct {
	normalizers map[archeion.Schema]archeion.Normalizer
}

// NewRegistry creates a Registry holding normalizers.
func NewRegistry(normalizers ...archeion.Normalizer) *Registry {
	r := &Registry{normalizers: make(map[archeion.Schema]archeion.Normalizer)}
	for _, n := range normalizers {
		r.Register(n)
	}
	return r
}

// NewDefaultRegistry creates a Registry with a normalizer for every schema.
// jsonld normalizes the JSON-LD fragments.
func NewDefaultRegistry(jsonld archeion.Normalizer) *Registry {
	return NewRegistry(
		jsonld,
		NewHTMLNormalizer(),
		NewOpenGraphNormalizer(),
		NewTwitterNormalizer(),
		NewMicrodataNormalizer(),
		NewGitHubNormalizer(),
	)
}

// Get returns the normalizer for a schema.
// Returns nil if no normalizer is registered for the schema.
func (r *Registry) Get(schema archeion.Schema) archeion.Normalizer {
	return r.normalizers[schema]
}

// Register adds a normalizer for its schema.
// If a normalizer is already registered for the schema, it is replaced.
func (r *Registry) Register(n archeion.Normalizer) {
	r.normalizers[n.Schema()] = n
}

// Unregister removes the normalizer for a schema.
func (r *Registry) Unregister(schema archeion.Schema) {
	delete(r.normalizers, schema)
}

// List returns the registered schemas in precedence order.
func (r *Registry) List() []archeion.Schema {
	schemas := make([]archeion.Schema, 0, len(r.normalizers))
	for _, s := range archeion.Precedence {
		if _, ok := r.normalizers[s]; ok {
			schemas = append(schemas, s)
		}
	}
	return schemas
}
