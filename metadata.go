package archeion

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"
)

// Well-known schema.org identifiers used as defaults throughout normalization.
const (
	SchemaOrgContext = "https://schema.org/"

	TypeCreativeWork = "https://schema.org/CreativeWork"
	TypePerson       = "https://schema.org/Person"
	TypeOrganization = "https://schema.org/Organization"

	DefaultEncodingFormat = "text/html"
)

// Schema identifies one structured-data syntax found in an HTML document.
type Schema string

// Schema constants.
const (
	SchemaJSONLD    Schema = "json-ld"
	SchemaHTML      Schema = "html"
	SchemaOpenGraph Schema = "opengraph"
	SchemaTwitter   Schema = "twitter"
	SchemaMicrodata Schema = "microdata"
	SchemaGitHub    Schema = "github"
)

// Precedence lists every schema from highest to lowest priority.
// The first schema with a non-empty value for a field wins that field.
var Precedence = []Schema{
	SchemaJSONLD,
	SchemaHTML,
	SchemaOpenGraph,
	SchemaTwitter,
	SchemaMicrodata,
	SchemaGitHub,
}

// ParseSchema returns the Schema named by s.
// Returns EINVALID if s does not name a known schema.
func ParseSchema(s string) (Schema, error) {
	name := Schema(strings.ToLower(strings.TrimSpace(s)))
	for _, schema := range Precedence {
		if schema == name {
			return schema, nil
		}
	}
	return "", Errorf(EINVALID, "unknown metadata schema %q", s)
}

// Metadata is the canonical description of a captured page, merged from
// every schema the page carries. It is created fresh for each extraction
// and is never mutated afterwards.
type Metadata struct {
	Type                 string     `json:"type"`
	Headline             string     `json:"headline,omitempty"`
	Description          string     `json:"description,omitempty"`
	Author               []Agent    `json:"author,omitempty"`
	Publisher            []Agent    `json:"publisher,omitempty"`
	Keywords             KeywordSet `json:"keywords"`
	DatePublished        *time.Time `json:"datePublished,omitempty"`
	Source               string     `json:"source,omitempty"`
	SourceEncodingFormat string     `json:"sourceEncodingFormat"`
	EncodingFormat       string     `json:"encodingFormat"`
}

// MetadataService turns a captured DOM into canonical metadata.
type MetadataService interface {
	// ExtractMetadata extracts, normalizes and merges all structured data
	// found in html. sourceURL is used as the default source and as the base
	// for resolving relative URLs. Malformed input never produces an error;
	// an error is returned only when ctx is done.
	ExtractMetadata(ctx context.Context, html, sourceURL string) (*Metadata, error)
}

// Normalizer reduces the fragments of one schema to normalized fields.
type Normalizer interface {
	// Schema returns the schema whose fragments the normalizer reads.
	Schema() Schema

	// Normalize returns the fields found in raw for the schema. It returns
	// empty fields when raw carries nothing for the schema and never
	// modifies raw. An error is returned only when ctx is done.
	Normalize(ctx context.Context, raw *RawMetadata) (*Fields, error)
}

// Fields is the normalized output of a single schema. Empty fields mean the
// schema has no opinion. Headline, Description, Source and DatePublished may
// carry several values when the schema described more than one node.
type Fields struct {
	Type                 string      `json:"type,omitempty"`
	Headline             Values      `json:"headline,omitempty"`
	Description          Values      `json:"description,omitempty"`
	Author               []Agent     `json:"author,omitempty"`
	Publisher            []Agent     `json:"publisher,omitempty"`
	Keywords             KeywordSet  `json:"keywords,omitempty"`
	DatePublished        []time.Time `json:"datePublished,omitempty"`
	Source               Values      `json:"source,omitempty"`
	SourceEncodingFormat string      `json:"sourceEncodingFormat,omitempty"`
}

// IsEmpty reports whether no field carries a value.
func (f *Fields) IsEmpty() bool {
	if f == nil {
		return true
	}
	return f.Type == "" &&
		len(f.Headline) == 0 &&
		len(f.Description) == 0 &&
		len(f.Author) == 0 &&
		len(f.Publisher) == 0 &&
		len(f.Keywords) == 0 &&
		len(f.DatePublished) == 0 &&
		len(f.Source) == 0 &&
		f.SourceEncodingFormat == ""
}

// Values holds one or more string values for a field.
// A single value marshals as a JSON string, several as an array.
type Values []string

// Add appends the non-empty values.
func (v *Values) Add(values ...string) {
	for _, s := range values {
		if s != "" {
			*v = append(*v, s)
		}
	}
}

// First returns the first value, or "" if there is none.
func (v Values) First() string {
	if len(v) == 0 {
		return ""
	}
	return v[0]
}

// MarshalJSON implements json.Marshaler.
func (v Values) MarshalJSON() ([]byte, error) {
	if len(v) == 1 {
		return json.Marshal(v[0])
	}
	return json.Marshal([]string(v))
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Values) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = nil
		v.Add(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*v = Values(list)
	return nil
}

// KeywordSet is an unordered set of keywords.
type KeywordSet map[string]struct{}

// NewKeywordSet returns a set holding the non-empty words.
func NewKeywordSet(words ...string) KeywordSet {
	s := make(KeywordSet, len(words))
	s.Add(words...)
	return s
}

// Add inserts the non-empty words into the set.
func (s KeywordSet) Add(words ...string) {
	for _, w := range words {
		if w != "" {
			s[w] = struct{}{}
		}
	}
}

// Has reports whether word is in the set.
func (s KeywordSet) Has(word string) bool {
	_, ok := s[word]
	return ok
}

// Union returns a new set with the members of s and every other set.
func (s KeywordSet) Union(others ...KeywordSet) KeywordSet {
	out := make(KeywordSet, len(s))
	for w := range s {
		out[w] = struct{}{}
	}
	for _, o := range others {
		for w := range o {
			out[w] = struct{}{}
		}
	}
	return out
}

// Sorted returns the members of the set in lexical order.
func (s KeywordSet) Sorted() []string {
	words := make([]string, 0, len(s))
	for w := range s {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// MarshalJSON implements json.Marshaler. Keywords are emitted sorted so the
// encoding is stable.
func (s KeywordSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *KeywordSet) UnmarshalJSON(data []byte) error {
	var words []string
	if err := json.Unmarshal(data, &words); err != nil {
		return err
	}
	*s = NewKeywordSet(words...)
	return nil
}

// Agent is a person or organization credited as author or publisher.
// Properties other than type, name and url are carried through in Extra.
type Agent struct {
	Type  string
	Name  string
	URL   string
	Extra map[string]any
}

// AgentFromMap builds an Agent from a decoded JSON object. The map is deep
// copied so the Agent never shares state with its source.
func AgentFromMap(m map[string]any) Agent {
	var a Agent
	for k, v := range m {
		switch s, isString := v.(string); {
		case k == "type" && isString:
			a.Type = s
		case k == "name" && isString:
			a.Name = s
		case k == "url" && isString:
			a.URL = s
		default:
			if a.Extra == nil {
				a.Extra = make(map[string]any)
			}
			a.Extra[k] = CloneValue(v)
		}
	}
	return a
}

// Clone returns a deep copy of the agent.
func (a Agent) Clone() Agent {
	out := a
	if a.Extra != nil {
		out.Extra = CloneValue(a.Extra).(map[string]any)
	}
	return out
}

// Map returns the agent as a flat JSON object.
func (a Agent) Map() map[string]any {
	m := make(map[string]any, len(a.Extra)+3)
	for k, v := range a.Extra {
		m[k] = CloneValue(v)
	}
	if a.Type != "" {
		m["type"] = a.Type
	}
	if a.Name != "" {
		m["name"] = a.Name
	}
	if a.URL != "" {
		m["url"] = a.URL
	}
	return m
}

// MarshalJSON implements json.Marshaler.
func (a Agent) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Map())
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Agent) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*a = AgentFromMap(m)
	return nil
}

// CloneValue deep copies a decoded JSON value.
func CloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = CloneValue(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = CloneValue(val)
		}
		return out
	default:
		return v
	}
}
