package normalize

import (
	"strings"

	"github.com/fwojciec/archeion"
)

// NormalizeGitHub turns repository topics into keywords.
func NormalizeGitHub(topics []string) *archeion.Fields {
	f := newFields()
	for _, topic := range topics {
		f.Keywords.Add(strings.TrimSpace(topic))
	}
	return f
}
