package normalize

import (
	"strings"

	"github.com/fwojciec/archeion"
)

// NormalizeHTML normalizes the plain meta tags of a document.
func NormalizeHTML(frag map[string]string) *archeion.Fields {
	f := newFields()
	f.Headline.Add(strings.TrimSpace(frag["title"]))
	f.Description.Add(strings.TrimSpace(frag["description"]))
	f.Keywords.Add(splitKeywords(frag["keywords"])...)
	if author := strings.TrimSpace(frag["author"]); author != "" {
		f.Author = append(f.Author, archeion.Agent{Type: archeion.TypePerson, Name: author})
	}
	return f
}
