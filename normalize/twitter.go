package normalize

import (
	"strings"

	"github.com/fwojciec/archeion"
)

const twitterURL = "https://twitter.com/"

// NormalizeTwitter normalizes the twitter: meta tags of a document. Creator
// and site handles become agents linking to the Twitter profile.
func NormalizeTwitter(frag map[string]string) *archeion.Fields {
	f := newFields()
	f.Headline.Add(strings.TrimSpace(frag["title"]))
	f.Description.Add(strings.TrimSpace(frag["description"]))
	f.Source.Add(strings.TrimSpace(frag["url"]))

	if handle := firstHandle(frag, "creator", "creator:id"); handle != "" {
		f.Author = append(f.Author, archeion.Agent{Type: archeion.TypePerson, URL: twitterURL + handle})
	}
	if handle := firstHandle(frag, "site", "site:id"); handle != "" {
		f.Publisher = append(f.Publisher, archeion.Agent{Type: archeion.TypeOrganization, URL: twitterURL + handle})
	}
	return f
}

func firstHandle(frag map[string]string, keys ...string) string {
	for _, k := range keys {
		if h := strings.ReplaceAll(strings.TrimSpace(frag[k]), "@", ""); h != "" {
			return h
		}
	}
	return ""
}
