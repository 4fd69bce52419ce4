package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// extractMetaGroups groups meta tags by the prefix of their property or name
// attribute. Unprefixed names land in the "html" group together with the
// document title; "twitter:creator:id" lands in "twitter" as "creator:id".
// A later tag with the same name replaces an earlier one.
func extractMetaGroups(doc *goquery.Document) map[string]map[string]string {
	groups := map[string]map[string]string{
		"html": {"title": strings.TrimSpace(doc.Find("title").First().Text())},
	}

	doc.Find("meta").Each(func(_ int, sel *goquery.Selection) {
		name, ok := sel.Attr("property")
		if !ok {
			name, ok = sel.Attr("name")
		}
		if !ok {
			return
		}
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			return
		}

		group, tag, found := strings.Cut(name, ":")
		if !found {
			group, tag = "html", name
		}
		if groups[group] == nil {
			groups[group] = make(map[string]string)
		}
		groups[group][tag] = sel.AttrOr("content", "")
	})

	return groups
}
