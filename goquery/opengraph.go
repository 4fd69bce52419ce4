package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/archeion"
)

// openGraphNamespaces are the prefixes recognized without a prefix declaration.
var openGraphNamespaces = map[string]string{
	"og":      "http://ogp.me/ns#",
	"fb":      "http://www.facebook.com/2008/fbml",
	"article": "http://ogp.me/ns/article#",
	"book":    "http://ogp.me/ns/book#",
	"music":   "http://ogp.me/ns/music#",
	"profile": "http://ogp.me/ns/profile#",
	"video":   "http://ogp.me/ns/video#",
	"website": "http://ogp.me/ns/website#",
}

// extractOpenGraph collects the property meta tags whose prefix is a known
// OpenGraph namespace, a namespace declared in a prefix attribute, or
// twitter. Returns nil when the document has none.
func extractOpenGraph(doc *goquery.Document) *archeion.OpenGraphItem {
	declared := declaredPrefixes(doc)
	item := &archeion.OpenGraphItem{
		Namespace: make(map[string]string),
	}

	doc.Find("meta[property]").Each(func(_ int, sel *goquery.Selection) {
		prop := strings.TrimSpace(sel.AttrOr("property", ""))
		prefix, _, found := strings.Cut(prop, ":")
		if !found {
			return
		}

		if uri, ok := declared[prefix]; ok {
			item.Namespace[prefix] = uri
		} else if uri, ok := openGraphNamespaces[prefix]; ok {
			item.Namespace[prefix] = uri
		} else if prefix != "twitter" {
			return
		}

		item.Properties = append(item.Properties, archeion.OpenGraphProperty{
			Tag:   prop,
			Value: sel.AttrOr("content", ""),
		})
	})

	if len(item.Properties) == 0 {
		return nil
	}
	return item
}

// declaredPrefixes parses RDFa prefix attributes on html and head, e.g.
// prefix="og: http://ogp.me/ns# fb: http://ogp.me/ns/fb#".
func declaredPrefixes(doc *goquery.Document) map[string]string {
	prefixes := make(map[string]string)
	doc.Find("html[prefix], head[prefix]").Each(func(_ int, sel *goquery.Selection) {
		fields := strings.Fields(sel.AttrOr("prefix", ""))
		for i := 0; i+1 < len(fields); i++ {
			name, ok := strings.CutSuffix(fields[i], ":")
			if !ok || name == "" {
				continue
			}
			prefixes[name] = fields[i+1]
			i++
		}
	})
	return prefixes
}
