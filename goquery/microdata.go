package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/archeion"
	"golang.org/x/net/html"
)

// extractMicrodata returns every top-level microdata item, i.e. every
// itemscope element that is not itself the value of an itemprop.
func extractMicrodata(doc *goquery.Document, base *url.URL) []*archeion.MicrodataItem {
	var items []*archeion.MicrodataItem
	doc.Find("[itemscope]").Each(func(_ int, sel *goquery.Selection) {
		if _, isProp := sel.Attr("itemprop"); isProp {
			return
		}
		items = append(items, readItem(sel.Get(0), base))
	})
	return items
}

func readItem(n *html.Node, base *url.URL) *archeion.MicrodataItem {
	item := &archeion.MicrodataItem{
		Properties: make(map[string]any),
	}
	if types := strings.Fields(attr(n, "itemtype")); len(types) > 0 {
		item.Type = types[0]
	}
	item.ID = strings.TrimSpace(attr(n, "itemid"))

	readProperties(n, base, item.Properties)
	return item
}

// readProperties walks the descendants of n that belong to its scope.
// Elements carrying their own itemscope are values, not containers, so the
// walk does not descend into them.
func readProperties(n *html.Node, base *url.URL, props map[string]any) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if names, ok := attrOK(c, "itemprop"); ok {
			value := propertyValue(c, base)
			for _, name := range strings.Fields(names) {
				addProperty(props, name, value)
			}
		}
		if !hasAttr(c, "itemscope") {
			readProperties(c, base, props)
		}
	}
}

func addProperty(props map[string]any, name string, value any) {
	existing, ok := props[name]
	if !ok {
		props[name] = value
		return
	}
	if list, isList := existing.([]any); isList {
		props[name] = append(list, value)
		return
	}
	props[name] = []any{existing, value}
}

// propertyValue returns the value of an itemprop element following the
// microdata rules for each element type.
func propertyValue(n *html.Node, base *url.URL) any {
	if hasAttr(n, "itemscope") {
		return readItem(n, base)
	}

	switch n.Data {
	case "meta":
		return attr(n, "content")
	case "audio", "embed", "iframe", "img", "source", "track", "video":
		return resolveURL(base, attr(n, "src"))
	case "a", "area", "link":
		return resolveURL(base, attr(n, "href"))
	case "object":
		return resolveURL(base, attr(n, "data"))
	case "data", "meter":
		return attr(n, "value")
	case "time":
		if dt, ok := attrOK(n, "datetime"); ok {
			return dt
		}
	}
	return strings.Join(strings.Fields(textContent(n)), " ")
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func attrOK(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func attr(n *html.Node, key string) string {
	v, _ := attrOK(n, key)
	return v
}

func hasAttr(n *html.Node, key string) bool {
	_, ok := attrOK(n, key)
	return ok
}
