// Package etree reads RSS and Atom feeds using github.com/beevik/etree.
package etree

import (
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/archeion"
)

// Ensure FeedParser implements archeion.LinkParser at compile time.
var _ archeion.LinkParser = (*FeedParser)(nil)

// FeedParser lists the entry links of RSS 2.0, RSS 1.0 (RDF) and Atom feeds.
type FeedParser struct{}

// NewFeedParser creates a new FeedParser.
func NewFeedParser() *FeedParser {
	return &FeedParser{}
}

// ParseLinks returns the link of every item or entry in the feed.
// Returns EINVALID if input is not well-formed XML or not a feed.
func (p *FeedParser) ParseLinks(input, baseURL string) ([]string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(strings.TrimSpace(input)); err != nil {
		return nil, archeion.Errorf(archeion.EINVALID, "failed to parse feed XML: %v", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, archeion.Errorf(archeion.EINVALID, "empty feed XML")
	}

	var links []string
	switch root.Tag {
	case "rss":
		if channel := root.SelectElement("channel"); channel != nil {
			links = itemLinks(channel)
		}
	case "RDF":
		links = itemLinks(root)
	case "feed":
		links = entryLinks(root)
	default:
		return nil, archeion.Errorf(archeion.EINVALID, "unsupported feed root <%s>", root.Tag)
	}

	return resolve(links, baseURL), nil
}

// itemLinks reads <item><link> elements. An item without a link falls back
// to a permalink guid.
func itemLinks(parent *etree.Element) []string {
	var links []string
	for _, item := range parent.SelectElements("item") {
		if link := item.SelectElement("link"); link != nil {
			if s := strings.TrimSpace(link.Text()); s != "" {
				links = append(links, s)
				continue
			}
		}
		guid := item.SelectElement("guid")
		if guid == nil || strings.EqualFold(guid.SelectAttrValue("isPermaLink", "true"), "false") {
			continue
		}
		if s := strings.TrimSpace(guid.Text()); s != "" {
			links = append(links, s)
		}
	}
	return links
}

// entryLinks reads the alternate link of each Atom entry. A link without a
// rel attribute is an alternate link.
func entryLinks(feed *etree.Element) []string {
	var links []string
	for _, entry := range feed.SelectElements("entry") {
		for _, link := range entry.SelectElements("link") {
			if link.SelectAttrValue("rel", "alternate") != "alternate" {
				continue
			}
			if href := strings.TrimSpace(link.SelectAttrValue("href", "")); href != "" {
				links = append(links, href)
				break
			}
		}
	}
	return links
}

func resolve(links []string, baseURL string) []string {
	base, err := url.Parse(baseURL)
	if err != nil || !base.IsAbs() {
		return links
	}
	out := make([]string, 0, len(links))
	for _, link := range links {
		ref, err := url.Parse(link)
		if err != nil {
			continue
		}
		out = append(out, base.ResolveReference(ref).String())
	}
	return out
}
