package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/archeion"
)

// Ensure LinkParser implements archeion.LinkParser at compile time.
var _ archeion.LinkParser = (*LinkParser)(nil)

// LinkParser lists the anchors of an HTML document, such as a browser
// bookmark export.
type LinkParser struct{}

// NewLinkParser creates a new LinkParser.
func NewLinkParser() *LinkParser {
	return &LinkParser{}
}

// ParseLinks returns the href of every anchor, resolved against baseURL or
// the document's <base href>. Only http and https links are kept.
func (p *LinkParser) ParseLinks(input, baseURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(input))
	if err != nil {
		return nil, archeion.Errorf(archeion.EINVALID, "failed to parse HTML: %v", err)
	}
	base := documentBase(doc, baseURL)

	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		link := resolveURL(base, sel.AttrOr("href", ""))
		if isWebURL(link) {
			links = append(links, link)
		}
	})
	return links, nil
}

func isWebURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}
