// Package readability provides an archeion.ContentExtractor backed by
// go-readability.
package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/archeion"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements archeion.ContentExtractor at compile time.
var _ archeion.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractContent processes raw HTML and returns the article content.
func (e *Extractor) ExtractContent(rawHTML, baseURL string) (*archeion.Content, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, archeion.Errorf(archeion.EINVALID, "empty HTML input")
	}

	var pageURL *url.URL
	if u, err := url.Parse(baseURL); err == nil && u.IsAbs() {
		pageURL = u
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), pageURL)
	if err != nil {
		return nil, err
	}

	return &archeion.Content{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
