package mock

import "github.com/fwojciec/archeion"

var _ archeion.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of archeion.ContentExtractor.
type ContentExtractor struct {
	ExtractContentFn func(html, baseURL string) (*archeion.Content, error)
}

func (e *ContentExtractor) ExtractContent(html, baseURL string) (*archeion.Content, error) {
	return e.ExtractContentFn(html, baseURL)
}
