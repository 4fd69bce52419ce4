package mock

import "github.com/fwojciec/archeion"

var _ archeion.LinkParser = (*LinkParser)(nil)

// LinkParser is a mock implementation of archeion.LinkParser.
type LinkParser struct {
	ParseLinksFn func(input, baseURL string) ([]string, error)
}

func (p *LinkParser) ParseLinks(input, baseURL string) ([]string, error) {
	return p.ParseLinksFn(input, baseURL)
}
