// Package parse turns archive input documents into lists of URLs.
package parse

import (
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/fwojciec/archeion"
)

// Ensure Chain and TextParser implement archeion.LinkParser at compile time.
var (
	_ archeion.LinkParser = (*Chain)(nil)
	_ archeion.LinkParser = (*TextParser)(nil)
)

// Chain tries parsers in order and returns the links of the first one that
// finds any.
type Chain struct {
	parsers []archeion.LinkParser
	logger  *slog.Logger
}

// Option configures a Chain.
type Option func(*Chain)

// WithLogger sets the logger used to report parsers that reject the input.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Chain) {
		c.logger = logger
	}
}

// NewChain creates a Chain over parsers.
func NewChain(parsers []archeion.LinkParser, opts ...Option) *Chain {
	c := &Chain{
		parsers: parsers,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ParseLinks returns the deduplicated links found by the first parser with
// a non-empty result. Empty input yields no links. Returns EINVALID if no
// parser finds a link.
func (c *Chain) ParseLinks(input, baseURL string) ([]string, error) {
	if strings.TrimSpace(input) == "" {
		return nil, nil
	}
	for _, p := range c.parsers {
		links, err := p.ParseLinks(input, baseURL)
		if err != nil {
			c.logger.Debug("link parser rejected input", "error", err)
			continue
		}
		if links = dedupe(links); len(links) > 0 {
			return links, nil
		}
	}
	return nil, archeion.Errorf(archeion.EINVALID, "no links found in input")
}

func dedupe(links []string) []string {
	seen := make(map[string]bool, len(links))
	out := links[:0:0]
	for _, link := range links {
		if link == "" || seen[link] {
			continue
		}
		seen[link] = true
		out = append(out, link)
	}
	return out
}

// urlPattern matches http and https URLs up to whitespace, quotes, angle
// brackets, parentheses or square brackets.
var urlPattern = regexp.MustCompile(`(?i)https?://[^\s\[\]()<>"']+`)

// TextParser finds URLs anywhere in plain text, one or many per line.
type TextParser struct{}

// NewTextParser creates a new TextParser.
func NewTextParser() *TextParser {
	return &TextParser{}
}

// ParseLinks returns every URL in input. Trailing sentence punctuation is
// not part of a URL. baseURL is unused.
func (p *TextParser) ParseLinks(input, _ string) ([]string, error) {
	var links []string
	for _, match := range urlPattern.FindAllString(input, -1) {
		link := strings.TrimRight(match, ".,;:!?")
		if u, err := url.Parse(link); err == nil && u.Host != "" {
			links = append(links, link)
		}
	}
	return links, nil
}
