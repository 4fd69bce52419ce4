// Package goquery extracts per-schema metadata fragments from HTML using
// github.com/PuerkitoBio/goquery.
package goquery

import (
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/archeion"
)

// Ensure Extractor implements archeion.MetadataExtractor at compile time.
var _ archeion.MetadataExtractor = (*Extractor)(nil)

// Extractor parses an HTML document into JSON-LD, microdata, OpenGraph,
// HTML meta, Twitter card and GitHub topic fragments.
type Extractor struct {
	logger *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger used to report malformed fragments.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses rawHTML and returns the fragments of every schema.
// Style elements and scripts other than JSON-LD are removed first so that
// embedded CSS and JavaScript cannot produce false matches.
func (e *Extractor) Extract(rawHTML, baseURL string) (*archeion.RawMetadata, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(strings.ReplaceAll(rawHTML, "\x00", "")))
	if err != nil {
		return nil, archeion.Errorf(archeion.EINVALID, "failed to parse HTML: %v", err)
	}

	stripExcessElements(doc)
	base := documentBase(doc, baseURL)

	raw := &archeion.RawMetadata{
		JSONLD:    e.extractJSONLD(doc),
		Microdata: extractMicrodata(doc, base),
		GitHub:    extractGitHubTopics(doc),
	}

	if og := extractOpenGraph(doc); og != nil {
		raw.OpenGraph = []*archeion.OpenGraphItem{og}
	}

	groups := extractMetaGroups(doc)
	raw.HTML = []map[string]string{groups["html"]}
	if twitter, ok := groups["twitter"]; ok {
		raw.Twitter = []map[string]string{twitter}
	}

	return raw, nil
}

// StripExcessElements removes style elements and every script that is not
// JSON-LD, and returns the re-rendered document.
func StripExcessElements(rawHTML string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", archeion.Errorf(archeion.EINVALID, "failed to parse HTML: %v", err)
	}
	stripExcessElements(doc)
	return doc.Html()
}

// Cleaner is a content extractor that keeps the whole document and only
// strips styles and non JSON-LD scripts.
type Cleaner struct{}

// Ensure Cleaner implements archeion.ContentExtractor at compile time.
var _ archeion.ContentExtractor = (*Cleaner)(nil)

// NewCleaner creates a new Cleaner.
func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// ExtractContent returns the stripped document along with its <title>.
func (c *Cleaner) ExtractContent(rawHTML, _ string) (*archeion.Content, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, archeion.Errorf(archeion.EINVALID, "empty HTML input")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, archeion.Errorf(archeion.EINVALID, "failed to parse HTML: %v", err)
	}
	stripExcessElements(doc)
	out, err := doc.Html()
	if err != nil {
		return nil, err
	}
	return &archeion.Content{
		Title:       strings.TrimSpace(doc.Find("title").First().Text()),
		ContentHTML: out,
	}, nil
}

func stripExcessElements(doc *goquery.Document) {
	doc.Find("style").Remove()
	doc.Find("script").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		return !isJSONLDScript(sel)
	}).Remove()
}

func isJSONLDScript(sel *goquery.Selection) bool {
	typ, ok := sel.Attr("type")
	return ok && strings.EqualFold(strings.TrimSpace(typ), "application/ld+json")
}

// documentBase returns the URL that relative references resolve against:
// baseURL when it is absolute, otherwise the document's <base href>.
// Returns nil if neither is usable.
func documentBase(doc *goquery.Document, baseURL string) *url.URL {
	if u, err := url.Parse(baseURL); err == nil && u.IsAbs() {
		return u
	}
	if href, ok := doc.Find("base[href]").First().Attr("href"); ok {
		if u, err := url.Parse(strings.TrimSpace(href)); err == nil && u.IsAbs() {
			return u
		}
	}
	return nil
}

// resolveURL resolves href against base. The href is returned trimmed but
// otherwise unchanged when base is nil or href cannot be parsed.
func resolveURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if base == nil || href == "" {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
