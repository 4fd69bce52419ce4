package archeion

// Content is the main content of a captured page with navigation, footers
// and other boilerplate removed.
type Content struct {
	// Title is the page title found by the extractor.
	Title string

	// ContentHTML is the main content as clean HTML.
	ContentHTML string
}

// ContentExtractor extracts the main content of a captured DOM. It feeds
// the markdown post-processor.
type ContentExtractor interface {
	// ExtractContent returns the main content of html. baseURL resolves
	// relative links and may be empty.
	ExtractContent(html, baseURL string) (*Content, error)
}
