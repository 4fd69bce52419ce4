package archeion

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms a captured DOM into Markdown. Relative links are
	// resolved against baseURL when it is not empty.
	Convert(html, baseURL string) (string, error)
}
