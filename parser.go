package archeion

// LinkParser finds the URLs listed in an input document such as a bookmark
// export, a feed or a plain list.
type LinkParser interface {
	// ParseLinks returns the absolute URLs in input, in document order.
	// baseURL resolves relative references and may be empty. Returns
	// EINVALID if input is not in the parser's format.
	ParseLinks(input, baseURL string) ([]string, error)
}
