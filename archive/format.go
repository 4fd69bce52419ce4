package archive

import (
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/archeion"
)

// ComputeHash computes a hash of the content using xxhash.
func ComputeHash(content []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(content))
}

// FormatMarkdown prefixes converted page content with YAML frontmatter
// describing the link.
func FormatMarkdown(link *archeion.Link, content string, archived time.Time) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(link.URL)
	b.WriteString("\ntitle: ")
	b.WriteString(link.Title)
	if link.LDType != "" {
		b.WriteString("\ntype: ")
		b.WriteString(link.LDType)
	}
	b.WriteString("\narchived: ")
	b.WriteString(archived.Format("2006-01-02"))
	b.WriteString("\n---\n\n")
	b.WriteString(content)
	return b.String()
}

// TruncateURL shortens a URL for display, keeping the end which is more informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}
