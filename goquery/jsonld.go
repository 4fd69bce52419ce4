package goquery

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// extractJSONLD decodes every application/ld+json script. A top-level array
// contributes one fragment per object. Scripts that still fail to decode
// after cleanup are logged and skipped.
func (e *Extractor) extractJSONLD(doc *goquery.Document) []map[string]any {
	var fragments []map[string]any
	doc.Find("script").Each(func(i int, sel *goquery.Selection) {
		if !isJSONLDScript(sel) {
			return
		}

		payload := cleanJSONLD(sel.Text())
		if payload == "" {
			return
		}

		v, err := decodeJSONLD(payload)
		if err != nil {
			e.logger.Warn("malformed json-ld script", "index", i, "err", err)
			return
		}

		switch t := v.(type) {
		case map[string]any:
			fragments = append(fragments, t)
		case []any:
			for _, item := range t {
				if m, ok := item.(map[string]any); ok {
					fragments = append(fragments, m)
				}
			}
		}
	})
	return fragments
}

// cleanJSONLD removes HTML comment and CDATA wrappers some sites put around
// their JSON-LD payload.
func cleanJSONLD(s string) string {
	s = strings.TrimSpace(s)
	for _, prefix := range []string{"<!--", "//<![CDATA[", "<![CDATA["} {
		s = strings.TrimSpace(strings.TrimPrefix(s, prefix))
	}
	for _, suffix := range []string{"-->", "//]]>", "]]>"} {
		s = strings.TrimSpace(strings.TrimSuffix(s, suffix))
	}
	return s
}

// decodeJSONLD decodes payload. Raw control characters are only legal as
// whitespace outside of strings, so on failure they are replaced with spaces
// and decoding is retried.
func decodeJSONLD(payload string) (any, error) {
	var v any
	err := json.Unmarshal([]byte(payload), &v)
	if err == nil {
		return v, nil
	}

	relaxed := strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == '\t' {
			return ' '
		}
		return r
	}, payload)
	if retryErr := json.Unmarshal([]byte(relaxed), &v); retryErr != nil {
		return nil, err
	}
	return v, nil
}
