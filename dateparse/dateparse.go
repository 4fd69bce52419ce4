// Package dateparse parses publication timestamps found in page metadata.
// Strict ISO-8601 layouts are tried first; other unambiguous formats fall
// back to github.com/araddon/dateparse.
package dateparse

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/fwojciec/archeion"
)

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Parse parses s as an ISO-8601 timestamp. Values without a zone are UTC.
// Returns EINVALID if s is not a recognizable timestamp.
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, archeion.Errorf(archeion.EINVALID, "empty timestamp")
	}

	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	t, err := dateparse.ParseStrict(s)
	if err != nil {
		return time.Time{}, archeion.Errorf(archeion.EINVALID, "invalid timestamp %q", s)
	}
	return t, nil
}
