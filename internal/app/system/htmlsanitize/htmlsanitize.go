// Package htmlsanitize strips markup from free-text request fields.
//
// Group descriptions and move reasons arrive as arbitrary strings from
// the admin UI and end up rendered elsewhere, so they are cleaned on
// the way in rather than trusted on the way out.
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Clean removes all HTML from s and trims surrounding whitespace.
// Plain text passes through unchanged.
//
// StrictPolicy entity-escapes the text it keeps, so the output is
// unescaped afterwards: the stored value is plain text, not HTML, and
// an apostrophe or ampersand must survive the round trip.
func Clean(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}
