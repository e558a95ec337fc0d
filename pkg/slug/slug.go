// Package slug derives URL-safe identifiers from travel plan titles.
package slug

import (
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Make lowercases the title, drops punctuation and collapses whitespace runs
// into single hyphens.
func Make(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case unicode.IsSpace(r) || r == '-' || r == '_':
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// WithStamp appends a base36 timestamp so a colliding slug becomes unique
// without a second round trip.
func WithStamp(base string, now time.Time) string {
	return base + "-" + strconv.FormatInt(now.UnixMilli(), 36)
}
