// Package slug derives the synthetic keys several resources carry: a
// lowercased token from a human name, or a prefix-plus-timestamp token where
// no natural name exists (receipt numbers).
package slug

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Make lowercases name and collapses runs of non-alphanumeric characters into
// a single '-'. Leading and trailing separators are trimmed.
func Make(name string) string {
	var b strings.Builder
	lastDash := true // suppress a leading dash
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
		} else if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// WithSuffix returns base for attempt 0 and "base-N" for attempt N. The
// collision-retry loop in services walks attempts 0..max.
func WithSuffix(base string, attempt int) string {
	if attempt <= 0 {
		return base
	}
	return base + "-" + strconv.Itoa(attempt)
}

// TimestampToken builds a token for resources with no natural name, combining
// a fixed prefix with the current time in milliseconds.
func TimestampToken(prefix string, now time.Time) string {
	return fmt.Sprintf("%s-%d", prefix, now.UnixMilli())
}
