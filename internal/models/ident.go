package models

import (
	"strings"
	"unicode"
)

// DefaultID derives a URL-safe identifier from a display name: lowercase,
// with every run of non-alphanumeric characters collapsed into a single
// hyphen ("My Badge" -> "my-badge"). It is the default identifier for
// entities whose callers do not supply one; it does not guarantee
// uniqueness, the create operations do.
func DefaultID(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	pendingHyphen := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		} else {
			pendingHyphen = true
		}
	}

	return b.String()
}
