package site

import "strings"

// Slugify derives a URL-safe slug from any byte string.
//
// Lower-case ASCII letters and digits pass through, upper-case letters are
// lowered, and every other byte collapses into at most one dash: runs of
// non-alphanumerics become a single dash, leading dashes are dropped, and a
// trailing dash is trimmed. An empty result falls back to "post" so the
// function is total. Slugify is idempotent.
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pendingDash := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z':
			c += 'a' - 'A'
			fallthrough
		case c >= 'a' && c <= 'z' || c >= '0' && c <= '9':
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteByte(c)
		default:
			pendingDash = true
		}
	}
	if b.Len() == 0 {
		return "post"
	}
	return b.String()
}
