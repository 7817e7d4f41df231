package site

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// EscapeHTML escapes the five HTML-significant characters in user-controlled
// text. Apostrophe becomes the numeric entity, which is valid in all HTML
// contexts.
func EscapeHTML(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&#39;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// EscapeXML escapes text for the feed document after validating that every
// code point is legal per the XML 1.0 character grammar. A disallowed code
// point or invalid UTF-8 is a build error, not a silent drop.
func EscapeXML(s string) (string, error) {
	var b strings.Builder
	b.Grow(len(s))
	for i, r := range s {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(s[i:]); size <= 1 {
				return "", fmt.Errorf("%w: invalid UTF-8 at byte %d", ErrIllegalXMLCharacter, i)
			}
		}
		if !isXMLChar(r) {
			return "", fmt.Errorf("%w: U+%04X at byte %d", ErrIllegalXMLCharacter, r, i)
		}
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&apos;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

// isXMLChar reports whether r is a Char per XML 1.0: tab, LF, CR, and the
// printable planes excluding surrogates and the two final noncharacters.
func isXMLChar(r rune) bool {
	switch {
	case r == 0x09 || r == 0x0A || r == 0x0D:
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= 0x10FFFF:
		return true
	}
	return false
}
