// Package frontmatter parses the restricted YAML-like metadata block at the
// start of a post document.
//
// The dialect is deliberately line-oriented and much narrower than YAML: a
// `---` delimited block of `key: value` lines, `#` comments, quoted scalars,
// and a tags list in either inline (`tags: [a, b]`) or block form. Anything
// outside that grammar is rejected with a specific error rather than guessed
// at, which keeps malformed posts diagnosable.
package frontmatter

import (
	"bytes"
	"fmt"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Meta holds the typed fields of one post's frontmatter.
type Meta struct {
	Title       string
	Date        CalendarDate
	DateRaw     string
	Description string
	Tags        []string
	Draft       bool
	Slug        string
}

// Parse splits src into frontmatter and body and decodes the metadata block.
//
// The returned body is a sub-slice of src; it stays valid as long as src does
// and requires no copy. src itself is never modified.
func Parse(src []byte) (Meta, []byte, error) {
	data := bytes.TrimPrefix(src, utf8BOM)

	sc := lineScanner{src: data}
	first, ok := sc.next()
	if !ok || string(trimLine(first)) != "---" {
		return Meta{}, nil, ErrMissingOpenDelimiter
	}

	var metaLines [][]byte
	closed := false
	for {
		line, ok := sc.next()
		if !ok {
			break
		}
		if string(trimLine(line)) == "---" {
			closed = true
			break
		}
		metaLines = append(metaLines, line)
	}
	if !closed {
		return Meta{}, nil, ErrMissingCloseDelimiter
	}
	body := data[sc.off:]

	meta, err := decodeMeta(metaLines)
	if err != nil {
		return Meta{}, nil, err
	}
	return meta, body, nil
}

// lineScanner yields lines of src without their trailing newline, tracking the
// byte offset so the caller can slice out the body after the closing delimiter.
type lineScanner struct {
	src []byte
	off int
}

func (s *lineScanner) next() ([]byte, bool) {
	if s.off >= len(s.src) {
		return nil, false
	}
	i := bytes.IndexByte(s.src[s.off:], '\n')
	if i < 0 {
		line := s.src[s.off:]
		s.off = len(s.src)
		return line, true
	}
	line := s.src[s.off : s.off+i]
	s.off += i + 1
	return line, true
}

// trimLine strips a trailing \r and surrounding horizontal whitespace.
func trimLine(line []byte) []byte {
	line = bytes.TrimSuffix(line, []byte{'\r'})
	return bytes.Trim(line, " \t")
}

// parseState is the two-state machine of the metadata grammar: normal
// key/value lines versus the dash-item continuation of an open tags list.
type parseState int

const (
	stateNormal parseState = iota
	stateTagsList
)

func decodeMeta(lines [][]byte) (Meta, error) {
	var m Meta
	var haveDate bool

	state := stateNormal
	for _, raw := range lines {
		line := string(trimLine(raw))

		if state == stateTagsList {
			if strings.HasPrefix(line, "-") {
				item := decodeScalar(strings.TrimSpace(stripComment(strings.TrimSpace(line[1:]))))
				if item != "" {
					m.Tags = append(m.Tags, item)
				}
				continue
			}
			// Not a dash item: the list ends and the line is reprocessed below.
			state = stateNormal
		}

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.IndexByte(line, ':')
		if idx < 0 {
			return Meta{}, fmt.Errorf("%w: no key separator in line %q", ErrInvalidSyntax, line)
		}
		key := strings.TrimSpace(line[:idx])
		rest := strings.TrimSpace(line[idx+1:])

		if rest == "" {
			// A key with no value is only legal as the tags list introducer.
			// Duplicate tags introducers simply keep appending.
			if key == "tags" {
				state = stateTagsList
				continue
			}
			return Meta{}, fmt.Errorf("%w: key %q has empty value", ErrInvalidSyntax, key)
		}

		value := strings.TrimSpace(stripComment(rest))
		if err := assignField(&m, &haveDate, key, value); err != nil {
			return Meta{}, err
		}
	}

	if strings.TrimSpace(m.Title) == "" {
		return Meta{}, ErrMissingTitle
	}
	if !haveDate {
		return Meta{}, ErrMissingDate
	}
	return m, nil
}

func assignField(m *Meta, haveDate *bool, key, value string) error {
	switch key {
	case "title":
		m.Title = decodeScalar(value)
	case "date":
		lit := decodeScalar(value)
		d, err := ParseDate(lit)
		if err != nil {
			return err
		}
		m.Date = d
		m.DateRaw = lit
		*haveDate = true
	case "description":
		m.Description = decodeScalar(value)
	case "draft":
		b, err := decodeBool(decodeScalar(value))
		if err != nil {
			return err
		}
		m.Draft = b
	case "slug":
		m.Slug = decodeScalar(value)
	case "tags":
		m.Tags = append(m.Tags, decodeTagsValue(value)...)
	default:
		// Unrecognized keys are ignored.
	}
	return nil
}

// decodeTagsValue decodes a non-empty tags value: an inline `[a, b, c]` list,
// or a bare scalar treated as a single tag.
func decodeTagsValue(value string) []string {
	if !strings.HasPrefix(value, "[") || !strings.HasSuffix(value, "]") {
		if item := decodeScalar(value); item != "" {
			return []string{item}
		}
		return nil
	}
	inner := value[1 : len(value)-1]
	var tags []string
	for _, part := range strings.Split(inner, ",") {
		item := decodeScalar(strings.TrimSpace(part))
		if item != "" {
			tags = append(tags, item)
		}
	}
	return tags
}

func decodeBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "yes":
		return true, nil
	case "false", "no":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrInvalidBool, s)
	}
}

// decodeScalar strips one pair of matching surrounding quotes. No escape
// processing happens beyond that.
func decodeScalar(s string) string {
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

// stripComment removes a trailing `# comment` from a value. The marker only
// counts when it is preceded by horizontal whitespace and not inside an open
// quote, so a `#` inside a quoted scalar survives.
func stripComment(s string) string {
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote == 0 && (c == '\'' || c == '"'):
			quote = c
		case quote != 0 && c == quote:
			quote = 0
		case quote == 0 && c == '#' && i > 0 && (s[i-1] == ' ' || s[i-1] == '\t'):
			return strings.TrimRight(s[:i], " \t")
		}
	}
	return s
}
