// Package render wraps the Markdown renderer used for post bodies.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// ErrInvalidUTF8 indicates a post body that is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("markdown input is not valid UTF-8")

var (
	markdownOnce sync.Once
	markdown     goldmark.Markdown
)

// engine returns the process-wide Markdown engine, initialized exactly once.
func engine() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdown = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		)
	})
	return markdown
}

// Markdown converts a Markdown body into an HTML fragment.
//
// Invalid UTF-8 input is rejected up front; goldmark would otherwise replace
// bad sequences silently, and a corrupted source file should fail the build
// for that post instead.
func Markdown(src []byte) (string, error) {
	if !utf8.Valid(src) {
		return "", ErrInvalidUTF8
	}
	var buf bytes.Buffer
	if err := engine().Convert(src, &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}
