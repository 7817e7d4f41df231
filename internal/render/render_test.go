package render

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMarkdown_Heading_RendersHTMLFragment(t *testing.T) {
	out, err := Markdown([]byte("# Hello\n\nSome *text*.\n"))
	require.NoError(t, err)
	require.Contains(t, out, "<h1>Hello</h1>")
	require.Contains(t, out, "<em>text</em>")
}

func TestMarkdown_InvalidUTF8_Rejected(t *testing.T) {
	_, err := Markdown([]byte{0xFF, 0xFE, 'h', 'i'})
	require.ErrorIs(t, err, ErrInvalidUTF8)
}

func TestMarkdown_EmptyInput_RendersEmpty(t *testing.T) {
	out, err := Markdown(nil)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestMarkdown_RepeatedCalls_ShareOneEngine(t *testing.T) {
	for i := 0; i < 3; i++ {
		_, err := Markdown([]byte("text"))
		require.NoError(t, err)
	}
}
