package frontmatter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse_MinimalDocument_SplitsMetaAndBody(t *testing.T) {
	input := []byte("---\ntitle: Hello\ndate: 2025-12-01\n---\n# Heading\n\nBody text.\n")

	meta, body, err := Parse(input)
	require.NoError(t, err)
	require.Equal(t, "Hello", meta.Title)
	require.Equal(t, "2025-12-01", meta.DateRaw)
	require.Equal(t, CalendarDate{Year: 2025, Month: 12, Day: 1}, meta.Date)
	require.Equal(t, []byte("# Heading\n\nBody text.\n"), body)
}

func TestParse_NoOpeningDelimiter_ReturnsError(t *testing.T) {
	_, _, err := Parse([]byte("title: Hello\n"))
	require.ErrorIs(t, err, ErrMissingOpenDelimiter)
}

func TestParse_EmptyInput_ReturnsMissingOpenDelimiter(t *testing.T) {
	_, _, err := Parse(nil)
	require.ErrorIs(t, err, ErrMissingOpenDelimiter)
}

func TestParse_NoClosingDelimiter_ReturnsError(t *testing.T) {
	_, _, err := Parse([]byte("---\ntitle: Hello\ndate: 2025-12-01\n"))
	require.ErrorIs(t, err, ErrMissingCloseDelimiter)
}

func TestParse_BOMBeforeDelimiter_IsSkipped(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("---\ntitle: T\ndate: 2025-01-02\n---\nbody")...)

	meta, body, err := Parse(input)
	require.NoError(t, err)
	require.Equal(t, "T", meta.Title)
	require.Equal(t, []byte("body"), body)
}

func TestParse_CRLFAndPaddedDelimiters_AreAccepted(t *testing.T) {
	input := []byte("  ---  \r\ntitle: T\r\ndate: 2025-01-02\r\n\t---\r\nbody\r\n")

	meta, body, err := Parse(input)
	require.NoError(t, err)
	require.Equal(t, "T", meta.Title)
	require.Equal(t, []byte("body\r\n"), body)
}

func TestParse_EmptyMetadataBlock_FailsOnMissingTitle(t *testing.T) {
	_, _, err := Parse([]byte("---\n---\nbody\n"))
	require.ErrorIs(t, err, ErrMissingTitle)
}

func TestParse_MissingDate_ReturnsError(t *testing.T) {
	_, _, err := Parse([]byte("---\ntitle: T\n---\n"))
	require.ErrorIs(t, err, ErrMissingDate)
}

func TestParse_QuotedEmptyTitle_ReturnsMissingTitle(t *testing.T) {
	_, _, err := Parse([]byte("---\ntitle: \"  \"\ndate: 2025-01-02\n---\n"))
	require.ErrorIs(t, err, ErrMissingTitle)
}

func TestParse_LineWithoutColon_ReturnsInvalidSyntax(t *testing.T) {
	_, _, err := Parse([]byte("---\ntitle: T\nnot a key value line\ndate: 2025-01-02\n---\n"))
	require.ErrorIs(t, err, ErrInvalidSyntax)
}

func TestParse_EmptyValueOnNonTagsKey_ReturnsInvalidSyntax(t *testing.T) {
	_, _, err := Parse([]byte("---\ntitle: T\ndescription:\ndate: 2025-01-02\n---\n"))
	require.ErrorIs(t, err, ErrInvalidSyntax)
}

func TestParse_BlankLinesAndComments_AreIgnored(t *testing.T) {
	input := []byte("---\n\n# a comment\ntitle: T\n\ndate: 2025-01-02\n# trailing\n---\n")

	meta, _, err := Parse(input)
	require.NoError(t, err)
	require.Equal(t, "T", meta.Title)
}

func TestParse_TrailingComment_IsStripped(t *testing.T) {
	meta, _, err := Parse([]byte("---\ntitle: Real Title # the comment\ndate: 2025-01-02\n---\n"))
	require.NoError(t, err)
	require.Equal(t, "Real Title", meta.Title)
}

func TestParse_HashInsideQuotedScalar_Survives(t *testing.T) {
	meta, _, err := Parse([]byte("---\ntitle: \"Issue #42 fixed\" # note\ndate: 2025-01-02\n---\n"))
	require.NoError(t, err)
	require.Equal(t, "Issue #42 fixed", meta.Title)
}

func TestParse_SingleQuotedScalar_QuotesStripped(t *testing.T) {
	meta, _, err := Parse([]byte("---\ntitle: 'Quoted: yes'\ndate: 2025-01-02\n---\n"))
	require.NoError(t, err)
	require.Equal(t, "Quoted: yes", meta.Title)
}

func TestParse_InlineTagsList_DecodedInOrder(t *testing.T) {
	meta, _, err := Parse([]byte("---\ntitle: T\ndate: 2025-01-02\ntags: [go, 'static sites', go]\n---\n"))
	require.NoError(t, err)
	require.Equal(t, []string{"go", "static sites", "go"}, meta.Tags)
}

func TestParse_InlineTagsList_EmptyItemsDropped(t *testing.T) {
	meta, _, err := Parse([]byte("---\ntitle: T\ndate: 2025-01-02\ntags: [a, , '', b]\n---\n"))
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, meta.Tags)
}

func TestParse_BlockTagsList_CollectsItemsUntilNonDashLine(t *testing.T) {
	input := []byte("---\ntitle: T\ntags:\n- one\n- two\ndate: 2025-01-02\n---\n")

	meta, _, err := Parse(input)
	require.NoError(t, err)
	require.Equal(t, []string{"one", "two"}, meta.Tags)
	require.Equal(t, "2025-01-02", meta.DateRaw)
}

func TestParse_EmptyBlockTagsList_IsAccepted(t *testing.T) {
	meta, _, err := Parse([]byte("---\ntitle: T\ntags:\ndate: 2025-01-02\n---\n"))
	require.NoError(t, err)
	require.Empty(t, meta.Tags)
}

func TestParse_DuplicateTagsKeys_KeepAppending(t *testing.T) {
	input := []byte("---\ntitle: T\ntags:\n- a\ntags: [b]\ndate: 2025-01-02\n---\n")

	meta, _, err := Parse(input)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, meta.Tags)
}

func TestParse_DraftValues_Decoded(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"TRUE", true},
		{"yes", true},
		{"Yes", true},
		{"false", false},
		{"no", false},
		{"NO", false},
	}
	for _, tc := range cases {
		meta, _, err := Parse([]byte("---\ntitle: T\ndate: 2025-01-02\ndraft: " + tc.value + "\n---\n"))
		require.NoError(t, err, "value %q", tc.value)
		require.Equal(t, tc.want, meta.Draft, "value %q", tc.value)
	}
}

func TestParse_BadDraftValue_ReturnsInvalidBool(t *testing.T) {
	_, _, err := Parse([]byte("---\ntitle: T\ndate: 2025-01-02\ndraft: maybe\n---\n"))
	require.ErrorIs(t, err, ErrInvalidBool)
}

func TestParse_UnrecognizedKeys_AreIgnored(t *testing.T) {
	meta, _, err := Parse([]byte("---\ntitle: T\ndate: 2025-01-02\nauthor: someone\n---\n"))
	require.NoError(t, err)
	require.Equal(t, "T", meta.Title)
}

func TestParse_ExplicitSlugAndDescription_Captured(t *testing.T) {
	meta, _, err := Parse([]byte("---\ntitle: T\ndate: 2025-01-02\nslug: my-post\ndescription: 'a summary'\n---\n"))
	require.NoError(t, err)
	require.Equal(t, "my-post", meta.Slug)
	require.Equal(t, "a summary", meta.Description)
}

func TestParse_BodyIsSliceOfInput_NoCopy(t *testing.T) {
	input := []byte("---\ntitle: T\ndate: 2025-01-02\n---\nbody here")

	_, body, err := Parse(input)
	require.NoError(t, err)
	require.Equal(t, "body here", string(body))
	// The body aliases the input buffer.
	input[len(input)-1] = 'X'
	require.Equal(t, "body herX", string(body))
}

func TestParse_InvalidDate_WrapsInvalidDate(t *testing.T) {
	for _, lit := range []string{"2025-13-01", "2025-02-30", "2025-1-01", "20251201", "2025-12-0a"} {
		_, _, err := Parse([]byte("---\ntitle: T\ndate: " + lit + "\n---\n"))
		require.True(t, errors.Is(err, ErrInvalidDate), "literal %q", lit)
	}
}
