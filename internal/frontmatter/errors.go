package frontmatter

import "errors"

var (
	// ErrMissingOpenDelimiter indicates the document does not start with a `---` line.
	ErrMissingOpenDelimiter = errors.New("frontmatter open delimiter missing")

	// ErrMissingCloseDelimiter indicates an opening `---` was found but no closing one.
	ErrMissingCloseDelimiter = errors.New("frontmatter close delimiter missing")

	// ErrInvalidSyntax indicates a metadata line that does not fit the grammar,
	// e.g. a line without a colon or a non-tags key with an empty value.
	ErrInvalidSyntax = errors.New("invalid frontmatter syntax")

	// ErrInvalidBool indicates a draft value that is not true/yes/false/no.
	ErrInvalidBool = errors.New("invalid boolean value")

	// ErrMissingTitle indicates the required title key is absent or empty after trimming.
	ErrMissingTitle = errors.New("missing required key: title")

	// ErrMissingDate indicates the required date key is absent.
	ErrMissingDate = errors.New("missing required key: date")

	// ErrInvalidDate indicates a date literal that is not a valid YYYY-MM-DD calendar date.
	ErrInvalidDate = errors.New("invalid date")
)
