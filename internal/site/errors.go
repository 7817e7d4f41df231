package site

import "errors"

var (
	// ErrOutDirEqualsBase indicates the resolved output directory is the base
	// directory itself; cleaning it would destroy the site sources.
	ErrOutDirEqualsBase = errors.New("output directory resolves to the base directory")

	// ErrOutDirEscapesBase indicates the resolved output directory lies outside
	// the base directory, e.g. through a symlinked path component.
	ErrOutDirEscapesBase = errors.New("output directory resolves outside the base directory")

	// ErrOutDirOverlapsPostsDir indicates the output directory is an ancestor,
	// descendant, or equal of the posts directory.
	ErrOutDirOverlapsPostsDir = errors.New("output directory overlaps the posts directory")

	// ErrOutDirOverlapsStaticDir indicates the output directory is an ancestor,
	// descendant, or equal of the static assets directory.
	ErrOutDirOverlapsStaticDir = errors.New("output directory overlaps the static directory")

	// ErrDuplicateSlug indicates two non-draft posts resolved to the same slug.
	// Both contributing documents may be individually valid, which is why this
	// is its own condition rather than a parse error.
	ErrDuplicateSlug = errors.New("duplicate slug")

	// ErrIllegalXMLCharacter indicates feed text containing a code point outside
	// the XML 1.0 character grammar, or invalid UTF-8.
	ErrIllegalXMLCharacter = errors.New("text contains a character not allowed in XML")
)
