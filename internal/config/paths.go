package config

import (
	"errors"
	"fmt"
	"strings"
)

// PathRole identifies which configured path a violation belongs to, so error
// messages can point at the offending config field.
type PathRole string

const (
	RoleOutputDir    PathRole = "output"
	RolePostsDir     PathRole = "posts"
	RoleStaticDir    PathRole = "static"
	RoleTemplatesDir PathRole = "templates"
)

var (
	ErrPathEmpty          = errors.New("path must be non-empty")
	ErrPathIsDot          = errors.New("path must not be \".\"")
	ErrPathMustBeRelative = errors.New("path must be relative")
	ErrPathBadCharacter   = errors.New("path must not contain NUL or backslash characters")
	ErrPathContainsDotDot = errors.New("path must not contain a \"..\" segment")
)

// PathError is a path-safety violation for one configured path role. It
// unwraps to one of the ErrPath... sentinels.
type PathError struct {
	Role   PathRole
	Path   string
	Reason error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s dir path %q: %v", e.Role, e.Path, e.Reason)
}

func (e *PathError) Unwrap() error { return e.Reason }

// CheckRelativePath applies the syntactic path-safety rules: non-empty, not
// ".", relative, no NUL or backslash bytes, no ".." segment. These checks run
// before any path touches the filesystem.
func CheckRelativePath(role PathRole, path string) error {
	reason := checkPathSyntax(path)
	if reason == nil {
		return nil
	}
	return &PathError{Role: role, Path: path, Reason: reason}
}

func checkPathSyntax(path string) error {
	switch {
	case path == "":
		return ErrPathEmpty
	case path == ".":
		return ErrPathIsDot
	case strings.HasPrefix(path, "/"):
		return ErrPathMustBeRelative
	case strings.ContainsAny(path, "\x00\\"):
		return ErrPathBadCharacter
	}
	for _, seg := range strings.Split(path, "/") {
		if seg == ".." {
			return ErrPathContainsDotDot
		}
	}
	return nil
}
