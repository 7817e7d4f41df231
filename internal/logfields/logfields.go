package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID     = "build_id"
	KeyPost        = "post"
	KeySlug        = "slug"
	KeyPath        = "path"
	KeyDir         = "dir"
	KeyPosts       = "posts"
	KeyDurationMS  = "duration_ms"
	KeyFingerprint = "fingerprint"
	KeyError       = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Post(name string) slog.Attr      { return slog.String(KeyPost, name) }
func Slug(s string) slog.Attr         { return slog.String(KeySlug, s) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Dir(d string) slog.Attr          { return slog.String(KeyDir, d) }
func Posts(n int) slog.Attr           { return slog.Int(KeyPosts, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Fingerprint(fp uint64) slog.Attr { return slog.Uint64(KeyFingerprint, fp) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
