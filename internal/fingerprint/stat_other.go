//go:build !linux

package fingerprint

import "io/fs"

// statIdentity reports no extra identity on platforms where the stat source
// is not portable; size and mtime still cover metadata changes.
func statIdentity(_ fs.FileInfo) (ino uint64, ctime int64, ok bool) {
	return 0, 0, false
}
