//go:build linux

package fingerprint

import (
	"io/fs"
	"syscall"
)

// statIdentity extracts the inode and change time when the underlying stat
// source exposes them.
func statIdentity(info fs.FileInfo) (ino uint64, ctime int64, ok bool) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, 0, false
	}
	return st.Ino, st.Ctim.Sec*1e9 + st.Ctim.Nsec, true
}
