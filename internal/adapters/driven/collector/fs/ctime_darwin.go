//go:build darwin

package fs

import (
	"io/fs"
	"syscall"
	"time"
)

// changeTime returns the inode change time when the platform exposes
// one, falling back to the modification time otherwise.
func changeTime(info fs.FileInfo) time.Time {
	if stat, ok := info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(int64(stat.Ctimespec.Sec), int64(stat.Ctimespec.Nsec))
	}
	return info.ModTime()
}
