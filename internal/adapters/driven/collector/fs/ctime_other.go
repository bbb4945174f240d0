//go:build !linux && !darwin

package fs

import (
	"io/fs"
	"time"
)

// changeTime falls back to the modification time on platforms where
// the inode change time is not exposed through os.FileInfo.
func changeTime(info fs.FileInfo) time.Time {
	return info.ModTime()
}
