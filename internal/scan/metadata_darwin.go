//go:build darwin

package scan

import (
	"io/fs"
	"syscall"
	"time"
)

// fileTimes reads access and birth times from the stat structure. macOS
// records a real creation (birth) time.
func fileTimes(fi fs.FileInfo) timestamps {
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return timestamps{created: fi.ModTime()}
	}
	return timestamps{
		created:   time.Unix(st.Birthtimespec.Sec, st.Birthtimespec.Nsec),
		access:    time.Unix(st.Atimespec.Sec, st.Atimespec.Nsec),
		hasAccess: true,
	}
}
