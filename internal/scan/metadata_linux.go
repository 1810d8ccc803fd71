//go:build linux

package scan

import (
	"io/fs"
	"syscall"
	"time"
)

// fileTimes reads access and creation times from the stat structure. Linux
// exposes no birth time through syscall.Stat_t, so the inode change time
// stands in for creation; it is never later than any genuine creation event
// we could observe.
func fileTimes(fi fs.FileInfo) timestamps {
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return timestamps{created: fi.ModTime()}
	}
	return timestamps{
		created:   time.Unix(st.Ctim.Sec, st.Ctim.Nsec),
		access:    time.Unix(st.Atim.Sec, st.Atim.Nsec),
		hasAccess: true,
	}
}
