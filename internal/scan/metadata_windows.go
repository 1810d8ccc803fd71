//go:build windows

package scan

import (
	"io/fs"
	"syscall"
	"time"

	"github.com/harrison/sweep/internal/models"
)

// fileTimes reads creation and access times from the Win32 attribute data.
func fileTimes(fi fs.FileInfo) timestamps {
	d, ok := fi.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return timestamps{created: fi.ModTime()}
	}
	return timestamps{
		created:   time.Unix(0, d.CreationTime.Nanoseconds()),
		access:    time.Unix(0, d.LastAccessTime.Nanoseconds()),
		hasAccess: true,
	}
}

// fileAttrs decodes the Windows file attribute bits into structured flags,
// tested directly rather than through string matching.
func fileAttrs(path string, fi fs.FileInfo) models.Attributes {
	d, ok := fi.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return models.Attributes{}
	}
	return models.Attributes{
		System:   d.FileAttributes&syscall.FILE_ATTRIBUTE_SYSTEM != 0,
		Hidden:   d.FileAttributes&syscall.FILE_ATTRIBUTE_HIDDEN != 0,
		ReadOnly: d.FileAttributes&syscall.FILE_ATTRIBUTE_READONLY != 0,
	}
}
