//go:build !linux && !darwin && !windows

package scan

import "io/fs"

// fileTimes falls back to the modification time on platforms without a
// known stat layout. No access time is reported; the scoring engine
// substitutes the write-age factor in that case.
func fileTimes(fi fs.FileInfo) timestamps {
	return timestamps{created: fi.ModTime()}
}
