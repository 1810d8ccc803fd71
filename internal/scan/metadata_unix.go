//go:build !windows

package scan

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/harrison/sweep/internal/models"
)

// fileAttrs decodes attribute flags on Unix systems. Hidden means a
// dot-prefixed name, ReadOnly means the owner write bit is clear. There is
// no System attribute outside Windows.
func fileAttrs(path string, fi fs.FileInfo) models.Attributes {
	return models.Attributes{
		Hidden:   strings.HasPrefix(filepath.Base(path), "."),
		ReadOnly: fi.Mode().Perm()&0200 == 0,
	}
}
