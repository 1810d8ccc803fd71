// Package models defines the core data structures shared across the sweep
// scanning pipeline: file metadata snapshots and attribute flags.
package models

import (
	"strings"
	"time"
)

// Attributes holds the decoded filesystem attribute flags for a file.
// On Windows these map directly to the file attribute bits; on Unix systems
// Hidden means a dot-prefixed name and ReadOnly means no owner write bit.
// System is only ever set on Windows.
type Attributes struct {
	System   bool
	Hidden   bool
	ReadOnly bool
}

// String returns a comma-joined list of set flags, or "-" when none are set.
func (a Attributes) String() string {
	var flags []string
	if a.System {
		flags = append(flags, "System")
	}
	if a.Hidden {
		flags = append(flags, "Hidden")
	}
	if a.ReadOnly {
		flags = append(flags, "ReadOnly")
	}
	if len(flags) == 0 {
		return "-"
	}
	return strings.Join(flags, ",")
}

// FileRecord is an immutable snapshot of one filesystem entry taken during
// enumeration. It is created once per scan and never mutated afterwards.
type FileRecord struct {
	// Path is the absolute path of the file.
	Path string

	// Name is the base name without its extension.
	Name string

	// Extension is the lowercased extension including the leading dot,
	// or empty when the file has none.
	Extension string

	// Length is the file size in bytes.
	Length int64

	// Created is the creation timestamp. On platforms without a birth
	// time it holds the closest available approximation (see internal/scan).
	Created time.Time

	// LastWrite is the last modification timestamp.
	LastWrite time.Time

	// LastAccess is the last access timestamp. Only meaningful when
	// HasAccessTime is true; some platforms and mount options do not
	// record access times.
	LastAccess time.Time

	// HasAccessTime reports whether LastAccess carries real metadata.
	HasAccessTime bool

	// Attrs holds the decoded attribute flags.
	Attrs Attributes
}
