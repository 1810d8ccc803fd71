// Package scan enumerates regular files under a root directory and produces
// the immutable metadata records the scoring engine consumes. The walk is
// error-tolerant: individual unreadable entries are recorded and skipped,
// never fatal, because an advisory report is allowed to be partial.
package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/harrison/sweep/internal/models"
)

// ErrRootNotFound marks the fatal case of a scan root that does not exist.
var ErrRootNotFound = errors.New("root path does not exist")

// Options configures a directory scan.
type Options struct {
	// Recursive includes subdirectories; otherwise only the root's
	// immediate files are considered.
	Recursive bool

	// MinSize excludes files smaller than this many bytes.
	MinSize int64

	// Exclude holds doublestar glob patterns matched against the
	// slash-normalized path relative to the root. A matching directory is
	// pruned together with everything below it.
	Exclude []string
}

// Skip records one entry the walk could not read and carried on past.
type Skip struct {
	Path string
	Err  error
}

// Result is the outcome of a scan: the records collected in enumeration
// order plus the entries that had to be skipped.
type Result struct {
	Files   []models.FileRecord
	Skipped []Skip
}

// Scan walks root and collects a FileRecord for every regular file passing
// the filters. The root must exist and be a directory; that is the only
// fatal condition. Enumeration order is the deterministic lexical walk
// order, which downstream sorting uses as its tie-break.
func Scan(root string, opts Options) (*Result, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRootNotFound, root)
		}
		return nil, fmt.Errorf("failed to access root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root path is not a directory: %s", root)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %s: %w", root, err)
	}

	for _, pattern := range opts.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	result := &Result{}

	walkErr := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			result.Skipped = append(result.Skipped, Skip{Path: path, Err: err})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if path == absRoot {
			return nil
		}

		rel, relErr := filepath.Rel(absRoot, path)
		if relErr != nil {
			result.Skipped = append(result.Skipped, Skip{Path: path, Err: relErr})
			return nil
		}
		excluded := matchesAny(opts.Exclude, filepath.ToSlash(rel))

		if d.IsDir() {
			if excluded || !opts.Recursive {
				return filepath.SkipDir
			}
			return nil
		}

		if excluded || !d.Type().IsRegular() {
			return nil
		}

		fi, infoErr := d.Info()
		if infoErr != nil {
			result.Skipped = append(result.Skipped, Skip{Path: path, Err: infoErr})
			return nil
		}
		if fi.Size() < opts.MinSize {
			return nil
		}

		result.Files = append(result.Files, newRecord(path, fi))
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", absRoot, walkErr)
	}

	return result, nil
}

func matchesAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// timestamps carries the platform-dependent file times. hasAccess is false
// when the platform (or filesystem) exposes no usable access time.
type timestamps struct {
	created   time.Time
	access    time.Time
	hasAccess bool
}

// newRecord builds the metadata snapshot for one regular file. Timestamps
// and attribute flags come from the platform-specific metadata readers.
func newRecord(path string, fi fs.FileInfo) models.FileRecord {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == base {
		// Dot files like ".profile" have no extension, not an empty name.
		ext = ""
	}
	ts := fileTimes(fi)

	return models.FileRecord{
		Path:          path,
		Name:          strings.TrimSuffix(base, ext),
		Extension:     strings.ToLower(ext),
		Length:        fi.Size(),
		Created:       ts.created,
		LastWrite:     fi.ModTime(),
		LastAccess:    ts.access,
		HasAccessTime: ts.hasAccess,
		Attrs:         fileAttrs(path, fi),
	}
}
