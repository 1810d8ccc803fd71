// Package report renders scored scan results: the console table plus the
// optional CSV, JSON and Markdown exports. No scoring logic lives here;
// the package is purely presentational.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/harrison/sweep/internal/scoring"
)

// Report holds the sorted, truncated result set for one scan together with
// the metadata the exports embed.
type Report struct {
	// ScanID uniquely identifies this run across exported reports.
	ScanID string

	// Root is the absolute scan root.
	Root string

	// Recursive records whether subdirectories were included.
	Recursive bool

	// GeneratedAt is the scan-start timestamp; console age columns are
	// measured against it so they agree with the scored factors.
	GeneratedAt time.Time

	// TotalConsidered is the number of files that passed the filters,
	// before top-N truncation.
	TotalConsidered int

	// TotalBytes is the summed size of every considered file, before
	// top-N truncation.
	TotalBytes int64

	// Files holds the top-N results, highest score first. Ties keep the
	// original enumeration order.
	Files []scoring.ScoredFile
}

// New sorts the scored files by score descending and truncates to top.
// The input slice is not modified. now is the scan-start timestamp.
func New(root string, recursive bool, scored []scoring.ScoredFile, top int, now time.Time) *Report {
	sorted := make([]scoring.ScoredFile, len(scored))
	copy(sorted, scored)

	// Stable sort: equal scores keep their enumeration order.
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Breakdown.Score > sorted[j].Breakdown.Score
	})

	if top > 0 && len(sorted) > top {
		sorted = sorted[:top]
	}

	var totalBytes int64
	for _, sf := range scored {
		totalBytes += sf.Record.Length
	}

	return &Report{
		ScanID:          uuid.NewString(),
		Root:            root,
		Recursive:       recursive,
		GeneratedAt:     now,
		TotalConsidered: len(scored),
		TotalBytes:      totalBytes,
		Files:           sorted,
	}
}

// Columns is the fixed output schema shared by every export format.
var Columns = []string{
	"SafetyScore", "Factors", "FilePath", "Name", "Extension",
	"Length", "SizeHuman", "Created", "LastWrite", "LastAccess", "Attributes",
}

// Row renders one scored file into the schema's string values, identically
// for every format.
func Row(sf scoring.ScoredFile) []string {
	rec := sf.Record

	lastAccess := ""
	if rec.HasAccessTime {
		lastAccess = rec.LastAccess.Format(time.RFC3339)
	}

	return []string{
		fmt.Sprintf("%.2f", sf.Breakdown.Score),
		sf.Breakdown.Rationale(),
		rec.Path,
		rec.Name,
		rec.Extension,
		fmt.Sprintf("%d", rec.Length),
		FormatBytes(rec.Length),
		rec.Created.Format(time.RFC3339),
		rec.LastWrite.Format(time.RFC3339),
		lastAccess,
		rec.Attrs.String(),
	}
}

// FormatBytes renders a byte count with binary prefixes at 1024 steps,
// capped at TB. Values of one KB and above carry two decimals.
func FormatBytes(n int64) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	v := float64(n)
	for _, unit := range []string{"KB", "MB", "GB", "TB"} {
		v /= 1024
		if v < 1024 || unit == "TB" {
			return fmt.Sprintf("%.2f %s", v, unit)
		}
	}
	return fmt.Sprintf("%d B", n)
}
