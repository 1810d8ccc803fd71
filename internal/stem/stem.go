// Package stem groups files by a normalized name stem so that runs of
// similarly-named copies (report_backup, report_old, report_v2, ...) can be
// detected without comparing file contents.
package stem

import (
	"regexp"
	"strings"

	"github.com/harrison/sweep/internal/models"
)

// suffixPattern matches one trailing disposability token preceded by a
// separator. Requiring the separator keeps ordinary words intact: "catalog"
// must not lose its "log" and "templates" is not a "temp".
var suffixPattern = regexp.MustCompile(`(?i)[ ._-](copy|backup|bak|old|temp|tmp|log|v[0-9]+)$`)

// Normalize derives the grouping stem for a base name (without extension).
// One recognized trailing token is stripped, case-insensitively, and the
// result is lowercased. A name that is nothing but a token keeps itself as
// its own stem so unrelated "backup" and "temp" files do not collapse into
// one group.
func Normalize(name string) string {
	lower := strings.ToLower(name)
	trimmed := suffixPattern.ReplaceAllString(lower, "")
	trimmed = strings.TrimRight(trimmed, " ._-")
	if trimmed == "" {
		return lower
	}
	return trimmed
}

// Groups maps a normalized stem to the records sharing it, in enumeration
// order. It is built once over the whole batch before scoring so that group
// sizes reflect the full scan, then read-only.
type Groups map[string][]models.FileRecord

// Build constructs the stem group map for a batch of records.
func Build(records []models.FileRecord) Groups {
	groups := make(Groups)
	for _, rec := range records {
		s := Normalize(rec.Name)
		groups[s] = append(groups[s], rec)
	}
	return groups
}

// Size returns the number of records sharing the given record's stem.
// A record that was never added reports a group of size zero.
func (g Groups) Size(rec models.FileRecord) int {
	return len(g[Normalize(rec.Name)])
}
