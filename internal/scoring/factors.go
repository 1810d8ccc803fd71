package scoring

import (
	"strings"
	"time"

	"github.com/harrison/sweep/internal/models"
)

const (
	// staleDays is the age at which the age factors saturate.
	staleDays = 180

	// sizeBonusMinBytes and sizeBonusMinAgeDays gate the large-file bonus.
	sizeBonusMinBytes   = 100 * 1024 * 1024
	sizeBonusMinAgeDays = 90
)

// ageFactor maps days since the given timestamp onto [0,1], saturating at
// staleDays. Timestamps in the future clamp to 0.
func (e *Engine) ageFactor(t time.Time) float64 {
	days := e.daysSince(t)
	if days <= 0 {
		return 0
	}
	if days >= staleDays {
		return 1
	}
	return days / staleDays
}

func (e *Engine) daysSince(t time.Time) float64 {
	return e.now.Sub(t).Hours() / 24
}

// extensionFactor classifies the file suffix: 1 for known-disposable, 0 for
// known-risky, 0.4 otherwise. Entries are matched as suffixes of the full
// lowercased name so multi-dot entries like ".msi.old" work.
func (e *Engine) extensionFactor(rec models.FileRecord) float64 {
	full := strings.ToLower(rec.Name + rec.Extension)
	for _, ext := range e.safe {
		if strings.HasSuffix(full, ext) {
			return 1
		}
	}
	for _, ext := range e.risky {
		if strings.HasSuffix(full, ext) {
			return 0
		}
	}
	return 0.4
}

// tempDirFactor returns 1 when any path segment equals a temp-location
// token. Comparison is against whole segments, so directory names that
// merely contain a token (e.g. "templates") do not match. Both separator
// styles are split on, which keeps reports over foreign path spellings sane.
func (e *Engine) tempDirFactor(path string) float64 {
	segments := strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	for _, seg := range segments {
		if e.tempToken[strings.ToLower(seg)] {
			return 1
		}
	}
	return 0
}

// redundancyFactor rewards membership in a run of similarly-named files:
// a lone file scores 0, ten or more stem-mates saturate at 1.
func redundancyFactor(groupSize int) float64 {
	if groupSize <= 1 {
		return 0
	}
	f := float64(groupSize-1) / 9
	if f > 1 {
		return 1
	}
	return f
}

// sizeBonusFactor nudges large stale artifacts upward, but only when the
// file already looks plausibly safe by type or location. Without the gate a
// large but sensitive file would be flagged on size alone.
func (e *Engine) sizeBonusFactor(rec models.FileRecord, b Breakdown) float64 {
	if rec.Length < sizeBonusMinBytes {
		return 0
	}
	if e.daysSince(rec.LastWrite) < sizeBonusMinAgeDays {
		return 0
	}
	if b.Extension < 0.4 {
		return 0
	}
	if b.TempDir != 1 && b.Extension != 1 {
		return 0
	}
	sizeMB := float64(rec.Length) / (1024 * 1024)
	f := (sizeMB - 100) / 900
	if f > 1 {
		return 1
	}
	return f
}

// recencyPenalty flags recently-touched timestamps: 1 inside a week, 0.5
// inside a month, 0 beyond that.
func (e *Engine) recencyPenalty(t time.Time) float64 {
	days := e.daysSince(t)
	switch {
	case days < 7:
		return 1
	case days < 30:
		return 0.5
	default:
		return 0
	}
}

// attrPenalty sums the attribute signals that mark a file as an OS or
// application dependency, capped at 1.
func attrPenalty(rec models.FileRecord) float64 {
	var p float64
	if rec.Attrs.System {
		p += 0.7
	}
	if rec.Attrs.Hidden {
		p += 0.2
	}
	if rec.Attrs.ReadOnly {
		p += 0.2
	}
	if rec.Extension == ".dll" || rec.Extension == ".sys" {
		p += 0.5
	}
	if p > 1 {
		return 1
	}
	return p
}
