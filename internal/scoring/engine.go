// Package scoring implements the deletion-safety scoring engine: a weighted
// multi-factor model that converts file metadata into a bounded, explainable
// 0-100 score. Scoring is a pure function of one file record, the precomputed
// stem groups, the configured weights and classification sets, and a single
// scan timestamp captured at run start.
package scoring

import (
	"fmt"
	"strings"
	"time"

	"github.com/harrison/sweep/internal/models"
	"github.com/harrison/sweep/internal/stem"
)

// Weights parameterizes the scoring engine. Values are expressed on a 0-100
// scale; they do not need to sum to anything since the final score is
// min-max normalized against the configured extremes.
type Weights struct {
	Age                 int
	AccessAge           int
	Extension           int
	TempLocation        int
	Redundancy          int
	SizeBonus           int
	RecentWritePenalty  int
	RecentCreatePenalty int
	AttributesPenalty   int
}

// MaxPositive returns the sum of the positive contribution weights.
func (w Weights) MaxPositive() float64 {
	return float64(w.Age + w.AccessAge + w.Extension + w.TempLocation + w.Redundancy + w.SizeBonus)
}

// MaxNegative returns the sum of the penalty weights.
func (w Weights) MaxNegative() float64 {
	return float64(w.RecentWritePenalty + w.RecentCreatePenalty + w.AttributesPenalty)
}

// Classification supplies the extension and location vocabularies the engine
// classifies files with. The lists are explicit configuration data rather
// than package globals so callers can tune them per run.
type Classification struct {
	// SafeExtensions are suffixes of known-disposable files (".tmp", ".log",
	// ".msi.old", ...). Entries may span more than one dot and are matched
	// as case-insensitive suffixes of the full file name.
	SafeExtensions []string

	// RiskyExtensions are suffixes of executables, documents and data stores
	// whose deletion is rarely safe.
	RiskyExtensions []string

	// TempTokens are directory names that mark conventional scratch
	// locations. They are compared against whole path segments, never
	// substrings, so "templates" does not count as "temp".
	TempTokens []string
}

// Breakdown carries every factor value behind one file's score so reports
// can show why a file scored the way it did. Factor values are in [0,1]
// except TempDir which is a 0/1 flag.
type Breakdown struct {
	Age          float64 `json:"age"`
	AccessAge    float64 `json:"access_age"`
	Extension    float64 `json:"extension"`
	TempDir      float64 `json:"temp_dir"`
	Redundancy   float64 `json:"redundancy"`
	GroupSize    int     `json:"group_size"`
	SizeBonus    float64 `json:"size_bonus"`
	RecentWrite  float64 `json:"recent_write_penalty"`
	RecentCreate float64 `json:"recent_create_penalty"`
	AttrPenalty  float64 `json:"attr_penalty"`

	// Score is the min-max normalized safety score in [0,100].
	Score float64 `json:"score"`
}

// Rationale renders the factor values as a semicolon-joined string for the
// Factors report column.
func (b Breakdown) Rationale() string {
	parts := []string{
		fmt.Sprintf("age=%.2f", b.Age),
		fmt.Sprintf("accessAge=%.2f", b.AccessAge),
		fmt.Sprintf("extension=%.2f", b.Extension),
		fmt.Sprintf("tempDir=%d", int(b.TempDir)),
		fmt.Sprintf("redundancy=%.2f (group %d)", b.Redundancy, b.GroupSize),
		fmt.Sprintf("sizeBonus=%.2f", b.SizeBonus),
		fmt.Sprintf("recentWrite=%.2f", b.RecentWrite),
		fmt.Sprintf("recentCreate=%.2f", b.RecentCreate),
		fmt.Sprintf("attrPenalty=%.2f", b.AttrPenalty),
	}
	return strings.Join(parts, "; ")
}

// ScoredFile pairs a file record with its score breakdown.
type ScoredFile struct {
	Record    models.FileRecord
	Breakdown Breakdown
}

// Engine scores file records against one fixed weight and classification
// configuration. The scan timestamp is captured once so every age
// computation within a run is internally consistent.
type Engine struct {
	weights   Weights
	safe      []string
	risky     []string
	tempToken map[string]bool
	now       time.Time
}

// NewEngine creates a scoring engine. Classification entries are lowercased
// once up front; now is the scan-start timestamp all ages are measured from.
func NewEngine(weights Weights, class Classification, now time.Time) *Engine {
	e := &Engine{
		weights:   weights,
		safe:      lowerAll(class.SafeExtensions),
		risky:     lowerAll(class.RiskyExtensions),
		tempToken: make(map[string]bool, len(class.TempTokens)),
		now:       now,
	}
	for _, tok := range class.TempTokens {
		e.tempToken[strings.ToLower(tok)] = true
	}
	return e
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}

// Score computes the full factor breakdown and normalized safety score for
// one record. groups must have been built over the entire batch beforehand.
func (e *Engine) Score(rec models.FileRecord, groups stem.Groups) Breakdown {
	b := Breakdown{
		Age:       e.ageFactor(rec.LastWrite),
		Extension: e.extensionFactor(rec),
		TempDir:   e.tempDirFactor(rec.Path),
		GroupSize: groups.Size(rec),
	}

	if rec.HasAccessTime {
		b.AccessAge = e.ageFactor(rec.LastAccess)
	} else {
		b.AccessAge = b.Age
	}

	b.Redundancy = redundancyFactor(b.GroupSize)
	b.SizeBonus = e.sizeBonusFactor(rec, b)
	b.RecentWrite = e.recencyPenalty(rec.LastWrite)
	b.RecentCreate = e.recencyPenalty(rec.Created)
	b.AttrPenalty = attrPenalty(rec)

	b.Score = e.normalize(b)
	return b
}

// normalize combines the weighted factors and min-max normalizes the raw
// score against the theoretical extremes of the configured weights, keeping
// the result in [0,100] for any non-negative weight mix.
func (e *Engine) normalize(b Breakdown) float64 {
	w := e.weights
	raw := float64(w.Age)*b.Age +
		float64(w.AccessAge)*b.AccessAge +
		float64(w.Extension)*b.Extension +
		float64(w.TempLocation)*b.TempDir +
		float64(w.Redundancy)*b.Redundancy +
		float64(w.SizeBonus)*b.SizeBonus -
		float64(w.RecentWritePenalty)*b.RecentWrite -
		float64(w.RecentCreatePenalty)*b.RecentCreate -
		float64(w.AttributesPenalty)*b.AttrPenalty

	maxPos := w.MaxPositive()
	maxNeg := w.MaxNegative()
	span := maxPos + maxNeg
	if span == 0 {
		// All weights zero: define the score as 0 rather than divide by zero.
		return 0
	}

	score := (raw + maxNeg) / span * 100
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
