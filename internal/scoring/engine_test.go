package scoring

import (
	"fmt"
	"testing"
	"time"

	"github.com/harrison/sweep/internal/models"
	"github.com/harrison/sweep/internal/stem"
	"github.com/stretchr/testify/assert"
)

var scanTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func defaultWeights() Weights {
	return Weights{
		Age:                 30,
		AccessAge:           10,
		Extension:           15,
		TempLocation:        10,
		Redundancy:          15,
		SizeBonus:           5,
		RecentWritePenalty:  10,
		RecentCreatePenalty: 10,
		AttributesPenalty:   10,
	}
}

func defaultClassification() Classification {
	return Classification{
		SafeExtensions: []string{
			".tmp", ".temp", ".log", ".bak", ".old", ".chk", ".dmp",
			".err", ".cache", ".msi.old",
		},
		RiskyExtensions: []string{
			".exe", ".dll", ".sys", ".ocx", ".drv", ".dat", ".db",
			".pst", ".xls", ".xlsx", ".doc", ".docx", ".pdf",
		},
		TempTokens: []string{
			"temp", "tmp", "cache", "caches", "log", "logs", "crash",
			"minidump", "reports", "report", "backups", "bak",
		},
	}
}

// daysAgo returns a timestamp the given number of days before the scan time.
func daysAgo(days float64) time.Time {
	return scanTime.Add(-time.Duration(days * 24 * float64(time.Hour)))
}

func record(path string, days float64) models.FileRecord {
	return recordSized(path, days, 1024)
}

func recordSized(path string, days float64, size int64) models.FileRecord {
	name, ext := splitName(path)
	return models.FileRecord{
		Path:          path,
		Name:          name,
		Extension:     ext,
		Length:        size,
		Created:       daysAgo(days),
		LastWrite:     daysAgo(days),
		LastAccess:    daysAgo(days),
		HasAccessTime: true,
	}
}

func splitName(path string) (string, string) {
	base := path
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			base = path[i+1:]
			break
		}
	}
	for i := len(base) - 1; i >= 0; i-- {
		if base[i] == '.' {
			return base[:i], base[i:]
		}
	}
	return base, ""
}

func TestStaleSafeFileScoresNearMaximum(t *testing.T) {
	rec := record("/var/logs/app.log", 200)
	engine := NewEngine(defaultWeights(), defaultClassification(), scanTime)

	b := engine.Score(rec, stem.Build([]models.FileRecord{rec}))

	assert.Equal(t, 1.0, b.Age)
	assert.Equal(t, 1.0, b.AccessAge)
	assert.Equal(t, 1.0, b.Extension)
	assert.Equal(t, 1.0, b.TempDir)
	assert.Equal(t, 0.0, b.Redundancy)
	assert.Equal(t, 0.0, b.RecentWrite)
	assert.Equal(t, 0.0, b.RecentCreate)
	assert.Equal(t, 0.0, b.AttrPenalty)

	// raw = 30+10+15+10 = 65; normalized = (65+30)/115*100
	assert.InDelta(t, 82.6087, b.Score, 0.001)
}

func TestFreshSystemDLLScoresNearMinimum(t *testing.T) {
	rec := record("/windows/system32/core.dll", 1)
	rec.Attrs = models.Attributes{System: true, Hidden: true, ReadOnly: true}
	engine := NewEngine(defaultWeights(), defaultClassification(), scanTime)

	b := engine.Score(rec, stem.Build([]models.FileRecord{rec}))

	assert.Equal(t, 0.0, b.Extension)
	assert.Equal(t, 1.0, b.RecentWrite)
	assert.Equal(t, 1.0, b.RecentCreate)
	assert.Equal(t, 1.0, b.AttrPenalty)
	assert.Less(t, b.Score, 1.0)
}

func TestScoreStaysInRangeForAnyWeights(t *testing.T) {
	weightSets := []Weights{
		defaultWeights(),
		{Age: 100, AccessAge: 100, Extension: 100, TempLocation: 100, Redundancy: 100, SizeBonus: 100, RecentWritePenalty: 100, RecentCreatePenalty: 100, AttributesPenalty: 100},
		{Age: 1},
		{AttributesPenalty: 100},
		{RecentWritePenalty: 50, RecentCreatePenalty: 50},
		{SizeBonus: 100, Redundancy: 3},
	}

	records := []models.FileRecord{
		record("/var/logs/huge.log", 400),
		record("/home/user/docs/thesis.pdf", 0.5),
		recordSized("/data/cache/blob.cache", 365, 5*1024*1024*1024),
		record("/windows/system32/core.sys", 1),
		record("/home/user/report_backup.txt", 60),
	}
	records[3].Attrs = models.Attributes{System: true, Hidden: true, ReadOnly: true}
	groups := stem.Build(records)

	for i, w := range weightSets {
		engine := NewEngine(w, defaultClassification(), scanTime)
		for _, rec := range records {
			b := engine.Score(rec, groups)
			assert.GreaterOrEqual(t, b.Score, 0.0, fmt.Sprintf("weight set %d, %s", i, rec.Path))
			assert.LessOrEqual(t, b.Score, 100.0, fmt.Sprintf("weight set %d, %s", i, rec.Path))
		}
	}
}

func TestAllZeroWeightsYieldZero(t *testing.T) {
	engine := NewEngine(Weights{}, defaultClassification(), scanTime)
	rec := record("/var/logs/app.log", 400)

	b := engine.Score(rec, stem.Build([]models.FileRecord{rec}))

	assert.Equal(t, 0.0, b.Score)
}

func TestRedundancyGroupOfTenSaturates(t *testing.T) {
	names := []string{
		"report", "report_backup", "report_old", "report_copy", "report_v2",
		"report_v3", "report_bak", "report_tmp", "report_temp", "report_log",
	}
	var records []models.FileRecord
	for _, n := range names {
		records = append(records, record("/data/"+n+".txt", 60))
	}
	groups := stem.Build(records)
	engine := NewEngine(defaultWeights(), defaultClassification(), scanTime)

	for _, rec := range records {
		b := engine.Score(rec, groups)
		assert.Equal(t, 1.0, b.Redundancy, rec.Path)
		assert.Equal(t, 10, b.GroupSize, rec.Path)
	}

	lone := record("/data/notes.txt", 60)
	b := engine.Score(lone, stem.Build(append(records, lone)))
	assert.Equal(t, 0.0, b.Redundancy)
}

func TestAccessAgeFallsBackToWriteAge(t *testing.T) {
	rec := record("/var/logs/app.log", 90)
	rec.HasAccessTime = false
	rec.LastAccess = time.Time{}
	engine := NewEngine(defaultWeights(), defaultClassification(), scanTime)

	b := engine.Score(rec, stem.Build([]models.FileRecord{rec}))

	assert.Equal(t, b.Age, b.AccessAge)
	assert.InDelta(t, 0.5, b.AccessAge, 0.001)
}

func TestSizeBonusRequiresEligibility(t *testing.T) {
	engine := NewEngine(defaultWeights(), defaultClassification(), scanTime)

	// 500MB, 120 days old, risky extension, outside any temp directory:
	// size and age alone must not trigger the bonus.
	risky := recordSized("/home/user/game.exe", 120, 500*1024*1024)
	b := engine.Score(risky, stem.Build([]models.FileRecord{risky}))
	assert.Equal(t, 0.0, b.SizeBonus)

	// Same size and age under a log directory with a safe extension.
	safe := recordSized("/var/logs/big.log", 120, 500*1024*1024)
	b = engine.Score(safe, stem.Build([]models.FileRecord{safe}))
	assert.InDelta(t, 400.0/900.0, b.SizeBonus, 0.001)

	// Neutral extension outside a temp location: location gate fails.
	neutral := recordSized("/home/user/archive.tar", 120, 500*1024*1024)
	b = engine.Score(neutral, stem.Build([]models.FileRecord{neutral}))
	assert.Equal(t, 0.0, b.SizeBonus)

	// Neutral extension inside a temp location qualifies.
	neutralTemp := recordSized("/home/user/cache/archive.tar", 120, 500*1024*1024)
	b = engine.Score(neutralTemp, stem.Build([]models.FileRecord{neutralTemp}))
	assert.InDelta(t, 400.0/900.0, b.SizeBonus, 0.001)

	// Too young.
	young := recordSized("/var/logs/new.log", 30, 500*1024*1024)
	b = engine.Score(young, stem.Build([]models.FileRecord{young}))
	assert.Equal(t, 0.0, b.SizeBonus)

	// Too small.
	small := recordSized("/var/logs/small.log", 120, 50*1024*1024)
	b = engine.Score(small, stem.Build([]models.FileRecord{small}))
	assert.Equal(t, 0.0, b.SizeBonus)

	// Saturates at 1TB-ish sizes.
	huge := recordSized("/var/logs/huge.log", 120, 2*1024*1024*1024*1024)
	b = engine.Score(huge, stem.Build([]models.FileRecord{huge}))
	assert.Equal(t, 1.0, b.SizeBonus)
}

func TestRationaleListsEveryFactor(t *testing.T) {
	rec := record("/var/logs/app.log", 200)
	engine := NewEngine(defaultWeights(), defaultClassification(), scanTime)
	b := engine.Score(rec, stem.Build([]models.FileRecord{rec}))

	r := b.Rationale()
	for _, part := range []string{
		"age=", "accessAge=", "extension=", "tempDir=", "redundancy=",
		"(group 1)", "sizeBonus=", "recentWrite=", "recentCreate=", "attrPenalty=",
	} {
		assert.Contains(t, r, part)
	}
}
