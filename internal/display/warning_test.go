package display

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWarningDisplayFullBlock(t *testing.T) {
	w := Warning{
		Title:      "no files matched the scan filters",
		Message:    "nothing at or above 4096 byte(s) was found under /data",
		Paths:      []string{"/data"},
		Suggestion: "lower --min-size or add --recursive",
	}

	var sb strings.Builder
	w.Display(&sb, false)

	out := sb.String()
	assert.Contains(t, out, "Warning: no files matched the scan filters")
	assert.Contains(t, out, "nothing at or above 4096 byte(s)")
	assert.Contains(t, out, "Affected path:")
	assert.Contains(t, out, "1. /data")
	assert.Contains(t, out, "Suggestion: lower --min-size")
	assert.NotContains(t, out, "\x1b[", "plain output must carry no ANSI codes")
}

func TestWarningDisplayTitleOnly(t *testing.T) {
	var sb strings.Builder
	Warning{Title: "empty scan"}.Display(&sb, false)

	assert.Equal(t, "Warning: empty scan\n", sb.String())
}

func TestWarningDisplayPluralPaths(t *testing.T) {
	var sb strings.Builder
	Warning{Title: "t", Paths: []string{"/a", "/b"}}.Display(&sb, false)

	assert.Contains(t, sb.String(), "Affected paths:")
}
