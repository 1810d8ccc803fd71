package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
)

// Score bands for console coloring: high scores are plausible cleanup
// candidates (green), mid scores need a look (yellow), low scores should be
// left alone (red).
const (
	bandSafe   = 70.0
	bandReview = 40.0
)

// RenderTable writes the console table for the report, followed by a scan
// summary footer. Column values match the exported schema; the table shows
// the columns that fit a terminal and leaves the full set to the exports.
func RenderTable(w io.Writer, rep *Report, elapsed time.Duration, useColor bool) {
	fmt.Fprintf(w, "%-8s  %-10s  %-8s  %-5s  %-22s  %s\n",
		"SCORE", "SIZE", "AGE(D)", "GROUP", "ATTRIBUTES", "PATH")
	fmt.Fprintln(w, strings.Repeat("-", 80))

	for _, sf := range rep.Files {
		rec := sf.Record
		ageDays := int(rep.GeneratedAt.Sub(rec.LastWrite).Hours() / 24)
		if ageDays < 0 {
			ageDays = 0
		}

		score := fmt.Sprintf("%-8.2f", sf.Breakdown.Score)
		if useColor {
			score = scoreColor(sf.Breakdown.Score).Sprint(score)
		}

		fmt.Fprintf(w, "%s  %-10s  %-8d  %-5d  %-22s  %s\n",
			score,
			FormatBytes(rec.Length),
			ageDays,
			sf.Breakdown.GroupSize,
			rec.Attrs.String(),
			rec.Path)
	}

	fmt.Fprintf(w, "\nShowing %d of %d file(s) considered (%s) under %s in %s\n",
		len(rep.Files), rep.TotalConsidered, FormatBytes(rep.TotalBytes),
		rep.Root, elapsed.Round(time.Millisecond))
}

func scoreColor(score float64) *color.Color {
	switch {
	case score >= bandSafe:
		return color.New(color.FgGreen)
	case score >= bandReview:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}
