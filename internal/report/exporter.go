package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/harrison/sweep/internal/filelock"
)

// Export format names.
const (
	FormatCSV      = "csv"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// ExportError reports a failure writing one export target. Each format is
// independent: one failing export never blocks the others.
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("%s export to %s failed: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// Exporter serializes a report into one output format.
type Exporter interface {
	Export(rep *Report) (string, error)
}

// NewExporter returns the exporter for a format name.
func NewExporter(format string) (Exporter, error) {
	switch format {
	case FormatCSV:
		return &CSVExporter{}, nil
	case FormatJSON:
		return &JSONExporter{Pretty: true}, nil
	case FormatMarkdown:
		return &MarkdownExporter{}, nil
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}

// ExportToFile serializes the report and writes it to path under an
// exclusive lock with an atomic rename.
func ExportToFile(rep *Report, format, path string) error {
	exporter, err := NewExporter(format)
	if err != nil {
		return &ExportError{Format: format, Path: path, Err: err}
	}

	content, err := exporter.Export(rep)
	if err != nil {
		return &ExportError{Format: format, Path: path, Err: err}
	}

	if err := filelock.LockAndWrite(path, []byte(content)); err != nil {
		return &ExportError{Format: format, Path: path, Err: err}
	}

	return nil
}

// CSVExporter writes the full schema as RFC 4180 CSV with a header row.
type CSVExporter struct{}

// Export renders the report as CSV.
func (e *CSVExporter) Export(rep *Report) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write(Columns); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, sf := range rep.Files {
		if err := w.Write(Row(sf)); err != nil {
			return "", fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush CSV: %w", err)
	}
	return sb.String(), nil
}

// JSONExporter writes the report as one JSON document with scan metadata
// and the typed record fields.
type JSONExporter struct {
	Pretty bool
}

type jsonRecord struct {
	SafetyScore float64 `json:"safety_score"`
	Factors     string  `json:"factors"`
	FilePath    string  `json:"file_path"`
	Name        string  `json:"name"`
	Extension   string  `json:"extension"`
	Length      int64   `json:"length"`
	SizeHuman   string  `json:"size_human"`
	Created     string  `json:"created"`
	LastWrite   string  `json:"last_write"`
	LastAccess  string  `json:"last_access,omitempty"`
	Attributes  string  `json:"attributes"`
}

type jsonDocument struct {
	ScanID          string       `json:"scan_id"`
	Root            string       `json:"root"`
	Recursive       bool         `json:"recursive"`
	GeneratedAt     time.Time    `json:"generated_at"`
	TotalConsidered int          `json:"total_considered"`
	Shown           int          `json:"shown"`
	Files           []jsonRecord `json:"files"`
}

// Export renders the report as JSON.
func (e *JSONExporter) Export(rep *Report) (string, error) {
	doc := jsonDocument{
		ScanID:          rep.ScanID,
		Root:            rep.Root,
		Recursive:       rep.Recursive,
		GeneratedAt:     rep.GeneratedAt,
		TotalConsidered: rep.TotalConsidered,
		Shown:           len(rep.Files),
		Files:           make([]jsonRecord, 0, len(rep.Files)),
	}

	for _, sf := range rep.Files {
		row := Row(sf)
		doc.Files = append(doc.Files, jsonRecord{
			// Rounded to two decimals to match the string formats.
			SafetyScore: math.Round(sf.Breakdown.Score*100) / 100,
			Factors:     row[1],
			FilePath:    row[2],
			Name:        row[3],
			Extension:   row[4],
			Length:      sf.Record.Length,
			SizeHuman:   row[6],
			Created:     row[7],
			LastWrite:   row[8],
			LastAccess:  row[9],
			Attributes:  row[10],
		})
	}

	var data []byte
	var err error
	if e.Pretty {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

// MarkdownExporter writes a Markdown document with a summary header and one
// table row per file. Cell values are escaped so arbitrary paths cannot
// break the table markup.
type MarkdownExporter struct{}

// Export renders the report as Markdown.
func (e *MarkdownExporter) Export(rep *Report) (string, error) {
	var sb strings.Builder

	sb.WriteString("# Deletion Safety Report\n\n")
	sb.WriteString(fmt.Sprintf("- **Scan ID**: %s\n", rep.ScanID))
	sb.WriteString(fmt.Sprintf("- **Root**: %s\n", escapeMarkdown(rep.Root)))
	sb.WriteString(fmt.Sprintf("- **Recursive**: %t\n", rep.Recursive))
	sb.WriteString(fmt.Sprintf("- **Generated**: %s\n", rep.GeneratedAt.Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("- **Files considered**: %d\n", rep.TotalConsidered))
	sb.WriteString(fmt.Sprintf("- **Files shown**: %d\n", len(rep.Files)))
	sb.WriteString("\n")

	sb.WriteString("| " + strings.Join(Columns, " | ") + " |\n")
	sb.WriteString("|" + strings.Repeat("---|", len(Columns)) + "\n")

	for _, sf := range rep.Files {
		cells := Row(sf)
		escaped := make([]string, len(cells))
		for i, c := range cells {
			escaped[i] = escapeMarkdown(c)
		}
		sb.WriteString("| " + strings.Join(escaped, " | ") + " |\n")
	}

	return sb.String(), nil
}

// escapeMarkdown neutralizes the characters that would break out of a
// Markdown table cell or trigger inline formatting inside one.
func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "`", "\\`")
	s = strings.ReplaceAll(s, "_", `\_`)
	s = strings.ReplaceAll(s, "*", `\*`)
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return s
}
