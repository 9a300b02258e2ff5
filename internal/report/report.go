// Package report exports supply tables as CSV, XLSX or PDF.
package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"supply-curves/internal/analysis"
	"supply-curves/internal/curve"
	"supply-curves/internal/model"
)

// Table is the per-year table of one curve.
type Table struct {
	Name   string
	Label  string
	Policy model.PolicyKind
	Rows   []analysis.Row
}

// Bundle is everything one export contains.
type Bundle struct {
	Title     string
	Summaries []analysis.Summary
	Tables    []Table
}

// NewBundle assembles the reference curve and the calibrated curves.
func NewBundle(title string, supplyCap float64, reference model.Series, results []curve.Result) Bundle {
	b := Bundle{Title: title}
	b.Summaries = append(b.Summaries, analysis.Summarize(string(model.PolicyReference), reference, supplyCap))
	b.Summaries = append(b.Summaries, analysis.RankByDistance(results, supplyCap)...)

	b.Tables = append(b.Tables, Table{
		Name:   string(model.PolicyReference),
		Label:  string(model.PolicyReference),
		Policy: model.PolicyReference,
		Rows:   analysis.BuildTable(reference),
	})
	for _, r := range results {
		b.Tables = append(b.Tables, Table{
			Name:   r.Name,
			Label:  r.Label(),
			Policy: model.PolicyDecay,
			Rows:   analysis.BuildTable(r.Calibration.Series),
		})
	}
	return b
}

// FormatFromPath maps a file extension to an export format.
func FormatFromPath(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return "csv", nil
	case ".xlsx":
		return "xlsx", nil
	case ".pdf":
		return "pdf", nil
	default:
		return "", fmt.Errorf("unsupported export extension %q (want .csv, .xlsx or .pdf)", ext)
	}
}

// Render encodes the bundle in the given format.
func Render(format string, b Bundle) ([]byte, error) {
	switch format {
	case "csv":
		var buf bytes.Buffer
		if err := WriteCSV(&buf, b); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case "xlsx":
		return BuildXLSX(b)
	case "pdf":
		return BuildPDF(b)
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

// WriteFile renders the bundle in the format implied by path and writes it,
// creating parent directories as needed. It returns the format used.
func WriteFile(path string, b Bundle) (string, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return "", err
	}
	raw, err := Render(format, b)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", err
	}
	return format, nil
}
