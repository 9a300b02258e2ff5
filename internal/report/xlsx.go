package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"supply-curves/internal/model"
)

const maxSheetName = 31

// BuildXLSX renders a summary sheet plus one sheet per table.
func BuildXLSX(b Bundle) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	summarySheet := "summary"
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}

	_ = f.SetCellValue(summarySheet, "A1", b.Title)
	headers := []string{"Curve", "First Year", "Last Year", "Final Supply", "Cap Share", "90% Year", "99% Year", "Distance"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		_ = f.SetCellValue(summarySheet, cell, h)
	}
	for i, s := range b.Summaries {
		row := i + 4
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), s.Name)
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), s.FirstYear)
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("C%d", row), s.LastYear)
		setValue(f, summarySheet, fmt.Sprintf("D%d", row), s.Final)
		setValue(f, summarySheet, fmt.Sprintf("E%d", row), s.CapShare)
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("F%d", row), s.Year90)
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("G%d", row), s.Year99)
		setValue(f, summarySheet, fmt.Sprintf("H%d", row), s.Distance)
	}

	used := map[string]bool{summarySheet: true}
	for _, t := range b.Tables {
		sheet := sheetName(t.Name, used)
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
		_ = f.SetCellValue(sheet, "A1", t.Label)
		_ = f.SetCellValue(sheet, "A2", "Year")
		_ = f.SetCellValue(sheet, "B2", "Supply")
		_ = f.SetCellValue(sheet, "C2", "Emitted")
		_ = f.SetCellValue(sheet, "D2", "Emission Rate (%)")
		for i, r := range t.Rows {
			row := i + 3
			_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.Year)
			setValue(f, sheet, fmt.Sprintf("B%d", row), r.Supply)
			setValue(f, sheet, fmt.Sprintf("C%d", row), r.Emitted)
			setValue(f, sheet, fmt.Sprintf("D%d", row), r.EmissionRatePercent)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// setValue leaves undefined cells blank.
func setValue(f *excelize.File, sheet, cell string, v model.Value) {
	if v.Valid {
		_ = f.SetCellValue(sheet, cell, v.V)
	}
}

// sheetName strips characters Excel rejects, truncates to 31 runes and
// de-duplicates against names already used.
func sheetName(name string, used map[string]bool) string {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, name)
	if clean == "" {
		clean = "curve"
	}
	base := truncate(clean, maxSheetName)
	out := base
	for i := 2; used[strings.ToLower(out)]; i++ {
		suffix := fmt.Sprintf("~%d", i)
		out = truncate(base, maxSheetName-len(suffix)) + suffix
	}
	used[strings.ToLower(out)] = true
	return out
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
