package report

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jokeapi-tests/jokeapi-contract-tests/framework"

	"github.com/xuri/excelize/v2"
)

const (
	sheetNamePrefix      = "Report_"
	sheetTimeFormat      = "2006-01-02_15-04-05"
	defaultSheet         = "Sheet1"
	DefaultSlowThreshold = 2 * time.Second

	fillPattern    = "pattern"
	solidFill      = 1
	failedBgColor  = "FF5900"
	slowBgColor    = "FFEB9C"
	skippedBgColor = "D9D9D9"
)

var excelHeaders = []string{"#", "Test", "Result", "Duration (ms)", "Errors"}

var excelColumnWidths = []float64{6, 50, 10, 14, 100}

// Excel writes one worksheet per run into a workbook. If the workbook already exists the
// sheet is added to it, so a single file can hold the history of several runs.
type Excel struct {
	path          string
	slowThreshold time.Duration
	run           RunInfo
	rows          []framework.TestResult
	sheet         string
}

// NewExcel returns a sink that writes to the given .xlsx path when the run ends. Passing
// tests that took longer than slowThreshold are highlighted; zero means
// DefaultSlowThreshold.
func NewExcel(path string, slowThreshold time.Duration) *Excel {
	if slowThreshold <= 0 {
		slowThreshold = DefaultSlowThreshold
	}
	return &Excel{path: path, slowThreshold: slowThreshold}
}

func (e *Excel) Start(run RunInfo) {
	e.run = run
	e.rows = nil
	e.sheet = ""
}

func (e *Excel) Record(result framework.TestResult) {
	e.rows = append(e.rows, result)
}

// SheetName is the name of the worksheet for the current run. Once the report has been
// written it is the name actually used, which has a numeric suffix if another run already
// wrote a sheet with the same timestamp.
func (e *Excel) SheetName() string {
	if e.sheet != "" {
		return e.sheet
	}
	started := e.run.Started
	if started.IsZero() {
		started = time.Now()
	}
	return sheetNamePrefix + started.Format(sheetTimeFormat)
}

func (e *Excel) End(results framework.Results) error {
	f, existing, err := openOrCreate(e.path)
	if err != nil {
		return err
	}
	defer f.Close()

	sheet, err := unusedSheetName(f, e.SheetName())
	if err != nil {
		return err
	}
	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("unable to create worksheet %s: %w", sheet, err)
	}
	f.SetActiveSheet(index)
	if !existing {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			return fmt.Errorf("unable to remove worksheet %s: %w", defaultSheet, err)
		}
	}
	e.sheet = sheet

	if err := e.writeSheet(f, sheet, results); err != nil {
		return err
	}

	if existing {
		err = f.Save()
	} else {
		err = f.SaveAs(e.path)
	}
	if err != nil {
		return fmt.Errorf("unable to save report %s: %w", e.path, err)
	}
	return nil
}

// NewSheet returns the existing sheet when the name is taken, so a run that starts in the
// same second as an earlier one gets a suffixed name instead.
func unusedSheetName(f *excelize.File, base string) (string, error) {
	name := base
	for n := 2; ; n++ {
		index, err := f.GetSheetIndex(name)
		if err != nil {
			return "", fmt.Errorf("unable to look up worksheet %s: %w", name, err)
		}
		if index == -1 {
			return name, nil
		}
		name = fmt.Sprintf("%s_%d", base, n)
	}
}

func openOrCreate(path string) (*excelize.File, bool, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return excelize.NewFile(), false, nil
		}
		return nil, false, err
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("unable to open report %s: %w", path, err)
	}
	return f, true, nil
}

func (e *Excel) writeSheet(f *excelize.File, sheet string, results framework.Results) error {
	failedStyle, err := fillStyle(f, failedBgColor)
	if err != nil {
		return err
	}
	slowStyle, err := fillStyle(f, slowBgColor)
	if err != nil {
		return err
	}
	skippedStyle, err := fillStyle(f, skippedBgColor)
	if err != nil {
		return err
	}

	for i, width := range excelColumnWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return err
		}
	}
	if err := writeRow(f, sheet, 1, toCells(excelHeaders)); err != nil {
		return err
	}

	for i, r := range e.rows {
		status, style := "PASSED", 0
		switch {
		case r.Failed():
			status, style = "FAILED", failedStyle
		case r.Skipped:
			status, style = "SKIPPED", skippedStyle
		case r.Duration > e.slowThreshold:
			style = slowStyle
		}
		cells := []interface{}{
			i + 1,
			r.TestID.String(),
			status,
			r.Duration.Milliseconds(),
			rowDetail(r),
		}
		rowNum := i + 2
		if err := writeRow(f, sheet, rowNum, cells); err != nil {
			return err
		}
		if style != 0 {
			first, _ := excelize.CoordinatesToCellName(1, rowNum)
			last, _ := excelize.CoordinatesToCellName(len(cells), rowNum)
			if err := f.SetCellStyle(sheet, first, last, style); err != nil {
				return err
			}
		}
	}

	summaryRow := len(e.rows) + 3
	summary := []string{
		"Summary",
		fmt.Sprintf("Run ID: %s", e.run.ID),
		fmt.Sprintf("Base URL: %s", e.run.BaseURL),
		fmt.Sprintf("Total: %d", len(results.Tests)),
		fmt.Sprintf("Passed: %d", results.Passed()),
		fmt.Sprintf("Failed: %d", len(results.Failures)),
		fmt.Sprintf("Skipped: %d", len(results.Skipped)),
	}
	for i, line := range summary {
		cell, _ := excelize.CoordinatesToCellName(1, summaryRow+i)
		if err := f.SetCellValue(sheet, cell, line); err != nil {
			return err
		}
	}
	return nil
}

func fillStyle(f *excelize.File, color string) (int, error) {
	return f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: fillPattern, Pattern: solidFill, Color: []string{color}},
	})
}

func writeRow(f *excelize.File, sheet string, row int, cells []interface{}) error {
	for i, value := range cells {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return err
		}
	}
	return nil
}

func toCells(values []string) []interface{} {
	ret := make([]interface{}, len(values))
	for i, v := range values {
		ret[i] = v
	}
	return ret
}

func rowDetail(r framework.TestResult) string {
	if r.Skipped {
		return r.SkipReason
	}
	lines := make([]string, 0, len(r.Errors))
	for _, err := range r.Errors {
		lines = append(lines, err.Error())
	}
	return strings.Join(lines, "\n")
}
