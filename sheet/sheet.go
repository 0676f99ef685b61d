// Package sheet accumulates extracted question records in an Excel
// workbook, one row per question, appending across runs.
package sheet

import (
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// sheetName is the worksheet rows are written to.
const sheetName = "Sheet1"

// pathSeparator joins multi-valued columns within one cell.
const pathSeparator = ";"

// headers is the fixed column layout, written once when the workbook is
// created.
var headers = []string{
	"id",
	"page_url",
	"problem_text",
	"problem_html",
	"diagram_urls",
	"local_diagram_paths",
	"saved_pdf_if_applicable",
}

// Record is one extracted question destined for a spreadsheet row.
type Record struct {
	ID          string
	PageURL     string
	Text        string
	HTML        string
	DiagramURLs []string
	LocalPaths  []string
	SavedPDF    string
}

// Append appends the record to the workbook at path, creating the
// workbook with a header row when it does not exist yet.
func Append(path string, rec Record) error {
	f, created, err := openOrCreate(path)
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return fmt.Errorf("read sheet: %w", err)
	}

	next := len(rows) + 1
	cell, err := excelize.CoordinatesToCellName(1, next)
	if err != nil {
		return err
	}
	values := []interface{}{
		rec.ID,
		rec.PageURL,
		rec.Text,
		rec.HTML,
		strings.Join(rec.DiagramURLs, pathSeparator),
		strings.Join(rec.LocalPaths, pathSeparator),
		rec.SavedPDF,
	}
	if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
		return fmt.Errorf("write row: %w", err)
	}

	if created {
		return saveErr(f.SaveAs(path), path)
	}
	return saveErr(f.Save(), path)
}

// openOrCreate opens an existing workbook or builds a fresh one with
// the header row in place.
func openOrCreate(path string) (*excelize.File, bool, error) {
	if _, err := os.Stat(path); err == nil {
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, false, fmt.Errorf("open workbook: %w", err)
		}
		return f, false, nil
	} else if !os.IsNotExist(err) {
		return nil, false, err
	}

	f := excelize.NewFile()
	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		f.Close()
		return nil, false, fmt.Errorf("write header: %w", err)
	}
	return f, true, nil
}

func saveErr(err error, path string) error {
	if err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}
