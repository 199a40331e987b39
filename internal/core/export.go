package core

// export.go writes a record list as a downloadable file. Both formats carry
// the derived category and region next to the source columns.

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ExportFormat names a supported export file format.
type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
)

// ErrUnsupportedExportFormat is returned for formats other than csv and xlsx.
var ErrUnsupportedExportFormat = errors.New("unsupported export format")

// exportHeader uses the same Hebrew labels the parser accepts, so an exported
// CSV can be loaded back.
var exportHeader = []string{"שם עסק", "כתובת", "עיר", "סוג", "פעילות עסק", "כשרות", "קטגוריה", "אזור"}

// exportSheet is the worksheet name used for XLSX exports.
const exportSheet = "עסקים"

func exportRow(b Business) []string {
	return []string{
		b.Name,
		b.Address,
		b.City,
		b.Type,
		b.Activity,
		b.Provider,
		string(DeriveKosherCategory(b.Activity)),
		string(InferRegion(b.City)),
	}
}

// ContentType returns the MIME type for the format.
func (f ExportFormat) ContentType() string {
	switch f {
	case ExportXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/csv; charset=utf-8"
	}
}

// ParseExportFormat validates a format name. Empty means csv.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(s) {
	case "", ExportCSV:
		return ExportCSV, nil
	case ExportXLSX:
		return ExportXLSX, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedExportFormat, s)
}

// Export writes records to w in the given format.
func Export(w io.Writer, format ExportFormat, records []Business) error {
	switch format {
	case ExportCSV:
		return WriteCSV(w, records)
	case ExportXLSX:
		return WriteXLSX(w, records)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedExportFormat, format)
}

// WriteCSV writes records as UTF-8 CSV with a BOM so spreadsheet programs
// pick the right encoding for Hebrew text.
func WriteCSV(w io.Writer, records []Business) error {
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, b := range records {
		if err := cw.Write(exportRow(b)); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes records as a single right-to-left worksheet.
func WriteXLSX(w io.Writer, records []Business) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	rtl := true
	if err := f.SetSheetView(exportSheet, 0, &excelize.ViewOptions{RightToLeft: &rtl}); err != nil {
		return fmt.Errorf("set sheet view: %w", err)
	}

	sw, err := f.NewStreamWriter(exportSheet)
	if err != nil {
		return fmt.Errorf("stream writer: %w", err)
	}

	if err := sw.SetRow("A1", toCells(exportHeader)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, b := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, toCells(exportRow(b))); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
