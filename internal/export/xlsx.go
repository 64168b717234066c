package export

import (
	"fmt"
	"io"
	"sort"

	"github.com/xuri/excelize/v2"
)

const (
	notesSheet   = "Notes"
	summarySheet = "Summary"
)

// WriteXLSX writes rows to a workbook with a Notes sheet and a per-status
// Summary sheet.
func WriteXLSX(w io.Writer, rows []Row) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), notesSheet); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	wrap, err := f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"}})
	if err != nil {
		return fmt.Errorf("creating cell style: %w", err)
	}

	if err := setRow(f, notesSheet, 1, columns); err != nil {
		return err
	}
	if err := f.SetRowStyle(notesSheet, 1, 1, bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}
	for i := range rows {
		if err := setRow(f, notesSheet, i+2, rowValues(&rows[i])); err != nil {
			return err
		}
	}
	if len(rows) > 0 {
		if err := f.SetRowStyle(notesSheet, 2, len(rows)+1, wrap); err != nil {
			return fmt.Errorf("styling rows: %w", err)
		}
	}
	if err := f.SetColWidth(notesSheet, "E", "N", 40); err != nil {
		return fmt.Errorf("setting column width: %w", err)
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("creating summary sheet: %w", err)
	}
	if err := setRow(f, summarySheet, 1, []string{"Quality", "Notes"}); err != nil {
		return err
	}
	if err := f.SetRowStyle(summarySheet, 1, 1, bold); err != nil {
		return fmt.Errorf("styling summary header: %w", err)
	}
	summary := Summary(rows)
	statuses := make([]string, 0, len(summary))
	for s := range summary {
		statuses = append(statuses, s)
	}
	sort.Strings(statuses)
	for i, s := range statuses {
		if err := setRow(f, summarySheet, i+2, []string{s, formatCount(summary[s])}); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("resolving cell for row %d: %w", row, err)
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("writing %s row %d: %w", sheet, row, err)
	}
	return nil
}
