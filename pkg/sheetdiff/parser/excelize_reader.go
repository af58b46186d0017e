package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/sheetdiff-go/pkg/sheetdiff/models"
	"github.com/xuri/excelize/v2"
)

// ReadExcelize reads every sheet through excelize. Empty cells are
// indistinguishable from missing ones and are left out.
func ReadExcelize(path string) ([]RawSheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	defer f.Close()

	var result []RawSheet
	for _, sheetName := range f.GetSheetList() {
		rows, err := extractCells(f, sheetName)
		if err != nil {
			return nil, NewExtractionError(sheetName, "cells", err)
		}
		result = append(result, RawSheet{Name: sheetName, Rows: rows})
	}

	return result, nil
}

// extractCells reads the unformatted cell values of a sheet.
func extractCells(f *excelize.File, sheetName string) ([]RawRow, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	result := make([]RawRow, 0, len(rows))
	for rowIdx, row := range rows {
		rowNum := rowIdx + 1 // 1-based row index
		cells := make(map[string]models.Value)

		for colIdx, cellValue := range row {
			if cellValue == "" {
				continue
			}
			col, err := excelize.ColumnNumberToName(colIdx + 1)
			if err != nil {
				return nil, err
			}

			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowNum)
			if err != nil {
				return nil, err
			}
			cellType, err := f.GetCellType(sheetName, cellName)
			if err == nil && cellType == excelize.CellTypeBool {
				cells[col] = models.Bool(cellValue == "1" || strings.EqualFold(cellValue, "TRUE"))
				continue
			}
			cells[col] = models.String(cellValue)
		}

		result = append(result, RawRow{Index: rowNum, Cells: cells})
	}

	return result, nil
}
