package parser

import (
	"fmt"
	"strings"

	"github.com/thedatashed/xlsxreader"
	"github.com/ukaji3/sheetdiff-go/pkg/sheetdiff/models"
)

// ReadXlsxReader reads every sheet through xlsxreader's row stream.
// Date cells arrive already formatted by the library.
func ReadXlsxReader(path string) ([]RawSheet, error) {
	xl, err := xlsxreader.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	defer xl.Close()

	result := make([]RawSheet, 0, len(xl.Sheets))
	for _, sheetName := range xl.Sheets {
		var rows []RawRow
		var readErr error
		// Drain the channel even after an error so the reader goroutine exits.
		for row := range xl.ReadRows(sheetName) {
			if readErr != nil {
				continue
			}
			if row.Error != nil {
				readErr = row.Error
				continue
			}

			cells := make(map[string]models.Value, len(row.Cells))
			for _, cell := range row.Cells {
				col := strings.ToUpper(cell.Column)
				if cell.Type == xlsxreader.TypeBoolean {
					cells[col] = models.Bool(cell.Value == "1" || strings.EqualFold(cell.Value, "TRUE"))
					continue
				}
				cells[col] = models.String(cell.Value)
			}
			rows = append(rows, RawRow{Index: row.Index, Cells: cells})
		}
		if readErr != nil {
			return nil, NewExtractionError(sheetName, "cells", readErr)
		}

		result = append(result, RawSheet{Name: sheetName, Rows: rows})
	}

	return result, nil
}
