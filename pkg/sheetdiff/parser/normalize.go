package parser

import (
	"sort"

	"github.com/ukaji3/sheetdiff-go/pkg/sheetdiff/models"
)

// NormalizeSheet turns raw rows into a header/row table.
//
// The header row is the first row, by row number, holding a non-null
// cell. Every later row becomes an object with one entry per header
// column; rows whose values all coerce to null are dropped.
func NormalizeSheet(rows []RawRow) models.SheetData {
	result := models.SheetData{Headers: []string{}, Rows: []models.Value{}}
	if len(rows) == 0 {
		return result
	}

	sorted := make([]RawRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Index < sorted[j].Index
	})

	headerPos := -1
	for i, row := range sorted {
		if row.hasValue() {
			headerPos = i
			break
		}
	}
	if headerPos < 0 {
		return result
	}

	header := sorted[headerPos]
	cols := make([]string, 0, len(header.Cells))
	for col := range header.Cells {
		cols = append(cols, col)
	}
	sort.Slice(cols, func(i, j int) bool {
		return lessColumn(cols[i], cols[j])
	})

	headers := make([]string, len(cols))
	for i, col := range cols {
		headers[i] = headerLabel(header.Cells[col], col)
	}
	result.Headers = headers

	for _, row := range sorted[headerPos+1:] {
		obj := models.Object()
		empty := true
		for i, col := range cols {
			v := CoerceValue(row.Cells[col])
			if !isBlank(v) {
				empty = false
			}
			obj.Set(headers[i], v)
		}
		if !empty {
			result.Rows = append(result.Rows, obj)
		}
	}

	return result
}

// Normalize builds a workbook from raw sheets, keeping sheet order.
func Normalize(source string, sheets []RawSheet) *models.WorkbookData {
	wb := models.NewWorkbookData(source)
	for _, s := range sheets {
		wb.AddSheet(s.Name, NormalizeSheet(s.Rows))
	}
	return wb
}
