// Package parser reads spreadsheet containers and normalizes their cells
// into header/row tables.
package parser

import (
	"github.com/ukaji3/sheetdiff-go/pkg/sheetdiff/models"
)

// RawSheet is a sheet as read from the container, before normalization.
type RawSheet struct {
	// Name is the sheet name from the workbook.
	Name string
	// Rows holds rows in container order.
	Rows []RawRow
}

// RawRow is a single worksheet row.
type RawRow struct {
	// Index is the row number (1-based).
	Index int
	// Cells maps upper-case column letters to the raw cell value.
	// Raw values are null, bool or string.
	Cells map[string]models.Value
}

// hasValue reports whether any cell holds a non-null value.
func (r RawRow) hasValue() bool {
	for _, v := range r.Cells {
		if !v.IsNull() {
			return true
		}
	}
	return false
}

// ReadFunc reads every sheet of the container at path.
type ReadFunc func(path string) ([]RawSheet, error)
