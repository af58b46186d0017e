// Package output renders workbooks and check results.
package output

import (
	"bytes"
	"encoding/json"

	"github.com/ukaji3/sheetdiff-go/pkg/sheetdiff/models"
)

// ToJSON serializes a workbook, indenting by two spaces when pretty.
func ToJSON(wb *models.WorkbookData, pretty bool) ([]byte, error) {
	return valueToJSON(wb.Value(), pretty)
}

// SheetToJSON serializes a single sheet.
func SheetToJSON(sheet *models.SheetData, pretty bool) ([]byte, error) {
	return valueToJSON(sheet.Value(), pretty)
}

func valueToJSON(v models.Value, pretty bool) ([]byte, error) {
	data, err := v.MarshalJSON()
	if err != nil {
		return nil, err
	}
	if !pretty {
		return data, nil
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
