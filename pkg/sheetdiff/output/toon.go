package output

import (
	toon "github.com/mateuszkardas/toon-go"
	"github.com/ukaji3/sheetdiff-go/pkg/sheetdiff/models"
)

type toonDocument struct {
	Source string      `json:"source" toon:"source"`
	Sheets []toonSheet `json:"sheets" toon:"sheets"`
}

// toonSheet holds rows as tuples in header order, so the encoding never
// depends on map iteration.
type toonSheet struct {
	Name    string   `json:"name" toon:"name"`
	Headers []string `json:"headers" toon:"headers"`
	Rows    [][]any  `json:"rows" toon:"rows"`
}

// ToTOON serializes a workbook in TOON notation. Sheets are emitted as a
// list in workbook order.
func ToTOON(wb *models.WorkbookData) (string, error) {
	doc := toonDocument{
		Source: wb.Source,
		Sheets: make([]toonSheet, 0, len(wb.SheetNames)),
	}
	for _, name := range wb.SheetNames {
		sheet := wb.Sheets[name]
		rows := make([][]any, len(sheet.Rows))
		for i, row := range sheet.Rows {
			tuple := make([]any, len(sheet.Headers))
			for j, header := range sheet.Headers {
				v, _ := row.Get(header)
				tuple[j] = v.Interface()
			}
			rows[i] = tuple
		}
		doc.Sheets = append(doc.Sheets, toonSheet{
			Name:    name,
			Headers: sheet.Headers,
			Rows:    rows,
		})
	}

	return toon.Marshal(doc, nil)
}
