package models

// SheetData represents the normalized table of a single sheet.
type SheetData struct {
	// Headers holds the header labels in column order.
	Headers []string
	// Rows holds one object per data row, keyed by header label.
	Rows []Value
}

// Value converts the sheet to its document form:
// {"headers": [...], "rows": [...]}.
func (s SheetData) Value() Value {
	headers := make([]Value, len(s.Headers))
	for i, h := range s.Headers {
		headers[i] = String(h)
	}
	rows := make([]Value, len(s.Rows))
	copy(rows, s.Rows)
	return Object(
		Member{Key: "headers", Value: Array(headers...)},
		Member{Key: "rows", Value: Array(rows...)},
	)
}

// MarshalJSON encodes the sheet in document form.
func (s SheetData) MarshalJSON() ([]byte, error) {
	return s.Value().MarshalJSON()
}
