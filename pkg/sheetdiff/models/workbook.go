package models

// WorkbookData represents a workbook-level container with per-sheet data.
type WorkbookData struct {
	// Source is the workbook file name (no path).
	Source string
	// SheetNames lists sheet names in workbook order.
	SheetNames []string
	// Sheets maps sheet name to SheetData.
	Sheets map[string]SheetData
}

// NewWorkbookData returns an empty workbook labelled with source.
func NewWorkbookData(source string) *WorkbookData {
	return &WorkbookData{
		Source: source,
		Sheets: make(map[string]SheetData),
	}
}

// AddSheet appends a sheet. Re-adding a name replaces its data and keeps
// its original position.
func (w *WorkbookData) AddSheet(name string, sheet SheetData) {
	if w.Sheets == nil {
		w.Sheets = make(map[string]SheetData)
	}
	if _, ok := w.Sheets[name]; !ok {
		w.SheetNames = append(w.SheetNames, name)
	}
	w.Sheets[name] = sheet
}

// Value converts the workbook to its document form:
// {"source": ..., "sheets": {name: {...}}}.
func (w *WorkbookData) Value() Value {
	sheets := Object()
	for _, name := range w.SheetNames {
		sheets.Set(name, w.Sheets[name].Value())
	}
	return Object(
		Member{Key: "source", Value: String(w.Source)},
		Member{Key: "sheets", Value: sheets},
	)
}

// MarshalJSON encodes the workbook in document form with sheets in
// workbook order.
func (w *WorkbookData) MarshalJSON() ([]byte, error) {
	return w.Value().MarshalJSON()
}
