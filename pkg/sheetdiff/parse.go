package sheetdiff

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ukaji3/sheetdiff-go/pkg/sheetdiff/models"
	"github.com/ukaji3/sheetdiff-go/pkg/sheetdiff/parser"
)

// Parse reads the workbook at path into its normalized form.
func Parse(path string, opts Options) (*models.WorkbookData, error) {
	if err := requireFile(path); err != nil {
		return nil, err
	}

	read, err := opts.Engine.reader()
	if err != nil {
		return nil, err
	}

	sheets, err := read(path)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	source := opts.Source
	if source == "" {
		source = filepath.Base(path)
	}

	wb := parser.Normalize(source, sheets)
	if opts.OnSheet != nil {
		for _, name := range wb.SheetNames {
			sheet := wb.Sheets[name]
			opts.OnSheet(name, len(sheet.Headers), len(sheet.Rows))
		}
	}

	return wb, nil
}

// LoadDocument reads a stored JSON document, preserving key order.
func LoadDocument(path string) (models.Value, error) {
	if err := requireFile(path); err != nil {
		return models.Null(), err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return models.Null(), fmt.Errorf("read %s: %w", path, err)
	}

	doc, err := models.ParseJSON(data)
	if err != nil {
		return models.Null(), fmt.Errorf("decode %s: %w", path, err)
	}
	return doc, nil
}

// requireFile returns a MissingInputError when path does not exist.
func requireFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return &MissingInputError{Path: path}
	}
	return nil
}
