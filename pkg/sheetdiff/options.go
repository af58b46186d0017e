// Package sheetdiff parses xlsx workbooks into normalized documents and
// checks them against stored JSON.
package sheetdiff

import (
	"fmt"

	"github.com/ukaji3/sheetdiff-go/pkg/sheetdiff/compare"
	"github.com/ukaji3/sheetdiff-go/pkg/sheetdiff/parser"
)

// Engine selects how raw cells are read from the container.
type Engine string

const (
	// EngineRaw decodes the OOXML parts directly.
	EngineRaw Engine = "raw"
	// EngineExcelize reads cells through excelize.
	EngineExcelize Engine = "excelize"
	// EngineXlsxReader reads cells through xlsxreader's row stream.
	EngineXlsxReader Engine = "xlsxreader"
)

// ParseEngine validates an engine name.
func ParseEngine(name string) (Engine, error) {
	switch Engine(name) {
	case EngineRaw, EngineExcelize, EngineXlsxReader:
		return Engine(name), nil
	case "":
		return EngineRaw, nil
	}
	return "", fmt.Errorf("invalid engine: %s (must be raw, excelize, or xlsxreader)", name)
}

func (e Engine) reader() (parser.ReadFunc, error) {
	switch e {
	case EngineRaw, "":
		return parser.ReadContainer, nil
	case EngineExcelize:
		return parser.ReadExcelize, nil
	case EngineXlsxReader:
		return parser.ReadXlsxReader, nil
	}
	return nil, fmt.Errorf("invalid engine: %s", e)
}

// Options configures parsing and comparison.
type Options struct {
	// Engine selects the cell reader (default raw).
	Engine Engine
	// Source overrides the workbook source label. Defaults to the file name.
	Source string
	// Tolerance is the absolute tolerance for numeric comparison.
	Tolerance float64
	// OnSheet, when set, is called once per normalized sheet in workbook
	// order.
	OnSheet func(name string, headers, rows int)
}

// DefaultOptions returns default options.
func DefaultOptions() Options {
	return Options{
		Engine:    EngineRaw,
		Tolerance: compare.DefaultTolerance,
	}
}

func (o Options) compareOptions() compare.Options {
	return compare.Options{Tolerance: o.Tolerance}
}
