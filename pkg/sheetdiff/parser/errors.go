package parser

import (
	"errors"
	"fmt"
)

// ErrInvalidFormat indicates the input file is not a valid xlsx container.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrEntryNotFound indicates a part is missing from the container.
var ErrEntryNotFound = errors.New("container entry not found")

// ExtractionError represents an error while reading one part of a workbook.
type ExtractionError struct {
	SheetName string
	Component string // "workbook", "relationships", "shared_strings", "cells"
	Err       error
}

func (e *ExtractionError) Error() string {
	if e.SheetName == "" {
		return fmt.Sprintf("extraction error (%s): %v", e.Component, e.Err)
	}
	return fmt.Sprintf("extraction error in sheet %q (%s): %v", e.SheetName, e.Component, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(sheetName, component string, err error) *ExtractionError {
	return &ExtractionError{
		SheetName: sheetName,
		Component: component,
		Err:       err,
	}
}
