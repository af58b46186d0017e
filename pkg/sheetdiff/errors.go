package sheetdiff

import (
	"errors"
	"fmt"

	"github.com/ukaji3/sheetdiff-go/pkg/sheetdiff/parser"
)

// ErrFileNotFound indicates an input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a valid xlsx format.
var ErrInvalidFormat = parser.ErrInvalidFormat

// ExtractionError represents an error while reading one part of a workbook.
type ExtractionError = parser.ExtractionError

// MissingInputError reports an input file that does not exist.
type MissingInputError struct {
	Path string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("%s: %s", ErrFileNotFound, e.Path)
}

func (e *MissingInputError) Unwrap() error {
	return ErrFileNotFound
}
