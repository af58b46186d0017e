package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/ukaji3/sheetdiff-go/pkg/sheetdiff/models"
	"github.com/xuri/excelize/v2"
)

var numericPattern = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

// CoerceValue converts a raw cell value to its normalized form.
// Booleans and nulls pass through. Text is trimmed; empty text and a
// lone "-" become null, integer and decimal literals become numbers, and
// anything else stays a string.
func CoerceValue(raw models.Value) models.Value {
	if raw.Kind() != models.KindString {
		return raw
	}
	return parseValue(raw.AsString())
}

// parseValue attempts to parse a string value as a number.
// Returns an integer for "-?\d+", a float for "-?\d+.\d+", or the trimmed string.
func parseValue(s string) models.Value {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return models.Null()
	}
	if !numericPattern.MatchString(s) {
		return models.String(s)
	}
	if !strings.Contains(s, ".") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return models.Int(i)
		}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return models.Float(f)
	}
	return models.String(s)
}

// isBlank reports whether a coerced value counts as empty.
func isBlank(v models.Value) bool {
	return v.IsNull() || (v.Kind() == models.KindString && v.AsString() == "")
}

// columnNumber converts column letters to their 1-based index (A=1, Z=26,
// AA=27). Unparseable names sort after every valid column.
func columnNumber(col string) int {
	n, err := excelize.ColumnNameToNumber(col)
	if err != nil {
		return math.MaxInt
	}
	return n
}

// lessColumn orders column letters the way a spreadsheet does.
func lessColumn(a, b string) bool {
	na, nb := columnNumber(a), columnNumber(b)
	if na != nb {
		return na < nb
	}
	return a < b
}

// headerLabel returns the label for a header cell, falling back to a
// placeholder naming the column when the cell is null, empty or false.
func headerLabel(v models.Value, col string) string {
	switch v.Kind() {
	case models.KindString:
		if v.AsString() != "" {
			return v.AsString()
		}
	case models.KindBool:
		if v.AsBool() {
			return "true"
		}
	}
	return "col_" + col
}
