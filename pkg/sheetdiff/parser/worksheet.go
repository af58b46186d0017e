package parser

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ukaji3/sheetdiff-go/pkg/sheetdiff/models"
	"github.com/xuri/excelize/v2"
)

// parseWorksheetXML decodes the rows of a worksheet part.
func parseWorksheetXML(data []byte, shared []string) ([]RawRow, error) {
	var rows []RawRow
	decoder := xml.NewDecoder(bytes.NewReader(data))
	inSheetData := false

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "sheetData":
				inSheetData = true
			case "row":
				if !inSheetData {
					continue
				}
				row, err := parseRow(decoder, t, len(rows)+1, shared)
				if err != nil {
					return nil, err
				}
				rows = append(rows, row)
			}
		case xml.EndElement:
			if t.Name.Local == "sheetData" {
				inSheetData = false
			}
		}
	}

	return rows, nil
}

// parseRow reads a row element. Rows without an r attribute are numbered
// by position.
func parseRow(decoder *xml.Decoder, start xml.StartElement, fallback int, shared []string) (RawRow, error) {
	row := RawRow{Index: fallback, Cells: make(map[string]models.Value)}
	if r := attrValue(start, "r"); r != "" {
		index, err := strconv.Atoi(r)
		if err != nil {
			return row, fmt.Errorf("invalid row number %q: %w", r, err)
		}
		row.Index = index
	}

	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return row, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "c" {
				col, value, err := parseCell(decoder, t, shared)
				if err != nil {
					return row, err
				}
				if col != "" {
					row.Cells[col] = value
				}
				continue
			}
			depth++
		case xml.EndElement:
			depth--
		}
	}

	return row, nil
}

// parseCell reads a c element and returns its column letters and raw
// value. Cells without a reference return an empty column.
func parseCell(decoder *xml.Decoder, start xml.StartElement, shared []string) (string, models.Value, error) {
	ref := attrValue(start, "r")
	cellType := attrValue(start, "t")
	var v, inline *string

	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return "", models.Null(), err
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "v":
				text, err := readElementText(decoder)
				if err != nil {
					return "", models.Null(), err
				}
				v = &text
				continue
			case "is":
				text, err := collectText(decoder)
				if err != nil {
					return "", models.Null(), err
				}
				inline = &text
				continue
			}
			depth++
		case xml.EndElement:
			depth--
		}
	}

	if ref == "" {
		return "", models.Null(), nil
	}
	col, _, err := excelize.SplitCellName(strings.ToUpper(ref))
	if err != nil {
		return "", models.Null(), fmt.Errorf("invalid cell reference %q: %w", ref, err)
	}

	value, err := resolveCellValue(cellType, v, inline, shared)
	if err != nil {
		return "", models.Null(), fmt.Errorf("cell %s: %w", ref, err)
	}
	return col, value, nil
}

// resolveCellValue applies the cell type: shared string lookup, boolean
// flag, inline string, or the raw value text.
func resolveCellValue(cellType string, v, inline *string, shared []string) (models.Value, error) {
	switch cellType {
	case "s":
		if v == nil {
			return models.Null(), nil
		}
		idx, err := strconv.Atoi(strings.TrimSpace(*v))
		if err != nil {
			return models.Null(), fmt.Errorf("invalid shared string index %q", *v)
		}
		if idx < 0 || idx >= len(shared) {
			return models.Null(), fmt.Errorf("shared string index %d out of range (%d entries)", idx, len(shared))
		}
		return models.String(shared[idx]), nil
	case "b":
		if v == nil {
			return models.Bool(false), nil
		}
		return models.Bool(*v == "1"), nil
	case "inlineStr":
		if inline == nil {
			return models.String(""), nil
		}
		return models.String(*inline), nil
	}
	if v == nil {
		return models.Null(), nil
	}
	return models.String(*v), nil
}
