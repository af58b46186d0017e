package parser

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Well-known parts of an xlsx container.
const (
	workbookPath      = "xl/workbook.xml"
	workbookRelsPath  = "xl/_rels/workbook.xml.rels"
	sharedStringsPath = "xl/sharedStrings.xml"
)

// sheetRef is a sheet entry from workbook.xml.
type sheetRef struct {
	name string
	rID  string
}

// ReadContainer reads every worksheet of the xlsx file at path by decoding
// the OOXML parts directly.
func ReadContainer(path string) ([]RawSheet, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	defer r.Close()

	return readContainer(&r.Reader)
}

func readContainer(r *zip.Reader) ([]RawSheet, error) {
	shared, err := readSharedStrings(r)
	if err != nil {
		return nil, NewExtractionError("", "shared_strings", err)
	}

	workbookXML, err := readZipFile(r, workbookPath)
	if err != nil {
		return nil, NewExtractionError("", "workbook", err)
	}
	sheets, err := parseWorkbookSheets(workbookXML)
	if err != nil {
		return nil, NewExtractionError("", "workbook", err)
	}

	relsXML, err := readZipFile(r, workbookRelsPath)
	if err != nil {
		return nil, NewExtractionError("", "relationships", err)
	}
	rels, err := parseWorkbookRels(relsXML)
	if err != nil {
		return nil, NewExtractionError("", "relationships", err)
	}

	result := make([]RawSheet, 0, len(sheets))
	for _, s := range sheets {
		target, ok := rels[s.rID]
		if !ok {
			return nil, NewExtractionError(s.name, "relationships", fmt.Errorf("unknown relationship id %q", s.rID))
		}

		sheetXML, err := readZipFile(r, resolveRelativePath(target, "xl"))
		if err != nil {
			return nil, NewExtractionError(s.name, "cells", err)
		}

		rows, err := parseWorksheetXML(sheetXML, shared)
		if err != nil {
			return nil, NewExtractionError(s.name, "cells", err)
		}
		result = append(result, RawSheet{Name: s.name, Rows: rows})
	}

	return result, nil
}

// readSharedStrings returns the shared string table, or nil when the
// container has none.
func readSharedStrings(r *zip.Reader) ([]string, error) {
	data, err := readZipFile(r, sharedStringsPath)
	if errors.Is(err, ErrEntryNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return parseSharedStrings(data)
}

// parseSharedStrings returns one entry per si element: the concatenation
// of every text run inside it.
func parseSharedStrings(data []byte) ([]string, error) {
	var result []string
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "si" {
			text, err := collectText(decoder)
			if err != nil {
				return nil, err
			}
			result = append(result, text)
		}
	}

	return result, nil
}

// parseWorkbookSheets returns the sheets of workbook.xml in order.
func parseWorkbookSheets(data []byte) ([]sheetRef, error) {
	var result []sheetRef
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "sheet" {
			var ref sheetRef
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "name":
					ref.name = attr.Value
				case "id":
					ref.rID = attr.Value
				}
			}
			if ref.name == "" || ref.rID == "" {
				return nil, errors.New("sheet element missing name or relationship id")
			}
			result = append(result, ref)
		}
	}

	return result, nil
}

// parseWorkbookRels maps relationship ids to their targets.
func parseWorkbookRels(data []byte) (map[string]string, error) {
	result := make(map[string]string)
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			var rID, target string
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "Id":
					rID = attr.Value
				case "Target":
					target = attr.Value
				}
			}
			if rID != "" {
				result[rID] = target
			}
		}
	}

	return result, nil
}

func readZipFile(r *zip.Reader, name string) ([]byte, error) {
	for _, f := range r.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, name)
}

// resolveRelativePath turns a relationship target into a container path.
// Targets are relative to baseDir unless absolute.
func resolveRelativePath(target, baseDir string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	if strings.HasPrefix(target, "../") {
		clean := target
		for strings.HasPrefix(clean, "../") {
			clean = strings.TrimPrefix(clean, "../")
		}
		return clean
	}
	return baseDir + "/" + target
}

// readElementText returns all character data up to the end of the
// current element.
func readElementText(decoder *xml.Decoder) (string, error) {
	var sb strings.Builder
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return sb.String(), err
		}
		switch t := token.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return sb.String(), nil
}

// collectText returns the text of every t element up to the end of the
// current element.
func collectText(decoder *xml.Decoder) (string, error) {
	var sb strings.Builder
	depth, inText := 1, 0
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return "", err
		}
		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "t" {
				inText++
			}
		case xml.EndElement:
			depth--
			if t.Name.Local == "t" && inText > 0 {
				inText--
			}
		case xml.CharData:
			if inText > 0 {
				sb.Write(t)
			}
		}
	}
	return sb.String(), nil
}

func attrValue(se xml.StartElement, local string) string {
	for _, attr := range se.Attr {
		if attr.Name.Local == local {
			return attr.Value
		}
	}
	return ""
}
