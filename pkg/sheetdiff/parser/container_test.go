package parser

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ukaji3/sheetdiff-go/pkg/sheetdiff/models"
)

const (
	testWorkbookXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
<sheets><sheet name="Sheet1" sheetId="1" r:id="rId1"/></sheets>
</workbook>`
	testRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="worksheets/sheet1.xml"/>
</Relationships>`
	testSharedStringsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" count="3" uniqueCount="3">
<si><t>Name</t></si>
<si><t>Score</t></si>
<si><r><t>Ali</t></r><r><t>ce</t></r></si>
</sst>`
	testSheetXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
<sheetData>
<row r="1"><c r="A1" t="s"><v>0</v></c><c r="B1" t="s"><v>1</v></c></row>
<row r="2"><c r="A2" t="s"><v>2</v></c><c r="B2"><v>42</v></c></row>
</sheetData>
</worksheet>`
)

// buildContainer zips parts into an in-memory xlsx container.
func buildContainer(t *testing.T, parts map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("Failed to create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}
	return buf.Bytes()
}

func minimalParts() map[string]string {
	return map[string]string{
		workbookPath:               testWorkbookXML,
		workbookRelsPath:           testRelsXML,
		sharedStringsPath:          testSharedStringsXML,
		"xl/worksheets/sheet1.xml": testSheetXML,
	}
}

func readParts(t *testing.T, parts map[string]string) ([]RawSheet, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "book.xlsx")
	if err := os.WriteFile(path, buildContainer(t, parts), 0o600); err != nil {
		t.Fatalf("write container: %v", err)
	}
	return ReadContainer(path)
}

func TestReadContainerMinimal(t *testing.T) {
	sheets, err := readParts(t, minimalParts())
	if err != nil {
		t.Fatalf("ReadContainer failed: %v", err)
	}

	wb := Normalize("book.xlsx", sheets)
	out, err := wb.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON failed: %v", err)
	}

	expected := `{"source":"book.xlsx","sheets":{"Sheet1":{"headers":["Name","Score"],"rows":[{"Name":"Alice","Score":42}]}}}`
	if string(out) != expected {
		t.Errorf("expected %s\ngot %s", expected, out)
	}
}

func TestReadContainerIsDeterministic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.xlsx")
	if err := os.WriteFile(path, buildContainer(t, minimalParts()), 0644); err != nil {
		t.Fatalf("Failed to write container: %v", err)
	}

	var outputs []string
	for i := 0; i < 3; i++ {
		sheets, err := ReadContainer(path)
		if err != nil {
			t.Fatalf("ReadContainer failed: %v", err)
		}
		out, err := Normalize("book.xlsx", sheets).MarshalJSON()
		if err != nil {
			t.Fatalf("MarshalJSON failed: %v", err)
		}
		outputs = append(outputs, string(out))
	}

	for i := 1; i < len(outputs); i++ {
		if outputs[i] != outputs[0] {
			t.Errorf("parse %d differs:\n%s\n%s", i, outputs[0], outputs[i])
		}
	}
}

func TestReadContainerCellTypes(t *testing.T) {
	parts := minimalParts()
	delete(parts, sharedStringsPath)
	parts[workbookRelsPath] = `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="worksheet" Target="/xl/worksheets/sheet1.xml"/>
</Relationships>`
	parts["xl/worksheets/sheet1.xml"] = `<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
<sheetData>
<row><c r="A1" t="inlineStr"><is><t>Flag</t></is></c><c r="b1" t="inlineStr"><is><r><t>Val</t></r><r><t>ue</t></r></is></c></row>
<row><c r="A2" t="b"><v>1</v></c><c r="B2" t="str"><v>#N/A</v><f>NA()</f></c></row>
<row><c r="A3" t="b"/><c r="B3"><v> 2.50 </v></c><c><v>ignored</v></c></row>
</sheetData>
</worksheet>`

	sheets, err := readParts(t, parts)
	if err != nil {
		t.Fatalf("ReadContainer failed: %v", err)
	}
	if len(sheets) != 1 || len(sheets[0].Rows) != 3 {
		t.Fatalf("unexpected sheets: %+v", sheets)
	}

	rows := sheets[0].Rows
	if rows[1].Index != 2 || rows[2].Index != 3 {
		t.Errorf("expected positional row numbers, got %d and %d", rows[1].Index, rows[2].Index)
	}
	if v := rows[0].Cells["B"]; v.AsString() != "Value" {
		t.Errorf("expected concatenated inline string, got %v", v)
	}
	if v := rows[1].Cells["A"]; v.Kind() != models.KindBool || !v.AsBool() {
		t.Errorf("expected true, got %v", v)
	}
	if v := rows[1].Cells["B"]; v.AsString() != "#N/A" {
		t.Errorf("expected cached formula text, got %v", v)
	}
	if v := rows[2].Cells["A"]; v.Kind() != models.KindBool || v.AsBool() {
		t.Errorf("expected false for boolean without value, got %v", v)
	}
	if len(rows[2].Cells) != 2 {
		t.Errorf("expected cell without reference to be skipped, got %v", rows[2].Cells)
	}

	sheet := NormalizeSheet(rows)
	if v, _ := sheet.Rows[1].Get("Value"); v.AsFloat() != 2.5 {
		t.Errorf("expected 2.5, got %v", v)
	}
}

func TestReadContainerSheetOrder(t *testing.T) {
	parts := minimalParts()
	parts[workbookPath] = `<workbook xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
<sheets><sheet name="Zeta" sheetId="2" r:id="rId2"/><sheet name="Alpha" sheetId="1" r:id="rId1"/></sheets>
</workbook>`
	parts[workbookRelsPath] = `<Relationships>
<Relationship Id="rId1" Target="worksheets/sheet1.xml"/>
<Relationship Id="rId2" Target="../xl/worksheets/sheet2.xml"/>
</Relationships>`
	parts["xl/worksheets/sheet2.xml"] = `<worksheet><sheetData/></worksheet>`

	sheets, err := readParts(t, parts)
	if err != nil {
		t.Fatalf("ReadContainer failed: %v", err)
	}
	if len(sheets) != 2 || sheets[0].Name != "Zeta" || sheets[1].Name != "Alpha" {
		t.Fatalf("unexpected sheet order: %+v", sheets)
	}

	wb := Normalize("book.xlsx", sheets)
	zeta := wb.Sheets["Zeta"]
	if len(zeta.Headers) != 0 || len(zeta.Rows) != 0 {
		t.Errorf("expected empty sheet, got %+v", zeta)
	}
}

func TestReadContainerErrors(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(parts map[string]string)
		component string
	}{
		{
			name:      "missing workbook",
			mutate:    func(p map[string]string) { delete(p, workbookPath) },
			component: "workbook",
		},
		{
			name:      "missing relationships",
			mutate:    func(p map[string]string) { delete(p, workbookRelsPath) },
			component: "relationships",
		},
		{
			name: "unknown relationship id",
			mutate: func(p map[string]string) {
				p[workbookRelsPath] = `<Relationships><Relationship Id="rId9" Target="worksheets/sheet1.xml"/></Relationships>`
			},
			component: "relationships",
		},
		{
			name:      "missing sheet part",
			mutate:    func(p map[string]string) { delete(p, "xl/worksheets/sheet1.xml") },
			component: "cells",
		},
		{
			name: "shared string out of range",
			mutate: func(p map[string]string) {
				p["xl/worksheets/sheet1.xml"] = `<worksheet><sheetData><row r="1"><c r="A1" t="s"><v>7</v></c></row></sheetData></worksheet>`
			},
			component: "cells",
		},
		{
			name: "bad cell reference",
			mutate: func(p map[string]string) {
				p["xl/worksheets/sheet1.xml"] = `<worksheet><sheetData><row r="1"><c r="11"><v>1</v></c></row></sheetData></worksheet>`
			},
			component: "cells",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parts := minimalParts()
			tt.mutate(parts)

			_, err := readParts(t, parts)
			var extractErr *ExtractionError
			if !errors.As(err, &extractErr) {
				t.Fatalf("expected ExtractionError, got %v", err)
			}
			if extractErr.Component != tt.component {
				t.Errorf("expected component %q, got %q", tt.component, extractErr.Component)
			}
		})
	}
}

func TestReadContainerNotZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.xlsx")
	if err := os.WriteFile(path, []byte("not a zip"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	_, err := ReadContainer(path)
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat, got %v", err)
	}
}

func TestResolveRelativePath(t *testing.T) {
	tests := []struct {
		target   string
		expected string
	}{
		{"worksheets/sheet1.xml", "xl/worksheets/sheet1.xml"},
		{"/xl/worksheets/sheet1.xml", "xl/worksheets/sheet1.xml"},
		{"../xl/worksheets/sheet1.xml", "xl/worksheets/sheet1.xml"},
	}

	for _, tt := range tests {
		if got := resolveRelativePath(tt.target, "xl"); got != tt.expected {
			t.Errorf("resolveRelativePath(%q) = %q, expected %q", tt.target, got, tt.expected)
		}
	}
}
