package models

import (
	"testing"
)

func TestParseJSONPreservesKeyOrder(t *testing.T) {
	v, err := ParseJSON([]byte(`{"b": 1, "a": [true, null, "x"], "c": {"z": 2.5, "y": 3.0}}`))
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}

	keys := v.Keys()
	if len(keys) != 3 || keys[0] != "b" || keys[1] != "a" || keys[2] != "c" {
		t.Fatalf("unexpected key order: %v", keys)
	}

	out, err := v.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON failed: %v", err)
	}
	expected := `{"b":1,"a":[true,null,"x"],"c":{"z":2.5,"y":3.0}}`
	if string(out) != expected {
		t.Errorf("expected %s, got %s", expected, out)
	}
}

func TestParseJSONRejectsTrailingData(t *testing.T) {
	if _, err := ParseJSON([]byte(`{} {}`)); err == nil {
		t.Fatal("expected error for trailing data")
	}
	if _, err := ParseJSON([]byte(`{"a":`)); err == nil {
		t.Fatal("expected error for truncated document")
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		value    Value
		expected string
	}{
		{Null(), "null"},
		{Bool(true), "true"},
		{Int(42), "42"},
		{Int(-7), "-7"},
		{Float(3), "3.0"},
		{Float(3.1), "3.1"},
		{Float(1e16), "1e+16"},
		{Float(0.00001), "1e-05"},
		{String("Alice"), "Alice"},
		{Array(Int(1), String("a")), `[1,"a"]`},
		{Object(Member{Key: "k", Value: Null()}), `{"k":null}`},
	}

	for _, tt := range tests {
		if got := tt.value.String(); got != tt.expected {
			t.Errorf("String() = %q, expected %q", got, tt.expected)
		}
	}
}

func TestObjectSetKeepsPosition(t *testing.T) {
	obj := Object()
	obj.Set("Name", String("first"))
	obj.Set("Score", Int(1))
	obj.Set("Name", String("second"))

	if obj.Len() != 2 {
		t.Fatalf("expected 2 members, got %d", obj.Len())
	}
	if obj.Keys()[0] != "Name" {
		t.Errorf("expected Name to stay first, got %v", obj.Keys())
	}
	if v, _ := obj.Get("Name"); v.AsString() != "second" {
		t.Errorf("expected replaced value, got %v", v)
	}
}

func TestValueEqual(t *testing.T) {
	if !Int(3).Equal(Float(3)) {
		t.Error("expected 3 and 3.0 to be equal")
	}
	if String("3").Equal(Int(3)) {
		t.Error("expected string and number to differ")
	}
	a := Object(Member{Key: "x", Value: Int(1)}, Member{Key: "y", Value: Int(2)})
	b := Object(Member{Key: "y", Value: Int(2)}, Member{Key: "x", Value: Int(1)})
	if !a.Equal(b) {
		t.Error("expected objects with the same members to be equal regardless of order")
	}
}

func TestParseJSONKeepsLargeIntegers(t *testing.T) {
	v, err := ParseJSON([]byte(`[9007199254740993,-9223372036854775808]`))
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}
	items := v.Items()
	if items[0].AsInt() != 9007199254740993 || items[1].AsInt() != -9223372036854775808 {
		t.Errorf("unexpected integers %d, %d", items[0].AsInt(), items[1].AsInt())
	}
	if items[0].Equal(Int(9007199254740992)) {
		t.Error("expected integers past 2^53 to compare exactly")
	}
	if got := v.String(); got != "[9007199254740993,-9223372036854775808]" {
		t.Errorf("unexpected encoding %s", got)
	}
}

func TestWorkbookMarshalJSON(t *testing.T) {
	wb := NewWorkbookData("book.xlsx")
	row := Object()
	row.Set("Name", String("Alice"))
	row.Set("Score", Int(42))
	wb.AddSheet("Zeta", SheetData{Headers: []string{"Name", "Score"}, Rows: []Value{row}})
	wb.AddSheet("Alpha", SheetData{})

	out, err := wb.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON failed: %v", err)
	}
	expected := `{"source":"book.xlsx","sheets":{"Zeta":{"headers":["Name","Score"],"rows":[{"Name":"Alice","Score":42}]},"Alpha":{"headers":[],"rows":[]}}}`
	if string(out) != expected {
		t.Errorf("expected %s\ngot %s", expected, out)
	}
}
