package service

import (
	"bytes"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"

	"edugest_backend/internals/features/kindergarten/model"
	"edugest_backend/internals/state"
)

func buildXLSX(t *testing.T, rows [][]string) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			f.SetCellValue("Sheet1", cell, v)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestParseAliases(t *testing.T) {
	data := buildXLSX(t, [][]string{
		{"nume", "Prenume", "Grupa", "cnp", "Parinte", "telefon", "Email", "Adresa", "Altceva"},
		{"Ionescu", "Maria", "Mare", "", "Ionescu Dan", "0733", "dan@x.ro", "Str. 1", "x"},
		{"", "", "", "", "", "", "", "", ""},
		{" Pop ", "Ion"},
	})
	rows, err := ParseStudentsXLSX(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d: %+v", len(rows), rows)
	}
	want := state.ImportRow{LastName: "Ionescu", FirstName: "Maria", Group: "Mare", ParentName: "Ionescu Dan", Phone: "0733", Email: "dan@x.ro", Address: "Str. 1"}
	if rows[0] != want {
		t.Fatalf("row 0: %+v", rows[0])
	}
	if rows[1].LastName != "Pop" || rows[1].Group != "" {
		t.Fatalf("short row: %+v", rows[1])
	}
}

func TestParseEmpty(t *testing.T) {
	cases := map[string][][]string{
		"no rows":     nil,
		"header only": {{"Nume", "Prenume"}},
		"blank body":  {{"Nume"}, {""}},
	}
	for name, rows := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseStudentsXLSX(bytes.NewReader(buildXLSX(t, rows)))
			if !errors.Is(err, ErrEmptyFile) {
				t.Fatalf("got %v", err)
			}
		})
	}
	if _, err := ParseStudentsXLSX(bytes.NewReader([]byte("not a zip"))); !errors.Is(err, ErrInvalidFile) {
		t.Fatalf("garbage: %v", err)
	}
}

func TestTemplateRoundTrip(t *testing.T) {
	data, err := TemplateWorkbook([]string{"Fluturi"})
	if err != nil {
		t.Fatal(err)
	}
	rows, err := ParseStudentsXLSX(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].Group != "Fluturi" || rows[0].CNP != "5180101123456" || rows[0].ParentName != "Popescu Andrei" {
		t.Fatalf("template row: %+v", rows)
	}
}

func TestExportStudents(t *testing.T) {
	s := &state.AppState{
		Parents: []model.Parent{{ID: "p1", Name: "Ana Pop", Phone: "07"}},
		Students: []model.Student{
			{ID: "s1", FirstName: "Ion", LastName: "Pop", Group: "Mica", ParentID: "p1", Active: true},
			{ID: "s2", FirstName: "Eva", LastName: "Dan", Group: "Mare", ParentID: "missing"},
		},
	}
	data, err := ExportStudents(s, "Mica")
	if err != nil {
		t.Fatal(err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, _ := f.GetRows("Elevi")
	if len(rows) != 2 || rows[1][0] != "Pop" || rows[1][3] != "-" || rows[1][4] != "Ana Pop" || rows[1][6] != "-" {
		t.Fatalf("export rows: %v", rows)
	}
}
