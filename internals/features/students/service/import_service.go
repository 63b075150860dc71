// file: internals/features/students/service/import_service.go
package service

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"edugest_backend/internals/state"
)

var (
	ErrEmptyFile   = errors.New("fișierul este gol")
	ErrInvalidFile = errors.New("fișier Excel invalid")
)

const (
	TemplateFileName  = "sablon_import_elevi.xlsx"
	templateSheetName = "Șablon Import"
	exportSheetName   = "Elevi"
)

// alias header → kolom ImportRow
var headerAliases = map[string]string{
	"Nume":         "lastName",
	"nume":         "lastName",
	"Prenume":      "firstName",
	"prenume":      "firstName",
	"Grupă":        "group",
	"Grupa":        "group",
	"grupa":        "group",
	"CNP":          "cnp",
	"cnp":          "cnp",
	"Nume Părinte": "parentName",
	"Parinte":      "parentName",
	"numeParinte":  "parentName",
	"Telefon":      "phone",
	"telefon":      "phone",
	"Email":        "email",
	"email":        "email",
	"Adresă":       "address",
	"Adresa":       "address",
	"adresa":       "address",
}

// ParseStudentsXLSX membaca sheet pertama; baris pertama = header.
// Baris yang seluruh selnya kosong dilewati.
func ParseStudentsXLSX(r io.Reader) ([]state.ImportRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}
	if len(rows) < 2 {
		return nil, ErrEmptyFile
	}

	// kolom pertama yang cocok menang, seperti row['Nume'] || row['nume']
	cols := map[string]int{}
	for i, h := range rows[0] {
		field, ok := headerAliases[strings.TrimSpace(h)]
		if !ok {
			continue
		}
		if _, taken := cols[field]; !taken {
			cols[field] = i
		}
	}

	out := make([]state.ImportRow, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cell := func(field string) string {
			i, ok := cols[field]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}
		ir := state.ImportRow{
			LastName:   cell("lastName"),
			FirstName:  cell("firstName"),
			Group:      cell("group"),
			CNP:        cell("cnp"),
			ParentName: cell("parentName"),
			Phone:      cell("phone"),
			Email:      cell("email"),
			Address:    cell("address"),
		}
		if ir == (state.ImportRow{}) {
			continue
		}
		out = append(out, ir)
	}
	if len(out) == 0 {
		return nil, ErrEmptyFile
	}
	return out, nil
}

var templateHeaders = []string{"Nume", "Prenume", "Grupă", "CNP", "Nume Părinte", "Telefon", "Email", "Adresă"}

// TemplateWorkbook: satu baris contoh, grup = grup pertama dari config
func TemplateWorkbook(cfgGroups []string) ([]byte, error) {
	group := "Mică"
	if len(cfgGroups) > 0 {
		group = cfgGroups[0]
	}
	example := []string{"Popescu", "Ionut", group, "5180101123456", "Popescu Andrei", "0722111222", "andrei@example.com", "Strada Florilor Nr. 5, Băilești"}
	widths := []float64{15, 15, 15, 20, 25, 15, 25, 35}
	return writeSheet(templateSheetName, templateHeaders, [][]string{example}, widths)
}

// ExportStudents: daftar anak (filter grup opsional), kolom sama dengan template
// kecuali "Părinte".
func ExportStudents(s *state.AppState, group string) ([]byte, error) {
	headers := []string{"Nume", "Prenume", "Grupă", "CNP", "Părinte", "Telefon", "Email", "Adresă"}
	var rows [][]string
	for _, st := range s.Students {
		if group != "" && st.Group != group {
			continue
		}
		p, _ := s.FindParent(st.ParentID)
		rows = append(rows, []string{
			st.LastName, st.FirstName, st.Group,
			orDash(st.CNP), orDash(p.Name), orDash(p.Phone), orDash(p.Email), orDash(p.Address),
		})
	}
	return writeSheet(exportSheetName, headers, rows, nil)
}

func ExportFileName(group string, now time.Time) string {
	if group == "" {
		group = "toate"
	}
	return fmt.Sprintf("lista_elevi_%s_%s.xlsx", group, now.Format(state.DateLayout))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func writeSheet(name string, headers []string, rows [][]string, widths []float64) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", name); err != nil {
		return nil, err
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(name, cell, h)
	}
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			f.SetCellValue(name, cell, v)
		}
	}
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(name, col, col, w); err != nil {
			return nil, err
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
