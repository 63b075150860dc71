package constants

import (
	"testing"

	"edugest_backend/internals/features/kindergarten/model"
)

func TestCapabilityTable(t *testing.T) {
	cases := []struct {
		role    model.Role
		section Section
		want    bool
	}{
		{model.RoleAdmin, SectionSettings, true},
		{model.RoleAdmin, SectionDashboard, true},
		{model.RoleEducator, SectionStudents, true},
		{model.RoleEducator, SectionAttendance, true},
		{model.RoleEducator, SectionReports, true},
		{model.RoleEducator, SectionPayments, false},
		{model.RoleEducator, SectionDashboard, false},
		{model.RoleAssistant, SectionMenu, true},
		{model.RoleAssistant, SectionInventory, false},
		{model.Role("GUEST"), SectionMenu, false},
	}
	for _, tc := range cases {
		if got := CanAccess(tc.role, tc.section); got != tc.want {
			t.Errorf("%s/%s: got %v want %v", tc.role, tc.section, got, tc.want)
		}
	}
	if n := len(SectionsFor(model.RoleAdmin)); n != 8 {
		t.Fatalf("admin sections: %d", n)
	}
	if s := SectionsFor("GUEST"); s == nil || len(s) != 0 {
		t.Fatalf("unknown role: %v", s)
	}
}

func TestDetectFileType(t *testing.T) {
	if DetectFileTypeFromExt("factura.JPG") != FileImage || DetectFileTypeFromExt("a.pdf") != FilePDF ||
		DetectFileTypeFromExt("elevi.xlsx") != FileXLSX || DetectFileTypeFromExt("x.doc") != FileUnknown {
		t.Fatal("unexpected kind")
	}
}
