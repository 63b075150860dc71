package constants

import (
	"fmt"

	"edugest_backend/internals/features/kindergarten/model"
)

// Section: satu area aplikasi (menu sidebar lama)
type Section string

const (
	SectionDashboard  Section = "dashboard"
	SectionStudents   Section = "students"
	SectionAttendance Section = "attendance"
	SectionPayments   Section = "payments"
	SectionInventory  Section = "inventory"
	SectionMenu       Section = "menu"
	SectionReports    Section = "reports"
	SectionSettings   Section = "settings"
)

// Urutan tampilan
var AllSections = []Section{
	SectionDashboard,
	SectionStudents,
	SectionAttendance,
	SectionPayments,
	SectionInventory,
	SectionMenu,
	SectionReports,
	SectionSettings,
}

// ==========================
// ✅ Capability table per role
// ==========================
var roleSections = map[model.Role][]Section{
	model.RoleAdmin:     AllSections,
	model.RoleEducator:  {SectionStudents, SectionAttendance, SectionReports},
	model.RoleAssistant: {SectionMenu},
}

// SectionsFor: allowlist role (urut sesuai AllSections); role tidak dikenal → kosong
func SectionsFor(role model.Role) []Section {
	out := append([]Section(nil), roleSections[role]...)
	if out == nil {
		return []Section{}
	}
	return out
}

func CanAccess(role model.Role, s Section) bool {
	for _, allowed := range roleSections[role] {
		if allowed == s {
			return true
		}
	}
	return false
}

// Template pesan error role
const ErrSectionForbidden = "❌ Rolul %s nu are acces la secțiunea %s."

func SectionForbiddenMessage(role model.Role, s Section) string {
	return fmt.Sprintf(ErrSectionForbidden, role, s)
}
