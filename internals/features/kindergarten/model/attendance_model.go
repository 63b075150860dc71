// file: internals/features/kindergarten/model/attendance_model.go
package model

type AttendanceStatus string

const (
	AttendancePresent  AttendanceStatus = "PREZENT"
	AttendanceAbsent   AttendanceStatus = "ABSENT"
	AttendanceExcused  AttendanceStatus = "MOTIVAT"
	AttendanceNotTaken AttendanceStatus = "NONE" // tidak pernah disimpan
)

func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceExcused:
		return true
	}
	return false
}

// Next: siklus toggle di grid absensi
// NONE/ABSENT → PREZENT → MOTIVAT → ABSENT
func (s AttendanceStatus) Next() AttendanceStatus {
	switch s {
	case AttendancePresent:
		return AttendanceExcused
	case AttendanceExcused:
		return AttendanceAbsent
	default:
		return AttendancePresent
	}
}

type AttendanceRecord struct {
	ID        string           `json:"id"`
	StudentID string           `json:"studentId"`
	Date      string           `json:"date"` // YYYY-MM-DD
	Status    AttendanceStatus `json:"status"`
}

func AttendanceID(date, studentID string) string {
	return date + "-" + studentID
}

type AttendanceMark struct {
	StudentID string           `json:"studentId"`
	Status    AttendanceStatus `json:"status"`
}
