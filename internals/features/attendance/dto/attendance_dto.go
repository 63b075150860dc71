package dto

import "edugest_backend/internals/features/kindergarten/model"

type RecordAttendanceRequest struct {
	Date  string                 `json:"date" validate:"required,datetime=2006-01-02"`
	Marks []model.AttendanceMark `json:"marks" validate:"required,min=1,dive"`
}

type ToggleAttendanceRequest struct {
	StudentID string `json:"studentId" validate:"required"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
}

type MarkAllRequest struct {
	Date  string `json:"date" validate:"required,datetime=2006-01-02"`
	Group string `json:"group" validate:"omitempty,max=80"`
}

// DayRow: satu anak aktif pada tanggal tertentu
type DayRow struct {
	StudentID string                 `json:"studentId"`
	Name      string                 `json:"name"`
	Group     string                 `json:"group"`
	Status    model.AttendanceStatus `json:"status"`
}
