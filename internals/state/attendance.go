package state

import (
	"context"

	"edugest_backend/internals/features/kindergarten/model"
)

// RecordAttendance mengganti record (student, date) yang ada dengan marks baru.
func (c *Controller) RecordAttendance(ctx context.Context, date string, marks []model.AttendanceMark) error {
	return c.mutate(ctx, func(s *AppState) ([]string, error) {
		if !ValidDate(date) {
			return nil, invalid("date", "format YYYY-MM-DD")
		}
		if len(marks) == 0 {
			return nil, nil
		}
		for _, m := range marks {
			if m.StudentID == "" {
				return nil, invalid("studentId", "obligatoriu")
			}
			if !m.Status.Valid() {
				return nil, invalid("status", "PREZENT, ABSENT sau MOTIVAT")
			}
		}
		replaceAttendance(s, date, marks)
		return []string{KeyAttendance}, nil
	})
}

func replaceAttendance(s *AppState, date string, marks []model.AttendanceMark) {
	updated := make(map[string]model.AttendanceStatus, len(marks))
	order := make([]string, 0, len(marks))
	for _, m := range marks {
		if _, dup := updated[m.StudentID]; !dup {
			order = append(order, m.StudentID)
		}
		updated[m.StudentID] = m.Status // yang terakhir menang
	}
	kept := make([]model.AttendanceRecord, 0, len(s.Attendance)+len(marks))
	for _, a := range s.Attendance {
		if a.Date == date {
			if _, ok := updated[a.StudentID]; ok {
				continue
			}
		}
		kept = append(kept, a)
	}
	for _, sid := range order {
		kept = append(kept, model.AttendanceRecord{
			ID:        model.AttendanceID(date, sid),
			StudentID: sid,
			Date:      date,
			Status:    updated[sid],
		})
	}
	s.Attendance = kept
}

func statusOn(s *AppState, studentID, date string) model.AttendanceStatus {
	for _, a := range s.Attendance {
		if a.StudentID == studentID && a.Date == date {
			return a.Status
		}
	}
	return model.AttendanceNotTaken
}

// CycleAttendance: toggle satu sel grid absensi, mengembalikan status baru
func (c *Controller) CycleAttendance(ctx context.Context, studentID, date string) (model.AttendanceStatus, error) {
	var next model.AttendanceStatus
	err := c.mutate(ctx, func(s *AppState) ([]string, error) {
		if !ValidDate(date) {
			return nil, invalid("date", "format YYYY-MM-DD")
		}
		if _, ok := s.FindStudent(studentID); !ok {
			return nil, ErrStudentNotFound
		}
		next = statusOn(s, studentID, date).Next()
		replaceAttendance(s, date, []model.AttendanceMark{{StudentID: studentID, Status: next}})
		return []string{KeyAttendance}, nil
	})
	return next, err
}

// MarkAllPresent menandai semua anak aktif (opsional per grup) PREZENT.
func (c *Controller) MarkAllPresent(ctx context.Context, date, group string) (int, error) {
	n := 0
	err := c.mutate(ctx, func(s *AppState) ([]string, error) {
		if !ValidDate(date) {
			return nil, invalid("date", "format YYYY-MM-DD")
		}
		var marks []model.AttendanceMark
		for _, st := range s.Students {
			if !st.Active || (group != "" && st.Group != group) {
				continue
			}
			marks = append(marks, model.AttendanceMark{StudentID: st.ID, Status: model.AttendancePresent})
		}
		if len(marks) == 0 {
			return nil, nil
		}
		replaceAttendance(s, date, marks)
		n = len(marks)
		return []string{KeyAttendance}, nil
	})
	return n, err
}
