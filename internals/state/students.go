package state

import (
	"context"
	"errors"
	"strings"

	"edugest_backend/internals/features/kindergarten/model"
	authHelper "edugest_backend/internals/features/users/auth/helper"
)

// ImportRow: satu baris spreadsheet setelah alias kolom di-resolve
type ImportRow struct {
	LastName   string `json:"lastName"`
	FirstName  string `json:"firstName"`
	Group      string `json:"group"`
	CNP        string `json:"cnp"`
	ParentName string `json:"parentName"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Address    string `json:"address"`
}

// CNP kosong atau 13 digit
func ValidCNP(cnp string) bool {
	if cnp == "" {
		return true
	}
	if len(cnp) != 13 {
		return false
	}
	for _, r := range cnp {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func validateStudentFields(cfg model.AppConfig, st model.Student) error {
	if strings.TrimSpace(st.FirstName) == "" {
		return invalid("firstName", "prenumele este obligatoriu")
	}
	if strings.TrimSpace(st.LastName) == "" {
		return invalid("lastName", "numele este obligatoriu")
	}
	if !ValidCNP(st.CNP) {
		return invalid("cnp", "Format CNP invalid.")
	}
	if st.Group != "" && len(cfg.Groups) > 0 && !cfg.HasGroup(st.Group) {
		return invalid("group", "grupa nu există în configurare")
	}
	return nil
}

func validateParentFields(p model.Parent) error {
	if !authHelper.IsValidEmail(p.Email) {
		return invalid("parent.email", "email invalid")
	}
	return nil
}

// AddStudent membuat parent baru dan student yang menunjuk ke parent itu.
func (c *Controller) AddStudent(ctx context.Context, st model.Student, parent model.Parent) (model.Student, error) {
	var created model.Student
	err := c.mutate(ctx, func(s *AppState) ([]string, error) {
		st.FirstName = strings.TrimSpace(st.FirstName)
		st.LastName = strings.TrimSpace(st.LastName)
		st.CNP = strings.TrimSpace(st.CNP)
		if st.Group == "" {
			st.Group = s.Config.DefaultGroup()
		}
		if err := validateStudentFields(s.Config, st); err != nil {
			return nil, err
		}
		parent.Name = strings.TrimSpace(parent.Name)
		if parent.Name == "" {
			parent.Name = UnknownParentName
		}
		if err := validateParentFields(parent); err != nil {
			return nil, err
		}

		parent.ID = c.ids("p")
		st.ID = c.ids("s")
		st.ParentID = parent.ID
		st.Active = true

		s.Parents = append(s.Parents, parent)
		s.Students = append(s.Students, st)
		created = st
		return []string{KeyParents, KeyStudents}, nil
	})
	return created, err
}

// UpdateStudent: patch parsial untuk student dan (opsional) parent-nya.
func (c *Controller) UpdateStudent(ctx context.Context, id string, patch model.StudentPatch, parentPatch *model.ParentPatch) (model.Student, error) {
	var updated model.Student
	err := c.mutate(ctx, func(s *AppState) ([]string, error) {
		idx := -1
		for i := range s.Students {
			if s.Students[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, ErrStudentNotFound
		}

		next := s.Students[idx]
		patch.Apply(&next)
		if err := validateStudentFields(s.Config, next); err != nil {
			// grup lama yang sudah dihapus dari config tetap boleh dipertahankan
			var ve *ValidationError
			if !errors.As(err, &ve) || ve.Field != "group" || patch.Group != nil {
				return nil, err
			}
		}

		keys := []string{KeyStudents}
		pIdx := -1
		var nextParent model.Parent
		if parentPatch != nil {
			for i := range s.Parents {
				if s.Parents[i].ID == next.ParentID {
					pIdx = i
					break
				}
			}
			if pIdx >= 0 {
				nextParent = s.Parents[pIdx]
				parentPatch.Apply(&nextParent)
				if err := validateParentFields(nextParent); err != nil {
					return nil, err
				}
				keys = append(keys, KeyParents)
			}
		}

		s.Students[idx] = next
		if pIdx >= 0 {
			s.Parents[pIdx] = nextParent
		}
		updated = next
		return keys, nil
	})
	return updated, err
}

// DeleteStudent menghapus student; parent ikut terhapus kalau tidak punya
// anak lain. Record absensi dan pembayaran tetap disimpan.
func (c *Controller) DeleteStudent(ctx context.Context, id string) (parentRemoved bool, err error) {
	err = c.mutate(ctx, func(s *AppState) ([]string, error) {
		victim, ok := s.FindStudent(id)
		if !ok {
			return nil, ErrStudentNotFound
		}
		kept := make([]model.Student, 0, len(s.Students))
		shared := false
		for _, st := range s.Students {
			if st.ID == id {
				continue
			}
			if st.ParentID == victim.ParentID {
				shared = true
			}
			kept = append(kept, st)
		}
		s.Students = kept
		if shared {
			return []string{KeyStudents}, nil
		}

		parents := make([]model.Parent, 0, len(s.Parents))
		for _, p := range s.Parents {
			if p.ID == victim.ParentID {
				parentRemoved = true
				continue
			}
			parents = append(parents, p)
		}
		s.Parents = parents
		return []string{KeyStudents, KeyParents}, nil
	})
	return parentRemoved, err
}

// ImportStudents menambahkan satu parent + satu student per baris.
func (c *Controller) ImportStudents(ctx context.Context, rows []ImportRow) (int, error) {
	n := 0
	err := c.mutate(ctx, func(s *AppState) ([]string, error) {
		if len(rows) == 0 {
			return nil, invalid("rows", "fișierul nu conține rânduri")
		}
		parents := make([]model.Parent, 0, len(rows))
		students := make([]model.Student, 0, len(rows))
		for _, r := range rows {
			p := model.Parent{
				ID:      c.ids("p-imp"),
				Name:    strings.TrimSpace(r.ParentName),
				Phone:   strings.TrimSpace(r.Phone),
				Email:   strings.TrimSpace(r.Email),
				Address: strings.TrimSpace(r.Address),
			}
			if p.Name == "" {
				p.Name = UnknownParentName
			}
			group := strings.TrimSpace(r.Group)
			if group == "" {
				group = s.Config.DefaultGroup()
			}
			st := model.Student{
				ID:        c.ids("s-imp"),
				FirstName: strings.TrimSpace(r.FirstName),
				LastName:  strings.TrimSpace(r.LastName),
				Group:     group,
				CNP:       strings.TrimSpace(r.CNP),
				ParentID:  p.ID,
				Active:    true,
			}
			parents = append(parents, p)
			students = append(students, st)
		}
		s.Parents = append(s.Parents, parents...)
		s.Students = append(s.Students, students...)
		n = len(students)
		return []string{KeyParents, KeyStudents}, nil
	})
	return n, err
}
