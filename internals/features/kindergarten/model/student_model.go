// file: internals/features/kindergarten/model/student_model.go
package model

// Student: anak terdaftar. ParentID wajib menunjuk ke Parent yang ada.
type Student struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Group     string `json:"group"`
	CNP       string `json:"cnp,omitempty"`
	ParentID  string `json:"parentId"`
	Active    bool   `json:"active"`
}

func (s Student) FullName() string {
	if s.LastName == "" {
		return s.FirstName
	}
	if s.FirstName == "" {
		return s.LastName
	}
	return s.LastName + " " + s.FirstName
}

type Parent struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// StudentPatch: update parsial (nil = tidak diubah)
type StudentPatch struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Group     *string `json:"group,omitempty"`
	CNP       *string `json:"cnp,omitempty"`
	Active    *bool   `json:"active,omitempty"`
}

func (p StudentPatch) Apply(s *Student) {
	if p.FirstName != nil {
		s.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		s.LastName = *p.LastName
	}
	if p.Group != nil {
		s.Group = *p.Group
	}
	if p.CNP != nil {
		s.CNP = *p.CNP
	}
	if p.Active != nil {
		s.Active = *p.Active
	}
}

type ParentPatch struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty"`
	Address *string `json:"address,omitempty"`
}

func (p ParentPatch) Apply(pr *Parent) {
	if p.Name != nil {
		pr.Name = *p.Name
	}
	if p.Phone != nil {
		pr.Phone = *p.Phone
	}
	if p.Email != nil {
		pr.Email = *p.Email
	}
	if p.Address != nil {
		pr.Address = *p.Address
	}
}
