package dto

import (
	"strings"

	"edugest_backend/internals/features/kindergarten/model"
	"edugest_backend/internals/state"
)

type ParentRequest struct {
	Name    string `json:"name" validate:"omitempty,max=120"`
	Phone   string `json:"phone" validate:"omitempty,max=32"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address" validate:"omitempty,max=255"`
}

type CreateStudentRequest struct {
	FirstName string        `json:"firstName" validate:"required,max=80"`
	LastName  string        `json:"lastName" validate:"required,max=80"`
	Group     string        `json:"group" validate:"omitempty,max=80"`
	CNP       string        `json:"cnp" validate:"omitempty,len=13,numeric"`
	Parent    ParentRequest `json:"parent"`
}

func (r CreateStudentRequest) ToModel() (model.Student, model.Parent) {
	return model.Student{
			FirstName: strings.TrimSpace(r.FirstName),
			LastName:  strings.TrimSpace(r.LastName),
			Group:     strings.TrimSpace(r.Group),
			CNP:       strings.TrimSpace(r.CNP),
		}, model.Parent{
			Name:    r.Parent.Name,
			Phone:   strings.TrimSpace(r.Parent.Phone),
			Email:   strings.TrimSpace(r.Parent.Email),
			Address: strings.TrimSpace(r.Parent.Address),
		}
}

type UpdateStudentRequest struct {
	model.StudentPatch
	Parent *model.ParentPatch `json:"parent,omitempty"`
}

type StudentResponse struct {
	model.Student
	Parent *model.Parent `json:"parent,omitempty"`
}

func ToStudentResponse(st model.Student, parents []model.Parent) StudentResponse {
	out := StudentResponse{Student: st}
	for i := range parents {
		if parents[i].ID == st.ParentID {
			p := parents[i]
			out.Parent = &p
			break
		}
	}
	return out
}

type ImportPreview struct {
	Rows   int               `json:"rows"`
	Sample []state.ImportRow `json:"sample"`
}
