package dto

import (
	"strings"

	"edugest_backend/internals/features/kindergarten/model"
)

type UpdateConfigRequest struct {
	InstitutionName string   `json:"institutionName" validate:"required,max=160"`
	FoodCostPerDay  float64  `json:"foodCostPerDay" validate:"gte=0"`
	Currency        string   `json:"currency" validate:"omitempty,max=8"`
	Address         string   `json:"address" validate:"omitempty,max=255"`
	Email           string   `json:"email" validate:"omitempty,email"`
	Phone           string   `json:"phone" validate:"omitempty,max=32"`
	Groups          []string `json:"groups" validate:"omitempty,dive,max=80"`
}

func (r UpdateConfigRequest) ToModel() model.AppConfig {
	return model.AppConfig{
		InstitutionName: r.InstitutionName,
		FoodCostPerDay:  r.FoodCostPerDay,
		Currency:        strings.TrimSpace(r.Currency),
		Address:         strings.TrimSpace(r.Address),
		Email:           strings.TrimSpace(r.Email),
		Phone:           strings.TrimSpace(r.Phone),
		Groups:          r.Groups,
	}
}

type GroupRequest struct {
	Name string `json:"name" validate:"required,max=80"`
}

type RenameGroupRequest struct {
	NewName string `json:"newName" validate:"required,max=80"`
}

type CreateUserRequest struct {
	Username string     `json:"username" validate:"required,min=3,max=32"`
	Password string     `json:"password" validate:"required,min=4,max=128"`
	Name     string     `json:"name" validate:"omitempty,max=120"`
	Role     model.Role `json:"role" validate:"required,oneof=ADMIN EDUCATOR ASISTENT"`
}

func (r CreateUserRequest) ToModel() model.User {
	return model.User{Username: r.Username, Password: r.Password, Name: r.Name, Role: r.Role}
}
