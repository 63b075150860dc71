package dto

import "edugest_backend/internals/features/kindergarten/model"

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=1,max=64"`
	Password string `json:"password" validate:"required,min=1,max=128"`
}

type LoginResponse struct {
	User        model.User `json:"user"`
	AccessToken string     `json:"access_token"`
	ExpiresAt   string     `json:"expires_at"`
}

type MeResponse struct {
	User     model.User `json:"user"`
	Sections []string   `json:"sections"`
}
