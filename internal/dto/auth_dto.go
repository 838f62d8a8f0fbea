package dto

import "campusshare/internal/model"

type RegisterRequest struct {
	Name       string  `json:"name" binding:"required,min=2,max=100"`
	Email      string  `json:"email" binding:"required,email"`
	Password   string  `json:"password" binding:"required,min=8"`
	Department *string `json:"department"`
	Year       *int    `json:"year" binding:"omitempty,min=1,max=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresIn   int64       `json:"expires_in"`
	User        *model.User `json:"user"`
}
