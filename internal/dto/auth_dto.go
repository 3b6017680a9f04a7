package dto

import (
	"github.com/gardenops/inventory-backend/internal/models"
	"github.com/google/uuid"
)

type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type AuthResponse struct {
	Success      bool         `json:"success"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	RedirectTo   string       `json:"redirect_to"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	ID           uuid.UUID     `json:"id"`
	Email        string        `json:"email"`
	FirstName    string        `json:"first_name"`
	LastName     string        `json:"last_name"`
	Phone        string        `json:"phone"`
	Roles        []models.Role `json:"roles"`
	IsActive     bool          `json:"is_active"`
	IsVerified   bool          `json:"is_verified"`
	ProfileImage string        `json:"profile_image,omitempty"`
	CreatedAt    string        `json:"created_at,omitempty"`
	LastLoginAt  string        `json:"last_login_at,omitempty"`
}

func NewUserResponse(u *models.User) UserResponse {
	resp := UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Phone:        u.Phone,
		Roles:        u.Roles,
		IsActive:     u.IsActive,
		IsVerified:   u.IsVerified,
		ProfileImage: u.ProfileImage,
	}
	if !u.CreatedAt.IsZero() {
		resp.CreatedAt = u.CreatedAt.Format("2006-01-02 15:04:05")
	}
	if u.LastLoginAt != nil {
		resp.LastLoginAt = u.LastLoginAt.Format("2006-01-02 15:04:05")
	}
	return resp
}

type PasswordCheckRequest struct {
	Password string `json:"password"`
}

type PasswordChangeRequest struct {
	CurrentPassword string `json:"currentPassword" form:"currentPassword"`
	NewPassword     string `json:"newPassword" form:"newPassword"`
}
