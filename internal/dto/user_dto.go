package dto

import "github.com/gardenops/inventory-backend/internal/models"

type CreateUserRequest struct {
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone"`
	Password  string      `json:"password"`
	Role      models.Role `json:"role"`
	IsActive  *bool       `json:"isActive"`
}

type UpdateUserRequest struct {
	FirstName *string      `json:"firstName"`
	LastName  *string      `json:"lastName"`
	Email     *string      `json:"email"`
	Phone     *string      `json:"phone"`
	Password  *string      `json:"password"`
	Role      *models.Role `json:"role"`
	IsActive  *bool        `json:"isActive"`
}

type ToggleStatusRequest struct {
	IsActive bool   `json:"isActive"`
	Password string `json:"password"`
}

type UserDetailResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	User    UserResponse `json:"user"`
}

type UserListResponse struct {
	Success bool           `json:"success"`
	Users   []UserResponse `json:"users"`
}

type ProfileUpdateRequest struct {
	FirstName *string `json:"firstName" form:"firstName"`
	LastName  *string `json:"lastName" form:"lastName"`
	Email     *string `json:"email" form:"email"`
	Phone     *string `json:"phone" form:"phone"`
}
