package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Role is a single authorization tag. A user carries a set of them.
type Role string

const (
	RoleAdmin Role = "ROLE_ADMIN"
	RoleStaff Role = "ROLE_STAFF"
	RoleUser  Role = "ROLE_USER"
)

// rolePriority orders tags for display: the first match in a user's
// role set is their primary role.
var rolePriority = []Role{RoleAdmin, RoleStaff, RoleUser}

type User struct {
	ID           uuid.UUID                 `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string                    `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password     string                    `gorm:"not null" json:"-"`
	FirstName    string                    `gorm:"size:100" json:"first_name"`
	LastName     string                    `gorm:"size:100" json:"last_name"`
	Phone        string                    `gorm:"size:30" json:"phone"`
	Roles        datatypes.JSONSlice[Role] `gorm:"not null" json:"roles"`
	IsActive     bool                      `gorm:"not null;default:true" json:"is_active"`
	IsVerified   bool                      `gorm:"not null;default:false" json:"is_verified"`
	ProfileImage string                    `gorm:"size:255" json:"profile_image"`
	LastLoginAt  *time.Time                `json:"last_login_at"`
	CreatedAt    time.Time                 `json:"created_at"`
	UpdatedAt    time.Time                 `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate fills the UUID and guarantees the role set is never empty.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if len(u.Roles) == 0 {
		u.Roles = datatypes.NewJSONSlice([]Role{RoleUser})
	}
	return nil
}

func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}

func (u *User) IsStaff() bool {
	return u.HasRole(RoleStaff)
}

// PrimaryRole picks the highest-priority tag from the role set, falling
// back to the first tag present. Empty role sets yield nil.
func (u *User) PrimaryRole() *Role {
	for _, candidate := range rolePriority {
		if u.HasRole(candidate) {
			r := candidate
			return &r
		}
	}
	if len(u.Roles) > 0 {
		r := u.Roles[0]
		return &r
	}
	return nil
}

func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
