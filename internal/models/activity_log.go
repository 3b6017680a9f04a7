package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ActivityAction tags one kind of audited mutation.
type ActivityAction string

const (
	ActionCreateUser    ActivityAction = "CREATE_USER"
	ActionUpdateUser    ActivityAction = "UPDATE_USER"
	ActionDeleteUser    ActivityAction = "DELETE_USER"
	ActionCreateProduct ActivityAction = "CREATE_PRODUCT"
	ActionUpdateProduct ActivityAction = "UPDATE_PRODUCT"
	ActionDeleteProduct ActivityAction = "DELETE_PRODUCT"
	ActionCreateStock   ActivityAction = "CREATE_STOCK"
	ActionUpdateStock   ActivityAction = "UPDATE_STOCK"
	ActionDeleteStock   ActivityAction = "DELETE_STOCK"
	ActionLogin         ActivityAction = "LOGIN"
	ActionLogout        ActivityAction = "LOGOUT"
)

// FieldChange records one field transition inside an audit entry.
type FieldChange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ActivityLog is one immutable audit row. The actor fields are a
// denormalized snapshot taken at write time; they are never refreshed
// from the users table and survive the actor's deletion.
type ActivityLog struct {
	ID        uuid.UUID                                  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    *uuid.UUID                                 `gorm:"type:uuid;index" json:"user_id"`
	Username  *string                                    `gorm:"size:255;index" json:"username"`
	Role      *Role                                      `gorm:"size:50" json:"role"`
	Action    ActivityAction                             `gorm:"not null;size:50;index" json:"action"`
	Target    string                                     `gorm:"type:text" json:"target"`
	Changes   datatypes.JSONType[map[string]FieldChange] `json:"changes"`
	CreatedAt time.Time                                  `gorm:"index" json:"created_at"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}

func (l *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
