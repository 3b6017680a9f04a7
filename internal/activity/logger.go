// Package activity appends immutable audit entries for every mutating
// operation. Entries carry a snapshot of the actor taken at write time
// so the audit trail stays intact when users change or disappear.
package activity

import (
	"time"

	"github.com/gardenops/inventory-backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Logger struct {
	db *gorm.DB
}

func NewLogger(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

// Log appends one audit entry on the logger's own connection. For
// entries that must commit or roll back with a business mutation, use
// LogTx with the mutation's transaction handle.
func (l *Logger) Log(actor *models.User, action models.ActivityAction, target string, changes map[string]models.FieldChange) error {
	return l.LogTx(l.db, actor, action, target, changes)
}

// LogTx appends one audit entry using tx, which may be a transaction
// shared with the triggering mutation. Write errors propagate to the
// caller; nothing is retried or buffered.
func (l *Logger) LogTx(tx *gorm.DB, actor *models.User, action models.ActivityAction, target string, changes map[string]models.FieldChange) error {
	entry := models.ActivityLog{
		Action:    action,
		Target:    target,
		CreatedAt: time.Now(),
	}

	if actor != nil {
		id := actor.ID
		email := actor.Email
		entry.UserID = &id
		entry.Username = &email
		entry.Role = actor.PrimaryRole()
	}

	if len(changes) > 0 {
		entry.Changes = datatypes.NewJSONType(changes)
	}

	return tx.Create(&entry).Error
}
