package activity

import (
	"time"

	"github.com/gardenops/inventory-backend/internal/models"
)

// maxListResults caps the admin log view.
const maxListResults = 200

// Filter narrows the admin log listing. Zero values mean "no filter".
type Filter struct {
	Username string
	Action   models.ActivityAction
	From     *time.Time
	To       *time.Time
}

// List returns the newest audit entries matching f, capped at 200.
// Entries without a username snapshot are excluded from the view.
func (l *Logger) List(f Filter) ([]models.ActivityLog, error) {
	q := l.db.Model(&models.ActivityLog{}).
		Where("username IS NOT NULL").
		Order("created_at DESC")

	if f.Username != "" {
		q = q.Where("username LIKE ?", "%"+f.Username+"%")
	}
	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at <= ?", *f.To)
	}

	var logs []models.ActivityLog
	if err := q.Limit(maxListResults).Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
