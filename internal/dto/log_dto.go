package dto

import (
	"github.com/gardenops/inventory-backend/internal/models"
	"github.com/google/uuid"
)

type ActivityLogResponse struct {
	ID        uuid.UUID                     `json:"id"`
	UserID    *uuid.UUID                    `json:"user_id"`
	Username  *string                       `json:"username"`
	Role      *models.Role                  `json:"role"`
	Action    models.ActivityAction         `json:"action"`
	Target    string                        `json:"target"`
	Changes   map[string]models.FieldChange `json:"changes,omitempty"`
	CreatedAt string                        `json:"created_at"`
}

func NewActivityLogResponse(l *models.ActivityLog) ActivityLogResponse {
	return ActivityLogResponse{
		ID:        l.ID,
		UserID:    l.UserID,
		Username:  l.Username,
		Role:      l.Role,
		Action:    l.Action,
		Target:    l.Target,
		Changes:   l.Changes.Data(),
		CreatedAt: l.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

type ActivityLogListResponse struct {
	Success bool                  `json:"success"`
	Logs    []ActivityLogResponse `json:"logs"`
}

type DashboardResponse struct {
	Success         bool              `json:"success"`
	TotalUsers      int64             `json:"total_users"`
	TotalProducts   int64             `json:"total_products"`
	TotalStocks     int64             `json:"total_stocks"`
	RecentProducts  []ProductResponse `json:"recent_products"`
	UserGrowth      []int64           `json:"user_growth"`
	UserGrowthDates []string          `json:"user_growth_dates"`
}
