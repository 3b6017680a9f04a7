package services

import (
	"time"

	"github.com/gardenops/inventory-backend/internal/models"
	"gorm.io/gorm"
)

// userGrowthDays is the window shown on the admin dashboard chart.
const userGrowthDays = 90

type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

type DashboardStats struct {
	TotalUsers      int64
	TotalProducts   int64
	TotalStocks     int64
	UserGrowth      []int64
	UserGrowthDates []string
}

// Stats collects the dashboard counters and a per-day new-user series
// for the last 90 days, oldest first.
func (s *DashboardService) Stats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	if err := s.db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Stock{}).Count(&stats.TotalStocks).Error; err != nil {
		return nil, err
	}

	growth, dates, err := s.userGrowth()
	if err != nil {
		return nil, err
	}
	stats.UserGrowth = growth
	stats.UserGrowthDates = dates
	return stats, nil
}

func (s *DashboardService) userGrowth() ([]int64, []string, error) {
	now := time.Now()
	windowStart := now.AddDate(0, 0, -(userGrowthDays - 1))
	windowStart = time.Date(windowStart.Year(), windowStart.Month(), windowStart.Day(), 0, 0, 0, 0, windowStart.Location())

	var createdAts []time.Time
	err := s.db.Model(&models.User{}).
		Where("created_at >= ?", windowStart).
		Pluck("created_at", &createdAts).Error
	if err != nil {
		return nil, nil, err
	}

	// Bucket in Go so the query stays portable across dialects.
	counts := make(map[string]int64, userGrowthDays)
	for _, t := range createdAts {
		counts[t.Format("2006-01-02")]++
	}

	growth := make([]int64, 0, userGrowthDays)
	dates := make([]string, 0, userGrowthDays)
	for i := 0; i < userGrowthDays; i++ {
		day := windowStart.AddDate(0, 0, i)
		growth = append(growth, counts[day.Format("2006-01-02")])
		dates = append(dates, day.Format("Jan 02"))
	}
	return growth, dates, nil
}
