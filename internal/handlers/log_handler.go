package handlers

import (
	"time"

	"github.com/gardenops/inventory-backend/internal/activity"
	"github.com/gardenops/inventory-backend/internal/dto"
	"github.com/gardenops/inventory-backend/internal/models"
	"github.com/gofiber/fiber/v2"
)

type LogHandler struct {
	logger *activity.Logger
}

func NewLogHandler(logger *activity.Logger) *LogHandler {
	return &LogHandler{logger: logger}
}

// Index serves the admin audit log view. Filters: user (username
// substring), action (exact), from/to (RFC3339 or date-only).
func (h *LogHandler) Index(c *fiber.Ctx) error {
	filter := activity.Filter{
		Username: c.Query("user"),
		Action:   models.ActivityAction(c.Query("action")),
	}

	if from := c.Query("from"); from != "" {
		t, err := parseTimestamp(from)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid 'from' timestamp"))
		}
		filter.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := parseTimestamp(to)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid 'to' timestamp"))
		}
		filter.To = &t
	}

	logs, err := h.logger.List(filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Failed to list activity logs"))
	}

	resp := dto.ActivityLogListResponse{Success: true, Logs: make([]dto.ActivityLogResponse, 0, len(logs))}
	for i := range logs {
		resp.Logs = append(resp.Logs, dto.NewActivityLogResponse(&logs[i]))
	}
	return c.JSON(resp)
}

func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
