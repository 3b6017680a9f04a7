package middleware

import (
	"github.com/gardenops/inventory-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// AdminRequired rejects any actor without the admin role tag. Runs
// after LoadUser.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized"))
		}
		if !user.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(dto.Fail("Admin access required"))
		}
		return c.Next()
	}
}
