package middleware

import (
	"time"

	"github.com/gardenops/inventory-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/utils"
)

// CSRFContextKey is where the middleware stores the issued token.
const CSRFContextKey = "csrf_token"

// CSRF protects state-mutating routes. The token is accepted from the
// X-CSRF-TOKEN header or the _token form field; a missing or stale
// token yields 400.
func CSRF() fiber.Handler {
	return csrf.New(csrf.Config{
		KeyLookup:      "header:X-CSRF-TOKEN",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Expiration:     1 * time.Hour,
		KeyGenerator:   utils.UUIDv4,
		ContextKey:     CSRFContextKey,
		Extractor: func(c *fiber.Ctx) (string, error) {
			if token := c.Get("X-CSRF-TOKEN"); token != "" {
				return token, nil
			}
			if token := c.FormValue("_token"); token != "" {
				return token, nil
			}
			return "", csrf.ErrTokenNotFound
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Invalid CSRF token"))
		},
	})
}

// CSRFToken returns the token issued for the current session.
func CSRFToken(c *fiber.Ctx) string {
	if token, ok := c.Locals(CSRFContextKey).(string); ok {
		return token
	}
	return ""
}
