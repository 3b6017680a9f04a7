package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Paths reachable by deactivated or unverified accounts.
var gateSkipPaths = []string{
	"/deactivated",
	"/verify/email",
	"/logout",
}

// AccountGate blocks deactivated and unverified accounts from every
// protected route. The active check runs first: deactivation is the
// stronger restriction and wins when both apply. Admins bypass the
// verification requirement only.
func AccountGate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		for _, skip := range gateSkipPaths {
			if strings.HasPrefix(path, skip) {
				return c.Next()
			}
		}

		user := CurrentUser(c)
		if user == nil {
			return c.Next()
		}

		if !user.IsActive {
			return c.Redirect("/deactivated", fiber.StatusFound)
		}

		if !user.IsVerified && !user.IsAdmin() {
			return c.Redirect("/verify/email", fiber.StatusFound)
		}

		return c.Next()
	}
}
