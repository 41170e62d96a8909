package middleware

import (
	"strings"

	"github.com/agentos/backend/internal/core/ports"
	"github.com/gofiber/fiber/v2"
)

// UserAuth resolves the bearer token and stores the caller identity in
// request locals under "user_id" and "is_admin".
func UserAuth(auth ports.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing bearer token",
			})
		}

		user, err := auth.Validate(c.Context(), header[len(prefix):])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or expired token",
			})
		}

		c.Locals("user_id", user.ID)
		c.Locals("is_admin", user.IsAdmin)
		return c.Next()
	}
}

// AdminOnly must run after UserAuth.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		isAdmin, _ := c.Locals("is_admin").(bool)
		if !isAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "admin access required",
			})
		}
		return c.Next()
	}
}
