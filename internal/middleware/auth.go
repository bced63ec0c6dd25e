package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/mroshb/streetwars/internal/security"
)

const (
	userIDKey   = "user_id"
	usernameKey = "username"
)

// AuthRequired validates the Bearer token issued by the auth service
// and stores the caller's user id on the request context.
func AuthRequired(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing bearer token",
			})
		}

		claims, err := security.ValidateJWT(strings.TrimPrefix(header, "Bearer "), jwtSecret)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid token",
			})
		}

		c.Locals(userIDKey, claims.UserID)
		c.Locals(usernameKey, claims.Username)
		return c.Next()
	}
}

// UserID returns the authenticated caller's id from the request
// context. Zero means the auth middleware did not run.
func UserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals(userIDKey).(uint); ok {
		return id
	}
	return 0
}

// Username returns the authenticated caller's username claim.
func Username(c *fiber.Ctx) string {
	if name, ok := c.Locals(usernameKey).(string); ok {
		return name
	}
	return ""
}
