package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/nearhood/nearhood-backend/internal/auth"
)

// Locals keys set by RequireAuth.
const (
	LocalUserID = "userID"
	LocalRole   = "role"
)

// RequireAuth validates the Bearer token and stores the caller's identity
// in the request locals.
func RequireAuth(tokens *auth.TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenStr == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success":    false,
				"error_code": "unauthorized",
				"message":    "missing bearer token",
			})
		}

		claims, err := tokens.ParseToken(tokenStr)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success":    false,
				"error_code": "unauthorized",
				"message":    "invalid or expired token",
			})
		}

		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalRole, claims.Role)
		return c.Next()
	}
}
