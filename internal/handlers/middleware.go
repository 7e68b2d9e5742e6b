package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"resumate/backend/internal/services"
)

const userIDKey = "user_id"

// defaultUserID serves unauthenticated single-user deployments. Requests
// carrying a valid bearer token get their own identity instead.
const defaultUserID uint = 1

// ResolveUser determines the acting user for a request. Precedence: bearer
// token, then the user_id query parameter, then the default user.
func ResolveUser(auth services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := defaultUserID

		if raw := c.Query(userIDKey); raw != "" {
			if parsed, err := strconv.ParseUint(raw, 10, 64); err == nil && parsed > 0 {
				userID = uint(parsed)
			}
		}

		if header := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(header, "Bearer ") {
			token := strings.TrimPrefix(header, "Bearer ")
			parsed, err := auth.ParseToken(token)
			if err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "invalid or expired token",
				})
			}
			userID = parsed
		}

		c.Locals(userIDKey, userID)
		return c.Next()
	}
}

func currentUserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals(userIDKey).(uint); ok {
		return id
	}
	return defaultUserID
}
