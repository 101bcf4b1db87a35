package middleware

import (
	"luminaops/internal/models"

	"github.com/gofiber/fiber/v2"
)

func (m *Middleware) RequireAdmin() fiber.Handler {
	log := m.log.Function("RequireAdmin")

	return func(c *fiber.Ctx) error {
		user := GetUser(c)
		if user == nil {
			log.Info("user not found in context")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "X-User-ID header required",
			})
		}

		if !user.IsAdmin() {
			log.Info("user is not admin", "userID", user.ID, "role", user.Role)
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Admin access required",
			})
		}

		return c.Next()
	}
}

// RequirePermission is a direct flag lookup on the actor's permission record.
func (m *Middleware) RequirePermission(capability models.Capability) fiber.Handler {
	log := m.log.Function("RequirePermission")

	return func(c *fiber.Ctx) error {
		user := GetUser(c)
		if user == nil {
			log.Info("user not found in context")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "X-User-ID header required",
			})
		}

		if !user.Can(capability) {
			log.Info("permission denied", "userID", user.ID, "role", user.Role, "capability", capability)
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Missing permission: " + string(capability),
			})
		}

		return c.Next()
	}
}
