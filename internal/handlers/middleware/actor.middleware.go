package middleware

import (
	"context"
	"luminaops/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ActorContextKey string

const (
	UserIDHeader = "X-User-ID"

	UserKey      ActorContextKey = "user"
	UserKeyFiber string          = "User"
)

// RequireUser resolves the acting staff member from the X-User-ID header.
// The header identifies, it does not authenticate.
func (m *Middleware) RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		log := logger.New("middleware").TraceFromContext(c.UserContext()).Function("RequireUser")

		header := c.Get(UserIDHeader)
		if header == "" {
			log.Info("missing user header")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "X-User-ID header required",
			})
		}

		userID, err := uuid.Parse(header)
		if err != nil {
			log.Info("malformed user header", "value", header)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid X-User-ID header",
			})
		}

		user, err := m.userRepo.GetByID(c.UserContext(), userID)
		if err != nil {
			log.Info("user not found", "userID", userID)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "User not found",
			})
		}

		if !user.Active {
			log.Info("inactive user rejected", "userID", userID)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "User is deactivated",
			})
		}

		c.Locals(UserKeyFiber, user)
		c.SetUserContext(context.WithValue(c.UserContext(), UserKey, user))

		return c.Next()
	}
}

func GetUser(c *fiber.Ctx) *models.User {
	user, ok := c.Locals(UserKeyFiber).(*models.User)
	if !ok {
		return nil
	}
	return user
}
