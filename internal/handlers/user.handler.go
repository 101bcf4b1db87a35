package handlers

import (
	"luminaops/internal/app"
	userController "luminaops/internal/controllers/users"
	"luminaops/internal/handlers/middleware"
	"luminaops/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	Handler
	userController userController.UserControllerInterface
}

func NewUserHandler(app app.App, router fiber.Router) *UserHandler {
	return &UserHandler{
		Handler:        newHandler(app, router, "user_handler"),
		userController: app.Controllers.User,
	}
}

func (h *UserHandler) Register() {
	users := h.router.Group("/users")

	users.Get("/me", h.getMe)
	users.Get("", h.listUsers)
	users.Post("", h.middleware.RequireAdmin(), h.onboardUser)
	users.Get("/:id", h.getUser)
	users.Post("/:id/deactivate", h.middleware.RequireAdmin(), h.deactivateUser)
}

func (h *UserHandler) getMe(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"user": middleware.GetUser(c)})
}

// listUsers gives admins full records and everyone else the staff directory.
func (h *UserHandler) listUsers(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("user_handler").Function("listUsers")

	users, err := h.userController.List(c.UserContext())
	if err != nil {
		return sendError(c, log, err, "Failed to list users")
	}

	if middleware.GetUser(c).IsAdmin() {
		return c.JSON(fiber.Map{"users": users})
	}

	profiles := make([]models.UserProfile, 0, len(users))
	for _, user := range users {
		if user.Active {
			profiles = append(profiles, user.ToProfile())
		}
	}
	return c.JSON(fiber.Map{"users": profiles})
}

func (h *UserHandler) onboardUser(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("user_handler").Function("onboardUser")

	var req userController.OnboardUserRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn("Invalid request body", "error", err)
		return badRequest(c, "Invalid request body")
	}

	user, err := h.userController.Onboard(c.UserContext(), req)
	if err != nil {
		return sendError(c, log, err, "Failed to onboard user")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": user})
}

func (h *UserHandler) getUser(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("user_handler").Function("getUser")

	userID, err := paramID(c, "id")
	if err != nil {
		return sendError(c, log, err, "Invalid user id")
	}

	user, err := h.userController.GetUser(c.UserContext(), userID)
	if err != nil {
		return sendError(c, log, err, "Failed to retrieve user")
	}

	actor := middleware.GetUser(c)
	if actor.IsAdmin() || actor.ID == user.ID {
		return c.JSON(fiber.Map{"user": user})
	}
	return c.JSON(fiber.Map{"user": user.ToProfile()})
}

func (h *UserHandler) deactivateUser(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("user_handler").Function("deactivateUser")

	userID, err := paramID(c, "id")
	if err != nil {
		return sendError(c, log, err, "Invalid user id")
	}

	user, err := h.userController.Deactivate(c.UserContext(), middleware.GetUser(c), userID)
	if err != nil {
		return sendError(c, log, err, "Failed to deactivate user")
	}

	return c.JSON(fiber.Map{"user": user})
}
