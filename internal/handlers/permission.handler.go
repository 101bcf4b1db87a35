package handlers

import (
	"strings"

	"luminaops/internal/app"
	userController "luminaops/internal/controllers/users"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type PermissionHandler struct {
	Handler
	userController userController.UserControllerInterface
}

func NewPermissionHandler(app app.App, router fiber.Router) *PermissionHandler {
	return &PermissionHandler{
		Handler:        newHandler(app, router, "permission_handler"),
		userController: app.Controllers.User,
	}
}

func (h *PermissionHandler) Register() {
	h.router.Get("/permissions/:role", h.getPermissions)
}

func (h *PermissionHandler) getPermissions(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("permission_handler").Function("getPermissions")

	role := c.Params("role")
	permissions, err := h.userController.Permissions(role)
	if err != nil {
		return sendError(c, log, err, "Failed to resolve permissions")
	}

	return c.JSON(fiber.Map{
		"role":        strings.ToUpper(role),
		"permissions": permissions,
	})
}
