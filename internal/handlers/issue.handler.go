package handlers

import (
	"luminaops/internal/app"
	adviceController "luminaops/internal/controllers/advice"
	jobController "luminaops/internal/controllers/jobs"
	"luminaops/internal/models"
	"luminaops/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type IssueHandler struct {
	Handler
	jobController    jobController.JobControllerInterface
	adviceController adviceController.AdviceControllerInterface
}

type adviceRequest struct {
	Description string `json:"description"`
}

func NewIssueHandler(app app.App, router fiber.Router) *IssueHandler {
	return &IssueHandler{
		Handler:          newHandler(app, router, "issue_handler"),
		jobController:    app.Controllers.Job,
		adviceController: app.Controllers.Advice,
	}
}

func (h *IssueHandler) Register() {
	issues := h.router.Group("/issues")

	issues.Get("", h.middleware.RequireAdmin(), h.listIssues)
	issues.Post("/advice", h.middleware.RequirePermission(models.CapCreateMaintenance), h.getAdvice)
}

func (h *IssueHandler) listIssues(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("issue_handler").Function("listIssues")

	var filter repositories.IssueFilter
	var err error

	if filter.PropertyID, err = queryID(c, "propertyId"); err != nil {
		return sendError(c, log, err, "Invalid property id")
	}
	if filter.JobID, err = queryID(c, "jobId"); err != nil {
		return sendError(c, log, err, "Invalid job id")
	}

	issues, err := h.jobController.ListIssues(c.UserContext(), filter)
	if err != nil {
		return sendError(c, log, err, "Failed to list issues")
	}

	return c.JSON(fiber.Map{"issues": issues})
}

// getAdvice always answers 200 once the description is present; generator
// failures surface as the fallback text.
func (h *IssueHandler) getAdvice(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("issue_handler").Function("getAdvice")

	var req adviceRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn("Invalid request body", "error", err)
		return badRequest(c, "Invalid request body")
	}

	advice, err := h.adviceController.MaintenanceAdvice(c.UserContext(), req.Description)
	if err != nil {
		return sendError(c, log, err, "Failed to generate advice")
	}

	return c.JSON(advice)
}
