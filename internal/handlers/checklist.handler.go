package handlers

import (
	"luminaops/internal/app"
	jobController "luminaops/internal/controllers/jobs"
	"luminaops/internal/handlers/middleware"
	"luminaops/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type ChecklistHandler struct {
	Handler
	jobController jobController.JobControllerInterface
}

type checklistTemplateRequest struct {
	Items []models.ChecklistTemplateItem `json:"items"`
}

func NewChecklistHandler(app app.App, router fiber.Router) *ChecklistHandler {
	return &ChecklistHandler{
		Handler:       newHandler(app, router, "checklist_handler"),
		jobController: app.Controllers.Job,
	}
}

func (h *ChecklistHandler) Register() {
	checklists := h.router.Group("/checklists")

	checklists.Get("/:type", h.getTemplate)
	checklists.Put("/:type", h.middleware.RequireAdmin(), h.updateTemplate)
}

func (h *ChecklistHandler) getTemplate(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("checklist_handler").Function("getTemplate")

	jobType, err := models.ParseJobType(c.Params("type"))
	if err != nil {
		return sendError(c, log, err, "Invalid checklist type")
	}

	template, err := h.jobController.ChecklistTemplate(c.UserContext(), jobType)
	if err != nil {
		return sendError(c, log, err, "Failed to get checklist")
	}

	return c.JSON(fiber.Map{"checklist": template})
}

func (h *ChecklistHandler) updateTemplate(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("checklist_handler").Function("updateTemplate")

	jobType, err := models.ParseJobType(c.Params("type"))
	if err != nil {
		return sendError(c, log, err, "Invalid checklist type")
	}

	var req checklistTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn("Invalid request body", "error", err)
		return badRequest(c, "Invalid request body")
	}

	template, err := h.jobController.UpdateChecklistTemplate(
		c.UserContext(),
		middleware.GetUser(c),
		jobType,
		req.Items,
	)
	if err != nil {
		return sendError(c, log, err, "Failed to update checklist")
	}

	return c.JSON(fiber.Map{"checklist": template})
}
