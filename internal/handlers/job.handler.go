package handlers

import (
	"luminaops/internal/app"
	jobController "luminaops/internal/controllers/jobs"
	"luminaops/internal/handlers/middleware"
	"luminaops/internal/models"
	"luminaops/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type JobHandler struct {
	Handler
	jobController jobController.JobControllerInterface
}

type assignRequest struct {
	UserIDs []uuid.UUID `json:"userIds"`
}

type mediaRequest struct {
	URL string `json:"url"`
}

type notesRequest struct {
	Notes string `json:"notes"`
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

func NewJobHandler(app app.App, router fiber.Router) *JobHandler {
	return &JobHandler{
		Handler:       newHandler(app, router, "job_handler"),
		jobController: app.Controllers.Job,
	}
}

func (h *JobHandler) Register() {
	jobs := h.router.Group("/jobs", h.middleware.RequirePermission(models.CapViewJobs))

	jobs.Get("", h.listJobs)
	jobs.Get("/mine", h.listMyJobs)
	jobs.Get("/stats", h.middleware.RequireAdmin(), h.getStats)
	jobs.Post("/turnover", h.middleware.RequireAdmin(), h.createTurnover)
	jobs.Post("/maintenance", h.middleware.RequirePermission(models.CapCreateMaintenance), h.createMaintenance)

	jobs.Get("/:id", h.getJob)
	jobs.Put("/:id/assignees", h.middleware.RequireAdmin(), h.assign)
	jobs.Post("/:id/start", h.start)
	jobs.Post("/:id/checklist/:itemId/toggle", h.toggleChecklistItem)
	jobs.Post("/:id/media", h.attachMedia)
	jobs.Put("/:id/notes", h.updateNotes)
	jobs.Post("/:id/complete", h.complete)
	jobs.Post("/:id/cancel", h.middleware.RequireAdmin(), h.cancel)
	jobs.Post("/:id/issues", h.reportIssue)
}

// listJobs lets admins filter freely; other staff only ever see their own
// assignments.
func (h *JobHandler) listJobs(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("job_handler").Function("listJobs")

	var filter repositories.JobFilter
	var err error

	if filter.PropertyID, err = queryID(c, "propertyId"); err != nil {
		return sendError(c, log, err, "Invalid property id")
	}
	if filter.AssigneeID, err = queryID(c, "assigneeId"); err != nil {
		return sendError(c, log, err, "Invalid assignee id")
	}
	if value := c.Query("status"); value != "" {
		status, err := models.ParseJobStatus(value)
		if err != nil {
			return sendError(c, log, err, "Invalid status")
		}
		filter.Status = &status
	}

	actor := middleware.GetUser(c)
	if !actor.IsAdmin() {
		filter.AssigneeID = &actor.ID
	}

	jobs, err := h.jobController.List(c.UserContext(), filter)
	if err != nil {
		return sendError(c, log, err, "Failed to list jobs")
	}

	return c.JSON(fiber.Map{"jobs": jobs})
}

func (h *JobHandler) listMyJobs(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("job_handler").Function("listMyJobs")

	jobs, err := h.jobController.ListForAssignee(c.UserContext(), middleware.GetUser(c))
	if err != nil {
		return sendError(c, log, err, "Failed to list assigned jobs")
	}

	return c.JSON(jobs)
}

func (h *JobHandler) getStats(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("job_handler").Function("getStats")

	stats, err := h.jobController.Stats(c.UserContext())
	if err != nil {
		return sendError(c, log, err, "Failed to compute job stats")
	}

	return c.JSON(fiber.Map{"stats": stats})
}

func (h *JobHandler) createTurnover(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("job_handler").Function("createTurnover")

	var req jobController.CreateTurnoverJobRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn("Invalid request body", "error", err)
		return badRequest(c, "Invalid request body")
	}

	job, err := h.jobController.CreateTurnoverJob(c.UserContext(), req)
	if err != nil {
		return sendError(c, log, err, "Failed to create turnover job")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"job": job})
}

func (h *JobHandler) createMaintenance(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("job_handler").Function("createMaintenance")

	var req jobController.CreateMaintenanceJobRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn("Invalid request body", "error", err)
		return badRequest(c, "Invalid request body")
	}

	job, err := h.jobController.CreateMaintenanceJob(c.UserContext(), middleware.GetUser(c), req)
	if err != nil {
		return sendError(c, log, err, "Failed to create maintenance job")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"job": job})
}

func (h *JobHandler) getJob(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("job_handler").Function("getJob")

	jobID, err := paramID(c, "id")
	if err != nil {
		return sendError(c, log, err, "Invalid job id")
	}

	job, err := h.jobController.Get(c.UserContext(), jobID)
	if err != nil {
		return sendError(c, log, err, "Failed to retrieve job")
	}

	actor := middleware.GetUser(c)
	if !actor.IsAdmin() && !job.IsAssignedTo(actor.ID) {
		return sendError(c, log, models.ErrForbidden, "Failed to retrieve job")
	}

	return c.JSON(fiber.Map{"job": job})
}

func (h *JobHandler) assign(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("job_handler").Function("assign")

	jobID, err := paramID(c, "id")
	if err != nil {
		return sendError(c, log, err, "Invalid job id")
	}

	var req assignRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn("Invalid request body", "error", err)
		return badRequest(c, "Invalid request body")
	}

	job, err := h.jobController.Assign(c.UserContext(), middleware.GetUser(c), jobID, req.UserIDs)
	if err != nil {
		return sendError(c, log, err, "Failed to assign job")
	}

	return c.JSON(fiber.Map{"job": job})
}

func (h *JobHandler) start(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("job_handler").Function("start")

	jobID, err := paramID(c, "id")
	if err != nil {
		return sendError(c, log, err, "Invalid job id")
	}

	job, err := h.jobController.Start(c.UserContext(), middleware.GetUser(c), jobID)
	if err != nil {
		return sendError(c, log, err, "Failed to start job")
	}

	return c.JSON(fiber.Map{"job": job})
}

func (h *JobHandler) toggleChecklistItem(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("job_handler").Function("toggleChecklistItem")

	jobID, err := paramID(c, "id")
	if err != nil {
		return sendError(c, log, err, "Invalid job id")
	}
	itemID, err := paramID(c, "itemId")
	if err != nil {
		return sendError(c, log, err, "Invalid checklist item id")
	}

	job, err := h.jobController.ToggleChecklistItem(c.UserContext(), middleware.GetUser(c), jobID, itemID)
	if err != nil {
		return sendError(c, log, err, "Failed to toggle checklist item")
	}

	return c.JSON(fiber.Map{"job": job})
}

func (h *JobHandler) attachMedia(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("job_handler").Function("attachMedia")

	jobID, err := paramID(c, "id")
	if err != nil {
		return sendError(c, log, err, "Invalid job id")
	}

	var req mediaRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn("Invalid request body", "error", err)
		return badRequest(c, "Invalid request body")
	}

	job, err := h.jobController.AttachMedia(c.UserContext(), middleware.GetUser(c), jobID, req.URL)
	if err != nil {
		return sendError(c, log, err, "Failed to attach media")
	}

	return c.JSON(fiber.Map{"job": job})
}

func (h *JobHandler) updateNotes(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("job_handler").Function("updateNotes")

	jobID, err := paramID(c, "id")
	if err != nil {
		return sendError(c, log, err, "Invalid job id")
	}

	var req notesRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn("Invalid request body", "error", err)
		return badRequest(c, "Invalid request body")
	}

	job, err := h.jobController.UpdateNotes(c.UserContext(), middleware.GetUser(c), jobID, req.Notes)
	if err != nil {
		return sendError(c, log, err, "Failed to update notes")
	}

	return c.JSON(fiber.Map{"job": job})
}

func (h *JobHandler) complete(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("job_handler").Function("complete")

	jobID, err := paramID(c, "id")
	if err != nil {
		return sendError(c, log, err, "Invalid job id")
	}

	job, err := h.jobController.Complete(c.UserContext(), middleware.GetUser(c), jobID)
	if err != nil {
		return sendError(c, log, err, "Failed to complete job")
	}

	return c.JSON(fiber.Map{"job": job})
}

func (h *JobHandler) cancel(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("job_handler").Function("cancel")

	jobID, err := paramID(c, "id")
	if err != nil {
		return sendError(c, log, err, "Invalid job id")
	}

	var req cancelRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			log.Warn("Invalid request body", "error", err)
			return badRequest(c, "Invalid request body")
		}
	}

	job, err := h.jobController.Cancel(c.UserContext(), middleware.GetUser(c), jobID, req.Reason)
	if err != nil {
		return sendError(c, log, err, "Failed to cancel job")
	}

	return c.JSON(fiber.Map{"job": job})
}

func (h *JobHandler) reportIssue(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("job_handler").Function("reportIssue")

	jobID, err := paramID(c, "id")
	if err != nil {
		return sendError(c, log, err, "Invalid job id")
	}

	var req jobController.ReportIssueRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn("Invalid request body", "error", err)
		return badRequest(c, "Invalid request body")
	}

	issue, err := h.jobController.ReportIssue(c.UserContext(), middleware.GetUser(c), jobID, req)
	if err != nil {
		return sendError(c, log, err, "Failed to report issue")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"issue": issue})
}
