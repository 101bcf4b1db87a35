package handlers

import (
	"net/url"

	"luminaops/internal/app"
	adviceController "luminaops/internal/controllers/advice"
	inventoryController "luminaops/internal/controllers/inventory"
	propertyController "luminaops/internal/controllers/properties"
	"luminaops/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type PropertyHandler struct {
	Handler
	propertyController  propertyController.PropertyControllerInterface
	inventoryController inventoryController.InventoryControllerInterface
	adviceController    adviceController.AdviceControllerInterface
}

func NewPropertyHandler(app app.App, router fiber.Router) *PropertyHandler {
	return &PropertyHandler{
		Handler:             newHandler(app, router, "property_handler"),
		propertyController:  app.Controllers.Property,
		inventoryController: app.Controllers.Inventory,
		adviceController:    app.Controllers.Advice,
	}
}

func (h *PropertyHandler) Register() {
	properties := h.router.Group("/properties")

	properties.Get("", h.listProperties)
	properties.Post("", h.middleware.RequireAdmin(), h.createProperty)
	properties.Get("/:id", h.getProperty)
	properties.Get("/:id/summary", h.middleware.RequireAdmin(), h.getSummary)
	properties.Put("/:id/par-levels/:consumable", h.middleware.RequireAdmin(), h.setParLevel)
}

func (h *PropertyHandler) listProperties(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("property_handler").Function("listProperties")

	properties, err := h.propertyController.List(c.UserContext())
	if err != nil {
		return sendError(c, log, err, "Failed to list properties")
	}

	return c.JSON(fiber.Map{"properties": properties})
}

func (h *PropertyHandler) createProperty(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("property_handler").Function("createProperty")

	var req propertyController.CreatePropertyRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn("Invalid request body", "error", err)
		return badRequest(c, "Invalid request body")
	}

	property, err := h.propertyController.CreateProperty(c.UserContext(), middleware.GetUser(c), req)
	if err != nil {
		return sendError(c, log, err, "Failed to create property")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"property": property})
}

func (h *PropertyHandler) getProperty(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("property_handler").Function("getProperty")

	propertyID, err := paramID(c, "id")
	if err != nil {
		return sendError(c, log, err, "Invalid property id")
	}

	property, err := h.propertyController.GetProperty(c.UserContext(), propertyID)
	if err != nil {
		return sendError(c, log, err, "Failed to retrieve property")
	}

	return c.JSON(fiber.Map{"property": property})
}

func (h *PropertyHandler) getSummary(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("property_handler").Function("getSummary")

	propertyID, err := paramID(c, "id")
	if err != nil {
		return sendError(c, log, err, "Invalid property id")
	}

	summary, err := h.adviceController.PropertySummary(c.UserContext(), propertyID)
	if err != nil {
		return sendError(c, log, err, "Failed to summarize property")
	}

	return c.JSON(summary)
}

func (h *PropertyHandler) setParLevel(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("property_handler").Function("setParLevel")

	propertyID, err := paramID(c, "id")
	if err != nil {
		return sendError(c, log, err, "Invalid property id")
	}

	consumable, err := url.PathUnescape(c.Params("consumable"))
	if err != nil {
		return badRequest(c, "Invalid consumable name")
	}

	var req inventoryController.ParLevelRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn("Invalid request body", "error", err)
		return badRequest(c, "Invalid request body")
	}

	item, err := h.inventoryController.SetParLevel(
		c.UserContext(),
		middleware.GetUser(c),
		propertyID,
		consumable,
		req.Level,
	)
	if err != nil {
		return sendError(c, log, err, "Failed to set par level")
	}

	return c.JSON(fiber.Map{"item": item})
}
