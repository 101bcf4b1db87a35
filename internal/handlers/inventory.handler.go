package handlers

import (
	"luminaops/internal/app"
	inventoryController "luminaops/internal/controllers/inventory"
	"luminaops/internal/handlers/middleware"
	"luminaops/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	Handler
	inventoryController inventoryController.InventoryControllerInterface
}

func NewInventoryHandler(app app.App, router fiber.Router) *InventoryHandler {
	return &InventoryHandler{
		Handler:             newHandler(app, router, "inventory_handler"),
		inventoryController: app.Controllers.Inventory,
	}
}

func (h *InventoryHandler) Register() {
	inventory := h.router.Group("/inventory")

	inventory.Get("", h.listInventory)
	inventory.Get("/low", h.listLowStock)
	inventory.Post("/:id/audit", h.middleware.RequirePermission(models.CapAdjustInventory), h.recordAudit)
	inventory.Post("/:id/replenish", h.middleware.RequirePermission(models.CapAdjustInventory), h.replenish)
}

func (h *InventoryHandler) listInventory(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("inventory_handler").Function("listInventory")

	propertyID, err := queryID(c, "propertyId")
	if err != nil {
		return sendError(c, log, err, "Invalid property id")
	}

	var items []models.InventoryItemStatus
	if propertyID != nil {
		items, err = h.inventoryController.ListByProperty(c.UserContext(), *propertyID)
	} else {
		items, err = h.inventoryController.List(c.UserContext(), nil)
	}
	if err != nil {
		return sendError(c, log, err, "Failed to list inventory")
	}

	return c.JSON(fiber.Map{"items": items})
}

func (h *InventoryHandler) listLowStock(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("inventory_handler").Function("listLowStock")

	items, err := h.inventoryController.LowStock(c.UserContext())
	if err != nil {
		return sendError(c, log, err, "Failed to list low stock")
	}

	return c.JSON(fiber.Map{"items": items})
}

func (h *InventoryHandler) recordAudit(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("inventory_handler").Function("recordAudit")

	itemID, err := paramID(c, "id")
	if err != nil {
		return sendError(c, log, err, "Invalid inventory item id")
	}

	var req inventoryController.AuditRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn("Invalid request body", "error", err)
		return badRequest(c, "Invalid request body")
	}

	item, err := h.inventoryController.RecordAudit(c.UserContext(), middleware.GetUser(c), itemID, req.ObservedCount)
	if err != nil {
		return sendError(c, log, err, "Failed to record audit")
	}

	return c.JSON(fiber.Map{"item": item})
}

func (h *InventoryHandler) replenish(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("inventory_handler").Function("replenish")

	itemID, err := paramID(c, "id")
	if err != nil {
		return sendError(c, log, err, "Invalid inventory item id")
	}

	var req inventoryController.ReplenishRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn("Invalid request body", "error", err)
		return badRequest(c, "Invalid request body")
	}

	item, err := h.inventoryController.Replenish(c.UserContext(), middleware.GetUser(c), itemID, req.Delta)
	if err != nil {
		return sendError(c, log, err, "Failed to replenish item")
	}

	return c.JSON(fiber.Map{"item": item})
}
