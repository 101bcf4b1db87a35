package inventoryController

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"luminaops/internal/database"
	"luminaops/internal/events"
	. "luminaops/internal/models"
	"luminaops/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
)

type AuditRequest struct {
	ObservedCount int `json:"observedCount"`
}

type ReplenishRequest struct {
	Delta int `json:"delta"`
}

type ParLevelRequest struct {
	Level int `json:"level"`
}

type InventoryControllerInterface interface {
	RecordAudit(ctx context.Context, actor *User, itemID uuid.UUID, observedCount int) (*InventoryItemStatus, error)
	Replenish(ctx context.Context, actor *User, itemID uuid.UUID, delta int) (*InventoryItemStatus, error)
	SetParLevel(
		ctx context.Context,
		actor *User,
		propertyID uuid.UUID,
		consumable string,
		level int,
	) (*InventoryItemStatus, error)
	ParLevel(ctx context.Context, propertyID uuid.UUID, consumable string) (int, error)
	List(ctx context.Context, propertyID *uuid.UUID) ([]InventoryItemStatus, error)
	ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]InventoryItemStatus, error)
	LowStock(ctx context.Context) ([]InventoryItemStatus, error)
}

type InventoryController struct {
	inventoryRepo repositories.InventoryRepository
	propertyRepo  repositories.PropertyRepository
	locks         *database.KeyedMutex
	eventBus      events.Publisher
	log           logger.Logger
}

func New(repos repositories.Repository, eventBus events.Publisher, db database.DB) InventoryControllerInterface {
	return &InventoryController{
		inventoryRepo: repos.Inventory,
		propertyRepo:  repos.Property,
		locks:         db.Locks,
		eventBus:      eventBus,
		log:           logger.New("inventoryController"),
	}
}

func (c *InventoryController) RecordAudit(
	ctx context.Context,
	actor *User,
	itemID uuid.UUID,
	observedCount int,
) (*InventoryItemStatus, error) {
	if err := authorize(actor); err != nil {
		return nil, err
	}
	if observedCount < 0 {
		return nil, Invalid("observed count %d is negative", observedCount)
	}

	return c.adjust(ctx, "RecordAudit", actor, itemID, func(item *InventoryItem) error {
		item.CurrentCount = observedCount
		return nil
	})
}

func (c *InventoryController) Replenish(
	ctx context.Context,
	actor *User,
	itemID uuid.UUID,
	delta int,
) (*InventoryItemStatus, error) {
	if err := authorize(actor); err != nil {
		return nil, err
	}
	if delta <= 0 {
		return nil, Invalid("replenish delta must be positive, got %d", delta)
	}

	return c.adjust(ctx, "Replenish", actor, itemID, func(item *InventoryItem) error {
		if delta > math.MaxInt-item.CurrentCount {
			return Invalid("replenishing %s by %d overflows its count of %d", item.Name, delta, item.CurrentCount)
		}
		item.CurrentCount += delta
		return nil
	})
}

// SetParLevel keeps the property's par map and the matching inventory item
// in step.
func (c *InventoryController) SetParLevel(
	ctx context.Context,
	actor *User,
	propertyID uuid.UUID,
	consumable string,
	level int,
) (*InventoryItemStatus, error) {
	log := c.log.TraceFromContext(ctx).Function("SetParLevel")

	if actor == nil || !actor.Active || !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if level < 0 {
		return nil, Invalid("par level %d is negative", level)
	}
	consumable = strings.TrimSpace(consumable)

	unlock := c.locks.Lock("property:" + propertyID.String())
	defer unlock()

	item, err := c.inventoryRepo.GetByPropertyAndName(ctx, propertyID, consumable)
	if err != nil {
		return nil, err
	}

	_, err = c.propertyRepo.Update(ctx, propertyID, func(property *Property) error {
		if _, err := property.ParLevel(consumable); err != nil {
			return err
		}
		property.ParLevels[consumable] = level
		return nil
	})
	if err != nil {
		return nil, err
	}

	itemUnlock := c.locks.Lock("inventory:" + item.ID.String())
	defer itemUnlock()

	var wasLow bool
	updated, err := c.inventoryRepo.Update(ctx, item.ID, func(row *InventoryItem) error {
		wasLow = row.IsLow()
		row.ParLevel = level
		return nil
	})
	if err != nil {
		return nil, log.Err("failed to update inventory par level", err, "itemID", item.ID)
	}

	log.Info("Par level updated", "propertyID", propertyID, "consumable", consumable, "level", level)
	c.afterAdjust(ctx, actor, updated, wasLow)

	status := updated.Status()
	return &status, nil
}

func (c *InventoryController) ParLevel(
	ctx context.Context,
	propertyID uuid.UUID,
	consumable string,
) (int, error) {
	property, err := c.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return 0, err
	}
	return property.ParLevel(strings.TrimSpace(consumable))
}

func (c *InventoryController) List(ctx context.Context, propertyID *uuid.UUID) ([]InventoryItemStatus, error) {
	items, err := c.inventoryRepo.List(ctx, repositories.InventoryFilter{PropertyID: propertyID})
	if err != nil {
		return nil, c.log.TraceFromContext(ctx).Function("List").Err("failed to list inventory", err)
	}
	return statuses(items), nil
}

func (c *InventoryController) ListByProperty(
	ctx context.Context,
	propertyID uuid.UUID,
) ([]InventoryItemStatus, error) {
	if _, err := c.propertyRepo.GetByID(ctx, propertyID); err != nil {
		return nil, err
	}
	return c.List(ctx, &propertyID)
}

func (c *InventoryController) LowStock(ctx context.Context) ([]InventoryItemStatus, error) {
	items, err := c.inventoryRepo.List(ctx, repositories.InventoryFilter{LowOnly: true})
	if err != nil {
		return nil, c.log.TraceFromContext(ctx).Function("LowStock").Err("failed to list low stock", err)
	}
	return statuses(items), nil
}

func (c *InventoryController) adjust(
	ctx context.Context,
	operation string,
	actor *User,
	itemID uuid.UUID,
	change func(item *InventoryItem) error,
) (*InventoryItemStatus, error) {
	log := c.log.TraceFromContext(ctx).Function(operation)

	unlock := c.locks.Lock("inventory:" + itemID.String())
	defer unlock()

	var wasLow bool
	updated, err := c.inventoryRepo.Update(ctx, itemID, func(item *InventoryItem) error {
		wasLow = item.IsLow()
		return change(item)
	})
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrValidation) {
		return nil, err
	}
	if err != nil {
		return nil, log.Err("failed to update inventory item", err, "itemID", itemID)
	}

	log.Info("Inventory adjusted", "itemID", itemID, "name", updated.Name, "count", updated.CurrentCount)
	c.afterAdjust(ctx, actor, updated, wasLow)

	status := updated.Status()
	return &status, nil
}

// afterAdjust always records the adjustment and raises an alert only when
// the item crosses into low stock.
func (c *InventoryController) afterAdjust(ctx context.Context, actor *User, item *InventoryItem, wasLow bool) {
	if c.eventBus == nil {
		return
	}
	log := c.log.TraceFromContext(ctx).Function("afterAdjust")

	var userID *uuid.UUID
	if actor != nil {
		userID = &actor.ID
	}
	data := map[string]any{
		"itemId":       item.ID.String(),
		"propertyId":   item.PropertyID.String(),
		"currentCount": item.CurrentCount,
		"parLevel":     item.ParLevel,
	}

	if err := c.eventBus.Publish(events.OPERATIONS_CHANNEL, events.Event{
		Type:   events.INVENTORY_ADJUSTED,
		UserID: userID,
		Data:   data,
	}); err != nil {
		log.Er("failed to publish inventory event", err, "itemID", item.ID)
	}

	if wasLow || !item.IsLow() {
		return
	}

	message := fmt.Sprintf("%s is low (%d of %d)", item.Name, item.CurrentCount, item.ParLevel)
	if property, err := c.propertyRepo.GetByID(ctx, item.PropertyID); err == nil {
		message = fmt.Sprintf("%s is low at %s (%d of %d)", item.Name, property.Name, item.CurrentCount, item.ParLevel)
	}
	if err := c.eventBus.Publish(events.ALERTS_CHANNEL, events.Event{
		Type:    events.LOW_STOCK,
		UserID:  userID,
		Message: message,
		Data:    data,
	}); err != nil {
		log.Er("failed to publish low stock alert", err, "itemID", item.ID)
	}
}

func authorize(actor *User) error {
	if actor == nil || !actor.Can(CapAdjustInventory) {
		return fmt.Errorf("%w: missing %s", ErrForbidden, CapAdjustInventory)
	}
	return nil
}

func statuses(items []*InventoryItem) []InventoryItemStatus {
	result := make([]InventoryItemStatus, len(items))
	for i, item := range items {
		result[i] = item.Status()
	}
	return result
}
