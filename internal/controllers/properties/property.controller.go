package propertyController

import (
	"context"
	"strings"
	"time"

	"luminaops/internal/database"
	. "luminaops/internal/models"
	"luminaops/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
)

type ConsumableRequest struct {
	Name         string `json:"name"`
	Category     string `json:"category"`
	ParLevel     int    `json:"parLevel"`
	CurrentCount int    `json:"currentCount"`
}

type CreatePropertyRequest struct {
	Name        string              `json:"name"`
	Address     string              `json:"address"`
	Consumables []ConsumableRequest `json:"consumables"`
}

// PropertyDetail is a property with its stock ledger.
type PropertyDetail struct {
	*Property
	Inventory []InventoryItemStatus `json:"inventory"`
}

type PropertyControllerInterface interface {
	CreateProperty(ctx context.Context, actor *User, request CreatePropertyRequest) (*PropertyDetail, error)
	GetProperty(ctx context.Context, propertyID uuid.UUID) (*PropertyDetail, error)
	List(ctx context.Context) ([]*Property, error)
}

type PropertyController struct {
	propertyRepo  repositories.PropertyRepository
	inventoryRepo repositories.InventoryRepository
	locks         *database.KeyedMutex
	now           func() time.Time
	log           logger.Logger
}

func New(repos repositories.Repository, db database.DB) PropertyControllerInterface {
	return &PropertyController{
		propertyRepo:  repos.Property,
		inventoryRepo: repos.Inventory,
		locks:         db.Locks,
		now:           time.Now,
		log:           logger.New("propertyController"),
	}
}

func (pc *PropertyController) CreateProperty(
	ctx context.Context,
	actor *User,
	request CreatePropertyRequest,
) (*PropertyDetail, error) {
	log := pc.log.TraceFromContext(ctx).Function("CreateProperty")

	if actor == nil || !actor.Active || !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	name := strings.TrimSpace(request.Name)
	if name == "" {
		return nil, Invalid("name is required")
	}

	parLevels := make(map[string]int, len(request.Consumables))
	for _, consumable := range request.Consumables {
		consumableName := strings.TrimSpace(consumable.Name)
		switch {
		case consumableName == "":
			return nil, Invalid("consumable name is required")
		case consumable.ParLevel < 0:
			return nil, Invalid("par level for %s is negative", consumableName)
		case consumable.CurrentCount < 0:
			return nil, Invalid("current count for %s is negative", consumableName)
		}
		if _, exists := parLevels[consumableName]; exists {
			return nil, Invalid("consumable %s is listed twice", consumableName)
		}
		parLevels[consumableName] = consumable.ParLevel
	}

	property := &Property{
		BaseUUIDModel: NewBaseUUIDModel(pc.now()),
		Name:          name,
		Address:       strings.TrimSpace(request.Address),
		ParLevels:     parLevels,
	}

	unlock := pc.locks.Lock("property:" + property.ID.String())
	defer unlock()

	if err := pc.propertyRepo.Create(ctx, property); err != nil {
		return nil, log.Err("failed to create property", err, "name", name)
	}

	detail := &PropertyDetail{Property: property, Inventory: make([]InventoryItemStatus, 0, len(request.Consumables))}
	for _, consumable := range request.Consumables {
		item := &InventoryItem{
			ID:           uuid.New(),
			PropertyID:   property.ID,
			Category:     strings.TrimSpace(consumable.Category),
			Name:         strings.TrimSpace(consumable.Name),
			CurrentCount: consumable.CurrentCount,
			ParLevel:     consumable.ParLevel,
		}
		if err := pc.inventoryRepo.Create(ctx, item); err != nil {
			return nil, log.Err("failed to create inventory item", err, "propertyID", property.ID, "name", item.Name)
		}
		detail.Inventory = append(detail.Inventory, item.Status())
	}

	log.Info("Property onboarded", "propertyID", property.ID, "consumables", len(detail.Inventory))
	return detail, nil
}

func (pc *PropertyController) GetProperty(ctx context.Context, propertyID uuid.UUID) (*PropertyDetail, error) {
	property, err := pc.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	items, err := pc.inventoryRepo.List(ctx, repositories.InventoryFilter{PropertyID: &propertyID})
	if err != nil {
		return nil, pc.log.TraceFromContext(ctx).Function("GetProperty").
			Err("failed to list property inventory", err, "propertyID", propertyID)
	}

	detail := &PropertyDetail{Property: property, Inventory: make([]InventoryItemStatus, len(items))}
	for i, item := range items {
		detail.Inventory[i] = item.Status()
	}
	return detail, nil
}

func (pc *PropertyController) List(ctx context.Context) ([]*Property, error) {
	properties, err := pc.propertyRepo.List(ctx)
	if err != nil {
		return nil, pc.log.TraceFromContext(ctx).Function("List").Err("failed to list properties", err)
	}
	return properties, nil
}
