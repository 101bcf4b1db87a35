package repositories

import (
	"context"
	"errors"
	"luminaops/internal/database"
	. "luminaops/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InventoryFilter struct {
	PropertyID *uuid.UUID
	LowOnly    bool
}

type InventoryRepository interface {
	Create(ctx context.Context, item *InventoryItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*InventoryItem, error)
	GetByPropertyAndName(ctx context.Context, propertyID uuid.UUID, name string) (*InventoryItem, error)
	List(ctx context.Context, filter InventoryFilter) ([]*InventoryItem, error)
	// Update loads the item, applies fn and writes it back in one
	// transaction. An error from fn rolls the change back.
	Update(ctx context.Context, id uuid.UUID, fn func(item *InventoryItem) error) (*InventoryItem, error)
}

type inventoryRepository struct {
	db  database.DB
	log logger.Logger
}

func NewInventoryRepository(db database.DB) InventoryRepository {
	return &inventoryRepository{
		db:  db,
		log: logger.New("inventoryRepository"),
	}
}

func (r *inventoryRepository) Create(ctx context.Context, item *InventoryItem) error {
	if err := r.db.SQLWithContext(ctx).Create(item).Error; err != nil {
		return r.log.Function("Create").Err("failed to create inventory item", err, "itemID", item.ID)
	}
	return nil
}

func (r *inventoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*InventoryItem, error) {
	var item InventoryItem
	if err := r.db.SQLWithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("inventory item", id)
		}
		return nil, r.log.Function("GetByID").Err("failed to get inventory item", err, "itemID", id)
	}
	return &item, nil
}

func (r *inventoryRepository) GetByPropertyAndName(
	ctx context.Context,
	propertyID uuid.UUID,
	name string,
) (*InventoryItem, error) {
	var item InventoryItem
	err := r.db.SQLWithContext(ctx).
		Where("property_id = ? AND name = ?", propertyID, name).
		Order("rowid").
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("consumable", name)
		}
		return nil, r.log.Function("GetByPropertyAndName").
			Err("failed to get inventory item by name", err, "propertyID", propertyID, "name", name)
	}
	return &item, nil
}

func (r *inventoryRepository) List(ctx context.Context, filter InventoryFilter) ([]*InventoryItem, error) {
	query := r.db.SQLWithContext(ctx).Order("rowid")
	if filter.PropertyID != nil {
		query = query.Where("property_id = ?", *filter.PropertyID)
	}
	if filter.LowOnly {
		query = query.Where("current_count < par_level")
	}

	var items []*InventoryItem
	if err := query.Find(&items).Error; err != nil {
		return nil, r.log.Function("List").Err("failed to list inventory", err)
	}
	return items, nil
}

func (r *inventoryRepository) Update(
	ctx context.Context,
	id uuid.UUID,
	fn func(item *InventoryItem) error,
) (*InventoryItem, error) {
	var item InventoryItem
	err := r.db.SQLWithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, "id = ?", id).Error; err != nil {
			return err
		}
		if err := fn(&item); err != nil {
			return err
		}
		return tx.Save(&item).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFound("inventory item", id)
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}
