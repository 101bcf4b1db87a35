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

type PropertyRepository interface {
	Create(ctx context.Context, property *Property) error
	GetByID(ctx context.Context, id uuid.UUID) (*Property, error)
	List(ctx context.Context) ([]*Property, error)
	Update(ctx context.Context, id uuid.UUID, fn func(property *Property) error) (*Property, error)
}

type propertyRepository struct {
	db  database.DB
	log logger.Logger
}

func NewPropertyRepository(db database.DB) PropertyRepository {
	return &propertyRepository{
		db:  db,
		log: logger.New("propertyRepository"),
	}
}

func (r *propertyRepository) Create(ctx context.Context, property *Property) error {
	if err := r.db.SQLWithContext(ctx).Create(property).Error; err != nil {
		return r.log.Function("Create").Err("failed to create property", err, "propertyID", property.ID)
	}
	return nil
}

func (r *propertyRepository) GetByID(ctx context.Context, id uuid.UUID) (*Property, error) {
	var property Property
	if err := r.db.SQLWithContext(ctx).First(&property, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("property", id)
		}
		return nil, r.log.Function("GetByID").Err("failed to get property", err, "propertyID", id)
	}
	return &property, nil
}

func (r *propertyRepository) List(ctx context.Context) ([]*Property, error) {
	var properties []*Property
	if err := r.db.SQLWithContext(ctx).Order("rowid").Find(&properties).Error; err != nil {
		return nil, r.log.Function("List").Err("failed to list properties", err)
	}
	return properties, nil
}

func (r *propertyRepository) Update(
	ctx context.Context,
	id uuid.UUID,
	fn func(property *Property) error,
) (*Property, error) {
	var property Property
	err := r.db.SQLWithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&property, "id = ?", id).Error; err != nil {
			return err
		}
		if err := fn(&property); err != nil {
			return err
		}
		return tx.Save(&property).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFound("property", id)
	}
	if err != nil {
		return nil, err
	}
	return &property, nil
}
