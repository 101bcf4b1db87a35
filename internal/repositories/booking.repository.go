package repositories

import (
	"context"
	"errors"
	"luminaops/internal/database"
	. "luminaops/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingRepository is read-mostly: Upsert is only used by the reservation
// feed, the rest of the core reads.
type BookingRepository interface {
	Upsert(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	List(ctx context.Context, propertyID *uuid.UUID) ([]*Booking, error)
}

type bookingRepository struct {
	db  database.DB
	log logger.Logger
}

func NewBookingRepository(db database.DB) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: logger.New("bookingRepository"),
	}
}

func (r *bookingRepository) Upsert(ctx context.Context, booking *Booking) error {
	log := r.log.Function("Upsert")

	err := r.db.SQLWithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(booking).Error
	if err != nil {
		return log.Err("failed to upsert booking", err, "bookingID", booking.ID)
	}

	log.Debug("booking stored", "bookingID", booking.ID, "propertyID", booking.PropertyID)
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	if err := r.db.SQLWithContext(ctx).First(&booking, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("booking", id)
		}
		return nil, r.log.Function("GetByID").Err("failed to get booking", err, "bookingID", id)
	}
	return &booking, nil
}

func (r *bookingRepository) List(ctx context.Context, propertyID *uuid.UUID) ([]*Booking, error) {
	query := r.db.SQLWithContext(ctx).Order("check_out").Order("rowid")
	if propertyID != nil {
		query = query.Where("property_id = ?", *propertyID)
	}

	var bookings []*Booking
	if err := query.Find(&bookings).Error; err != nil {
		return nil, r.log.Function("List").Err("failed to list bookings", err)
	}
	return bookings, nil
}
