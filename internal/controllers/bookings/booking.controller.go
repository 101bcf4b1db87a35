package bookingController

import (
	"context"
	"strings"
	"time"

	. "luminaops/internal/models"
	"luminaops/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
)

// ImportBookingRequest is one reservation from the booking feed. Dates are
// either YYYY-MM-DD or RFC 3339.
type ImportBookingRequest struct {
	ID             *uuid.UUID `json:"id,omitempty"`
	PropertyID     uuid.UUID  `json:"propertyId"`
	GuestName      string     `json:"guestName"`
	Reference      string     `json:"reference"`
	CheckIn        string     `json:"checkIn"`
	CheckOut       string     `json:"checkOut"`
	CreateTurnover bool       `json:"createTurnover"`
}

type BookingControllerInterface interface {
	Import(ctx context.Context, request ImportBookingRequest) (*Booking, error)
	GetBooking(ctx context.Context, actor *User, bookingID uuid.UUID) (*Booking, error)
	List(ctx context.Context, actor *User, propertyID *uuid.UUID) ([]*Booking, error)
}

type BookingController struct {
	bookingRepo  repositories.BookingRepository
	propertyRepo repositories.PropertyRepository
	log          logger.Logger
}

func New(repos repositories.Repository) BookingControllerInterface {
	return &BookingController{
		bookingRepo:  repos.Booking,
		propertyRepo: repos.Property,
		log:          logger.New("bookingController"),
	}
}

func (bc *BookingController) Import(ctx context.Context, request ImportBookingRequest) (*Booking, error) {
	log := bc.log.TraceFromContext(ctx).Function("Import")

	checkIn, err := parseDate("checkIn", request.CheckIn)
	if err != nil {
		return nil, err
	}
	checkOut, err := parseDate("checkOut", request.CheckOut)
	if err != nil {
		return nil, err
	}

	booking := &Booking{
		ID:         uuid.New(),
		PropertyID: request.PropertyID,
		GuestName:  strings.TrimSpace(request.GuestName),
		Reference:  strings.TrimSpace(request.Reference),
		CheckIn:    checkIn,
		CheckOut:   checkOut,
	}
	if request.ID != nil && *request.ID != uuid.Nil {
		booking.ID = *request.ID
	}

	if err := booking.Validate(); err != nil {
		return nil, err
	}
	if _, err := bc.propertyRepo.GetByID(ctx, booking.PropertyID); err != nil {
		return nil, err
	}

	if err := bc.bookingRepo.Upsert(ctx, booking); err != nil {
		return nil, log.Err("failed to store booking", err, "bookingID", booking.ID)
	}

	log.Info("Booking imported", "bookingID", booking.ID, "propertyID", booking.PropertyID,
		"checkOut", booking.CheckOut.Format(DateLayout))
	return booking, nil
}

func (bc *BookingController) GetBooking(ctx context.Context, actor *User, bookingID uuid.UUID) (*Booking, error) {
	booking, err := bc.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return redactFor(actor, booking), nil
}

func (bc *BookingController) List(ctx context.Context, actor *User, propertyID *uuid.UUID) ([]*Booking, error) {
	bookings, err := bc.bookingRepo.List(ctx, propertyID)
	if err != nil {
		return nil, bc.log.TraceFromContext(ctx).Function("List").Err("failed to list bookings", err)
	}

	for i, booking := range bookings {
		bookings[i] = redactFor(actor, booking)
	}
	return bookings, nil
}

func redactFor(actor *User, booking *Booking) *Booking {
	if actor != nil && actor.Can(CapViewGuestDetails) {
		return booking
	}
	redacted := booking.Redacted()
	return &redacted
}

func parseDate(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, Invalid("%s is required", field)
	}
	if parsed, err := time.Parse(DateLayout, value); err == nil {
		return parsed, nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, Invalid("%s %q is not a date", field, value)
	}
	return parsed, nil
}
