package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	TurnoverDeadlineHour = 15
	// TurnoverStartCutoffHour is when an unstarted turnover on its checkout
	// day starts raising alerts.
	TurnoverStartCutoffHour = 11
	DeadlineWarningWindow   = time.Hour
	DateLayout           = "2006-01-02"
	redactedGuestName    = "Guest"
)

// Booking is supplied by the reservation system and never mutated here.
type Booking struct {
	ID         uuid.UUID `gorm:"type:text;primaryKey"     json:"id"`
	PropertyID uuid.UUID `gorm:"type:text;not null;index" json:"propertyId"`
	GuestName  string    `json:"guestName"`
	Reference  string    `json:"reference"`
	CheckIn    time.Time `gorm:"not null"                 json:"checkIn"`
	CheckOut   time.Time `gorm:"not null;index"           json:"checkOut"`
}

func (b *Booking) Validate() error {
	if b.PropertyID == uuid.Nil {
		return Invalid("propertyId is required")
	}
	if b.CheckIn.IsZero() || b.CheckOut.IsZero() {
		return Invalid("checkIn and checkOut are required")
	}
	if b.CheckOut.Before(b.CheckIn) {
		return Invalid("checkOut %s precedes checkIn %s",
			b.CheckOut.Format(DateLayout), b.CheckIn.Format(DateLayout))
	}
	return nil
}

// TurnoverDeadline is 15:00 on the checkout day in loc.
func (b *Booking) TurnoverDeadline(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	year, month, day := b.CheckOut.Date()
	return time.Date(year, month, day, TurnoverDeadlineHour, 0, 0, 0, loc)
}

// Redacted hides guest identity from staff without guest detail access.
func (b Booking) Redacted() Booking {
	b.GuestName = redactedGuestName
	b.Reference = ""
	return b
}
