package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type IssueType string

const (
	IssueMissing  IssueType = "MISSING"
	IssueDamaged  IssueType = "DAMAGED"
	IssueLowStock IssueType = "LOW_STOCK"
	IssueOther    IssueType = "OTHER"
)

func ParseIssueType(value string) (IssueType, error) {
	issueType := IssueType(strings.ToUpper(strings.TrimSpace(value)))
	switch issueType {
	case IssueMissing, IssueDamaged, IssueLowStock, IssueOther:
		return issueType, nil
	}
	return "", Invalid("unknown issue type %q", value)
}

// Issue is immutable once reported.
type Issue struct {
	ID         uuid.UUID  `gorm:"type:text;primaryKey"     json:"id"`
	JobID      uuid.UUID  `gorm:"type:text;not null;index" json:"jobId"`
	BookingID  *uuid.UUID `gorm:"type:text"                json:"bookingId,omitempty"`
	PropertyID uuid.UUID  `gorm:"type:text;not null;index" json:"propertyId"`
	Type       IssueType  `gorm:"type:text;not null"       json:"type"`
	ItemName   string     `json:"itemName"`
	Comment    string     `json:"comment"`
	MediaURL   string     `json:"mediaUrl"`
	ReportedBy uuid.UUID  `gorm:"type:text;not null"       json:"reportedBy"`
	ReportedAt time.Time  `gorm:"not null"                 json:"reportedAt"`
}
