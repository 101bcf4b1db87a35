package models

import "github.com/google/uuid"

type InventoryItem struct {
	ID           uuid.UUID `gorm:"type:text;primaryKey"                   json:"id"`
	PropertyID   uuid.UUID `gorm:"type:text;not null;index:idx_item_name" json:"propertyId"`
	Category     string    `json:"category"`
	Name         string    `gorm:"not null;index:idx_item_name"           json:"name"`
	CurrentCount int       `gorm:"not null"                               json:"currentCount"`
	ParLevel     int       `gorm:"not null"                               json:"parLevel"`
}

// IsLow is derived on every read; there is no stored flag.
func (i *InventoryItem) IsLow() bool {
	return i.CurrentCount < i.ParLevel
}

// UtilizationPercent is clamped to [0, 100]. A zero par level counts as
// fully stocked.
func (i *InventoryItem) UtilizationPercent() float64 {
	if i.ParLevel <= 0 {
		return 100
	}
	percent := float64(i.CurrentCount) / float64(i.ParLevel) * 100
	return max(0, min(100, percent))
}

// InventoryItemStatus carries the derived stock health next to the item.
type InventoryItemStatus struct {
	InventoryItem
	IsLow              bool    `json:"isLow"`
	UtilizationPercent float64 `json:"utilizationPercent"`
}

func (i *InventoryItem) Status() InventoryItemStatus {
	return InventoryItemStatus{
		InventoryItem:      *i,
		IsLow:              i.IsLow(),
		UtilizationPercent: i.UtilizationPercent(),
	}
}
