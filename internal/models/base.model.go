package models

import (
	"time"

	"github.com/google/uuid"
)

type BaseUUIDModel struct {
	ID        uuid.UUID `gorm:"type:text;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime"       json:"createdAt"`
}

func NewBaseUUIDModel(now time.Time) BaseUUIDModel {
	return BaseUUIDModel{
		ID:        uuid.New(),
		CreatedAt: now,
	}
}
