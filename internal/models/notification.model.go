package models

import (
	"time"

	"github.com/google/uuid"
)

const MaxNotifications = 10

type Notification struct {
	ID      uuid.UUID `json:"id"`
	Kind    string    `json:"kind"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}
