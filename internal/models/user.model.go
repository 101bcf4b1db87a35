package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type User struct {
	BaseUUIDModel
	Name        string     `gorm:"not null"                       json:"name"`
	Email       string     `gorm:"uniqueIndex;not null"           json:"email"`
	Role        Role       `gorm:"type:text;not null"             json:"role"`
	Permissions Permission `gorm:"embedded;embeddedPrefix:can_"   json:"permissions"`
	Active      bool       `gorm:"not null"                       json:"active"`

	// Contact and trade metadata, mostly set for field staff
	WhatsApp  *string                     `json:"whatsapp,omitempty"`
	TradeTags datatypes.JSONSlice[string] `json:"tradeTags,omitempty"`
	Rate      *decimal.Decimal            `gorm:"type:text" json:"rate,omitempty"`
	Score     *decimal.Decimal            `gorm:"type:text" json:"score,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) Can(capability Capability) bool {
	return u.Active && u.Permissions.Allows(capability)
}

// UserProfile is the directory view of a user shown to other staff
type UserProfile struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Role      Role             `json:"role"`
	Active    bool             `json:"active"`
	TradeTags []string         `json:"tradeTags,omitempty"`
	Score     *decimal.Decimal `json:"score,omitempty"`
}

func (u *User) ToProfile() UserProfile {
	return UserProfile{
		ID:        u.ID.String(),
		Name:      u.Name,
		Role:      u.Role,
		Active:    u.Active,
		TradeTags: u.TradeTags,
		Score:     u.Score,
	}
}
