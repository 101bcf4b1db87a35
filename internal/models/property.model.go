package models

type Property struct {
	BaseUUIDModel
	Name    string `gorm:"not null" json:"name"`
	Address string `json:"address"`
	// ParLevels maps a consumable name to its target on-hand quantity.
	ParLevels map[string]int `gorm:"serializer:json" json:"parLevels"`
}

// ParLevel never falls back to a default for an untracked consumable.
func (p *Property) ParLevel(consumable string) (int, error) {
	level, ok := p.ParLevels[consumable]
	if !ok {
		return 0, NotFound("consumable", consumable)
	}
	return level, nil
}
