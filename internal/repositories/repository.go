package repositories

import (
	"luminaops/internal/database"
)

type Repository struct {
	User      UserRepository
	Property  PropertyRepository
	Booking   BookingRepository
	Job       JobRepository
	Inventory InventoryRepository
	Issue     IssueRepository
	Checklist ChecklistRepository
}

func New(db database.DB) Repository {
	return Repository{
		User:      NewUserRepository(db),
		Property:  NewPropertyRepository(db),
		Booking:   NewBookingRepository(db),
		Job:       NewJobRepository(db),
		Inventory: NewInventoryRepository(db),
		Issue:     NewIssueRepository(db),
		Checklist: NewChecklistRepository(db),
	}
}
