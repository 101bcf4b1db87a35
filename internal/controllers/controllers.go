package controllers

import (
	"luminaops/config"
	"luminaops/internal/database"
	"luminaops/internal/events"
	"luminaops/internal/repositories"
	"luminaops/internal/services"

	adviceController "luminaops/internal/controllers/advice"
	bookingController "luminaops/internal/controllers/bookings"
	inventoryController "luminaops/internal/controllers/inventory"
	jobController "luminaops/internal/controllers/jobs"
	propertyController "luminaops/internal/controllers/properties"
	userController "luminaops/internal/controllers/users"
)

type Controllers struct {
	User      userController.UserControllerInterface
	Property  propertyController.PropertyControllerInterface
	Booking   bookingController.BookingControllerInterface
	Job       jobController.JobControllerInterface
	Inventory inventoryController.InventoryControllerInterface
	Advice    adviceController.AdviceControllerInterface
}

func New(
	services services.Service,
	repos repositories.Repository,
	eventBus events.Publisher,
	config config.Config,
	db database.DB,
) Controllers {
	return Controllers{
		User:      userController.New(repos, eventBus),
		Property:  propertyController.New(repos, db),
		Booking:   bookingController.New(repos),
		Job:       jobController.New(repos, eventBus, config, db),
		Inventory: inventoryController.New(repos, eventBus, db),
		Advice:    adviceController.New(repos, services.Advice),
	}
}
