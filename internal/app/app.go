package app

import (
	"context"

	"luminaops/config"
	"luminaops/internal/controllers"
	"luminaops/internal/database"
	"luminaops/internal/events"
	"luminaops/internal/handlers/middleware"
	"luminaops/internal/jobs"
	"luminaops/internal/repositories"
	"luminaops/internal/services"
	"luminaops/internal/websockets"

	logger "github.com/Bparsons0904/goLogger"
)

type App struct {
	Database    database.DB
	Middleware  middleware.Middleware
	EventBus    *events.EventBus
	Config      config.Config
	Services    services.Service
	Repos       repositories.Repository
	Controllers controllers.Controllers
	Websocket   *websockets.Manager
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.New()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	return Build(config)
}

// Build wires every component from an already validated config.
func Build(config config.Config) (*App, error) {
	log := logger.New("app").Function("Build")

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	eventBus := events.New(db.Cache.Events)

	repos := repositories.New(db)
	services := services.New(config)

	if err := services.Notifications.Attach(eventBus); err != nil {
		return &App{}, log.Err("failed to attach notification feed", err)
	}

	controllers := controllers.New(services, repos, eventBus, config, db)
	middleware := middleware.New(config, repos)

	websocket, err := websockets.New(eventBus, repos.User)
	if err != nil {
		return &App{}, log.Err("failed to create websocket manager", err)
	}

	if config.SchedulerEnabled {
		if err := jobs.RegisterAllJobs(services.Scheduler, controllers, eventBus); err != nil {
			return &App{}, log.Err("failed to register jobs", err)
		}
		if err := services.Scheduler.Start(context.Background()); err != nil {
			return &App{}, log.Err("failed to start scheduler", err)
		}
	}

	app := &App{
		Database:    db,
		Middleware:  middleware,
		EventBus:    eventBus,
		Config:      config,
		Services:    services,
		Repos:       repos,
		Controllers: controllers,
		Websocket:   websocket,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")

	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config.ServerPort == 0 {
		return log.ErrMsg("config is empty")
	}

	nilChecks := map[string]any{
		"eventBus":            a.EventBus,
		"websocket":           a.Websocket,
		"schedulerService":    a.Services.Scheduler,
		"adviceService":       a.Services.Advice,
		"notificationService": a.Services.Notifications,
		"userController":      a.Controllers.User,
		"propertyController":  a.Controllers.Property,
		"bookingController":   a.Controllers.Booking,
		"jobController":       a.Controllers.Job,
		"inventoryController": a.Controllers.Inventory,
		"adviceController":    a.Controllers.Advice,
		"userRepo":            a.Repos.User,
		"jobRepo":             a.Repos.Job,
	}

	for name, check := range nilChecks {
		if check == nil {
			return log.Error("nil check failed", "component", name)
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	log := logger.New("app").Function("Close")

	if a.Services.Scheduler != nil {
		if closeErr := a.Services.Scheduler.Stop(context.Background()); closeErr != nil {
			log.Er("failed to stop scheduler", closeErr)
			err = closeErr
		}
	}

	if a.Websocket != nil {
		a.Websocket.Close()
	}

	if a.EventBus != nil {
		if closeErr := a.EventBus.Close(); closeErr != nil {
			log.Er("failed to close event bus", closeErr)
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		log.Er("failed to close database", dbErr)
		err = dbErr
	}

	return err
}
