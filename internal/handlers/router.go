package handlers

import (
	"luminaops/internal/app"
	"luminaops/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	middleware middleware.Middleware
	log        logger.Logger
	router     fiber.Router
}

func newHandler(app app.App, router fiber.Router, file string) Handler {
	return Handler{
		middleware: app.Middleware,
		log:        logger.New("handlers").File(file),
		router:     router,
	}
}

func Router(router fiber.Router, app *app.App) (err error) {
	api := router.Group("/api", app.Middleware.TraceID())

	HealthHandler(api, app.Config)
	NewPermissionHandler(*app, api).Register()
	WebSocketHandler(api, app.Websocket)

	secured := api.Group("", app.Middleware.RequireUser())
	NewUserHandler(*app, secured).Register()
	NewPropertyHandler(*app, secured).Register()
	NewBookingHandler(*app, secured).Register()
	NewJobHandler(*app, secured).Register()
	NewIssueHandler(*app, secured).Register()
	NewChecklistHandler(*app, secured).Register()
	NewInventoryHandler(*app, secured).Register()
	NewNotificationHandler(*app, secured).Register()

	return nil
}
