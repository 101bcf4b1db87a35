package handlers

import (
	"luminaops/internal/app"
	bookingController "luminaops/internal/controllers/bookings"
	jobController "luminaops/internal/controllers/jobs"
	"luminaops/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type BookingHandler struct {
	Handler
	bookingController bookingController.BookingControllerInterface
	jobController     jobController.JobControllerInterface
}

func NewBookingHandler(app app.App, router fiber.Router) *BookingHandler {
	return &BookingHandler{
		Handler:           newHandler(app, router, "booking_handler"),
		bookingController: app.Controllers.Booking,
		jobController:     app.Controllers.Job,
	}
}

func (h *BookingHandler) Register() {
	bookings := h.router.Group("/bookings")

	bookings.Get("", h.listBookings)
	bookings.Post("", h.middleware.RequireAdmin(), h.importBooking)
	bookings.Get("/:id", h.getBooking)
}

func (h *BookingHandler) listBookings(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("booking_handler").Function("listBookings")

	propertyID, err := queryID(c, "propertyId")
	if err != nil {
		return sendError(c, log, err, "Invalid property id")
	}

	bookings, err := h.bookingController.List(c.UserContext(), middleware.GetUser(c), propertyID)
	if err != nil {
		return sendError(c, log, err, "Failed to list bookings")
	}

	return c.JSON(fiber.Map{"bookings": bookings})
}

// importBooking stores a booking from the reservation feed and, when asked,
// schedules its turnover in the same request.
func (h *BookingHandler) importBooking(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("booking_handler").Function("importBooking")

	var req bookingController.ImportBookingRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn("Invalid request body", "error", err)
		return badRequest(c, "Invalid request body")
	}

	booking, err := h.bookingController.Import(c.UserContext(), req)
	if err != nil {
		return sendError(c, log, err, "Failed to import booking")
	}

	response := fiber.Map{"booking": booking}
	if req.CreateTurnover {
		job, err := h.jobController.CreateTurnoverJob(c.UserContext(), jobController.CreateTurnoverJobRequest{
			BookingID: booking.ID,
		})
		if err != nil {
			return sendError(c, log, err, "Failed to create turnover job")
		}
		response["job"] = job
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}

func (h *BookingHandler) getBooking(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("booking_handler").Function("getBooking")

	bookingID, err := paramID(c, "id")
	if err != nil {
		return sendError(c, log, err, "Invalid booking id")
	}

	booking, err := h.bookingController.GetBooking(c.UserContext(), middleware.GetUser(c), bookingID)
	if err != nil {
		return sendError(c, log, err, "Failed to retrieve booking")
	}

	return c.JSON(fiber.Map{"booking": booking})
}
