package handlers

import (
	"errors"

	"luminaops/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// sendError maps domain errors onto status codes. Anything unrecognised is
// logged and reported as a 500 with the fallback message.
func sendError(c *fiber.Ctx, log logger.Logger, err error, fallback string) error {
	var incomplete *models.IncompleteChecklistError

	switch {
	case errors.As(err, &incomplete):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":          err.Error(),
			"missingItemIds": incomplete.MissingItemIDs,
		})
	case errors.Is(err, models.ErrMissingEvidence):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, models.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, models.ErrConflict), errors.Is(err, models.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrUnknownRole):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	log.Er(fallback, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fallback})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}

func paramID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, models.Invalid("%s %q is not a valid id", name, c.Params(name))
	}
	return id, nil
}

// queryID returns nil when the query parameter is absent.
func queryID(c *fiber.Ctx, name string) (*uuid.UUID, error) {
	value := c.Query(name)
	if value == "" {
		return nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, models.Invalid("%s %q is not a valid id", name, value)
	}
	return &id, nil
}
