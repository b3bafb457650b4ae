package handlers

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"pasar/internal/repositories"
	"pasar/internal/services"
)

// errorStatus is the single translation from the error taxonomy to HTTP
// statuses. Every handler routes its failures through here so no raw store
// failure escapes un-translated.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, repositories.ErrInvalidID),
		errors.Is(err, repositories.ErrDuplicate),
		errors.Is(err, services.ErrEmptyUpdate):
		return fiber.StatusBadRequest
	case errors.Is(err, repositories.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidOldPassword):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes the translated status with the error message.
func respondError(c *fiber.Ctx, err error) error {
	return c.Status(errorStatus(err)).JSON(fiber.Map{
		"message": err.Error(),
	})
}

// respondUserError is respondError with the success flag the user endpoints
// carry in their response shape.
func respondUserError(c *fiber.Ctx, err error) error {
	return c.Status(errorStatus(err)).JSON(fiber.Map{
		"success": false,
		"message": err.Error(),
	})
}

// validationMessages flattens validator errors into a field -> message map.
func validationMessages(err error) map[string]string {
	messages := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			messages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	}
	return messages
}
