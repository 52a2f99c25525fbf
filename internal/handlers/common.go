package handlers

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Version reported by the root endpoints of both services.
const Version = "1.0.0"

// errorJSON writes the uniform error body: an HTTP status from the
// taxonomy plus a human-readable detail string, nothing machine-readable
// beyond the status itself.
func errorJSON(c *fiber.Ctx, status int, detail string) error {
	return c.Status(status).JSON(fiber.Map{"detail": detail})
}

// validationJSON converts validator errors into a 400 with per-field
// messages.
func validationJSON(c *fiber.Ctx, err error) error {
	fields := make(map[string]string)
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			fields[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"detail": "Validation failed",
		"errors": fields,
	})
}
