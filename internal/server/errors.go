package server

import (
	"errors"

	"conduit/internal/models"
	"conduit/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler is the terminal responder for every error a handler or middleware returns.
// Validation failures become 422 with a field map and the other domain codes carry no body.
// Anything else is a 500, with the error text exposed only outside production.
func ErrorHandler(production bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			switch appErr.Code {
			case models.CodeValidation:
				return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": appErr.Fields})
			case models.CodeNotFound:
				return c.Status(fiber.StatusNotFound).Send(nil)
			case models.CodeUnauthenticated:
				return c.Status(fiber.StatusUnauthorized).Send(nil)
			case models.CodeForbidden:
				return c.Status(fiber.StatusForbidden).Send(nil)
			}
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{
				"errors": fiber.Map{"message": fiberErr.Message},
			})
		}

		observability.Logger.ErrorContext(c.UserContext(), "unhandled request error",
			"method", c.Method(),
			"path", c.Path(),
			"error", err,
		)

		message := "internal server error"
		if !production {
			message = err.Error()
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"errors": fiber.Map{"message": message},
		})
	}
}
