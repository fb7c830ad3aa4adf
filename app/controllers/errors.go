package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/brewlogic/BrewLogic/internal/pkg/apperror"
)

// respondError maps the shared error taxonomy onto a JSON response of the
// form {error: <message for the user>, code: <kind>}.
func respondError(c *fiber.Ctx, err error) error {
	var (
		verr *apperror.ValidationError
		gerr *apperror.PaymentGatewayError
		xerr *apperror.ExternalServiceError
	)
	switch {
	case errors.As(err, &verr):
		body := fiber.Map{"error": verr.Message, "code": "validation_error"}
		if verr.Field != "" {
			body["field"] = verr.Field
		}
		return c.Status(fiber.StatusBadRequest).JSON(body)
	case errors.Is(err, apperror.ErrDuplicateUser):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": apperror.ErrDuplicateUser.Error(), "code": "duplicate_user"})
	case errors.Is(err, apperror.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Data tidak ditemukan", "code": "not_found"})
	case errors.Is(err, apperror.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error(), "code": "unauthorized"})
	case errors.Is(err, apperror.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Akses ditolak", "code": "forbidden"})
	case errors.As(err, &gerr):
		log.Warnf("[API] %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": gerr.Message, "code": "payment_gateway_error", "provider": gerr.Provider})
	case errors.As(err, &xerr):
		log.Errorf("[API] %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Layanan sedang bermasalah, silakan coba lagi.", "code": "external_service_error", "service": xerr.Service})
	default:
		log.Errorf("[API] %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Terjadi kesalahan pada server.", "code": "internal_error"})
	}
}

// parseBody decodes the JSON body into out and reports malformed input as a
// validation error.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperror.Invalid("", "Format data tidak valid")
	}
	return nil
}

func paramUint(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, apperror.Invalid(name, "must be a positive integer")
	}
	return uint(id), nil
}
