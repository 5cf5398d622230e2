package handlers

import (
	"errors"

	applog "storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"

	"github.com/gofiber/fiber/v2"
)

const msgInternal = "Internal server error"

func jsonError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// fail maps a service error to its status code. Anything unclassified is
// logged under action and answered with a generic 500.
func fail(c *fiber.Ctx, action string, err error) error {
	var ve *validate.Error
	if errors.As(err, &ve) {
		applog.Info(c, "validation.fail", map[string]any{"action": action, "field": ve.Field})
		return jsonError(c, fiber.StatusBadRequest, ve.Msg)
	}

	msg := ""
	var se *services.Error
	if errors.As(err, &se) {
		msg = se.Msg
	}
	switch {
	case errors.Is(err, services.ErrBadCreds):
		return jsonError(c, fiber.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, services.ErrNotFound):
		return jsonError(c, fiber.StatusNotFound, or(msg, "Not found"))
	case errors.Is(err, services.ErrConflict):
		return jsonError(c, fiber.StatusConflict, or(msg, "Already exists"))
	}

	applog.Error(c, action, err, nil)
	return jsonError(c, fiber.StatusInternalServerError, msgInternal)
}

func or(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// parseBody decodes the request body into out; malformed bodies are a 400.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return validate.Fail("", "Invalid request body")
	}
	return nil
}
