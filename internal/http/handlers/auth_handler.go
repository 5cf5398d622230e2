package handlers

import (
	"errors"

	"storefront/internal/log"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Auth *services.AuthService
}

// POST /auth/signup
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var in services.SignupInput
	if err := parseBody(c, &in); err != nil {
		return fail(c, "auth.signup.fail", err)
	}
	u, err := h.Auth.Signup(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, services.ErrConflict) {
			log.Security(c, "auth.signup.duplicate", map[string]any{"email": in.Email})
		}
		return fail(c, "auth.signup.fail", err)
	}
	log.Audit(c, "auth.signup", map[string]any{"user_id": u.ID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": u})
}

// POST /auth/signin
func (h *AuthHandler) Signin(c *fiber.Ctx) error {
	var in services.SigninInput
	if err := parseBody(c, &in); err != nil {
		return fail(c, "auth.signin.fail", err)
	}
	u, err := h.Auth.Signin(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, services.ErrBadCreds) {
			log.Security(c, "auth.signin.fail", map[string]any{"email": in.Email})
		}
		return fail(c, "auth.signin.error", err)
	}
	log.Audit(c, "auth.signin.success", map[string]any{"user_id": u.ID, "admin": u.IsAdmin})
	return c.JSON(fiber.Map{"user": u})
}
