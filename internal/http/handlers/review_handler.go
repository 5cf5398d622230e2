package handlers

import (
	applog "storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ReviewHandler struct {
	Reviews *services.ReviewService
}

// GET /reviews?productId=
func (h *ReviewHandler) List(c *fiber.Ctx) error {
	productID, err := validate.ID("productId", c.Query("productId"))
	if err != nil {
		return fail(c, "reviews.list.fail", err)
	}
	out, err := h.Reviews.List(c.UserContext(), productID)
	if err != nil {
		return fail(c, "reviews.list.fail", err)
	}
	return c.JSON(out)
}

// POST /reviews
func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	var in services.ReviewInput
	if err := parseBody(c, &in); err != nil {
		return fail(c, "reviews.create.fail", err)
	}
	rv, err := h.Reviews.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, "reviews.create.fail", err)
	}
	applog.Audit(c, "reviews.create", map[string]any{"review_id": rv.ID, "product_id": rv.ProductID})
	return c.Status(fiber.StatusCreated).JSON(rv)
}
