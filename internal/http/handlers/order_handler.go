package handlers

import (
	applog "storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	Orders *services.OrderService
}

// GET /orders?userId=
func (h *OrderHandler) List(c *fiber.Ctx) error {
	userID, err := validate.ID("userId", c.Query("userId"))
	if err != nil {
		return fail(c, "orders.list.fail", err)
	}
	orders, err := h.Orders.ListByUser(c.UserContext(), userID)
	if err != nil {
		return fail(c, "orders.list.fail", err)
	}
	return c.JSON(orders)
}

// POST /orders
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in services.CreateOrderInput
	if err := parseBody(c, &in); err != nil {
		return fail(c, "orders.create.fail", err)
	}
	o, err := h.Orders.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, "orders.create.fail", err)
	}
	applog.Audit(c, "orders.create", map[string]any{
		"order_id": o.ID,
		"user_id":  o.UserID,
		"items":    len(o.Items),
		"total":    o.Total,
	})
	return c.Status(fiber.StatusCreated).JSON(o)
}

// PATCH /orders/:id
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := validate.ID("id", c.Params("id"))
	if err != nil {
		return fail(c, "orders.status.fail", err)
	}
	var in services.StatusInput
	if err := parseBody(c, &in); err != nil {
		return fail(c, "orders.status.fail", err)
	}
	o, err := h.Orders.UpdateStatus(c.UserContext(), id, in)
	if err != nil {
		return fail(c, "orders.status.fail", err)
	}
	applog.Audit(c, "orders.status.update", map[string]any{"order_id": id, "status": o.Status})
	return c.JSON(o)
}
