package handlers

import (
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Orders *services.OrderService
}

// GET /admin/orders
func (h *AdminHandler) ListOrders(c *fiber.Ctx) error {
	orders, err := h.Orders.ListAll(c.UserContext())
	if err != nil {
		return fail(c, "admin.orders.list.fail", err)
	}
	return c.JSON(orders)
}
