package handlers

import (
	"storefront/internal/log"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

// productID treats a malformed id like a missing product.
func productID(c *fiber.Ctx) (int64, bool) {
	id, err := c.ParamsInt("id")
	return int64(id), err == nil && id > 0
}

// GET /products
func (h *ProductHandler) List(c *fiber.Ctx) error {
	ps, err := h.Catalog.List(c.UserContext())
	if err != nil {
		return fail(c, "products.list.fail", err)
	}
	return c.JSON(ps)
}

// GET /products/:id
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "Product not found")
	}
	p, err := h.Catalog.Get(c.UserContext(), id)
	if err != nil {
		return fail(c, "products.get.fail", err)
	}
	return c.JSON(p)
}

// POST /products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in services.ProductInput
	if err := parseBody(c, &in); err != nil {
		return fail(c, "products.create.fail", err)
	}
	p, err := h.Catalog.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, "products.create.fail", err)
	}
	log.Audit(c, "products.create", map[string]any{"product_id": p.ID})
	return c.Status(fiber.StatusCreated).JSON(p)
}

// PUT /products/:id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "Product not found")
	}
	var in services.ProductInput
	if err := parseBody(c, &in); err != nil {
		return fail(c, "products.update.fail", err)
	}
	p, err := h.Catalog.Update(c.UserContext(), id, in)
	if err != nil {
		return fail(c, "products.update.fail", err)
	}
	log.Audit(c, "products.update", map[string]any{"product_id": id})
	return c.JSON(p)
}

// DELETE /products/:id
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "Product not found")
	}
	if err := h.Catalog.Delete(c.UserContext(), id); err != nil {
		return fail(c, "products.delete.fail", err)
	}
	log.Audit(c, "products.delete", map[string]any{"product_id": id})
	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}
