package handlers

import (
	applog "storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type LikeHandler struct {
	Social *services.SocialService
}

// GET /likes?productId=&userId=
func (h *LikeHandler) Status(c *fiber.Ctx) error {
	productID, err := validate.ID("productId", c.Query("productId"))
	if err != nil {
		return fail(c, "likes.get.fail", err)
	}
	userID, err := validate.OptionalID("userId", c.Query("userId"))
	if err != nil {
		return fail(c, "likes.get.fail", err)
	}
	st, err := h.Social.LikeStatus(c.UserContext(), productID, userID)
	if err != nil {
		return fail(c, "likes.get.fail", err)
	}
	return c.JSON(st)
}

// POST /likes
func (h *LikeHandler) Apply(c *fiber.Ctx) error {
	var in services.LikeInput
	if err := parseBody(c, &in); err != nil {
		return fail(c, "likes.apply.fail", err)
	}
	st, err := h.Social.Like(c.UserContext(), in)
	if err != nil {
		return fail(c, "likes.apply.fail", err)
	}
	applog.Info(c, "likes."+in.Action, map[string]any{"user_id": in.UserID, "product_id": in.ProductID})
	return c.JSON(st)
}

type SaveHandler struct {
	Social *services.SocialService
}

// GET /saves?userId=
func (h *SaveHandler) List(c *fiber.Ctx) error {
	userID, err := validate.ID("userId", c.Query("userId"))
	if err != nil {
		return fail(c, "saves.list.fail", err)
	}
	ps, err := h.Social.SavedProducts(c.UserContext(), userID)
	if err != nil {
		return fail(c, "saves.list.fail", err)
	}
	return c.JSON(ps)
}

// POST /saves
func (h *SaveHandler) Apply(c *fiber.Ctx) error {
	var in services.SaveInput
	if err := parseBody(c, &in); err != nil {
		return fail(c, "saves.apply.fail", err)
	}
	st, err := h.Social.Save(c.UserContext(), in)
	if err != nil {
		return fail(c, "saves.apply.fail", err)
	}
	applog.Info(c, "saves."+in.Action, map[string]any{"user_id": in.UserID, "product_id": in.ProductID})
	return c.JSON(st)
}
