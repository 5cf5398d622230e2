package handlers

import (
	"errors"

	applog "storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type UploadHandler struct {
	Uploads *services.UploadService
}

// POST /upload (multipart field "image")
func (h *UploadHandler) Image(c *fiber.Ctx) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "No file provided")
	}
	f, err := fh.Open()
	if err != nil {
		applog.Error(c, "upload.open.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "Upload failed")
	}
	defer f.Close()

	url, err := h.Uploads.Image(c.UserContext(), fh.Filename, fh.Header.Get("Content-Type"), fh.Size, f)
	if err != nil {
		var ve *validate.Error
		if errors.As(err, &ve) {
			applog.Security(c, "upload.rejected", map[string]any{"reason": ve.Msg, "size": fh.Size})
			return jsonError(c, fiber.StatusBadRequest, ve.Msg)
		}
		applog.Error(c, "upload.store.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "Upload failed")
	}
	applog.Audit(c, "upload.image", map[string]any{"url": url, "size": fh.Size})
	return c.JSON(fiber.Map{"imageUrl": url})
}
