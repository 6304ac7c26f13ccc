package inline

import (
	"catalog-backend/internal/httpx"
	"catalog-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

// PatchRequest: OldValue, hücrenin düzenleme başladığındaki değeridir.
type PatchRequest struct {
	Field    string `json:"field"`
	Value    string `json:"value"`
	OldValue string `json:"old_value"`
}

type PatchResponse struct {
	Key         string `json:"key"`
	Field       string `json:"field"`
	Updated     bool   `json:"updated"`
	HighlightMS int64  `json:"highlight_ms"`
}

// PATCH /api/{catalogs|orders}/:key
func PatchHandler(editor *Editor, coll store.Collection, editable map[string]bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key, err := httpx.KeyParam(c)
		if err != nil {
			return err
		}
		var body PatchRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if !editable[body.Field] {
			return fiber.NewError(fiber.StatusBadRequest, "Bu alan düzenlenemez: "+body.Field)
		}

		cell := Cell{Collection: coll, Key: key, Field: body.Field}
		updated, err := editor.Edit(c.Context(), cell, body.OldValue, body.Value)
		if err != nil {
			return httpx.Error(err)
		}
		return c.JSON(PatchResponse{
			Key:         key,
			Field:       body.Field,
			Updated:     updated,
			HighlightMS: editor.Highlight().Milliseconds(),
		})
	}
}
