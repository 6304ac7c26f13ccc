package order

import (
	"bytes"
	"fmt"
	"time"

	"catalog-backend/internal/httpx"
	"catalog-backend/internal/models"
	"catalog-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

// GET /api/orders
func ListOrdersHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		recs, err := st.Orders(c.Context())
		if err != nil {
			return httpx.Error(err)
		}
		if recs == nil {
			recs = []models.Order{}
		}
		return c.JSON(recs)
	}
}

// POST /api/orders
func PlaceOrderHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body PlaceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		rec, err := svc.Place(c.Context(), body)
		if err != nil {
			return httpx.Error(err)
		}
		return c.Status(fiber.StatusCreated).JSON(rec)
	}
}

// GET /api/orders/groups
func OrderGroupsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		groups, err := svc.Groups(c.Context())
		if err != nil {
			return httpx.Error(err)
		}
		return c.JSON(groups)
	}
}

// DELETE /api/orders/:key
func DeleteOrderHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key, err := httpx.KeyParam(c)
		if err != nil {
			return err
		}
		if err := svc.Delete(c.Context(), key); err != nil {
			return httpx.Error(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DELETE /api/orders?confirm=true
func DeleteAllOrdersHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !c.QueryBool("confirm") {
			return fiber.NewError(fiber.StatusBadRequest, "Tüm siparişleri silmek için confirm=true gerekli")
		}
		deleted, err := svc.DeleteAll(c.Context())
		if err != nil {
			return httpx.Error(err)
		}
		return c.JSON(fiber.Map{"deleted": deleted})
	}
}

// POST /api/orders/sample
func GenerateSampleOrdersHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		recs, err := svc.GenerateSample(c.Context())
		if err != nil {
			return httpx.Error(err)
		}
		return c.Status(fiber.StatusCreated).JSON(recs)
	}
}

// GET /api/orders/export
func ExportOrdersHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var buf bytes.Buffer
		if err := svc.Export(c.Context(), &buf); err != nil {
			return httpx.Error(err)
		}

		filename := fmt.Sprintf("orders_%s.xlsx", time.Now().Format("20060102"))
		c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		return c.Send(buf.Bytes())
	}
}

// GET /api/orders/stream
func StreamOrderGroupsHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stream := httpx.NewStream()
		sub := st.SubscribeOrders(func(recs []models.Order) {
			stream.Send("groups", GroupByName(recs))
		})
		return httpx.ServeSSE(c, stream, sub.Close)
	}
}
