package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"catalog-backend/internal/form"
	"catalog-backend/internal/httpx"
	"catalog-backend/internal/ledger"
	"catalog-backend/internal/models"
	"catalog-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

type ProjectionRequest struct {
	CatalogName      string     `json:"CatalogName"`
	QuantityReceived form.Value `json:"QuantityReceived"`
	IssueQuantity    form.Value `json:"IssueQuantity"`
}

// Katalog kayıtları tablosunda satır içi düzenlenebilen alanlar
var EditableFields = map[string]bool{
	"CatalogName":             true,
	"ReceiptDate":             true,
	"QuantityReceived":        true,
	"DeliveryDate":            true,
	"IssueQuantity":           true,
	"DistributionDestination": true,
	"Requester":               true,
	"Remarks":                 true,
}

// GET /api/catalogs
func ListCatalogsHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		recs, err := st.Catalogs(c.Context())
		if err != nil {
			return httpx.Error(err)
		}
		if recs == nil {
			recs = []models.Catalog{}
		}
		return c.JSON(recs)
	}
}

// GET /api/catalogs/names
func CatalogNamesHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		names, err := svc.Names(c.Context())
		if err != nil {
			return httpx.Error(err)
		}
		if names == nil {
			names = []string{}
		}
		return c.JSON(names)
	}
}

// GET /api/catalogs/form?name=...
func CatalogFormHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := c.Query("name")
		if name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name parametresi zorunlu")
		}
		state, err := svc.Prefill(c.Context(), name)
		if err != nil {
			return httpx.Error(err)
		}
		return c.JSON(state)
	}
}

// POST /api/catalogs/form/projection
func CatalogProjectionHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ProjectionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.CatalogName == "" {
			return fiber.NewError(fiber.StatusBadRequest, "CatalogName zorunlu")
		}
		state, err := svc.Project(c.Context(), body.CatalogName, body.QuantityReceived, body.IssueQuantity)
		if err != nil {
			return httpx.Error(err)
		}
		return c.JSON(state)
	}
}

// POST /api/catalogs
func CreateCatalogEntryHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body InsertRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		rec, err := svc.Insert(c.Context(), body)
		if err != nil {
			return httpx.Error(err)
		}
		return c.Status(fiber.StatusCreated).JSON(rec)
	}
}

// GET /api/catalogs/groups
func CatalogGroupsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		groups, err := svc.Groups(c.Context())
		if err != nil {
			return httpx.Error(err)
		}
		if groups == nil {
			groups = []ledger.Group{}
		}
		return c.JSON(groups)
	}
}

// DELETE /api/catalogs/:key
func DeleteCatalogHandler(svc *Service) fiber.Handler {
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

// DELETE /api/catalogs?confirm=true
func DeleteAllCatalogsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !c.QueryBool("confirm") {
			return fiber.NewError(fiber.StatusBadRequest, "Tüm kayıtları silmek için confirm=true gerekli")
		}
		deleted, err := svc.DeleteAll(c.Context())
		if err != nil {
			return httpx.Error(err)
		}
		return c.JSON(fiber.Map{"deleted": deleted})
	}
}

// POST /api/catalogs/sample
func GenerateSampleCatalogsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		recs, err := svc.GenerateSample(c.Context())
		if err != nil {
			return httpx.Error(err)
		}
		return c.Status(fiber.StatusCreated).JSON(recs)
	}
}

// GET /api/catalogs/export
func ExportCatalogsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var buf bytes.Buffer
		if err := svc.Export(c.Context(), &buf); err != nil {
			var rerr *store.RemoteError
			if errors.As(err, &rerr) {
				return httpx.Error(err)
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Excel dosyası oluşturulamadı")
		}

		filename := fmt.Sprintf("catalogs_%s.xlsx", time.Now().Format("20060102"))
		c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		return c.Send(buf.Bytes())
	}
}

// GET /api/catalogs/stream
// Her değişiklikte gruplanmış kayıtları "groups" olayı olarak gönderir.
func StreamCatalogGroupsHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stream := httpx.NewStream()
		sub := st.SubscribeCatalogs(func(recs []models.Catalog) {
			stream.Send("groups", ledger.GroupByName(recs))
		})
		return httpx.ServeSSE(c, stream, sub.Close)
	}
}
