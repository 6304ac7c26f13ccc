package main

import (
	"log"
	"strings"

	"catalog-backend/internal/analytics"
	"catalog-backend/internal/calendar"
	"catalog-backend/internal/catalog"
	"catalog-backend/internal/config"
	"catalog-backend/internal/database"
	"catalog-backend/internal/inline"
	"catalog-backend/internal/live"
	"catalog-backend/internal/models"
	"catalog-backend/internal/order"
	"catalog-backend/internal/reports"
	"catalog-backend/internal/spa"
	"catalog-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	st := store.New(database.DB)
	catalogSvc := catalog.NewService(st)
	orderSvc := order.NewService(st)
	calendarSvc := calendar.NewService(st)
	analyticsSvc := analytics.NewService(st, analytics.NewSelectionStore(database.DB))
	editor := inline.NewEditor(st, cfg.HighlightDelay)
	sessions := live.NewRegistry(live.Deps{
		Store:     st,
		Catalog:   catalogSvc,
		Analytics: analyticsSvc,
	})

	editor.OnMark(sessions.Mark)
	analyticsSvc.OnSelectionSaved(sessions.RefreshAnalytics)

	catalogSvc.OnInserted(func(rec models.Catalog) {
		log.Printf("Katalog kaydı eklendi: %s (stok %d)", rec.Key, rec.StockQuantity)
	})

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	app.Use(recover.New())
	app.Use(logger.New())

	app.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	api := app.Group("/api")

	// Katalog defteri
	api.Get("/catalogs", catalog.ListCatalogsHandler(st))
	api.Get("/catalogs/names", catalog.CatalogNamesHandler(catalogSvc))
	api.Get("/catalogs/form", catalog.CatalogFormHandler(catalogSvc))
	api.Post("/catalogs/form/projection", catalog.CatalogProjectionHandler(catalogSvc))
	api.Get("/catalogs/groups", catalog.CatalogGroupsHandler(catalogSvc))
	api.Get("/catalogs/export", catalog.ExportCatalogsHandler(catalogSvc))
	api.Get("/catalogs/stream", catalog.StreamCatalogGroupsHandler(st))
	api.Post("/catalogs/sample", catalog.GenerateSampleCatalogsHandler(catalogSvc))
	api.Post("/catalogs", catalog.CreateCatalogEntryHandler(catalogSvc))
	api.Delete("/catalogs", catalog.DeleteAllCatalogsHandler(catalogSvc))
	api.Patch("/catalogs/:key", inline.PatchHandler(editor, store.Catalogs, catalog.EditableFields))
	api.Delete("/catalogs/:key", catalog.DeleteCatalogHandler(catalogSvc))

	// Siparişler
	api.Get("/orders", order.ListOrdersHandler(st))
	api.Get("/orders/groups", order.OrderGroupsHandler(orderSvc))
	api.Get("/orders/export", order.ExportOrdersHandler(orderSvc))
	api.Get("/orders/stream", order.StreamOrderGroupsHandler(st))
	api.Post("/orders/sample", order.GenerateSampleOrdersHandler(orderSvc))
	api.Post("/orders", order.PlaceOrderHandler(orderSvc))
	api.Delete("/orders", order.DeleteAllOrdersHandler(orderSvc))
	api.Patch("/orders/:key", inline.PatchHandler(editor, store.Orders, order.EditableFields))
	api.Delete("/orders/:key", order.DeleteOrderHandler(orderSvc))

	// Rapor, takvim, analiz
	api.Get("/reports/stock-chart", reports.StockChartHandler(st))
	api.Get("/calendar/events", calendar.EventsHandler(calendarSvc))
	api.Get("/calendar/days/:date", calendar.DayHandler(calendarSvc))
	api.Get("/analytics", analytics.DashboardHandler(analyticsSvc))
	api.Get("/analytics/cards", analytics.CardsHandler(analyticsSvc))
	api.Get("/analytics/selection", analytics.GetSelectionHandler(analyticsSvc))
	api.Put("/analytics/selection", analytics.SaveSelectionHandler(analyticsSvc))

	// Canlı oturum (SSE)
	api.Get("/live", live.OpenHandler(sessions))
	api.Post("/live/:id/navigate", live.NavigateHandler(sessions))
	api.Post("/live/:id/popstate", live.PopStateHandler(sessions))
	api.Post("/live/:id/catalog-name", live.CatalogNameHandler(sessions))
	api.Post("/live/:id/analytics-range", live.AnalyticsQueryHandler(sessions))

	api.All("/*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Endpoint bulunamadı")
	})

	// SPA: dosya olarak bulunmayan her yol index.html
	app.Get("/*", spa.Handler(cfg.PublicDir))

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}

// corsConfig: virgülle ayrılmış origin listesinden CORS ayarı. "*" ile
// kimlik bilgisi (client_id çerezi) taşınamaz; bu durumda kapatılır.
func corsConfig(origins string) cors.Config {
	corsOrigins := strings.Split(origins, ",")
	wildcard := false
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
		if corsOrigins[i] == "*" {
			wildcard = true
		}
	}
	allow := strings.Join(corsOrigins, ",")
	if wildcard {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS '*' içeriyor, çerezli istekler kapatıldı")
		allow = "*"
	}
	return cors.Config{
		AllowOrigins:     allow,
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowCredentials: !wildcard,
	}
}
