package reports

import (
	"catalog-backend/internal/httpx"
	"catalog-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

// GET /api/reports/stock-chart
func StockChartHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		recs, err := st.Catalogs(c.Context())
		if err != nil {
			return httpx.Error(err)
		}
		return c.JSON(StockChart(recs))
	}
}
