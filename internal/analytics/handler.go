package analytics

import (
	"strings"

	"catalog-backend/internal/httpx"

	"github.com/gofiber/fiber/v2"
)

type SelectionRequest struct {
	Keys []string `json:"keys"`
}

type CardState struct {
	Card
	Selected bool `json:"selected"`
}

func queryFrom(c *fiber.Ctx) Query {
	q := Query{
		Preset: c.Query("preset"),
		Start:  c.Query("start"),
		End:    c.Query("end"),
	}
	if raw := c.Query("compare"); raw != "" {
		q.CompareNames = strings.Split(raw, ",")
	}
	return q
}

// GET /api/analytics?preset=30 | ?preset=custom&start=...&end=...
func DashboardHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		d, err := svc.Dashboard(c.Context(), httpx.ClientID(c), queryFrom(c))
		if err != nil {
			return httpx.Error(err)
		}
		return c.JSON(d)
	}
}

// GET /api/analytics/cards
// Özelleştirme penceresi için tüm kartlar ve seçili olup olmadıkları.
func CardsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		selection, err := svc.Selection(c.Context(), httpx.ClientID(c))
		if err != nil {
			return httpx.Error(err)
		}
		selected := make(map[string]bool, len(selection))
		for _, k := range selection {
			selected[k] = true
		}

		cards := make([]CardState, 0, len(Registry))
		for _, card := range Registry {
			cards = append(cards, CardState{Card: card, Selected: selected[card.Key]})
		}
		return c.JSON(cards)
	}
}

// GET /api/analytics/selection
func GetSelectionHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		selection, err := svc.Selection(c.Context(), httpx.ClientID(c))
		if err != nil {
			return httpx.Error(err)
		}
		return c.JSON(fiber.Map{"keys": selection})
	}
}

// PUT /api/analytics/selection
func SaveSelectionHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SelectionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if err := svc.SaveSelection(c.Context(), httpx.ClientID(c), body.Keys); err != nil {
			return httpx.Error(err)
		}
		return c.JSON(fiber.Map{"keys": body.Keys})
	}
}
