package live

import (
	"log"

	"catalog-backend/internal/analytics"
	"catalog-backend/internal/httpx"
	"catalog-backend/internal/router"

	"github.com/gofiber/fiber/v2"
)

type NavigateRequest struct {
	Tab string `json:"tab"`
}

type PopStateRequest struct {
	Tab  string `json:"tab"` // history.state.tab, boş olabilir
	Path string `json:"path"`
}

type CatalogNameRequest struct {
	Name string `json:"name"`
}

type AnalyticsQueryRequest struct {
	Preset  string   `json:"preset"`
	Start   string   `json:"start"`
	End     string   `json:"end"`
	Compare []string `json:"compare"`
}

func session(reg *Registry, c *fiber.Ctx) (*Session, error) {
	s, ok := reg.Get(c.Params("id"))
	if !ok {
		return nil, fiber.NewError(fiber.StatusNotFound, "Oturum bulunamadı")
	}
	return s, nil
}

// GET /api/live?path=/analytics
// Oturumu açar; ilk olay "session" (oturum kimliği), ardından başlangıç sekmesi.
func OpenHandler(reg *Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s := reg.Open(httpx.ClientID(c))
		s.Stream().Send("session", fiber.Map{"id": s.ID})

		initial := router.TabFromPath(c.Query("path", "/"))
		s.Router().Show(c.Context(), initial)

		log.Printf("[live] oturum açıldı: %s (%s)", s.ID, initial)
		return httpx.ServeSSE(c, s.Stream(), func() {
			reg.Close(s.ID)
			log.Printf("[live] oturum kapandı: %s", s.ID)
		})
	}
}

func tabResponse(r *router.Router) TabEvent {
	tab := r.Current()
	return TabEvent{Tab: tab, Name: router.DisplayName(tab), Path: router.PathFromTab(tab)}
}

// POST /api/live/:id/navigate
func NavigateHandler(reg *Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := session(reg, c)
		if err != nil {
			return err
		}
		var body NavigateRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		tab := router.Tab(body.Tab)
		if !router.Valid(tab) {
			return fiber.NewError(fiber.StatusBadRequest, "Bilinmeyen sekme: "+body.Tab)
		}

		s.Router().Navigate(c.Context(), tab)
		return c.JSON(tabResponse(s.Router()))
	}
}

// POST /api/live/:id/popstate
func PopStateHandler(reg *Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := session(reg, c)
		if err != nil {
			return err
		}
		var body PopStateRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		tab := router.Tab(body.Tab)
		if !router.Valid(tab) {
			tab = router.TabFromPath(body.Path)
		}
		s.Router().Show(c.Context(), tab)
		return c.JSON(tabResponse(s.Router()))
	}
}

// POST /api/live/:id/catalog-name
func CatalogNameHandler(reg *Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := session(reg, c)
		if err != nil {
			return err
		}
		var body CatalogNameRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		state, current, err := s.SelectCatalogName(c.Context(), body.Name)
		if err != nil {
			return httpx.Error(err)
		}
		return c.JSON(fiber.Map{"form": state, "current": current})
	}
}

// POST /api/live/:id/analytics-range
func AnalyticsQueryHandler(reg *Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := session(reg, c)
		if err != nil {
			return err
		}
		var body AnalyticsQueryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		q := analytics.Query{Preset: body.Preset, Start: body.Start, End: body.End, CompareNames: body.Compare}
		if err := s.SetAnalyticsQuery(c.Context(), q); err != nil {
			return httpx.Error(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
