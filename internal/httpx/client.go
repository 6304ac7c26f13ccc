package httpx

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const clientCookie = "client_id"

// ClientID: istemciyi tanımlayan çerez. Yoksa yeni bir UUID üretilip yazılır.
// Tarayıcı başına saklanan ayarlar (kart seçimi gibi) bu kimliğe bağlanır.
func ClientID(c *fiber.Ctx) string {
	if id := c.Cookies(clientCookie); id != "" {
		if _, err := uuid.Parse(id); err == nil {
			return id
		}
	}

	id := uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     clientCookie,
		Value:    id,
		Path:     "/",
		Expires:  time.Now().AddDate(1, 0, 0),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return id
}
