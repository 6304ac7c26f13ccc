package httpx

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
)

// KeyParam: ":key" yol parametresini çözer. Fiber parametreleri kodlanmış
// haliyle bırakır; anahtarlar Japonca karakter ve "/" içerebilir.
func KeyParam(c *fiber.Ctx) (string, error) {
	key, err := url.PathUnescape(c.Params("key"))
	if err != nil || key == "" {
		return "", fiber.NewError(fiber.StatusBadRequest, "Geçersiz kayıt anahtarı")
	}
	return key, nil
}
