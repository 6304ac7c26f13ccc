// Package spa, tek sayfalık uygulamanın statik dosyalarını sunar. Dosya olarak
// bulunmayan her yol index.html'e düşer; sekme yönlendirmesi istemcide yapılır.
package spa

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const indexFile = "index.html"

// Handler: root altındaki dosyaları sunar. İstek yolu root dışına çıkamaz.
func Handler(root string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := c.Path()
		if p != "/" {
			p = strings.TrimSuffix(p, "/")
		}
		target := filepath.Join(root, filepath.FromSlash(path.Clean("/"+p)))

		info, err := os.Stat(target)
		switch {
		case err == nil && info.Mode().IsRegular():
			return sendFile(c, target)
		case err == nil && info.IsDir():
			content, err := os.ReadFile(filepath.Join(target, indexFile))
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "index.html okunamadı")
			}
			c.Type("html")
			return c.Send(content)
		}

		content, err := os.ReadFile(filepath.Join(root, indexFile))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "404 - Not Found")
		}
		c.Type("html")
		return c.Send(content)
	}
}

func sendFile(c *fiber.Ctx, name string) error {
	content, err := os.ReadFile(name)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Dosya okunamadı")
	}
	if ext := filepath.Ext(name); ext != "" {
		c.Type(strings.TrimPrefix(ext, "."))
	} else {
		c.Set(fiber.HeaderContentType, "application/octet-stream")
	}
	return c.Send(content)
}
