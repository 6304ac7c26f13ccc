package httpx

import (
	"errors"
	"log"

	"catalog-backend/internal/form"
	"catalog-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

// Error: servis hatalarını fiber hatalarına çevirir.
func Error(err error) error {
	if err == nil {
		return nil
	}

	var verr *form.ValidationError
	var rerr *store.RemoteError
	switch {
	case errors.As(err, &verr):
		return fiber.NewError(fiber.StatusBadRequest, verr.Error())
	case errors.Is(err, store.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Kayıt bulunamadı")
	case errors.Is(err, store.ErrUnknownField), errors.Is(err, store.ErrInvalidValue), errors.Is(err, store.ErrUnknownCollection):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.As(err, &rerr):
		log.Printf("[store] %v", rerr)
		return fiber.NewError(fiber.StatusBadGateway, "Veri deposuna ulaşılamadı")
	default:
		return err
	}
}
