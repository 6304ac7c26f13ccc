package calendar

import (
	"time"

	"catalog-backend/internal/httpx"

	"github.com/gofiber/fiber/v2"
)

func parseOptionalDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, s)
}

// GET /api/calendar/events?start=2024-12-01&end=2025-01-01
func EventsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		from, err := parseOptionalDate(c.Query("start"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
		}
		to, err := parseOptionalDate(c.Query("end"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
		}

		events, err := svc.Events(c.Context(), from, to)
		if err != nil {
			return httpx.Error(err)
		}
		return c.JSON(events)
	}
}

// GET /api/calendar/days/:date
func DayHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		date := c.Params("date")
		if _, err := time.Parse(dateLayout, date); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
		}
		events, err := svc.Day(c.Context(), date)
		if err != nil {
			return httpx.Error(err)
		}
		return c.JSON(fiber.Map{
			"date":   date,
			"events": events,
		})
	}
}
