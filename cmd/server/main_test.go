package main

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func TestCORSConfig(t *testing.T) {
	tests := []struct {
		origins     string
		request     string
		wantOrigin  string
		credentials bool
	}{
		{"http://localhost:3000, http://example.com", "http://example.com", "http://example.com", true},
		{"*", "http://anywhere.test", "*", false},
		{"http://localhost:3000,*", "http://anywhere.test", "*", false},
	}
	for _, tt := range tests {
		cfg := corsConfig(tt.origins)
		if cfg.AllowCredentials != tt.credentials {
			t.Errorf("corsConfig(%q).AllowCredentials = %v, want %v", tt.origins, cfg.AllowCredentials, tt.credentials)
		}

		app := fiber.New()
		app.Use(cors.New(cfg))
		app.Get("/api/ping", func(c *fiber.Ctx) error { return c.SendString("ok") })

		req := httptest.NewRequest("GET", "/api/ping", nil)
		req.Header.Set("Origin", tt.request)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		if got := resp.Header.Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
			t.Errorf("%q: Allow-Origin = %q, want %q", tt.origins, got, tt.wantOrigin)
		}
	}
}
