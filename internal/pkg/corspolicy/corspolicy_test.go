package corspolicy

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

var storefrontOrigins = []string{"https://goatpbn.com", "https://www.goatpbn.com"}

func TestDecide(t *testing.T) {
	tests := []struct {
		name    string
		origin  string
		allowed bool
	}{
		{name: "listed origin", origin: "https://goatpbn.com", allowed: true},
		{name: "second listed origin", origin: "https://www.goatpbn.com", allowed: true},
		{name: "unlisted origin", origin: "https://evil.example.com", allowed: false},
		{name: "case sensitive match", origin: "https://GOATPBN.com", allowed: false},
		{name: "absent origin fails closed", origin: "", allowed: false},
	}

	for _, tt := range tests {
		d := Decide(tt.origin, storefrontOrigins)
		if d.Allowed != tt.allowed {
			t.Fatalf("%s: Allowed = %v, want %v", tt.name, d.Allowed, tt.allowed)
		}
		if !tt.allowed && len(d.Headers) != 0 {
			t.Fatalf("%s: negative decision must carry no headers, got %v", tt.name, d.Headers)
		}
		if tt.allowed {
			if got := d.Headers["Access-Control-Allow-Origin"]; got != tt.origin {
				t.Fatalf("%s: echoed origin = %q, want %q", tt.name, got, tt.origin)
			}
			if d.Headers["Access-Control-Allow-Origin"] == "*" {
				t.Fatalf("%s: wildcard origin is never allowed", tt.name)
			}
			if d.Headers["Vary"] != "Origin" {
				t.Fatalf("%s: missing Vary: Origin", tt.name)
			}
			if d.Headers["Access-Control-Allow-Credentials"] != "true" {
				t.Fatalf("%s: credentials header missing", tt.name)
			}
		}
	}
}

func TestMiddlewarePreflight(t *testing.T) {
	app := fiber.New()
	app.Use(Middleware(storefrontOrigins))
	app.Post("/pay", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	req := httptest.NewRequest(fiber.MethodOptions, "/pay", nil)
	req.Header.Set(fiber.HeaderOrigin, "https://goatpbn.com")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusNoContent {
		t.Fatalf("preflight status = %d, want 204", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "https://goatpbn.com" {
		t.Fatalf("preflight origin header = %q", got)
	}
}

func TestMiddlewareOmitsHeadersForUnknownOrigin(t *testing.T) {
	app := fiber.New()
	app.Use(Middleware(storefrontOrigins))
	app.Post("/pay", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	req := httptest.NewRequest(fiber.MethodPost, "/pay", nil)
	req.Header.Set(fiber.HeaderOrigin, "https://evil.example.com")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("request must still be served, got status %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no CORS header for unknown origin, got %q", got)
	}
}

func TestMiddlewareInjectsHeadersOnActualRequest(t *testing.T) {
	app := fiber.New()
	app.Use(Middleware(storefrontOrigins))
	app.Post("/pay", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	req := httptest.NewRequest(fiber.MethodPost, "/pay", nil)
	req.Header.Set(fiber.HeaderOrigin, "https://www.goatpbn.com")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "https://www.goatpbn.com" {
		t.Fatalf("echoed origin = %q", got)
	}
	if got := resp.Header.Get("Vary"); got != "Origin" {
		t.Fatalf("Vary = %q, want Origin", got)
	}
}
