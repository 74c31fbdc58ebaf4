package apierr

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func newTestApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: Handler})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "User not found")
	})
	app.Get("/locked", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusUnauthorized, "Token has expired")
	})
	app.Get("/teapot", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("kaput")
	})
	return app
}

func getEnvelope(t *testing.T, app *fiber.App, path string) (int, Envelope) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return resp.StatusCode, env
}

func TestHandlerNotFound(t *testing.T) {
	status, env := getEnvelope(t, newTestApp(), "/missing")
	if status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", status)
	}
	if !env.Error || env.ErrorCode != "NOT_FOUND" || env.Message != "Resource Not Found" {
		t.Fatalf("env = %+v", env)
	}
	if env.Details != "User not found" || len(env.Suggestions) != 2 {
		t.Fatalf("env = %+v", env)
	}
}

func TestHandlerUnauthorized(t *testing.T) {
	status, env := getEnvelope(t, newTestApp(), "/locked")
	if status != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", status)
	}
	if env.ErrorCode != "UNAUTHORIZED" || env.Message != "Unauthorized Access" {
		t.Fatalf("env = %+v", env)
	}
	if env.Details != "Token has expired" || len(env.Suggestions) != 3 {
		t.Fatalf("env = %+v", env)
	}
}

func TestHandlerGenericStatus(t *testing.T) {
	status, env := getEnvelope(t, newTestApp(), "/teapot")
	if status != http.StatusTeapot {
		t.Fatalf("status = %d, want 418", status)
	}
	if env.ErrorCode != "HTTP_418" || env.Message != "short and stout" {
		t.Fatalf("env = %+v", env)
	}
	if env.Suggestions == nil || len(env.Suggestions) != 0 {
		t.Fatalf("suggestions = %v, want empty array", env.Suggestions)
	}
}

func TestHandlerPlainError(t *testing.T) {
	status, env := getEnvelope(t, newTestApp(), "/boom")
	if status != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", status)
	}
	if env.ErrorCode != "HTTP_500" || env.Message != "Internal Server Error" {
		t.Fatalf("env = %+v", env)
	}
}
