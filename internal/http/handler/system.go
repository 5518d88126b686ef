package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"gamesapi/internal/config"
	"gamesapi/internal/repository"
)

// Root answers the base liveness message.
func Root() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Games Download API is running"})
	}
}

// Hello answers the API liveness message.
func Hello() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Hello from the backend API!"})
	}
}

// HealthCheck reports store connectivity: 200 when the store answers a ping
// within two seconds, 503 otherwise.
func HealthCheck(store repository.DocumentStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe reports process liveness only.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// DatabaseDiagnostics answers GET /test with a human-oriented connectivity
// report. It never fails: every error inside is rendered as a descriptive
// status string in the body instead of propagating.
func DatabaseDiagnostics(store repository.DocumentStore, cfg *config.AppConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		response := fiber.Map{
			"backend":           "✅ Running",
			"database":          "❌ Not Available",
			"database_url":      setOrNot(cfg.Store.URL),
			"database_name":     setOrNot(cfg.Store.Database),
			"connection_status": "Not Connected",
			"collections":       []string{},
		}

		if _, down := store.(*repository.Disconnected); down {
			response["database"] = "⚠️  Available but not initialized"
			return c.JSON(response)
		}

		response["database"] = "✅ Available"
		response["connection_status"] = "Connected"

		ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
		defer cancel()

		names, err := store.ListCollections(ctx)
		if err != nil {
			response["database"] = "⚠️  Connected but Error: " + truncate(err.Error(), 50)
			return c.JSON(response)
		}

		if len(names) > 10 {
			names = names[:10]
		}
		response["collections"] = names
		response["database"] = "✅ Connected & Working"

		return c.JSON(response)
	}
}

func setOrNot(v string) string {
	if v != "" {
		return "✅ Set"
	}
	return "❌ Not Set"
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
