package handler

import (
	"github.com/gofiber/fiber/v2"

	"gamesapi/internal/config"
	"gamesapi/internal/repository"
	"gamesapi/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Keep handlers minimal and free of business logic.
func RegisterRoutes(app *fiber.App, store repository.DocumentStore, cfg *config.AppConfig, gameSvc service.GameService, mediaSvc service.MediaService) {
	app.Get("/", Root())
	app.Get("/api/hello", Hello())

	// Store connectivity diagnostics; must answer even when the store is down
	app.Get("/test", DatabaseDiagnostics(store, cfg))

	// Health endpoint: checks store connectivity only
	app.Get("/health", HealthCheck(store))
	// Backward-compatible simple liveness probe
	app.Get("/healthz", LivenessProbe())

	app.Post("/api/games", CreateGame(gameSvc))
	app.Get("/api/games", ListGames(gameSvc))
	app.Get("/api/games/sample", SeedSampleGames(gameSvc))

	// Media uploads are optional: the route exists only when object storage
	// is configured.
	if mediaSvc != nil {
		app.Post("/api/media", UploadMedia(mediaSvc))
	}
}
