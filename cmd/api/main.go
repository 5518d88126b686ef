package main

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gamesapi/docs"
	"gamesapi/internal/config"
	"gamesapi/internal/database"
	"gamesapi/internal/database/migration"
	handlers "gamesapi/internal/http/handler"
	"gamesapi/internal/http/middleware"
	"gamesapi/internal/otel"
	"gamesapi/internal/repository"
	"gamesapi/internal/repository/memory"
	mongorepo "gamesapi/internal/repository/mongo"
	"gamesapi/internal/repository/postgres"
	"gamesapi/internal/service"
	"gamesapi/internal/storage"
)

// @title Games Download API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	loc := time.UTC
	ctx := context.Background()

	// Tracing is optional; exporter failures degrade to a noop provider.
	shutdown, err := otel.Init(ctx, loc)
	if err != nil {
		log.Printf("otel init: %v", err)
	} else {
		defer shutdown(context.Background())
	}

	// Connect the configured document store. Connection failures do not abort
	// startup: the API keeps serving with a disconnected store so /health and
	// /test can report what is wrong.
	store := newDocumentStore(ctx, cfg, loc)
	defer store.Close(context.Background())

	gameSvc := service.NewGameService(store)

	// Object storage is optional; media routes are registered only when a
	// MinIO endpoint is configured.
	var mediaSvc service.MediaService
	if cfg.MinIO.Endpoint != "" {
		objStore, err := storage.NewMinIO(cfg.MinIO)
		if err != nil {
			log.Fatalf("failed to initialize object storage: %v", err)
		}
		mediaSvc = service.NewMediaService(objStore, time.Duration(cfg.MinIO.URLExpiryHours)*time.Hour)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())
	app.Use(cors.New())
	app.Use(otelfiber.Middleware())

	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("failed to register prometheus collectors: %v", err)
	}
	app.Use(promMiddleware.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, store, cfg, gameSvc, mediaSvc)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

// newDocumentStore connects the driver named in STORE_DRIVER. Failures are
// logged and replaced with a disconnected store so the server still boots.
func newDocumentStore(ctx context.Context, cfg *config.AppConfig, loc *time.Location) repository.DocumentStore {
	switch cfg.Store.Driver {
	case config.DriverMemory:
		return memory.NewDocumentMemory()
	case config.DriverPostgres:
		db, err := database.NewPostgres(cfg.Store)
		if err != nil {
			log.Printf("postgres connect: %v", err)
			return repository.NewDisconnected(err)
		}
		if err := migration.EnsureMigrated(ctx, db, loc, storeHost(cfg.Store.URL)); err != nil {
			log.Printf("postgres migrate: %v", err)
			db.Close()
			return repository.NewDisconnected(err)
		}
		return postgres.NewDocumentPostgres(db)
	case config.DriverMongo:
		client, err := database.NewMongo(cfg.Store)
		if err != nil {
			log.Printf("mongo connect: %v", err)
			return repository.NewDisconnected(err)
		}
		return mongorepo.NewDocumentMongo(client.Database(cfg.Store.Database))
	default:
		err := fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
		log.Printf("store init: %v", err)
		return repository.NewDisconnected(err)
	}
}

// storeHost extracts the host portion of a connection URL for log fields,
// keeping credentials out of the logs.
func storeHost(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
