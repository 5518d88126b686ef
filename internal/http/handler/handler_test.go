package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gamesapi/internal/config"
	"gamesapi/internal/model"
	"gamesapi/internal/repository"
	"gamesapi/internal/repository/memory"
	repoMocks "gamesapi/internal/repository/mocks"
	"gamesapi/internal/service"
	serviceMocks "gamesapi/internal/service/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, resp *http.Response, into any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(into))
}

func TestRoot(t *testing.T) {
	app := fiber.New()
	app.Get("/", Root())

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "Games Download API is running", body["message"])
}

func TestHello(t *testing.T) {
	app := fiber.New()
	app.Get("/api/hello", Hello())

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/hello", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "Hello from the backend API!", body["message"])
}

func TestHealthCheck(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		app := fiber.New()
		app.Get("/health", HealthCheck(memory.NewDocumentMemory()))

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]string
		decodeBody(t, resp, &body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		app := fiber.New()
		store := repository.NewDisconnected(errors.New("dial timeout"))
		app.Get("/health", HealthCheck(store))

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		var body errorPayload
		decodeBody(t, resp, &body)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDatabaseDiagnostics(t *testing.T) {
	cfg := &config.AppConfig{
		Store: config.StoreConfig{URL: "mongodb://localhost:27017", Database: "games"},
	}

	t.Run("connected and working", func(t *testing.T) {
		store := memory.NewDocumentMemory()
		_, err := store.CreateDocument(context.Background(), "game", map[string]any{"title": "x"})
		require.NoError(t, err)

		app := fiber.New()
		app.Get("/test", DatabaseDiagnostics(store, cfg))

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]any
		decodeBody(t, resp, &body)
		assert.Equal(t, "✅ Running", body["backend"])
		assert.Equal(t, "✅ Connected & Working", body["database"])
		assert.Equal(t, "Connected", body["connection_status"])
		assert.Equal(t, "✅ Set", body["database_url"])
		assert.Equal(t, "✅ Set", body["database_name"])
		assert.Equal(t, []any{"game"}, body["collections"])
	})

	t.Run("store never initialized", func(t *testing.T) {
		store := repository.NewDisconnected(errors.New("dial timeout"))

		app := fiber.New()
		app.Get("/test", DatabaseDiagnostics(store, &config.AppConfig{}))

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]any
		decodeBody(t, resp, &body)
		assert.Equal(t, "⚠️  Available but not initialized", body["database"])
		assert.Equal(t, "Not Connected", body["connection_status"])
		assert.Equal(t, "❌ Not Set", body["database_url"])
		assert.Equal(t, "❌ Not Set", body["database_name"])
		assert.Equal(t, []any{}, body["collections"])
	})

	t.Run("connected but listing fails", func(t *testing.T) {
		store := new(repoMocks.MockDocumentStore)
		longErr := errors.New(strings.Repeat("x", 80))
		store.On("ListCollections", mock.Anything).Return(nil, longErr)

		app := fiber.New()
		app.Get("/test", DatabaseDiagnostics(store, cfg))

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]any
		decodeBody(t, resp, &body)
		database, _ := body["database"].(string)
		assert.Equal(t, "⚠️  Connected but Error: "+strings.Repeat("x", 50), database)
		assert.Equal(t, "Connected", body["connection_status"])
	})

	t.Run("collections are capped at ten", func(t *testing.T) {
		store := memory.NewDocumentMemory()
		for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"} {
			_, err := store.CreateDocument(context.Background(), name, map[string]any{"x": 1})
			require.NoError(t, err)
		}

		app := fiber.New()
		app.Get("/test", DatabaseDiagnostics(store, cfg))

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/test", nil))

		var body map[string]any
		decodeBody(t, resp, &body)
		collections, _ := body["collections"].([]any)
		assert.Len(t, collections, 10)
	})
}

func TestCreateGame(t *testing.T) {
	mockSvc := new(serviceMocks.MockGameService)
	app := fiber.New()
	app.Post("/api/games", CreateGame(mockSvc))

	postJSON := func(body string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/api/games", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		return req
	}

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, mock.MatchedBy(func(g model.Game) bool {
			return g.Title == "Neon Drift"
		})).Return("new-id", nil).Once()

		resp, _ := app.Test(postJSON(`{"title":"Neon Drift","description":"d","genre":"Racing","platform":"PC","size_gb":8.2,"thumbnail":"t","download_url":"u"}`))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]string
		decodeBody(t, resp, &body)
		assert.Equal(t, "new-id", body["id"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("malformed body", func(t *testing.T) {
		resp, _ := app.Test(postJSON(`{broken`))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body errorPayload
		decodeBody(t, resp, &body)
		assert.Equal(t, "INVALID_BODY", body.Error.Code)
	})

	t.Run("validation error", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, mock.Anything).
			Return("", &model.ValidationError{Field: "title", Reason: "is required"}).Once()

		resp, _ := app.Test(postJSON(`{"genre":"Racing"}`))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body errorPayload
		decodeBody(t, resp, &body)
		assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
		assert.Equal(t, "invalid game: title is required", body.Error.Message)
		mockSvc.AssertExpectations(t)
	})

	t.Run("persistence error", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, mock.Anything).
			Return("", &repository.PersistenceError{Op: "insert game", Err: errors.New("connection refused")}).Once()

		resp, _ := app.Test(postJSON(`{"title":"Neon Drift","description":"d","genre":"Racing","platform":"PC","size_gb":8.2,"thumbnail":"t","download_url":"u"}`))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		var body errorPayload
		decodeBody(t, resp, &body)
		assert.Equal(t, "PERSISTENCE_ERROR", body.Error.Code)
		assert.Contains(t, body.Error.Message, "connection refused")
		mockSvc.AssertExpectations(t)
	})
}

func TestListGames(t *testing.T) {
	mockSvc := new(serviceMocks.MockGameService)
	app := fiber.New()
	app.Get("/api/games", ListGames(mockSvc))

	t.Run("success with query and limit", func(t *testing.T) {
		games := []model.StoredGame{
			{ID: "1", Game: model.Game{Title: "Neon Drift", Genre: "Racing"}},
		}
		mockSvc.On("List", mock.Anything, "neon", int64(10)).Return(games, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/games?q=neon&limit=10", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result []model.StoredGame
		decodeBody(t, resp, &result)
		require.Len(t, result, 1)
		assert.Equal(t, "1", result[0].ID)
		assert.Equal(t, "Neon Drift", result[0].Title)
		mockSvc.AssertExpectations(t)
	})

	t.Run("defaults apply", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, "", int64(50)).Return([]model.StoredGame{}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/games", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result []model.StoredGame
		decodeBody(t, resp, &result)
		assert.Empty(t, result)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid limit", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/games?limit=abc", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body errorPayload
		decodeBody(t, resp, &body)
		assert.Equal(t, "INVALID_LIMIT", body.Error.Code)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, "", int64(50)).
			Return(nil, &repository.PersistenceError{Op: "find game", Err: errors.New("down")}).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/games", nil))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestSeedSampleGames(t *testing.T) {
	mockSvc := new(serviceMocks.MockGameService)
	app := fiber.New()
	app.Get("/api/games/sample", SeedSampleGames(mockSvc))

	t.Run("success", func(t *testing.T) {
		games := []model.StoredGame{
			{ID: "1", Game: model.Game{Title: "Starlight Odyssey"}},
			{ID: "2", Game: model.Game{Title: "Neon Drift"}},
			{ID: "3", Game: model.Game{Title: "Echoes of Eldoria"}},
		}
		mockSvc.On("SeedSamples", mock.Anything).Return(games, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/games/sample", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result []model.StoredGame
		decodeBody(t, resp, &result)
		require.Len(t, result, 3)
		assert.Equal(t, "Starlight Odyssey", result[0].Title)
		mockSvc.AssertExpectations(t)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("SeedSamples", mock.Anything).
			Return(nil, &repository.PersistenceError{Op: "find game", Err: errors.New("down")}).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/games/sample", nil))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestUploadMedia(t *testing.T) {
	mockSvc := new(serviceMocks.MockMediaService)
	app := fiber.New()
	app.Post("/api/media", UploadMedia(mockSvc))

	t.Run("success", func(t *testing.T) {
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		part, _ := writer.CreateFormFile("file", "cover.png")
		part.Write([]byte("data"))
		writer.Close()

		expected := &model.MediaObject{Key: "media/uuid.png", URL: "https://media.local/x", Size: 4, ContentType: "application/octet-stream"}
		mockSvc.On("Upload", mock.Anything, mock.Anything, "cover.png", mock.Anything, mock.Anything).Return(expected, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/media", body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		var result model.MediaObject
		decodeBody(t, resp, &result)
		assert.Equal(t, expected.Key, result.Key)
		assert.Equal(t, expected.URL, result.URL)
		mockSvc.AssertExpectations(t)
	})

	t.Run("no file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/media", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body errorPayload
		decodeBody(t, resp, &body)
		assert.Equal(t, "FILE_REQUIRED", body.Error.Code)
	})

	t.Run("service error", func(t *testing.T) {
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		part, _ := writer.CreateFormFile("file", "cover.png")
		part.Write([]byte("data"))
		writer.Close()

		mockSvc.On("Upload", mock.Anything, mock.Anything, "cover.png", mock.Anything, mock.Anything).
			Return(nil, errors.New("upload failed")).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/media", body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestRouting(t *testing.T) {
	newApp := func(mediaSvc service.MediaService) *fiber.App {
		app := fiber.New(fiber.Config{
			ErrorHandler: ErrorHandler(),
		})
		store := memory.NewDocumentMemory()
		gameSvc := service.NewGameService(store)
		RegisterRoutes(app, store, &config.AppConfig{}, gameSvc, mediaSvc)
		return app
	}

	t.Run("not found route", func(t *testing.T) {
		app := newApp(nil)
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/non-existent", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		decodeBody(t, resp, &res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		app := newApp(nil)
		resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/health", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		var res errorPayload
		decodeBody(t, resp, &res)
		assert.Equal(t, "METHOD_NOT_ALLOWED", res.Error.Code)
	})

	t.Run("media route only registered with a media service", func(t *testing.T) {
		app := newApp(nil)
		resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/api/media", nil))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("create then list round trip", func(t *testing.T) {
		app := newApp(nil)

		payload := `{"title":"Neon Drift","description":"d","genre":"Racing","platform":"PC","size_gb":8.2,"thumbnail":"t","screenshots":["s"],"download_url":"u"}`
		req := httptest.NewRequest(http.MethodPost, "/api/games", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var created map[string]string
		decodeBody(t, resp, &created)
		require.NotEmpty(t, created["id"])

		resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/api/games?q=racing", nil))
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var games []model.StoredGame
		decodeBody(t, resp, &games)
		require.Len(t, games, 1)
		assert.Equal(t, created["id"], games[0].ID)
		assert.Equal(t, "Neon Drift", games[0].Title)
	})

	t.Run("seed endpoint fills an empty catalog once", func(t *testing.T) {
		app := newApp(nil)

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/games/sample", nil))
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var games []model.StoredGame
		decodeBody(t, resp, &games)
		require.Len(t, games, 3)
		assert.Equal(t, "Starlight Odyssey", games[0].Title)
		assert.Equal(t, "Neon Drift", games[1].Title)
		assert.Equal(t, "Echoes of Eldoria", games[2].Title)

		// Second call must not duplicate the samples.
		resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/api/games/sample", nil))
		decodeBody(t, resp, &games)
		assert.Len(t, games, 3)
	})
}
