package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"gamesapi/internal/model"
	"gamesapi/internal/service"
)

// CreateGame handles POST /api/games: validates the payload, stores it and
// returns the new id.
func CreateGame(svc service.GameService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var game model.Game
		if err := c.BodyParser(&game); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "malformed JSON body")
		}

		id, err := svc.Create(c.UserContext(), game)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"id": id})
	}
}

// ListGames handles GET /api/games with an optional free-text q parameter
// matched against title and genre, and an optional limit (default 50).
func ListGames(svc service.GameService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limitStr := c.Query("limit", "50")
		limit, err := strconv.ParseInt(limitStr, 10, 64)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}

		games, err := svc.List(c.UserContext(), c.Query("q"), limit)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(games)
	}
}

// SeedSampleGames handles GET /api/games/sample: seeds the fixed sample set
// when the catalog is empty, then returns the listing.
func SeedSampleGames(svc service.GameService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		games, err := svc.SeedSamples(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(games)
	}
}
