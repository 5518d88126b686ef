package service

import (
	"context"
	"encoding/json"
	"fmt"

	"gamesapi/internal/model"
	"gamesapi/internal/repository"
)

// gamesCollection is the store collection holding the catalog.
const gamesCollection = "game"

// sampleGames are inserted by SeedSamples when the catalog is empty.
var sampleGames = []model.Game{
	{
		Title:       "Starlight Odyssey",
		Description: "Explore a vast galaxy in this open-world space adventure.",
		Genre:       "Adventure",
		Platform:    "PC",
		SizeGB:      12.5,
		Thumbnail:   "https://images.unsplash.com/photo-1586125674857-4c4a1b3e72d0",
		Screenshots: []string{
			"https://images.unsplash.com/photo-1542751110-97427bbecf20",
			"https://images.unsplash.com/photo-1542831371-29b0f74f9713",
		},
		DownloadURL: "https://example.com/download/starlight-odyssey",
	},
	{
		Title:       "Neon Drift",
		Description: "High-speed neon-soaked racing in a cyberpunk city.",
		Genre:       "Racing",
		Platform:    "PC",
		SizeGB:      8.2,
		Thumbnail:   "https://images.unsplash.com/photo-1511512578047-dfb367046420",
		Screenshots: []string{
			"https://images.unsplash.com/photo-1535223289827-42f1e9919769",
			"https://images.unsplash.com/photo-1483721310020-03333e577078",
		},
		DownloadURL: "https://example.com/download/neon-drift",
	},
	{
		Title:       "Echoes of Eldoria",
		Description: "A story-driven RPG with tactical combat and rich lore.",
		Genre:       "RPG",
		Platform:    "PC",
		SizeGB:      25.0,
		Thumbnail:   "https://images.unsplash.com/photo-1520975922371-24b89f8378fd",
		Screenshots: []string{
			"https://images.unsplash.com/photo-1486406146926-c627a92ad1ab",
		},
		DownloadURL: "https://example.com/download/echoes-of-eldoria",
	},
}

// GameService defines the use cases for the games catalog.
type GameService interface {
	// Create validates and stores one game, returning its new id.
	Create(ctx context.Context, game model.Game) (string, error)

	// List returns up to limit games, optionally filtered by a free-text term
	// matched case-insensitively against title and genre.
	List(ctx context.Context, q string, limit int64) ([]model.StoredGame, error)

	// SeedSamples inserts the fixed sample set when the catalog is empty,
	// then returns the current listing.
	SeedSamples(ctx context.Context) ([]model.StoredGame, error)
}

// gameService is a concrete implementation of GameService.
type gameService struct {
	store repository.DocumentStore
}

// NewGameService constructs a new GameService.
func NewGameService(store repository.DocumentStore) GameService {
	return &gameService{store: store}
}

func (s *gameService) Create(ctx context.Context, game model.Game) (string, error) {
	if err := game.Validate(); err != nil {
		return "", err
	}
	return s.store.CreateDocument(ctx, gamesCollection, game)
}

func (s *gameService) List(ctx context.Context, q string, limit int64) ([]model.StoredGame, error) {
	docs, err := s.store.GetDocuments(ctx, gamesCollection, searchFilter(q), limit)
	if err != nil {
		return nil, err
	}
	return toStoredGames(docs)
}

// SeedSamples probes with a single-document read; the check and the inserts
// are not atomic, so two concurrent first-requests can both seed.
func (s *gameService) SeedSamples(ctx context.Context) ([]model.StoredGame, error) {
	existing, err := s.store.GetDocuments(ctx, gamesCollection, nil, 1)
	if err != nil {
		return nil, err
	}
	if len(existing) == 0 {
		for _, g := range sampleGames {
			if _, err := s.store.CreateDocument(ctx, gamesCollection, g); err != nil {
				return nil, err
			}
		}
	}
	return s.List(ctx, "", repository.DefaultLimit)
}

// searchFilter translates the optional free-text term into a store filter:
// title contains term OR genre contains term, case-insensitively. An empty
// term matches everything.
func searchFilter(q string) repository.Filter {
	if q == "" {
		return nil
	}
	return repository.Or{
		repository.ContainsFold{Field: "title", Term: q},
		repository.ContainsFold{Field: "genre", Term: q},
	}
}

// toStoredGames decodes raw documents into the public game shape. Fields
// outside the schema are dropped; the surrogate id travels in the document's
// id key.
func toStoredGames(docs []repository.Document) ([]model.StoredGame, error) {
	games := make([]model.StoredGame, 0, len(docs))
	for _, doc := range docs {
		data, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("encode document: %w", err)
		}
		var g model.StoredGame
		if err := json.Unmarshal(data, &g); err != nil {
			return nil, fmt.Errorf("decode game: %w", err)
		}
		games = append(games, g)
	}
	return games, nil
}
