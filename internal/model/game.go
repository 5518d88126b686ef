package model

import (
	"fmt"
	"strings"
)

// Game represents one catalog entry of the games download API.
// JSON and BSON tags share the same wire names so the record round-trips
// identically through every store backend.
type Game struct {
	Title       string   `json:"title" bson:"title"`
	Description string   `json:"description" bson:"description"`
	Genre       string   `json:"genre" bson:"genre"`
	Platform    string   `json:"platform" bson:"platform"`
	SizeGB      float64  `json:"size_gb" bson:"size_gb"`
	Thumbnail   string   `json:"thumbnail" bson:"thumbnail"`
	Screenshots []string `json:"screenshots" bson:"screenshots"`
	DownloadURL string   `json:"download_url" bson:"download_url"`
}

// StoredGame is a Game together with its store-assigned surrogate identifier,
// always rendered as a string regardless of the backend's internal id type.
type StoredGame struct {
	ID string `json:"id"`
	Game
}

// ValidationError reports a payload that fails the Game schema. Validation
// failures are rejected before any persistence call is attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid game: %s %s", e.Field, e.Reason)
}

// Validate checks the Game against the entity schema. All fields are
// required; screenshots may be empty but no element may be blank.
func (g Game) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"title", g.Title},
		{"description", g.Description},
		{"genre", g.Genre},
		{"platform", g.Platform},
		{"thumbnail", g.Thumbnail},
		{"download_url", g.DownloadURL},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &ValidationError{Field: r.field, Reason: "is required"}
		}
	}
	if g.SizeGB <= 0 {
		return &ValidationError{Field: "size_gb", Reason: "must be greater than zero"}
	}
	for i, s := range g.Screenshots {
		if strings.TrimSpace(s) == "" {
			return &ValidationError{Field: "screenshots", Reason: fmt.Sprintf("element %d is empty", i)}
		}
	}
	return nil
}
