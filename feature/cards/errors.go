package cards

import (
	"errors"
	"fmt"

	"card-catalog/feature/cards/models"
)

var (
	// ErrUnsupportedGame is returned before any cache or network activity.
	ErrUnsupportedGame = errors.New("unsupported game")
	// ErrInvalidRequest rejects malformed queries, ids or pagination.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrNotFound means the catalog has no card with the requested id.
	ErrNotFound = errors.New("card not found")
	// ErrNoDataAvailable means the upstream failed and nothing, not even stale data, was cached.
	// It wraps the upstream error.
	ErrNoDataAvailable = errors.New("no card data available")
)

// ParseGame resolves a game name, reporting ErrUnsupportedGame for unknown names.
func ParseGame(name string) (models.Game, error) {
	g, ok := models.ParseGame(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedGame, name)
	}
	return g, nil
}
