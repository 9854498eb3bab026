// Package catalog provides read-only lookup of games and rounds.
package catalog

import (
	"context"
	"iter"

	"github.com/gildedernacht/olymp/internal/model"
)

// Store looks up catalog definitions. Implementations must be safe for
// concurrent use and must yield rounds in a stable order.
type Store interface {
	Game(ctx context.Context, id model.GameID) (*model.Game, error)
	Round(ctx context.Context, id model.RoundID) (*model.Round, error)
	// Rounds returns a finite sequence that can be ranged over repeatedly
	Rounds(ctx context.Context) (iter.Seq[model.Round], error)
}
