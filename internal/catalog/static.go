package catalog

import (
	"context"
	"fmt"
	"iter"

	"github.com/gildedernacht/olymp/internal/model"
)

// Table is the serialized form of a catalog
type Table struct {
	Games  []model.Game  `json:"games" yaml:"games"`
	Rounds []model.Round `json:"rounds" yaml:"rounds"`
}

// Static is an immutable in-memory catalog
type Static struct {
	games  map[model.GameID]model.Game
	rounds map[model.RoundID]model.Round
	order  []model.RoundID
}

// Ensure Static implements the interface
var _ Store = (*Static)(nil)

// NewStatic validates a table and builds a catalog from it.
// Every round must reference a game of the same table.
func NewStatic(t Table) (*Static, error) {
	s := &Static{
		games:  make(map[model.GameID]model.Game, len(t.Games)),
		rounds: make(map[model.RoundID]model.Round, len(t.Rounds)),
		order:  make([]model.RoundID, 0, len(t.Rounds)),
	}

	for _, g := range t.Games {
		if err := g.Validate(); err != nil {
			return nil, err
		}
		if _, dup := s.games[g.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate game %s", model.ErrInvalidCatalog, g.ID)
		}
		s.games[g.ID] = g
	}

	for _, r := range t.Rounds {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		if _, ok := s.games[r.GameID]; !ok {
			return nil, fmt.Errorf("%w: round %s references unknown game %s", model.ErrInvalidCatalog, r.ID, r.GameID)
		}
		if _, dup := s.rounds[r.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate round %s", model.ErrInvalidCatalog, r.ID)
		}
		s.rounds[r.ID] = r
		s.order = append(s.order, r.ID)
	}

	return s, nil
}

// MustStatic is NewStatic for tables known to be valid
func MustStatic(t Table) *Static {
	s, err := NewStatic(t)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Static) Game(ctx context.Context, id model.GameID) (*model.Game, error) {
	g, ok := s.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrGameNotFound, id)
	}
	return &g, nil
}

func (s *Static) Round(ctx context.Context, id model.RoundID) (*model.Round, error) {
	r, ok := s.rounds[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrRoundNotFound, id)
	}
	return &r, nil
}

func (s *Static) Rounds(ctx context.Context) (iter.Seq[model.Round], error) {
	return func(yield func(model.Round) bool) {
		for _, id := range s.order {
			if !yield(s.rounds[id]) {
				return
			}
		}
	}, nil
}

// Len returns the number of rounds
func (s *Static) Len() int {
	return len(s.order)
}
