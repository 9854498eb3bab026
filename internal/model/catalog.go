package model

import "fmt"

// GameID identifies a game in the catalog
type GameID string

// RoundID identifies a round in the catalog
type RoundID string

// Game is a themed activity offering with a fixed seat limit per round
type Game struct {
	ID                  GameID `json:"id" yaml:"id"`
	Name                string `json:"name" yaml:"name"`
	GM                  string `json:"gm" yaml:"gm"` // owning party
	GameDescription     string `json:"gameDescription" yaml:"gameDescription"`
	CampaignDescription string `json:"campaignDescription" yaml:"campaignDescription"`
	Lang                string `json:"lang" yaml:"lang"`
	PlayersMax          int    `json:"playersMax" yaml:"playersMax"`
}

// Round is a scheduled time slot of a game
type Round struct {
	ID     RoundID `json:"id" yaml:"id"`
	GameID GameID  `json:"gameId" yaml:"gameId"`
	Day    string  `json:"day" yaml:"day"`
	From   int     `json:"from" yaml:"from"` // hour marker, inclusive
	To     int     `json:"to" yaml:"to"`
}

// Validate checks the invariants of a single game
func (g *Game) Validate() error {
	if g.ID == "" {
		return fmt.Errorf("%w: game without id", ErrInvalidCatalog)
	}
	if g.PlayersMax <= 0 {
		return fmt.Errorf("%w: game %s: playersMax must be positive, got %d", ErrInvalidCatalog, g.ID, g.PlayersMax)
	}
	return nil
}

// Validate checks the invariants of a single round
func (r *Round) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("%w: round without id", ErrInvalidCatalog)
	}
	if r.GameID == "" {
		return fmt.Errorf("%w: round %s: missing gameId", ErrInvalidCatalog, r.ID)
	}
	if r.From >= r.To {
		return fmt.Errorf("%w: round %s: from (%d) must be before to (%d)", ErrInvalidCatalog, r.ID, r.From, r.To)
	}
	return nil
}
