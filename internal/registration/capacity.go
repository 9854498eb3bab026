package registration

import (
	"context"

	"github.com/gildedernacht/olymp/internal/catalog"
	"github.com/gildedernacht/olymp/internal/model"
)

// Calculator joins the catalog with canonical registrations
type Calculator struct {
	catalog catalog.Store
}

// NewCalculator creates a new capacity calculator
func NewCalculator(catalog catalog.Store) *Calculator {
	return &Calculator{catalog: catalog}
}

// Reports returns one report per catalog round, in catalog order
func (c *Calculator) Reports(ctx context.Context, canonical []model.CanonicalRegistration) ([]model.CapacityReport, error) {
	rounds, err := c.catalog.Rounds(ctx)
	if err != nil {
		return nil, err
	}

	counts := countActive(canonical)

	var reports []model.CapacityReport
	for round := range rounds {
		game, err := c.catalog.Game(ctx, round.GameID)
		if err != nil {
			return nil, err
		}
		reports = append(reports, newReport(&round, game, counts[round.ID]))
	}
	return reports, nil
}

// Report returns the report of a single round
func (c *Calculator) Report(ctx context.Context, roundID model.RoundID, canonical []model.CanonicalRegistration) (*model.CapacityReport, error) {
	round, err := c.catalog.Round(ctx, roundID)
	if err != nil {
		return nil, err
	}
	game, err := c.catalog.Game(ctx, round.GameID)
	if err != nil {
		return nil, err
	}

	report := newReport(round, game, countActive(canonical)[roundID])
	return &report, nil
}

func countActive(canonical []model.CanonicalRegistration) map[model.RoundID]int {
	counts := make(map[model.RoundID]int)
	for _, c := range canonical {
		if c.Active() {
			counts[c.Public.RoundID]++
		}
	}
	return counts
}

func newReport(round *model.Round, game *model.Game, current int) model.CapacityReport {
	return model.CapacityReport{
		RoundID:          round.ID,
		GameID:           game.ID,
		GameName:         game.Name,
		Day:              round.Day,
		From:             round.From,
		To:               round.To,
		PlayersMax:       game.PlayersMax,
		PlayersCurrent:   current,
		PlayersRemaining: max(0, game.PlayersMax-current),
	}
}
