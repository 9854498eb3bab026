package catalog

import "github.com/gildedernacht/olymp/internal/model"

// DefaultTable returns the compiled-in catalog of the event
func DefaultTable() Table {
	return Table{
		Games: []model.Game{
			{
				ID:                  "Adrian-0",
				Name:                "Shadowrun",
				GM:                  "Adrian",
				GameDescription:     "Dystopian cyberpunk with magic.",
				CampaignDescription: "A run through the sprawl.",
				Lang:                "DE",
				PlayersMax:          5,
			},
			{
				ID:                  "Manuela-0",
				Name:                "Finsterwald",
				GM:                  "Manuela",
				GameDescription:     "Steampunk adventure.",
				CampaignDescription: "Lost in the dark forest.",
				Lang:                "DE",
				PlayersMax:          4,
			},
			{
				ID:                  "EnglishMan-0",
				Name:                "D&D",
				GM:                  "EnglishMan",
				GameDescription:     "Classic dungeon crawling.",
				CampaignDescription: "Hack and slash.",
				Lang:                "EN",
				PlayersMax:          2,
			},
		},
		Rounds: []model.Round{
			{ID: "Adrian-0", GameID: "Adrian-0", Day: "friday", From: 13, To: 15},
			{ID: "Adrian-1", GameID: "Adrian-0", Day: "friday", From: 15, To: 17},
			{ID: "Adrian-2", GameID: "Adrian-0", Day: "saturday", From: 13, To: 15},

			{ID: "Manuela-0", GameID: "Manuela-0", Day: "friday", From: 13, To: 15},
			{ID: "Manuela-1", GameID: "Manuela-0", Day: "friday", From: 15, To: 17},
			{ID: "Manuela-2", GameID: "Manuela-0", Day: "saturday", From: 13, To: 15},

			{ID: "EnglishMan-0", GameID: "EnglishMan-0", Day: "friday", From: 13, To: 15},
			{ID: "EnglishMan-1", GameID: "EnglishMan-0", Day: "friday", From: 15, To: 17},
			{ID: "EnglishMan-2", GameID: "EnglishMan-0", Day: "saturday", From: 13, To: 15},
		},
	}
}

// Default returns the compiled-in catalog
func Default() *Static {
	return MustStatic(DefaultTable())
}
