package catalog

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/gildedernacht/olymp/internal/model"
)

type StaticSuite struct {
	suite.Suite
	ctx     context.Context
	catalog *Static
}

func TestStaticSuite(t *testing.T) {
	suite.Run(t, new(StaticSuite))
}

func (s *StaticSuite) SetupTest() {
	s.ctx = context.Background()
	s.catalog = Default()
}

func (s *StaticSuite) TestGameLookup() {
	g, err := s.catalog.Game(s.ctx, "Adrian-0")
	s.Require().NoError(err)
	s.Equal("Shadowrun", g.Name)
	s.Equal(5, g.PlayersMax)
}

func (s *StaticSuite) TestRoundLookup() {
	r, err := s.catalog.Round(s.ctx, "Manuela-2")
	s.Require().NoError(err)
	s.Equal(model.GameID("Manuela-0"), r.GameID)
	s.Equal("saturday", r.Day)
}

func (s *StaticSuite) TestNotFound() {
	_, err := s.catalog.Game(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrGameNotFound)
	s.ErrorIs(err, model.ErrNotFound)

	_, err = s.catalog.Round(s.ctx, "nobody-9")
	s.ErrorIs(err, model.ErrRoundNotFound)
	s.ErrorIs(err, model.ErrNotFound)
}

func (s *StaticSuite) TestRoundsIsOrderedAndRestartable() {
	seq, err := s.catalog.Rounds(s.ctx)
	s.Require().NoError(err)

	first := slices.Collect(seq)
	second := slices.Collect(seq)

	s.Len(first, 9)
	s.Equal(first, second)
	s.Equal(model.RoundID("Adrian-0"), first[0].ID)
	s.Equal(model.RoundID("EnglishMan-2"), first[8].ID)
}

func (s *StaticSuite) TestRoundsEarlyBreak() {
	seq, err := s.catalog.Rounds(s.ctx)
	s.Require().NoError(err)

	n := 0
	for range seq {
		n++
		if n == 2 {
			break
		}
	}
	s.Equal(2, n)
}

func (s *StaticSuite) TestReturnedValuesAreCopies() {
	g, err := s.catalog.Game(s.ctx, "Adrian-0")
	s.Require().NoError(err)
	g.PlayersMax = 100

	again, err := s.catalog.Game(s.ctx, "Adrian-0")
	s.Require().NoError(err)
	s.Equal(5, again.PlayersMax)
}

func (s *StaticSuite) TestRejectsOrphanRound() {
	_, err := NewStatic(Table{
		Games:  []model.Game{{ID: "g", PlayersMax: 2}},
		Rounds: []model.Round{{ID: "r", GameID: "missing", From: 1, To: 2}},
	})
	s.ErrorIs(err, model.ErrInvalidCatalog)
}

func (s *StaticSuite) TestRejectsDuplicates() {
	_, err := NewStatic(Table{
		Games: []model.Game{{ID: "g", PlayersMax: 2}, {ID: "g", PlayersMax: 3}},
	})
	s.ErrorIs(err, model.ErrInvalidCatalog)

	_, err = NewStatic(Table{
		Games: []model.Game{{ID: "g", PlayersMax: 2}},
		Rounds: []model.Round{
			{ID: "r", GameID: "g", From: 1, To: 2},
			{ID: "r", GameID: "g", From: 3, To: 4},
		},
	})
	s.ErrorIs(err, model.ErrInvalidCatalog)
}

func (s *StaticSuite) TestRejectsInvertedTimes() {
	_, err := NewStatic(Table{
		Games:  []model.Game{{ID: "g", PlayersMax: 2}},
		Rounds: []model.Round{{ID: "r", GameID: "g", From: 5, To: 5}},
	})
	s.ErrorIs(err, model.ErrInvalidCatalog)
}

const sampleYAML = `
games:
  - id: Kim-0
    name: Cthulhu
    gm: Kim
    lang: EN
    playersMax: 3
rounds:
  - id: Kim-0
    gameId: Kim-0
    day: sunday
    from: 10
    to: 12
  - id: Kim-1
    gameId: Kim-0
    day: sunday
    from: 14
    to: 16
`

func (s *StaticSuite) TestParseYAML() {
	c, err := Parse([]byte(sampleYAML))
	s.Require().NoError(err)
	s.Equal(2, c.Len())

	g, err := c.Game(s.ctx, "Kim-0")
	s.Require().NoError(err)
	s.Equal(3, g.PlayersMax)
}

func (s *StaticSuite) TestParseJSON() {
	c, err := Parse([]byte(`{"games":[{"id":"g","playersMax":1}],"rounds":[{"id":"r","gameId":"g","day":"friday","from":1,"to":2}]}`))
	s.Require().NoError(err)

	r, err := c.Round(s.ctx, "r")
	s.Require().NoError(err)
	s.Equal(2, r.To)
}

func (s *StaticSuite) TestLoadFile() {
	path := filepath.Join(s.T().TempDir(), "catalog.yaml")
	s.Require().NoError(os.WriteFile(path, []byte(sampleYAML), 0o600))

	c, err := LoadFile(path)
	s.Require().NoError(err)
	s.Equal(2, c.Len())
}

func (s *StaticSuite) TestLoadFileMissing() {
	_, err := LoadFile(filepath.Join(s.T().TempDir(), "missing.yaml"))
	s.Error(err)
}
