package registration

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/gildedernacht/olymp/internal/catalog"
	"github.com/gildedernacht/olymp/internal/identity"
	"github.com/gildedernacht/olymp/internal/model"
	"github.com/gildedernacht/olymp/internal/testutil"
)

const resourceUID = "b3e35dfa2cd27cd385f08c246b6d49cf2e991c894d96828ba355063e77723fc0"

type ServiceSuite struct {
	suite.Suite
	ctx     context.Context
	client  *fakeClient
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.client = &fakeClient{}
	s.service = NewService(s.client, catalog.Default(), resourceUID, testutil.NopLogger())
}

func (s *ServiceSuite) fill(round model.RoundID, n int) {
	for i := range n {
		s.client.entries = append(s.client.entries,
			entryFor(int64(len(s.client.entries)+1), round, fmt.Sprintf("p%d@unknown.tld", i), model.StatusRegistered))
	}
}

func (s *ServiceSuite) TestSubmitAppendsEntry() {
	receipt, err := s.service.Submit(s.ctx, Submission{
		RoundID: "Adrian-0",
		Name:    "a",
		Email:   "a@unknown.tld",
		Comment: "vegetarian",
	})
	s.Require().NoError(err)

	s.Equal(identity.Hash("a@unknown.tld"), receipt.UserID)
	s.False(receipt.Repeat)
	s.Equal(1, s.client.adds)
	s.Equal(resourceUID, s.client.lastUID)
	s.Equal(model.RoundID("Adrian-0"), s.client.lastBody.RoundID)
	s.Equal(model.StatusRegistered, s.client.lastBody.Status)

	reports, err := s.service.Reports(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, reports[0].PlayersCurrent)
	s.Equal(4, reports[0].PlayersRemaining)
}

func (s *ServiceSuite) TestSubmitRejectsFullRoundWithoutWriting() {
	s.fill("EnglishMan-0", 2)

	_, err := s.service.Submit(s.ctx, Submission{RoundID: "EnglishMan-0", Name: "c", Email: "c@unknown.tld"})
	s.ErrorIs(err, model.ErrCapacityExceeded)
	s.Equal(0, s.client.adds)
}

func (s *ServiceSuite) TestRepeatSubmitterBypassesFullRound() {
	s.fill("EnglishMan-0", 2)

	receipt, err := s.service.Submit(s.ctx, Submission{RoundID: "EnglishMan-0", Name: "p0", Email: "p0@unknown.tld"})
	s.Require().NoError(err)
	s.True(receipt.Repeat)
	s.Equal(1, s.client.adds)

	snap, err := s.service.Snapshot(s.ctx)
	s.Require().NoError(err)
	s.Len(snap.Canonical, 2)
}

func (s *ServiceSuite) TestSubmitValidatesInput() {
	cases := map[string]Submission{
		"no round": {Name: "a", Email: "a@unknown.tld"},
		"no name":  {RoundID: "Adrian-0", Email: "a@unknown.tld"},
		"no email": {RoundID: "Adrian-0", Name: "a", Email: "  "},
	}
	for name, sub := range cases {
		s.Run(name, func() {
			_, err := s.service.Submit(s.ctx, sub)
			s.ErrorIs(err, model.ErrInvalidParameter)
		})
	}
	s.Equal(0, s.client.lists)
	s.Equal(0, s.client.adds)
}

func (s *ServiceSuite) TestSubmitUnknownRound() {
	_, err := s.service.Submit(s.ctx, Submission{RoundID: "Nobody-0", Name: "a", Email: "a@unknown.tld"})
	s.ErrorIs(err, model.ErrRoundNotFound)
	s.Equal(0, s.client.adds)
}

func (s *ServiceSuite) TestSubmitPropagatesListFailure() {
	s.client.listErr = errors.New("connection refused")

	_, err := s.service.Submit(s.ctx, Submission{RoundID: "Adrian-0", Name: "a", Email: "a@unknown.tld"})
	s.ErrorIs(err, s.client.listErr)
	s.Equal(0, s.client.adds)
}

func (s *ServiceSuite) TestSubmitAgainstStaleSnapshot() {
	snap, err := s.service.Snapshot(s.ctx)
	s.Require().NoError(err)

	// The log fills up after the snapshot was taken
	s.fill("EnglishMan-0", 2)

	_, err = s.service.SubmitAgainst(s.ctx, snap, Submission{RoundID: "EnglishMan-0", Name: "c", Email: "c@unknown.tld"})
	s.Require().NoError(err)
	s.Equal(1, s.client.adds)
}

func (s *ServiceSuite) TestWithdrawReleasesSeat() {
	s.fill("EnglishMan-0", 2)

	s.Require().NoError(s.service.Withdraw(s.ctx, "EnglishMan-0", "p1@unknown.tld"))
	s.Equal(model.StatusWithdrawn, s.client.lastBody.Status)

	receipt, err := s.service.Submit(s.ctx, Submission{RoundID: "EnglishMan-0", Name: "c", Email: "c@unknown.tld"})
	s.Require().NoError(err)
	s.False(receipt.Repeat)
}

func (s *ServiceSuite) TestWithdrawValidates() {
	s.ErrorIs(s.service.Withdraw(s.ctx, "EnglishMan-0", ""), model.ErrInvalidParameter)
	s.ErrorIs(s.service.Withdraw(s.ctx, "Nobody-0", "a@unknown.tld"), model.ErrRoundNotFound)
	s.Equal(0, s.client.adds)
}

func (s *ServiceSuite) TestSnapshotCountsSkippedEntries() {
	s.fill("Adrian-0", 1)
	s.client.entries = append(s.client.entries, model.Entry{EntryUID: "junk", Sequence: 2, PublicBody: []byte(`{}`)})

	snap, err := s.service.Snapshot(s.ctx)
	s.Require().NoError(err)
	s.Len(snap.Canonical, 1)
	s.Equal(1, snap.Skipped)
}
