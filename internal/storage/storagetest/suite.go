// Package storagetest holds the behaviour every storage backend must share.
package storagetest

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/gildedernacht/olymp/internal/identity"
	"github.com/gildedernacht/olymp/internal/model"
	"github.com/gildedernacht/olymp/internal/storage"
)

const (
	ResourceA = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	ResourceB = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

// Suite runs the shared storage tests against a backend.
// New is called once per test and must return an empty storage.
type Suite struct {
	suite.Suite
	New func(t *testing.T) storage.Storage

	storage storage.Storage
	ctx     context.Context
}

func (s *Suite) SetupTest() {
	s.storage = s.New(s.T())
	s.ctx = context.Background()
}

// Entry builds an entry ready to be appended
func Entry(resourceUID string, n int) *model.StoredEntry {
	return &model.StoredEntry{
		Entry: model.Entry{
			ResourceUID: resourceUID,
			EntryUID:    identity.Hash(fmt.Sprintf("%s-%d", resourceUID, n)),
			Timestamp:   time.Date(2026, 5, 1, 12, n, 0, 0, time.UTC),
			PublicBody:  json.RawMessage(fmt.Sprintf(`{"n":%d}`, n)),
			PrivateBody: json.RawMessage(`{"secret":true}`),
		},
		Meta: model.EntryMeta{URL: "https://olymp.test/form", UserAgent: "test"},
	}
}

func (s *Suite) append(e *model.StoredEntry) {
	s.Require().NoError(s.storage.AppendEntry(s.ctx, e))
}

func (s *Suite) TestAppendAssignsSequence() {
	first := Entry(ResourceA, 1)
	second := Entry(ResourceA, 2)
	s.append(first)
	s.append(second)

	s.Equal(int64(1), first.Sequence)
	s.Equal(int64(2), second.Sequence)
}

func (s *Suite) TestSequencesArePerResource() {
	s.append(Entry(ResourceA, 1))
	s.append(Entry(ResourceA, 2))

	other := Entry(ResourceB, 1)
	s.append(other)
	s.Equal(int64(1), other.Sequence)
}

func (s *Suite) TestListEntriesInOrder() {
	for n := range 5 {
		s.append(Entry(ResourceA, n))
	}

	entries, err := s.storage.ListEntries(s.ctx, ResourceA)
	s.Require().NoError(err)
	s.Require().Len(entries, 5)
	for i, e := range entries {
		s.Equal(int64(i+1), e.Sequence)
		s.JSONEq(fmt.Sprintf(`{"n":%d}`, i), string(e.PublicBody))
		s.JSONEq(`{"secret":true}`, string(e.PrivateBody))
		s.Equal("test", e.Meta.UserAgent)
		s.True(e.Timestamp.Equal(time.Date(2026, 5, 1, 12, i, 0, 0, time.UTC)))
	}
}

func (s *Suite) TestListEntriesUnknownResource() {
	entries, err := s.storage.ListEntries(s.ctx, ResourceB)
	s.Require().NoError(err)
	s.Empty(entries)
}

func (s *Suite) TestGetEntry() {
	e := Entry(ResourceA, 1)
	s.append(e)

	got, err := s.storage.GetEntry(s.ctx, ResourceA, e.EntryUID)
	s.Require().NoError(err)
	s.Equal(e.EntryUID, got.EntryUID)
	s.Equal(int64(1), got.Sequence)
	s.Equal("https://olymp.test/form", got.Meta.URL)
}

func (s *Suite) TestGetEntryNotFound() {
	e := Entry(ResourceA, 1)
	s.append(e)

	_, err := s.storage.GetEntry(s.ctx, ResourceB, e.EntryUID)
	s.ErrorIs(err, model.ErrEntryNotFound)

	_, err = s.storage.GetEntry(s.ctx, ResourceA, identity.Hash("missing"))
	s.ErrorIs(err, model.ErrEntryNotFound)
}

func (s *Suite) TestListResources() {
	empty, err := s.storage.ListResources(s.ctx)
	s.Require().NoError(err)
	s.Empty(empty)

	s.append(Entry(ResourceB, 1))
	s.append(Entry(ResourceA, 1))
	s.append(Entry(ResourceA, 2))

	summaries, err := s.storage.ListResources(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(summaries, 2)

	s.Equal(ResourceA, summaries[0].ResourceUID)
	s.Equal(2, summaries[0].Entries)
	s.Equal(int64(2), summaries[0].LastSequence)
	s.Equal(ResourceB, summaries[1].ResourceUID)
	s.Equal(1, summaries[1].Entries)
}

func (s *Suite) TestConcurrentAppendsGetDistinctSequences() {
	const writers = 20

	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for n := range writers {
		wg.Go(func() {
			errs <- s.storage.AppendEntry(s.ctx, Entry(ResourceA, n))
		})
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		s.Require().NoError(err)
	}

	entries, err := s.storage.ListEntries(s.ctx, ResourceA)
	s.Require().NoError(err)
	s.Require().Len(entries, writers)
	for i, e := range entries {
		s.Equal(int64(i+1), e.Sequence)
	}
}
