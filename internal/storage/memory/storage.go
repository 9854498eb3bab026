package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/gildedernacht/olymp/internal/model"
	"github.com/gildedernacht/olymp/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	logs map[string][]model.StoredEntry
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		logs: make(map[string][]model.StoredEntry),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) AppendEntry(ctx context.Context, entry *model.StoredEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.logs[entry.ResourceUID]
	entry.Sequence = int64(len(log)) + 1
	s.logs[entry.ResourceUID] = append(log, *entry)
	return nil
}

func (s *Storage) ListEntries(ctx context.Context, resourceUID string) ([]model.StoredEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.logs[resourceUID]), nil
}

func (s *Storage) GetEntry(ctx context.Context, resourceUID, entryUID string) (*model.StoredEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.logs[resourceUID] {
		if e.EntryUID == entryUID {
			return &e, nil
		}
	}
	return nil, model.ErrEntryNotFound
}

func (s *Storage) ListResources(ctx context.Context) ([]model.ResourceSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]model.ResourceSummary, 0, len(s.logs))
	for uid, log := range s.logs {
		last := log[len(log)-1]
		summaries = append(summaries, model.ResourceSummary{
			ResourceUID:  uid,
			Entries:      len(log),
			LastSequence: last.Sequence,
			UpdatedAt:    last.Timestamp,
		})
	}
	slices.SortFunc(summaries, func(a, b model.ResourceSummary) int {
		return cmp.Compare(a.ResourceUID, b.ResourceUID)
	})
	return summaries, nil
}
