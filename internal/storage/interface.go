package storage

import (
	"context"

	"github.com/gildedernacht/olymp/internal/model"
)

// Storage defines the interface for the append-only entry log
type Storage interface {
	// AppendEntry stores an entry at the end of its resource's log.
	// It assigns entry.Sequence, one more than the resource's last sequence.
	AppendEntry(ctx context.Context, entry *model.StoredEntry) error

	// ListEntries returns a resource's entries in ascending sequence order.
	// An unknown resource has an empty log.
	ListEntries(ctx context.Context, resourceUID string) ([]model.StoredEntry, error)

	// GetEntry returns one entry or model.ErrEntryNotFound
	GetEntry(ctx context.Context, resourceUID, entryUID string) (*model.StoredEntry, error)

	// ListResources summarizes every resource with at least one entry, ordered by uid
	ListResources(ctx context.Context) ([]model.ResourceSummary, error)
}
