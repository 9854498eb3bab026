package entries

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gildedernacht/olymp/internal/dependencies/clock"
	"github.com/gildedernacht/olymp/internal/dependencies/random"
	"github.com/gildedernacht/olymp/internal/model"
	"github.com/gildedernacht/olymp/internal/storage"
)

var emptyObject = json.RawMessage(`{}`)

// Service owns the append-only entry logs
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	guard   *Guard
	logger  *slog.Logger

	// serializes check-then-append on guarded resources
	guardMu sync.Mutex
}

// New creates a new entries service. guard may be nil.
func New(storage storage.Storage, clock clock.Clock, random random.Random, guard *Guard, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		random:  random,
		guard:   guard,
		logger:  logger,
	}
}

// Append stores a new entry and returns it with its assigned uid, sequence and timestamp
func (s *Service) Append(ctx context.Context, resourceUID string, public, private json.RawMessage, meta model.EntryMeta) (*model.StoredEntry, error) {
	if err := checkUID("resource", resourceUID); err != nil {
		return nil, err
	}
	if err := checkObject("publicBody", public, false); err != nil {
		return nil, err
	}
	if err := checkObject("privateBody", private, true); err != nil {
		return nil, err
	}
	if len(private) == 0 {
		private = emptyObject
	}

	entry := &model.StoredEntry{
		Entry: model.Entry{
			ResourceUID: resourceUID,
			EntryUID:    s.random.UID(),
			Timestamp:   s.clock.Now(),
			PublicBody:  public,
			PrivateBody: private,
		},
		Meta: meta,
	}

	if s.guard != nil && s.guard.Applies(resourceUID) {
		s.guardMu.Lock()
		defer s.guardMu.Unlock()

		log, err := s.storage.ListEntries(ctx, resourceUID)
		if err != nil {
			return nil, err
		}
		if err := s.guard.Check(ctx, public, log); err != nil {
			return nil, err
		}
	}

	if err := s.storage.AppendEntry(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Info("entry appended",
		slog.String("resource_uid", resourceUID),
		slog.String("entry_uid", entry.EntryUID),
		slog.Int64("sequence", entry.Sequence),
	)
	return entry, nil
}

// List returns the log of a resource in sequence order
func (s *Service) List(ctx context.Context, resourceUID string) ([]model.StoredEntry, error) {
	if err := checkUID("resource", resourceUID); err != nil {
		return nil, err
	}
	return s.storage.ListEntries(ctx, resourceUID)
}

// Get returns a single entry
func (s *Service) Get(ctx context.Context, resourceUID, entryUID string) (*model.StoredEntry, error) {
	if err := checkUID("resource", resourceUID); err != nil {
		return nil, err
	}
	if err := checkUID("entry", entryUID); err != nil {
		return nil, err
	}
	return s.storage.GetEntry(ctx, resourceUID, entryUID)
}

// Resources summarizes every known resource
func (s *Service) Resources(ctx context.Context) ([]model.ResourceSummary, error) {
	return s.storage.ListResources(ctx)
}

func checkUID(kind, uid string) error {
	if !model.ValidUID(uid) {
		return fmt.Errorf("%w: %s uid must be %d lowercase hex characters", model.ErrInvalidParameter, kind, model.UIDLength)
	}
	return nil
}

// checkObject requires raw to be a JSON object
func checkObject(name string, raw json.RawMessage, optional bool) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		if optional {
			return nil
		}
		return fmt.Errorf("%w: %s is required", model.ErrInvalidParameter, name)
	}
	if trimmed[0] != '{' || !json.Valid(trimmed) {
		return fmt.Errorf("%w: %s must be a JSON object", model.ErrInvalidParameter, name)
	}
	return nil
}
