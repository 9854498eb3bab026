package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/redis/go-redis/v9"

	"github.com/gildedernacht/olymp/internal/model"
	"github.com/gildedernacht/olymp/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Each resource uses an INCR counter for sequences, a HASH of entries and
// a ZSET ordering entry uids by sequence.
type Storage struct {
	client *redis.Client
	keys   keys
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = DefaultConfig().ConnectTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = DefaultConfig().KeyPrefix
	}
	return &Storage{
		client: client,
		keys:   keys{prefix: prefix},
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) AppendEntry(ctx context.Context, entry *model.StoredEntry) error {
	uid := entry.ResourceUID

	seq, err := s.client.Incr(ctx, s.keys.sequence(uid)).Result()
	if err != nil {
		return err
	}
	entry.Sequence = seq

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	// Readers only see the entry once both writes land
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, s.keys.entries(uid), entry.EntryUID, data)
		pipe.ZAdd(ctx, s.keys.order(uid), redis.Z{Score: float64(seq), Member: entry.EntryUID})
		pipe.SAdd(ctx, s.keys.resources(), uid)
		return nil
	})
	return err
}

func (s *Storage) ListEntries(ctx context.Context, resourceUID string) ([]model.StoredEntry, error) {
	entryUIDs, err := s.client.ZRange(ctx, s.keys.order(resourceUID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	if len(entryUIDs) == 0 {
		return []model.StoredEntry{}, nil
	}

	values, err := s.client.HMGet(ctx, s.keys.entries(resourceUID), entryUIDs...).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]model.StoredEntry, 0, len(values))
	for i, val := range values {
		if val == nil {
			return nil, fmt.Errorf("resource %s: entry %s missing from hash", resourceUID, entryUIDs[i])
		}
		var e model.StoredEntry
		if err := json.Unmarshal([]byte(val.(string)), &e); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (s *Storage) GetEntry(ctx context.Context, resourceUID, entryUID string) (*model.StoredEntry, error) {
	data, err := s.client.HGet(ctx, s.keys.entries(resourceUID), entryUID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrEntryNotFound
		}
		return nil, err
	}

	var e model.StoredEntry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *Storage) ListResources(ctx context.Context) ([]model.ResourceSummary, error) {
	uids, err := s.client.SMembers(ctx, s.keys.resources()).Result()
	if err != nil {
		return nil, err
	}
	slices.Sort(uids)

	summaries := make([]model.ResourceSummary, 0, len(uids))
	for _, uid := range uids {
		last, err := s.client.ZRangeWithScores(ctx, s.keys.order(uid), -1, -1).Result()
		if err != nil {
			return nil, err
		}
		if len(last) == 0 {
			continue
		}

		count, err := s.client.ZCard(ctx, s.keys.order(uid)).Result()
		if err != nil {
			return nil, err
		}

		entry, err := s.GetEntry(ctx, uid, last[0].Member.(string))
		if err != nil {
			return nil, err
		}

		summaries = append(summaries, model.ResourceSummary{
			ResourceUID:  uid,
			Entries:      int(count),
			LastSequence: entry.Sequence,
			UpdatedAt:    entry.Timestamp,
		})
	}
	return summaries, nil
}
