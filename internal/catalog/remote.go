package catalog

import (
	"context"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/gildedernacht/olymp/internal/model"
)

const (
	DefaultRemoteTTL       = 5 * time.Minute
	DefaultCleanupInterval = 10 * time.Minute

	tableCacheKey = "catalog"
)

// Fetcher retrieves a document over the network; transport.Client satisfies it
type Fetcher interface {
	Get(ctx context.Context, path string) (string, int, error)
}

// Remote is a catalog fetched from a URL path and kept for a TTL
type Remote struct {
	fetcher Fetcher
	path    string
	ttl     time.Duration
	cache   *gocache.Cache
	logger  *slog.Logger
}

// Ensure Remote implements the interface
var _ Store = (*Remote)(nil)

// NewRemote creates a catalog backed by the document at path
func NewRemote(fetcher Fetcher, path string, ttl time.Duration, logger *slog.Logger) *Remote {
	if ttl <= 0 {
		ttl = DefaultRemoteTTL
	}
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Remote{
		fetcher: fetcher,
		path:    path,
		ttl:     ttl,
		cache:   gocache.New(ttl, DefaultCleanupInterval),
		logger:  logger,
	}
}

func (r *Remote) Game(ctx context.Context, id model.GameID) (*model.Game, error) {
	t, err := r.table(ctx)
	if err != nil {
		return nil, err
	}
	return t.Game(ctx, id)
}

func (r *Remote) Round(ctx context.Context, id model.RoundID) (*model.Round, error) {
	t, err := r.table(ctx)
	if err != nil {
		return nil, err
	}
	return t.Round(ctx, id)
}

func (r *Remote) Rounds(ctx context.Context) (iter.Seq[model.Round], error) {
	t, err := r.table(ctx)
	if err != nil {
		return nil, err
	}
	return t.Rounds(ctx)
}

// Invalidate drops the cached document so the next lookup refetches it
func (r *Remote) Invalidate() {
	r.cache.Delete(tableCacheKey)
}

func (r *Remote) table(ctx context.Context) (*Static, error) {
	if v, found := r.cache.Get(tableCacheKey); found {
		if t, ok := v.(*Static); ok {
			return t, nil
		}
		r.logger.Error("wrong type in catalog cache", slog.String("path", r.path))
	}

	body, status, err := r.fetcher.Get(ctx, r.path)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: fetch catalog %s: status %d", model.ErrInvalidResponse, r.path, status)
	}

	t, err := Parse([]byte(body))
	if err != nil {
		return nil, err
	}

	r.logger.Debug("catalog fetched",
		slog.String("path", r.path),
		slog.Int("rounds", t.Len()),
	)
	r.cache.Set(tableCacheKey, t, r.ttl)
	return t, nil
}
