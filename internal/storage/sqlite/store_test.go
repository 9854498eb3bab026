package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/gildedernacht/olymp/internal/storage"
	"github.com/gildedernacht/olymp/internal/storage/storagetest"
)

func openTempStore(t *testing.T) *Storage {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "olymp.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, &storagetest.Suite{
		New: func(t *testing.T) storage.Storage { return openTempStore(t) },
	})
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("  ")
	assert.Error(t, err)
}

func TestReopenKeepsLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "olymp.db")

	first, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, first.AppendEntry(t.Context(), storagetest.Entry(storagetest.ResourceA, 1)))
	require.NoError(t, first.Close())

	second, err := Open(path)
	require.NoError(t, err)
	defer second.Close()

	e := storagetest.Entry(storagetest.ResourceA, 2)
	require.NoError(t, second.AppendEntry(t.Context(), e))
	assert.Equal(t, int64(2), e.Sequence)

	entries, err := second.ListEntries(t.Context(), storagetest.ResourceA)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestDuplicateEntryUIDRejected(t *testing.T) {
	s := openTempStore(t)
	e := storagetest.Entry(storagetest.ResourceA, 1)
	require.NoError(t, s.AppendEntry(t.Context(), e))

	dup := storagetest.Entry(storagetest.ResourceA, 1)
	assert.Error(t, s.AppendEntry(t.Context(), dup))
}
