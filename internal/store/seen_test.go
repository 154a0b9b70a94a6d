package store_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"dnb_digest/internal/store"

	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	cache, err := store.Load(filepath.Join(t.TempDir(), "none.json"))
	require.NoError(t, err)
	require.Zero(t, cache.Len())
}

func TestLoad_CorruptFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err := store.Load(path)
	require.Error(t, err)
}

func TestRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen.json")
	day := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	cache := store.New()
	cache.Mark("https://example.com/e/1", day)
	require.NoError(t, cache.Save(path))

	loaded, err := store.Load(path)
	require.NoError(t, err)
	require.Equal(t, 1, loaded.Len())

	seen, ok := loaded.FirstSeen("https://example.com/e/1")
	require.True(t, ok)
	require.True(t, seen.Equal(day))
}

func TestMark_FirstDateSticks(t *testing.T) {
	cache := store.New()
	first := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	later := first.AddDate(0, 0, 10)

	require.True(t, cache.Mark("u", first).Equal(first))
	require.True(t, cache.Mark("u", later).Equal(first))
	require.Equal(t, 1, cache.Len())
}
