package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/David-fi/NL2SQL/models"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func TestLoadSortSpecDefault(t *testing.T) {
	database := newTestDB(t)

	spec, err := database.LoadSortSpec()

	require.NoError(t, err)
	assert.Equal(t, models.SortSpec{}, spec)
}

func TestSortSpecRoundTrip(t *testing.T) {
	database := newTestDB(t)
	want := models.SortSpec{Column: "total", Direction: "desc"}

	require.NoError(t, database.SaveSortSpec(want))

	got, err := database.LoadSortSpec()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSaveSortSpecOverwrites(t *testing.T) {
	database := newTestDB(t)

	require.NoError(t, database.SaveSortSpec(models.SortSpec{Column: "total", Direction: "asc"}))
	require.NoError(t, database.SaveSortSpec(models.SortSpec{}))

	got, err := database.LoadSortSpec()
	require.NoError(t, err)
	assert.Equal(t, models.SortSpec{}, got)
}

func TestQueryHistoryNewestFirst(t *testing.T) {
	database := newTestDB(t)

	require.NoError(t, database.StoreQueryHistory("alice", "first question", "SELECT 1"))
	require.NoError(t, database.StoreQueryHistory("alice", "second question", "SELECT 2"))
	require.NoError(t, database.StoreQueryHistory("alice", "third question", "SELECT 3"))

	entries, err := database.ListQueryHistory("alice", 0)

	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "third question", entries[0].Question)
	assert.Equal(t, "SELECT 3", entries[0].SQL)
	assert.Equal(t, "first question", entries[2].Question)
}

func TestQueryHistoryLimit(t *testing.T) {
	database := newTestDB(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, database.StoreQueryHistory("alice", "question", "SELECT 1"))
	}

	entries, err := database.ListQueryHistory("alice", 2)

	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestQueryHistoryPerUser(t *testing.T) {
	database := newTestDB(t)

	require.NoError(t, database.StoreQueryHistory("alice", "alice question", "SELECT 1"))
	require.NoError(t, database.StoreQueryHistory("bob", "bob question", "SELECT 2"))

	entries, err := database.ListQueryHistory("alice", 0)

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "alice question", entries[0].Question)
}

func TestQueryHistoryEmpty(t *testing.T) {
	database := newTestDB(t)

	entries, err := database.ListQueryHistory("nobody", 0)

	require.NoError(t, err)
	assert.Empty(t, entries)
}
