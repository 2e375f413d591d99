package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcon/internal/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return store
}

func TestStore_RecordAndList(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.RecordToken(&models.Authorization{
		ID:          "a1",
		OrgID:       "org1",
		Token:       "super-secret",
		Description: "telegraf",
		Permissions: make([]models.Permission, 3),
	}))
	require.NoError(t, store.RecordDashboard(&models.Dashboard{ID: "d1", OrgID: "org1", Name: "System"}, "System"))

	entries, err := store.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, KindDashboard, entries[0].Kind, "newest first")
	assert.Equal(t, "System", entries[0].Detail)

	assert.Equal(t, KindToken, entries[1].Kind)
	assert.Equal(t, "telegraf", entries[1].Name)
	assert.Equal(t, 3, entries[1].Permissions)

	tokens, err := store.List(KindToken)
	require.NoError(t, err)
	assert.Len(t, tokens, 1)
}

func TestStore_RejectsEntryWithoutID(t *testing.T) {
	store := openTestStore(t)
	assert.Error(t, store.RecordToken(&models.Authorization{Description: "x"}))
}

func TestStore_UnknownKind(t *testing.T) {
	store := openTestStore(t)
	_, err := store.List(Kind("users"))
	assert.Error(t, err)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := Open(path, nil)
	require.NoError(t, err)
	require.NoError(t, store.RecordToken(&models.Authorization{ID: "a1", OrgID: "org1"}))
	require.NoError(t, store.Close())

	reopened, err := Open(path, nil)
	require.NoError(t, err)
	defer reopened.Close()

	entries, err := reopened.List(KindToken)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a1", entries[0].ID)
}
