package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joefazee/atlas/app/storage"
	"github.com/joefazee/atlas/models"
	"github.com/joefazee/atlas/tests/suites"
)

func newTestRepository(t *testing.T) (Repository, storage.Repository) {
	t.Helper()
	store := storage.NewRepository(suites.NewSQLiteDB(t))
	return NewRepository(store), store
}

func TestRepository_Accounts(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)

	accounts, err := repo.GetAccounts(ctx)
	require.NoError(t, err)
	assert.Empty(t, accounts)
	assert.NotNil(t, accounts)

	want := []models.Account{{ID: "1", Name: "Ada", Email: "ada@example.com", PasswordHash: "h"}}
	require.NoError(t, repo.SaveAccounts(ctx, want))

	accounts, err = repo.GetAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "ada@example.com", accounts[0].Email)
}

func TestRepository_Sessions(t *testing.T) {
	ctx := context.Background()
	repo, store := newTestRepository(t)
	identity := &models.Identity{ID: "1", Name: "Ada", Email: "ada@example.com"}
	expires := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)

	_, err := repo.GetSession(ctx, "abc")
	assert.ErrorIs(t, err, models.ErrSessionNotFound)

	require.NoError(t, repo.SaveSession(ctx, "abc", identity, expires))

	got, err := repo.GetSession(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, identity, got)

	var stamp string
	require.NoError(t, store.Get(ctx, "session_expiry:abc", &stamp))
	assert.Equal(t, "2030-01-02T03:04:05Z", stamp)

	require.NoError(t, repo.DeleteSession(ctx, "abc"))
	_, err = repo.GetSession(ctx, "abc")
	assert.ErrorIs(t, err, models.ErrSessionNotFound)
	assert.ErrorIs(t, store.Get(ctx, "session_expiry:abc", &stamp), models.ErrRecordNotFound)
}

func TestRepository_PurgeExpiredSessions(t *testing.T) {
	ctx := context.Background()
	repo, store := newTestRepository(t)
	identity := &models.Identity{ID: "1", Name: "Ada", Email: "ada@example.com"}
	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.SaveSession(ctx, "stale", identity, now.Add(-time.Minute)))
	require.NoError(t, repo.SaveSession(ctx, "live", identity, now.Add(time.Hour)))
	require.NoError(t, store.Set(ctx, "session_expiry:broken", "not-a-time"))

	purged, err := repo.PurgeExpiredSessions(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, purged)

	_, err = repo.GetSession(ctx, "stale")
	assert.ErrorIs(t, err, models.ErrSessionNotFound)
	_, err = repo.GetSession(ctx, "live")
	assert.NoError(t, err)

	keys, err := store.Keys(ctx, "session_expiry:")
	require.NoError(t, err)
	assert.Equal(t, []string{"session_expiry:broken", "session_expiry:live"}, keys)
}
