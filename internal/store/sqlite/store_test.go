package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelterpulse/internal/errors"
	"shelterpulse/pkg/contracts/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(filepath.Join(t.TempDir(), "shelter.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_CreateAndGetUser(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := domain.User{
		Username:     "alice",
		PasswordHash: "$2a$10$fakehash",
		CreatedAt:    time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.CreateUser(ctx, user))

	got, err := store.GetUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "$2a$10$fakehash", got.PasswordHash)
	assert.Equal(t, user.CreatedAt, got.CreatedAt)

	count, err := store.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestStore_CreateUser_Duplicate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := domain.User{Username: "alice", PasswordHash: "h", CreatedAt: time.Now()}
	require.NoError(t, store.CreateUser(ctx, user))

	err := store.CreateUser(ctx, user)
	assert.ErrorIs(t, err, errors.ErrUserExists)
}

func TestStore_GetUser_Unknown(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetUser(context.Background(), "nobody")
	assert.ErrorIs(t, err, errors.ErrBadCredentials)
}

func TestStore_AppendAndRecentActions(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2023, 7, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		action := domain.UserAction{
			Time:     base.Add(time.Duration(i) * time.Minute),
			Username: "alice",
			Action:   "filter_changed",
			Details:  "animal_type=Dog",
		}
		require.NoError(t, store.AppendAction(ctx, &action))
		assert.Equal(t, int64(i+1), action.ID)
	}

	recent, err := store.RecentActions(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)

	// Newest first.
	assert.Equal(t, int64(3), recent[0].ID)
	assert.Equal(t, int64(2), recent[1].ID)
	assert.Equal(t, base.Add(2*time.Minute), recent[0].Time)
	assert.Equal(t, "filter_changed", recent[0].Action)

	count, err := store.CountActions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestStore_RecentActions_Empty(t *testing.T) {
	store := newTestStore(t)

	recent, err := store.RecentActions(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestStore_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shelter.db")
	ctx := context.Background()

	store, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store.CreateUser(ctx, domain.User{
		Username: "bob", PasswordHash: "h", CreatedAt: time.Now().UTC(),
	}))
	require.NoError(t, store.Close())

	reopened, err := NewStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	count, err := reopened.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
