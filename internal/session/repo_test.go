package session

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"techreads/pkg/database"
	"techreads/pkg/models"
)

func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	db, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "sessions.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(db))
	return NewRepo(db)
}

func TestRepoPutGetRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	sess := models.Session{
		Token: "tok-abc",
		User:  models.User{ID: "7", Name: "Jane", Email: "jane@example.com"},
	}
	require.NoError(t, repo.Put(ctx, "sid-1", sess))

	stored, err := repo.Get(ctx, "sid-1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "sid-1", stored.ID)
	assert.Equal(t, sess, stored.Sess)
}

func TestRepoGetMissingReturnsNil(t *testing.T) {
	repo := newTestRepo(t)

	stored, err := repo.Get(context.Background(), "never-stored")
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestRepoPutOverwritesExisting(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "sid-1", models.Session{Token: "old"}))
	require.NoError(t, repo.Put(ctx, "sid-1", models.Session{Token: "new"}))

	stored, err := repo.Get(ctx, "sid-1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "new", stored.Sess.Token)
}

func TestRepoDelete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "sid-1", models.Session{Token: "tok"}))
	require.NoError(t, repo.Delete(ctx, "sid-1"))

	stored, err := repo.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Nil(t, stored)

	// deleting a missing row is not an error
	assert.NoError(t, repo.Delete(ctx, "sid-1"))
}
