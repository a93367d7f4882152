package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"techreads/pkg/models"
)

func TestFileStoreRoundTrip(t *testing.T) {
	fs := FileStore{Path: filepath.Join(t.TempDir(), "nested", "session.json")}

	sess := models.Session{
		Token: "tok-abc",
		User:  models.User{ID: "7", Email: "jane@example.com"},
	}
	require.NoError(t, fs.Save(sess))

	loaded, err := fs.Load()
	require.NoError(t, err)
	assert.Equal(t, sess, *loaded)
}

func TestFileStoreRejectsEmptyToken(t *testing.T) {
	fs := FileStore{Path: filepath.Join(t.TempDir(), "session.json")}
	assert.Error(t, fs.Save(models.Session{Token: "   "}))
}

func TestFileStoreLoadMissingFile(t *testing.T) {
	fs := FileStore{Path: filepath.Join(t.TempDir(), "session.json")}
	_, err := fs.Load()
	assert.Error(t, err)
}

func TestFileStoreClear(t *testing.T) {
	fs := FileStore{Path: filepath.Join(t.TempDir(), "session.json")}
	require.NoError(t, fs.Save(models.Session{Token: "tok"}))

	require.NoError(t, fs.Clear())
	_, err := fs.Load()
	assert.Error(t, err)

	// clearing twice is fine
	assert.NoError(t, fs.Clear())
}
