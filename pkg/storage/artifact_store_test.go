package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArtifactStoreSaveAndOpen(t *testing.T) {
	store, err := NewArtifactStore(t.TempDir())
	require.NoError(t, err)

	name, err := store.Save("sess-1/exp-1.csv", []byte("Time,Monday\n"))
	require.NoError(t, err)
	assert.Equal(t, "sess-1/exp-1.csv", name)

	file, err := store.Open(name)
	require.NoError(t, err)
	defer file.Close()
}

func TestArtifactStoreRejectsEscapingNames(t *testing.T) {
	store, err := NewArtifactStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save("../outside.csv", []byte("x"))
	require.Error(t, err)

	_, err = store.Open("/etc/passwd")
	require.Error(t, err)
}

func TestArtifactStoreCleanup(t *testing.T) {
	dir := t.TempDir()
	store, err := NewArtifactStore(dir)
	require.NoError(t, err)

	_, err = store.Save("sess-1/stale.csv", []byte("x"))
	require.NoError(t, err)
	stalePath := filepath.Join(dir, "sess-1", "stale.csv")
	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(stalePath, old, old))

	_, err = store.Save("sess-1/fresh.csv", []byte("y"))
	require.NoError(t, err)

	deleted, err := store.CleanupOlderThan(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("sess-1", "stale.csv")}, deleted)

	_, err = store.Open("sess-1/fresh.csv")
	assert.NoError(t, err)
}
