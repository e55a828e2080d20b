package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStoreSave(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir)
	require.NoError(t, err)
	store.now = func() time.Time { return time.UnixMilli(1700000000000) }

	url, err := store.Save(context.Background(), strings.NewReader("image-bytes"), "my photo.png")
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(url, "/1700000000000-my_photo.png"), "got %q", url)

	data, err := os.ReadFile(filepath.Join(dir, "1700000000000-my_photo.png"))
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(data))
}

func TestDiskStoreSaveStripsPathComponents(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir)
	require.NoError(t, err)

	url, err := store.Save(context.Background(), strings.NewReader("x"), "../../etc/passwd")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, "-passwd"), "got %q", url)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestDiskStoreDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir)
	require.NoError(t, err)

	url, err := store.Save(context.Background(), strings.NewReader("x"), "pic.jpg")
	require.NoError(t, err)

	require.NoError(t, store.Delete(context.Background(), url))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// Deleting an already-removed file is not an error
	require.NoError(t, store.Delete(context.Background(), url))
}

func TestDiskStoreDeleteIgnoresForeignURLs(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Delete(context.Background(), "https://bucket.s3.us-east-1.amazonaws.com/uploads/pic.jpg"))
	assert.NoError(t, store.Delete(context.Background(), "/somewhere/else/pic.jpg"))
}

func TestNewDiskStoreCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	_, err := NewDiskStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
