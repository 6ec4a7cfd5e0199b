package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wardrobe-api/internal/infrastructure/config"
	"wardrobe-api/internal/infrastructure/logger"
)

func TestLocalStore_PutAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(&config.LocalConfig{
		BaseDir: dir,
		BaseURL: "http://localhost:8080/uploads/",
	}, logger.NewNopLogger())
	require.NoError(t, err)

	result, err := store.Put(context.Background(), "items/2026/01/abc.jpg", "image/jpeg", bytes.NewReader([]byte("imagebytes")))
	require.NoError(t, err)

	assert.Equal(t, "items/2026/01/abc.jpg", result.Key)
	assert.Equal(t, "http://localhost:8080/uploads/items/2026/01/abc.jpg", result.URL)

	written, err := os.ReadFile(filepath.Join(dir, "items", "2026", "01", "abc.jpg"))
	require.NoError(t, err)
	assert.Equal(t, []byte("imagebytes"), written)

	require.NoError(t, store.Delete(context.Background(), "items/2026/01/abc.jpg"))
	_, err = os.Stat(filepath.Join(dir, "items", "2026", "01", "abc.jpg"))
	assert.True(t, os.IsNotExist(err))

	// Deleting a missing key is a no-op.
	assert.NoError(t, store.Delete(context.Background(), "items/missing.jpg"))
}
