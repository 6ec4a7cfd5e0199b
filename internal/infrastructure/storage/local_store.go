package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"wardrobe-api/internal/infrastructure/config"
	"wardrobe-api/internal/infrastructure/logger"
)

// localStore stores blobs on the local filesystem under a base directory
// and serves them via a configured public base URL. This is the default
// store when no cloud bucket is configured, and the failover target when
// one is.
type localStore struct {
	baseDir string
	baseURL string
	logger  logger.Logger
}

// NewLocalStore creates the filesystem object store, making sure the base
// directory exists.
func NewLocalStore(cfg *config.LocalConfig, log logger.Logger) (ObjectStore, error) {
	if err := os.MkdirAll(cfg.BaseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &localStore{
		baseDir: cfg.BaseDir,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		logger:  log,
	}, nil
}

// Put writes the blob under baseDir/key.
func (s *localStore) Put(ctx context.Context, key string, contentType string, content io.Reader) (*PutResult, error) {
	path := filepath.Join(s.baseDir, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create object directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create object file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to write object file: %w", err)
	}

	url := fmt.Sprintf("%s/%s", s.baseURL, key)

	s.logger.WithFields(map[string]interface{}{
		"key":  key,
		"path": path,
	}).Debug("Object written to local storage")

	return &PutResult{
		Key:      key,
		URL:      url,
		MimeType: contentType,
	}, nil
}

// Delete removes the blob file.
func (s *localStore) Delete(ctx context.Context, key string) error {
	path := filepath.Join(s.baseDir, filepath.FromSlash(key))
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete object file: %w", err)
	}
	return nil
}
