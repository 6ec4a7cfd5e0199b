package storage

import (
	"context"
	"io"

	"wardrobe-api/internal/infrastructure/logger"
)

// failoverStore tries the cloud store once and falls back to the local
// store on any error. No retry against the cloud store before failing
// over; availability wins.
type failoverStore struct {
	primary  ObjectStore
	fallback ObjectStore
	logger   logger.Logger
}

// NewFailoverStore wraps a primary store with a local fallback.
func NewFailoverStore(primary, fallback ObjectStore, log logger.Logger) ObjectStore {
	return &failoverStore{
		primary:  primary,
		fallback: fallback,
		logger:   log,
	}
}

// Put stores via the primary, falling back to the local store on error.
// The content must be re-readable, so callers hand in a bytes.Reader per
// attempt via the seeker reset below when possible.
func (s *failoverStore) Put(ctx context.Context, key string, contentType string, content io.Reader) (*PutResult, error) {
	seeker, seekable := content.(io.Seeker)

	result, err := s.primary.Put(ctx, key, contentType, content)
	if err == nil {
		return result, nil
	}

	s.logger.WithFields(map[string]interface{}{
		"error": err.Error(),
		"key":   key,
	}).Warn("Cloud storage failed, falling back to local storage")

	if seekable {
		if _, serr := seeker.Seek(0, io.SeekStart); serr != nil {
			return nil, err
		}
	}

	return s.fallback.Put(ctx, key, contentType, content)
}

// Delete removes the blob from both stores; the one that never held it
// treats the delete as a no-op.
func (s *failoverStore) Delete(ctx context.Context, key string) error {
	perr := s.primary.Delete(ctx, key)
	ferr := s.fallback.Delete(ctx, key)
	if perr != nil {
		return perr
	}
	return ferr
}
