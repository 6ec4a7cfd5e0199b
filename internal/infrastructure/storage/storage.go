package storage

import (
	"context"
	"io"
)

// PutResult describes a stored blob.
type PutResult struct {
	Key      string `json:"key"`
	URL      string `json:"url"`
	MimeType string `json:"mime_type"`
}

// ObjectStore persists binary blobs under opaque keys and returns public
// URLs. Implementations: S3, local filesystem, and the failover wrapper
// that recovers cloud errors locally.
type ObjectStore interface {
	// Put stores the content under key and returns its public URL.
	Put(ctx context.Context, key string, contentType string, content io.Reader) (*PutResult, error)

	// Delete removes the blob under key.
	Delete(ctx context.Context, key string) error
}
