// Package storage provides blob storage for scanned page images.
package storage

import (
	"context"
	"io"
)

// BlobStore stores and deletes page image blobs.
type BlobStore interface {
	// Put uploads the blob under key and returns its public URL.
	Put(ctx context.Context, key, contentType string, body io.Reader) (string, error)

	// Delete removes the blob. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error
}
