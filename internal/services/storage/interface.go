// File: internal/services/storage/interface.go
package storage

import (
	"context"
	"io"
	"time"
)

// ObjectStore is the boundary to the external blob-store collaborator
// holding uploaded policy documents.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}
