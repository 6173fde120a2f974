package core

import (
	"context"
	"io"
)

// FileStorage is any service that can store a blob and serve it publicly.
type FileStorage interface {
	// Upload stores the blob under `key` and returns its public URL.
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
}
