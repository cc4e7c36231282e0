package storage

import (
	"context"
	"io"
)

// Storage abstracts blob storage for uploaded avatars. Paths are relative;
// the implementation decides where they land.
type Storage interface {
	Save(ctx context.Context, path string, content io.Reader) error
	Get(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
}
