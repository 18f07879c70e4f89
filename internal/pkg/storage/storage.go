// Package storage provides object storage for catalog and promotion images,
// either on an S3-compatible bucket or the local filesystem.
package storage

import (
	"context"
	"io"
)

// Storage is the minimal interface image uploads need: put a file, delete
// a file, resolve its public URL.
type Storage interface {
	Put(ctx context.Context, key string, reader io.Reader, contentType string) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	GetURL(key string) string
}
