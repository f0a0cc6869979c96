package ports

import (
	"context"
	"errors"
	"io"
)

// BlobStore abstracts the hosted object storage behind the upload service.
type BlobStore interface {
	// Put stores an object and returns its publicly resolvable URL.
	Put(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, objectName string) error
}

var (
	// ErrNotFound is returned when the requested object does not exist.
	ErrNotFound = errors.New("object not found")
)
