// Package blob abstracts the object storage collaborator holding
// per-user uploads and, optionally, bucket-format audit records.
package blob

import (
	"context"
	"io"
	"time"
)

// Object describes one stored object.
type Object struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// Storage is the object storage contract. Keys are slash-separated
// paths; callers namespace them (users/<username>/..., audit/...).
type Storage interface {
	// Put stores one object, overwriting any existing object at key.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error

	// List returns all objects under prefix.
	List(ctx context.Context, prefix string) ([]Object, error)

	// PresignGet returns a time-limited download URL for key, or ""
	// when the backend cannot presign (memory driver).
	PresignGet(ctx context.Context, key string) (string, error)
}
