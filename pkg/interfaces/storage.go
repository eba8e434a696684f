package interfaces

import (
	"context"
	"io"
	"time"
)

// ObjectStore abstracts the hosted bucket that backs the media library. The
// panel treats object contents and public URLs as opaque; listing metadata is
// the only structure it depends on.
type ObjectStore interface {
	// List returns objects under the given prefix, newest first when the
	// backing store supports ordering.
	List(ctx context.Context, prefix string, limit int) ([]ObjectInfo, error)
	// Upload stores the object at path, replacing any existing object when
	// upsert is true.
	Upload(ctx context.Context, path string, body io.Reader, contentType string, upsert bool) error
	// Remove deletes the objects at the provided paths.
	Remove(ctx context.Context, paths ...string) error
	// PublicURL returns the publicly addressable URL for an object path.
	PublicURL(path string) string
}

// ObjectInfo describes a stored object as reported by the bucket.
type ObjectInfo struct {
	Name        string
	Path        string
	Size        int64
	ContentType string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
