package media

import (
	internalmedia "github.com/goliatone/go-panel/internal/media"
	"github.com/goliatone/go-panel/pkg/interfaces"
)

// Re-exported errors from the internal media package.
var (
	ErrStoreUnavailable = internalmedia.ErrStoreUnavailable
	ErrNameRequired     = internalmedia.ErrNameRequired
)

// Re-exported types from the internal media package.
type (
	Asset         = internalmedia.Asset
	Service       = internalmedia.Service
	ServiceOption = internalmedia.ServiceOption
)

// WithListLimit caps how many objects a listing returns.
func WithListLimit(limit int) ServiceOption {
	return internalmedia.WithListLimit(limit)
}

// WithLogger injects the module logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return internalmedia.WithLogger(logger)
}

// NewService constructs a media service around the provided bucket.
func NewService(store interfaces.ObjectStore, opts ...ServiceOption) Service {
	return internalmedia.NewService(store, opts...)
}
