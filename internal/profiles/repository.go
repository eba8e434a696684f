package profiles

import (
	"context"

	"github.com/google/uuid"
)

// Repository abstracts storage operations for profile records.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Profile, error)
	List(ctx context.Context) ([]*Profile, error)
	Count(ctx context.Context) (int, error)
}
