package content

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-panel/content"
)

// Repository abstracts storage for locale content tables. The table argument
// selects one of the six kind/locale tables; the same record shape backs all
// of them.
type Repository interface {
	Insert(ctx context.Context, table string, record *content.Record) (*content.Record, error)
	Update(ctx context.Context, table string, record *content.Record) (*content.Record, error)
	GetByID(ctx context.Context, table string, id uuid.UUID) (*content.Record, error)
	// FindIDBySlug reports whether a row exists for the slug. Callers on the
	// save path must invoke this immediately before writing; the result must
	// not be cached across saves.
	FindIDBySlug(ctx context.Context, table string, slug string) (uuid.UUID, bool, error)
	List(ctx context.Context, table string, opts ListOptions) ([]*content.Record, error)
	Count(ctx context.Context, table string, filter CountFilter) (int, error)
	DeleteByID(ctx context.Context, table string, id uuid.UUID) error
	DeleteBySlug(ctx context.Context, table string, slug string) error
}

// ListOptions narrows and orders list reads. Zero value lists everything
// newest-created first.
type ListOptions struct {
	Limit int
	// OrderByEventDate orders ascending by event_date instead of descending
	// by created_at. Only meaningful on event tables.
	OrderByEventDate bool
	// EventsBetween keeps rows whose event_date falls inside the window.
	EventsBetween *TimeWindow
}

// TimeWindow is a closed interval used for event date filtering.
type TimeWindow struct {
	From time.Time
	To   time.Time
}

// CountFilter narrows count reads. Published nil counts every row; true
// counts published rows, false counts drafts.
type CountFilter struct {
	Published *bool
}
