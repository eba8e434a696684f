package content

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Service exposes the bilingual content use cases. Every save keeps the
// primary and secondary locale rows consistent: the primary row is written
// first, then the translated row is found by slug and inserted or updated
// with the same publish and creation timestamps.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*SaveResult, error)
	Update(ctx context.Context, req UpdateRequest) (*SaveResult, error)
	Get(ctx context.Context, kind Kind, id uuid.UUID) (*Entry, error)
	List(ctx context.Context, kind Kind, locale Locale) ([]*Record, error)
	Delete(ctx context.Context, req DeleteRequest) error
}

// CreateRequest captures a first save of a logical content item.
type CreateRequest struct {
	Kind      Kind
	Primary   Draft
	Secondary Draft
	// Publish flips the item to published at save time; false saves a draft.
	Publish bool
	// CreatedAt back-dates the creation timestamp uniformly across both
	// locale rows. Nil means save time.
	CreatedAt *time.Time
	ActorID   uuid.UUID
}

// Validate checks the request before any write is attempted.
func (r CreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Kind, validation.Required, validation.In(KindNews, KindProjects, KindEvents)),
		validation.Field(&r.Primary, validation.By(func(any) error {
			if r.Primary.Title == "" && r.Primary.Slug == "" {
				return validation.NewError("panel.content.primary_required", "primary title or slug is required")
			}
			return nil
		})),
	)
}

// UpdateRequest captures a subsequent save of an existing item.
type UpdateRequest struct {
	ID        uuid.UUID
	Kind      Kind
	Primary   Draft
	Secondary Draft
	Publish   bool
	CreatedAt *time.Time
	ActorID   uuid.UUID
}

// Validate checks the request before any write is attempted.
func (r UpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.By(func(any) error {
			if r.ID == uuid.Nil {
				return validation.NewError("panel.content.id_required", "record id is required")
			}
			return nil
		})),
		validation.Field(&r.Kind, validation.Required, validation.In(KindNews, KindProjects, KindEvents)),
	)
}

// DeleteRequest removes both locale rows of a content item. The secondary
// delete is keyed by the primary slug and is best effort.
type DeleteRequest struct {
	Kind    Kind
	ID      uuid.UUID
	ActorID uuid.UUID
}

// SaveResult reports what a save wrote and how the publish state moved.
type SaveResult struct {
	Primary     *Record
	Secondary   *Record
	SecondaryOp WriteOp
	Transition  Transition
}
