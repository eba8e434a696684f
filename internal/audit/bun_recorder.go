package audit

import (
	"context"
	"time"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Entry is the persisted shape of an audit event.
type Entry struct {
	bun.BaseModel `bun:"table:audit_logs,alias:al"`

	ID         uuid.UUID      `bun:",pk,type:uuid" json:"id"`
	Action     string         `bun:"action,notnull" json:"action"`
	EntityType string         `bun:"entity_type,notnull" json:"entity_type"`
	EntityID   *string        `bun:"entity_id" json:"entity_id,omitempty"`
	ActorID    *uuid.UUID     `bun:"actor_id,type:uuid,nullzero" json:"actor_id,omitempty"`
	Metadata   map[string]any `bun:"metadata,type:jsonb" json:"metadata,omitempty"`
	OccurredAt time.Time      `bun:"occurred_at,notnull" json:"occurred_at"`
	CreatedAt  time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// NewEntryRepository creates a repository for audit log entries.
func NewEntryRepository(db *bun.DB) repository.Repository[*Entry] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Entry]{
		NewRecord: func() *Entry { return &Entry{} },
		GetID: func(e *Entry) uuid.UUID {
			return e.ID
		},
		SetID: func(e *Entry, id uuid.UUID) {
			e.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(e *Entry) string {
			if e == nil {
				return ""
			}
			return e.ID.String()
		},
	})
}

// BunRecorder persists audit events to the audit_logs table.
type BunRecorder struct {
	db   *bun.DB
	repo repository.Repository[*Entry]
}

// NewBunRecorder constructs a recorder bound to the provided database.
func NewBunRecorder(db *bun.DB) *BunRecorder {
	return &BunRecorder{
		db:   db,
		repo: NewEntryRepository(db),
	}
}

// Record appends one audit entry.
func (r *BunRecorder) Record(ctx context.Context, event Event) error {
	entry := &Entry{
		ID:         uuid.New(),
		Action:     event.Action,
		EntityType: event.EntityType,
		Metadata:   event.Metadata,
		OccurredAt: event.OccurredAt,
	}
	if event.EntityID != "" {
		entityID := event.EntityID
		entry.EntityID = &entityID
	}
	if event.ActorID != uuid.Nil {
		actorID := event.ActorID
		entry.ActorID = &actorID
	}

	_, err := r.repo.Create(ctx, entry)
	return err
}

// List returns every recorded event, oldest first.
func (r *BunRecorder) List(ctx context.Context) ([]Event, error) {
	entries, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.occurred_at ASC")
		}),
	)
	if err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(entries))
	for _, entry := range entries {
		event := Event{
			Action:     entry.Action,
			EntityType: entry.EntityType,
			OccurredAt: entry.OccurredAt,
			Metadata:   entry.Metadata,
		}
		if entry.EntityID != nil {
			event.EntityID = *entry.EntityID
		}
		if entry.ActorID != nil {
			event.ActorID = *entry.ActorID
		}
		events = append(events, event)
	}
	return events, nil
}

// Clear drops every recorded event.
func (r *BunRecorder) Clear(ctx context.Context) error {
	_, err := r.db.NewDelete().
		Model((*Entry)(nil)).
		Where("1 = 1").
		Exec(ctx)
	return err
}
