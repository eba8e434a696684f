package content

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-panel/content"
)

// SlugLookup checks the secondary table for a row matching the slug. It is
// invoked exactly once per resolution, immediately before the write the
// resulting instruction feeds.
type SlugLookup func(ctx context.Context, slug string) (uuid.UUID, bool, error)

// textField describes one localized text column subject to the per-field
// fallback rule: the secondary draft's value wins when non-blank, otherwise
// the primary row's value carries over. Fields fall back independently.
type textField struct {
	name        string
	fromDraft   func(content.Draft) string
	fromPrimary func(*content.Record) *string
	assign      func(*content.Record, *string)
}

var mergedFields = []textField{
	{
		name:        "excerpt",
		fromDraft:   func(d content.Draft) string { return d.Excerpt },
		fromPrimary: func(r *content.Record) *string { return r.Excerpt },
		assign:      func(r *content.Record, v *string) { r.Excerpt = v },
	},
	{
		name:        "content",
		fromDraft:   func(d content.Draft) string { return d.Content },
		fromPrimary: func(r *content.Record) *string { return r.Content },
		assign:      func(r *content.Record, v *string) { r.Content = v },
	},
	{
		name:        "category",
		fromDraft:   func(d content.Draft) string { return d.Category },
		fromPrimary: func(r *content.Record) *string { return r.Category },
		assign:      func(r *content.Record, v *string) { r.Category = v },
	},
	{
		name:        "image_url",
		fromDraft:   func(d content.Draft) string { return d.ImageURL },
		fromPrimary: func(r *content.Record) *string { return r.ImageURL },
		assign:      func(r *content.Record, v *string) { r.ImageURL = v },
	},
	{
		// Only event tables have a location column; for other kinds the
		// repository column list never persists this field.
		name:        "location",
		fromDraft:   func(d content.Draft) string { return d.Location },
		fromPrimary: func(r *content.Record) *string { return r.Location },
		assign:      func(r *content.Record, v *string) { r.Location = v },
	},
}

// ResolveSecondaryWrite decides the single write needed to keep the
// translated row consistent with the primary row just saved. It performs no
// writes itself; the caller executes the returned instruction.
//
// The effective slug is the secondary draft's slug, falling back to the
// primary slug. Publish and creation timestamps always mirror the primary's.
// Resolution is idempotent for a fixed lookup result, which is why re-saving
// after a secondary write failure is safe.
func ResolveSecondaryWrite(ctx context.Context, primary *content.Record, draft content.Draft, actorID uuid.UUID, now time.Time, lookup SlugLookup) (*content.SecondaryWrite, error) {
	slug := strings.TrimSpace(draft.Slug)
	if slug == "" {
		slug = strings.TrimSpace(primary.Slug)
	}
	if slug == "" {
		return nil, content.ErrSlugRequired
	}

	record := &content.Record{
		SourceID:    &primary.ID,
		Title:       fallback(draft.Title, primary.Title),
		Slug:        slug,
		PublishedAt: cloneTime(primary.PublishedAt),
		EventDate:   mergeTime(draft.EventDate, primary.EventDate),
		CreatedAt:   primary.CreatedAt,
		UpdatedAt:   now,
	}
	for _, field := range mergedFields {
		field.assign(record, mergeText(field.fromDraft(draft), field.fromPrimary(primary)))
	}

	targetID, exists, err := lookup(ctx, slug)
	if err != nil {
		return nil, &content.LookupError{Slug: slug, Err: err}
	}

	if exists {
		record.ID = targetID
		return &content.SecondaryWrite{
			Op:       content.WriteOpUpdate,
			TargetID: targetID,
			Record:   record,
		}, nil
	}

	actor := actorID
	if actor != uuid.Nil {
		record.CreatedBy = &actor
	}
	return &content.SecondaryWrite{
		Op:     content.WriteOpInsert,
		Record: record,
	}, nil
}

// mergeText applies the fallback rule for one optional column. Blank draft
// values yield the primary's pointer value; non-blank values are stored as
// given. Both-blank stays NULL, matching the hosted schema.
func mergeText(draftValue string, primaryValue *string) *string {
	if trimmed := strings.TrimSpace(draftValue); trimmed != "" {
		value := draftValue
		return &value
	}
	if primaryValue == nil {
		return nil
	}
	copied := *primaryValue
	return &copied
}

func mergeTime(draftValue, primaryValue *time.Time) *time.Time {
	if draftValue != nil {
		return cloneTime(draftValue)
	}
	return cloneTime(primaryValue)
}

func fallback(value, alt string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return alt
}

func cloneTime(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	copied := *v
	return &copied
}
