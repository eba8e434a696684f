package content

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-panel/content"
)

func fixedLookup(id uuid.UUID, found bool) SlugLookup {
	return func(context.Context, string) (uuid.UUID, bool, error) {
		return id, found, nil
	}
}

func failingLookup(err error) SlugLookup {
	return func(context.Context, string) (uuid.UUID, bool, error) {
		return uuid.Nil, false, err
	}
}

func strPtr(v string) *string { return &v }

func primaryFixture() *content.Record {
	published := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	return &content.Record{
		ID:          uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		Title:       "Harbor Expansion",
		Excerpt:     strPtr("The harbor doubles its capacity."),
		Content:     strPtr("Full harbor story."),
		Category:    strPtr("infrastructure"),
		Slug:        "harbor-expansion",
		ImageURL:    strPtr("https://cdn.example.com/harbor.jpg"),
		PublishedAt: &published,
		CreatedAt:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestResolveSecondaryWrite_InsertWhenSlugUnknown(t *testing.T) {
	primary := primaryFixture()
	actor := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	write, err := ResolveSecondaryWrite(context.Background(), primary, content.Draft{
		Title: "Liman Genişlənməsi",
	}, actor, now, fixedLookup(uuid.Nil, false))
	if err != nil {
		t.Fatalf("ResolveSecondaryWrite returned error: %v", err)
	}

	if write.Op != content.WriteOpInsert {
		t.Fatalf("expected insert, got %q", write.Op)
	}
	if write.Record.Slug != "harbor-expansion" {
		t.Fatalf("expected slug to fall back to primary, got %q", write.Record.Slug)
	}
	if write.Record.Title != "Liman Genişlənməsi" {
		t.Fatalf("expected draft title to win, got %q", write.Record.Title)
	}
	if write.Record.CreatedBy == nil || *write.Record.CreatedBy != actor {
		t.Fatalf("expected created_by %s on insert, got %v", actor, write.Record.CreatedBy)
	}
	if write.Record.SourceID == nil || *write.Record.SourceID != primary.ID {
		t.Fatalf("expected source_id %s, got %v", primary.ID, write.Record.SourceID)
	}
	if write.Record.CreatedAt != primary.CreatedAt {
		t.Fatalf("expected created_at to mirror primary, got %v", write.Record.CreatedAt)
	}
	if write.Record.UpdatedAt != now {
		t.Fatalf("expected updated_at %v, got %v", now, write.Record.UpdatedAt)
	}
}

func TestResolveSecondaryWrite_UpdateWhenSlugExists(t *testing.T) {
	primary := primaryFixture()
	target := uuid.MustParse("33333333-3333-3333-3333-333333333333")
	now := time.Now().UTC()

	write, err := ResolveSecondaryWrite(context.Background(), primary, content.Draft{}, uuid.Nil, now, fixedLookup(target, true))
	if err != nil {
		t.Fatalf("ResolveSecondaryWrite returned error: %v", err)
	}

	if write.Op != content.WriteOpUpdate {
		t.Fatalf("expected update, got %q", write.Op)
	}
	if write.TargetID != target {
		t.Fatalf("expected target id %s, got %s", target, write.TargetID)
	}
	if write.Record.ID != target {
		t.Fatalf("expected record id to match target, got %s", write.Record.ID)
	}
	if write.Record.CreatedBy != nil {
		t.Fatalf("updates must not set created_by, got %v", write.Record.CreatedBy)
	}
}

func TestResolveSecondaryWrite_NoCreatedByWithoutActor(t *testing.T) {
	write, err := ResolveSecondaryWrite(context.Background(), primaryFixture(), content.Draft{}, uuid.Nil, time.Now(), fixedLookup(uuid.Nil, false))
	if err != nil {
		t.Fatalf("ResolveSecondaryWrite returned error: %v", err)
	}
	if write.Record.CreatedBy != nil {
		t.Fatalf("expected nil created_by without actor, got %v", write.Record.CreatedBy)
	}
}

func TestResolveSecondaryWrite_DraftSlugWins(t *testing.T) {
	write, err := ResolveSecondaryWrite(context.Background(), primaryFixture(), content.Draft{
		Slug: "liman-genislenmesi",
	}, uuid.Nil, time.Now(), fixedLookup(uuid.Nil, false))
	if err != nil {
		t.Fatalf("ResolveSecondaryWrite returned error: %v", err)
	}
	if write.Record.Slug != "liman-genislenmesi" {
		t.Fatalf("expected draft slug to win, got %q", write.Record.Slug)
	}
}

func TestResolveSecondaryWrite_BothSlugsBlank(t *testing.T) {
	primary := primaryFixture()
	primary.Slug = ""

	_, err := ResolveSecondaryWrite(context.Background(), primary, content.Draft{}, uuid.Nil, time.Now(), fixedLookup(uuid.Nil, false))
	if !errors.Is(err, content.ErrSlugRequired) {
		t.Fatalf("expected ErrSlugRequired, got %v", err)
	}
}

func TestResolveSecondaryWrite_PerFieldFallbackIsIndependent(t *testing.T) {
	primary := primaryFixture()

	write, err := ResolveSecondaryWrite(context.Background(), primary, content.Draft{
		Excerpt: "Liman tutumunu iki dəfə artırır.",
		// Content and Category left blank on purpose.
		ImageURL: "https://cdn.example.com/harbor-az.jpg",
	}, uuid.Nil, time.Now(), fixedLookup(uuid.Nil, false))
	if err != nil {
		t.Fatalf("ResolveSecondaryWrite returned error: %v", err)
	}

	rec := write.Record
	if rec.Excerpt == nil || *rec.Excerpt != "Liman tutumunu iki dəfə artırır." {
		t.Fatalf("expected draft excerpt, got %v", rec.Excerpt)
	}
	if rec.Content == nil || *rec.Content != *primary.Content {
		t.Fatalf("expected content to fall back to primary, got %v", rec.Content)
	}
	if rec.Category == nil || *rec.Category != *primary.Category {
		t.Fatalf("expected category to fall back to primary, got %v", rec.Category)
	}
	if rec.ImageURL == nil || *rec.ImageURL != "https://cdn.example.com/harbor-az.jpg" {
		t.Fatalf("expected draft image_url, got %v", rec.ImageURL)
	}
}

func TestResolveSecondaryWrite_BothBlankStaysNull(t *testing.T) {
	primary := primaryFixture()
	primary.Excerpt = nil
	primary.Content = nil
	primary.Category = nil
	primary.ImageURL = nil
	primary.Location = nil

	write, err := ResolveSecondaryWrite(context.Background(), primary, content.Draft{}, uuid.Nil, time.Now(), fixedLookup(uuid.Nil, false))
	if err != nil {
		t.Fatalf("ResolveSecondaryWrite returned error: %v", err)
	}

	rec := write.Record
	if rec.Excerpt != nil || rec.Content != nil || rec.Category != nil || rec.ImageURL != nil || rec.Location != nil {
		t.Fatalf("expected all optional fields nil, got %+v", rec)
	}
}

func TestResolveSecondaryWrite_PublishStateMirrorsPrimary(t *testing.T) {
	primary := primaryFixture()

	write, err := ResolveSecondaryWrite(context.Background(), primary, content.Draft{}, uuid.Nil, time.Now(), fixedLookup(uuid.Nil, false))
	if err != nil {
		t.Fatalf("ResolveSecondaryWrite returned error: %v", err)
	}
	if write.Record.PublishedAt == nil || !write.Record.PublishedAt.Equal(*primary.PublishedAt) {
		t.Fatalf("expected published_at %v, got %v", primary.PublishedAt, write.Record.PublishedAt)
	}

	primary.PublishedAt = nil
	write, err = ResolveSecondaryWrite(context.Background(), primary, content.Draft{}, uuid.Nil, time.Now(), fixedLookup(uuid.Nil, false))
	if err != nil {
		t.Fatalf("ResolveSecondaryWrite returned error: %v", err)
	}
	if write.Record.PublishedAt != nil {
		t.Fatalf("expected draft (nil published_at), got %v", write.Record.PublishedAt)
	}
}

func TestResolveSecondaryWrite_LookupFailure(t *testing.T) {
	cause := errors.New("connection reset")

	_, err := ResolveSecondaryWrite(context.Background(), primaryFixture(), content.Draft{}, uuid.Nil, time.Now(), failingLookup(cause))
	if !errors.Is(err, content.ErrSecondaryLookup) {
		t.Fatalf("expected ErrSecondaryLookup, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to stay reachable, got %v", err)
	}

	var lookupErr *content.LookupError
	if !errors.As(err, &lookupErr) {
		t.Fatalf("expected *LookupError, got %T", err)
	}
	if lookupErr.Slug != "harbor-expansion" {
		t.Fatalf("expected slug on error, got %q", lookupErr.Slug)
	}
}

func TestResolveSecondaryWrite_Idempotent(t *testing.T) {
	primary := primaryFixture()
	actor := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	draft := content.Draft{Title: "Liman Genişlənməsi", Excerpt: "Qısa xülasə."}
	lookup := fixedLookup(uuid.Nil, false)

	first, err := ResolveSecondaryWrite(context.Background(), primary, draft, actor, now, lookup)
	if err != nil {
		t.Fatalf("first resolution failed: %v", err)
	}
	second, err := ResolveSecondaryWrite(context.Background(), primary, draft, actor, now, lookup)
	if err != nil {
		t.Fatalf("second resolution failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("resolutions differ:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestResolveSecondaryWrite_EventDateFallsBack(t *testing.T) {
	primary := primaryFixture()
	primaryDate := time.Date(2026, 4, 1, 18, 0, 0, 0, time.UTC)
	primary.EventDate = &primaryDate

	write, err := ResolveSecondaryWrite(context.Background(), primary, content.Draft{}, uuid.Nil, time.Now(), fixedLookup(uuid.Nil, false))
	if err != nil {
		t.Fatalf("ResolveSecondaryWrite returned error: %v", err)
	}
	if write.Record.EventDate == nil || !write.Record.EventDate.Equal(primaryDate) {
		t.Fatalf("expected event_date to mirror primary, got %v", write.Record.EventDate)
	}

	draftDate := time.Date(2026, 4, 2, 18, 0, 0, 0, time.UTC)
	write, err = ResolveSecondaryWrite(context.Background(), primary, content.Draft{EventDate: &draftDate}, uuid.Nil, time.Now(), fixedLookup(uuid.Nil, false))
	if err != nil {
		t.Fatalf("ResolveSecondaryWrite returned error: %v", err)
	}
	if write.Record.EventDate == nil || !write.Record.EventDate.Equal(draftDate) {
		t.Fatalf("expected draft event_date to win, got %v", write.Record.EventDate)
	}
}
