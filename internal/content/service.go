package content

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-panel/content"
	"github.com/goliatone/go-panel/internal/audit"
	"github.com/goliatone/go-panel/internal/logging"
	"github.com/goliatone/go-panel/pkg/interfaces"
)

// AuditNotifier receives audit events for completed saves. Dispatch must not
// block and must never surface its failures to the caller.
type AuditNotifier interface {
	Dispatch(event audit.Event)
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// IDGenerator produces identifiers for inserted rows.
type IDGenerator func() uuid.UUID

// WithIDGenerator overrides the id generator used for inserts.
func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithAuditNotifier wires the fire-and-forget audit dispatch.
func WithAuditNotifier(notifier AuditNotifier) ServiceOption {
	return func(s *service) {
		if notifier != nil {
			s.auditor = notifier
		}
	}
}

// WithLogger injects the module logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	repo    Repository
	auditor AuditNotifier
	logger  interfaces.Logger
	now     func() time.Time
	id      IDGenerator
}

// NewService constructs a content service with the required dependencies.
func NewService(repo Repository, opts ...ServiceOption) content.Service {
	s := &service{
		repo:   repo,
		logger: logging.NoOp(),
		now:    time.Now,
		id:     uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create inserts the primary row, then lazily creates or refreshes the
// translated twin. The secondary write is sequenced after the primary: a
// primary failure aborts the save with no secondary attempt.
func (s *service) Create(ctx context.Context, req content.CreateRequest) (*content.SaveResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	slug, err := resolvePrimarySlug(req.Primary, "")
	if err != nil {
		return nil, err
	}

	now := s.now()
	createdAt := now
	if req.CreatedAt != nil {
		createdAt = *req.CreatedAt
	}
	var publishedAt *time.Time
	if req.Publish {
		stamped := now
		publishedAt = &stamped
	}

	primary := &content.Record{
		ID:          s.id(),
		Title:       req.Primary.Title,
		Excerpt:     textPtr(req.Primary.Excerpt),
		Content:     textPtr(req.Primary.Content),
		Category:    textPtr(req.Primary.Category),
		Slug:        slug,
		ImageURL:    textPtr(req.Primary.ImageURL),
		PublishedAt: publishedAt,
		EventDate:   req.Primary.EventDate,
		Location:    textPtr(req.Primary.Location),
		CreatedAt:   createdAt,
		UpdatedAt:   now,
	}
	if req.ActorID != uuid.Nil {
		actor := req.ActorID
		primary.CreatedBy = &actor
	}

	saved, err := s.repo.Insert(ctx, content.Table(req.Kind, content.LocalePrimary), primary)
	if err != nil {
		return nil, err
	}

	secondary, op, err := s.syncSecondary(ctx, req.Kind, saved, req.Secondary, req.ActorID, now)
	if err != nil {
		return nil, err
	}

	transition := content.ClassifyCreate(req.Publish)
	s.emitAudit(req.Kind, transition, saved, req.ActorID, "new", now)

	return &content.SaveResult{
		Primary:     saved,
		Secondary:   secondary,
		SecondaryOp: op,
		Transition:  transition,
	}, nil
}

// Update rewrites the primary row and re-synchronizes the translated twin.
// The prior publish state is read before the write so the transition can be
// classified for the audit trail.
func (s *service) Update(ctx context.Context, req content.UpdateRequest) (*content.SaveResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	table := content.Table(req.Kind, content.LocalePrimary)
	existing, err := s.repo.GetByID(ctx, table, req.ID)
	if err != nil {
		return nil, err
	}
	wasPublished := existing.Published()

	slug, err := resolvePrimarySlug(req.Primary, existing.Slug)
	if err != nil {
		return nil, err
	}

	now := s.now()
	createdAt := existing.CreatedAt
	if req.CreatedAt != nil {
		createdAt = *req.CreatedAt
	}
	var publishedAt *time.Time
	if req.Publish {
		stamped := now
		publishedAt = &stamped
	}

	primary := &content.Record{
		ID:          req.ID,
		Title:       req.Primary.Title,
		Excerpt:     textPtr(req.Primary.Excerpt),
		Content:     textPtr(req.Primary.Content),
		Category:    textPtr(req.Primary.Category),
		Slug:        slug,
		ImageURL:    textPtr(req.Primary.ImageURL),
		PublishedAt: publishedAt,
		EventDate:   req.Primary.EventDate,
		Location:    textPtr(req.Primary.Location),
		CreatedBy:   existing.CreatedBy,
		CreatedAt:   createdAt,
		UpdatedAt:   now,
	}

	saved, err := s.repo.Update(ctx, table, primary)
	if err != nil {
		return nil, err
	}

	secondary, op, err := s.syncSecondary(ctx, req.Kind, saved, req.Secondary, req.ActorID, now)
	if err != nil {
		return nil, err
	}

	transition := content.ClassifyTransition(wasPublished, req.Publish)
	s.emitAudit(req.Kind, transition, saved, req.ActorID, "edit", now)

	return &content.SaveResult{
		Primary:     saved,
		Secondary:   secondary,
		SecondaryOp: op,
		Transition:  transition,
	}, nil
}

// Get loads the primary row and, when present, its translated twin joined by
// slug.
func (s *service) Get(ctx context.Context, kind content.Kind, id uuid.UUID) (*content.Entry, error) {
	if !kind.Valid() {
		return nil, content.ErrKindInvalid
	}
	if id == uuid.Nil {
		return nil, content.ErrRecordIDRequired
	}

	primary, err := s.repo.GetByID(ctx, content.Table(kind, content.LocalePrimary), id)
	if err != nil {
		return nil, err
	}

	entry := &content.Entry{Kind: kind, Primary: primary}
	if primary.Slug == "" {
		return entry, nil
	}

	secondaryTable := content.Table(kind, content.LocaleSecondary)
	secondaryID, exists, err := s.repo.FindIDBySlug(ctx, secondaryTable, primary.Slug)
	if err != nil || !exists {
		return entry, nil
	}
	if secondary, err := s.repo.GetByID(ctx, secondaryTable, secondaryID); err == nil {
		entry.Secondary = secondary
	}
	return entry, nil
}

// List returns every record of one kind and locale, newest first.
func (s *service) List(ctx context.Context, kind content.Kind, locale content.Locale) ([]*content.Record, error) {
	if !kind.Valid() {
		return nil, content.ErrKindInvalid
	}
	return s.repo.List(ctx, content.Table(kind, locale), ListOptions{})
}

// Delete removes the primary row, then the translated row by slug. The
// secondary delete is best effort: the two tables share no transaction, so a
// failure there is logged and the delete still succeeds.
func (s *service) Delete(ctx context.Context, req content.DeleteRequest) error {
	if !req.Kind.Valid() {
		return content.ErrKindInvalid
	}
	if req.ID == uuid.Nil {
		return content.ErrRecordIDRequired
	}

	table := content.Table(req.Kind, content.LocalePrimary)
	existing, err := s.repo.GetByID(ctx, table, req.ID)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteByID(ctx, table, req.ID); err != nil {
		return err
	}

	if existing.Slug != "" {
		secondaryTable := content.Table(req.Kind, content.LocaleSecondary)
		if err := s.repo.DeleteBySlug(ctx, secondaryTable, existing.Slug); err != nil {
			logging.WithFields(s.logger, map[string]any{
				"kind": string(req.Kind),
				"slug": existing.Slug,
			}).Warn("content.delete.secondary_failed", "error", err)
		}
	}

	now := s.now()
	s.emitAudit(req.Kind, "deleted", existing, req.ActorID, "edit", now)
	return nil
}

// syncSecondary resolves and executes the translated-row write. The slug
// lookup runs inside the resolver, immediately before the write, to keep the
// race window between concurrent editors as small as possible.
func (s *service) syncSecondary(ctx context.Context, kind content.Kind, primary *content.Record, draft content.Draft, actorID uuid.UUID, now time.Time) (*content.Record, content.WriteOp, error) {
	table := content.Table(kind, content.LocaleSecondary)
	lookup := func(ctx context.Context, slug string) (uuid.UUID, bool, error) {
		return s.repo.FindIDBySlug(ctx, table, slug)
	}

	write, err := ResolveSecondaryWrite(ctx, primary, draft, actorID, now, lookup)
	if err != nil {
		return nil, content.WriteOpNone, err
	}

	var saved *content.Record
	switch write.Op {
	case content.WriteOpInsert:
		write.Record.ID = s.id()
		saved, err = s.repo.Insert(ctx, table, write.Record)
	case content.WriteOpUpdate:
		saved, err = s.repo.Update(ctx, table, write.Record)
	}
	if err != nil {
		return nil, write.Op, &content.SecondaryWriteError{Slug: write.Record.Slug, Op: write.Op, Err: err}
	}
	return saved, write.Op, nil
}

func (s *service) emitAudit(kind content.Kind, transition content.Transition, primary *content.Record, actorID uuid.UUID, mode string, now time.Time) {
	if s.auditor == nil {
		return
	}
	s.auditor.Dispatch(audit.Event{
		Action:     string(kind) + "_" + string(transition),
		EntityType: string(kind),
		EntityID:   primary.ID.String(),
		ActorID:    actorID,
		OccurredAt: now,
		Metadata: map[string]any{
			"mode":      mode,
			"published": primary.Published(),
			"slug":      primary.Slug,
			"title":     primary.Title,
		},
	})
}

// resolvePrimarySlug normalizes the primary slug, deriving it from the title
// when blank, the way the edit form slugifies titles.
func resolvePrimarySlug(draft content.Draft, fallbackSlug string) (string, error) {
	slug := strings.TrimSpace(draft.Slug)
	if slug == "" && strings.TrimSpace(draft.Title) != "" {
		normalized, err := content.NormalizeSlug(draft.Title)
		if err != nil {
			return "", content.ErrSlugInvalid
		}
		slug = normalized
	}
	if slug == "" {
		slug = strings.TrimSpace(fallbackSlug)
	}
	if slug == "" {
		return "", content.ErrSlugRequired
	}
	if !content.IsValidSlug(slug) {
		return "", content.ErrSlugInvalid
	}
	return slug, nil
}

func textPtr(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}
