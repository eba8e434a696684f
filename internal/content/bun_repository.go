package content

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-panel/content"
)

// recordColumns lists the columns shared by every locale table. Secondary
// tables additionally persist source_id; event tables carry event_date and
// location.
var recordColumns = []string{
	"id", "title", "excerpt", "content", "category",
	"slug", "image_url", "published_at", "created_by", "created_at", "updated_at",
}

var (
	secondaryColumns = []string{"source_id"}
	eventColumns     = []string{"event_date", "location"}
)

// BunRepository implements Repository across the six locale tables using a
// single record model with the table selected per query.
type BunRepository struct {
	db *bun.DB
}

// NewBunRepository constructs a repository bound to the provided database.
func NewBunRepository(db *bun.DB) *BunRepository {
	return &BunRepository{db: db}
}

func columnsFor(table string) []string {
	columns := append([]string{}, recordColumns...)
	if isSecondaryTable(table) {
		columns = append(columns, secondaryColumns...)
	}
	if isEventTable(table) {
		columns = append(columns, eventColumns...)
	}
	return columns
}

func isSecondaryTable(table string) bool {
	return strings.HasSuffix(table, "_"+string(content.LocaleSecondary))
}

func isEventTable(table string) bool {
	return strings.HasPrefix(table, string(content.KindEvents))
}

// Insert stores a new record in the given table.
func (r *BunRepository) Insert(ctx context.Context, table string, record *content.Record) (*content.Record, error) {
	_, err := r.db.NewInsert().
		Model(record).
		ModelTableExpr("? AS r", bun.Ident(table)).
		Column(columnsFor(table)...).
		Exec(ctx)
	if err != nil {
		return nil, wrapStoreError(err, table, record.ID.String())
	}
	return record.Clone(), nil
}

// Update rewrites the record with the same id. created_by is insert-only and
// never touched here.
func (r *BunRepository) Update(ctx context.Context, table string, record *content.Record) (*content.Record, error) {
	columns := make([]string, 0, len(recordColumns)+len(eventColumns))
	for _, col := range columnsFor(table) {
		if col == "id" || col == "created_by" {
			continue
		}
		columns = append(columns, col)
	}

	res, err := r.db.NewUpdate().
		Model(record).
		ModelTableExpr("? AS r", bun.Ident(table)).
		Column(columns...).
		Where("r.id = ?", record.ID).
		Exec(ctx)
	if err != nil {
		return nil, wrapStoreError(err, table, record.ID.String())
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return nil, &content.NotFoundError{Resource: table, Key: record.ID.String()}
	}
	return record.Clone(), nil
}

// GetByID fetches one record by identifier.
func (r *BunRepository) GetByID(ctx context.Context, table string, id uuid.UUID) (*content.Record, error) {
	record := &content.Record{}
	err := r.db.NewSelect().
		Model(record).
		ModelTableExpr("? AS r", bun.Ident(table)).
		Column(columnsFor(table)...).
		Where("r.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, wrapStoreError(err, table, id.String())
	}
	return record, nil
}

// FindIDBySlug reports whether a row exists for the slug. It is deliberately
// uncached: save-path callers rely on it running immediately before a write.
func (r *BunRepository) FindIDBySlug(ctx context.Context, table string, slug string) (uuid.UUID, bool, error) {
	var id uuid.UUID
	err := r.db.NewSelect().
		TableExpr("? AS r", bun.Ident(table)).
		Column("id").
		Where("r.slug = ?", slug).
		Limit(1).
		Scan(ctx, &id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, wrapStoreError(err, table, slug)
	}
	return id, true, nil
}

// List returns matching records for one table.
func (r *BunRepository) List(ctx context.Context, table string, opts ListOptions) ([]*content.Record, error) {
	records := []*content.Record{}
	q := r.db.NewSelect().
		Model(&records).
		ModelTableExpr("? AS r", bun.Ident(table)).
		Column(columnsFor(table)...)

	if opts.EventsBetween != nil {
		q = q.Where("r.event_date >= ?", opts.EventsBetween.From).
			Where("r.event_date <= ?", opts.EventsBetween.To)
	}
	if opts.OrderByEventDate {
		q = q.OrderExpr("r.event_date ASC")
	} else {
		q = q.OrderExpr("r.created_at DESC")
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, wrapStoreError(err, table, "")
	}
	return records, nil
}

// Count returns the number of rows matching the filter.
func (r *BunRepository) Count(ctx context.Context, table string, filter CountFilter) (int, error) {
	q := r.db.NewSelect().TableExpr("? AS r", bun.Ident(table))
	if filter.Published != nil {
		if *filter.Published {
			q = q.Where("r.published_at IS NOT NULL")
		} else {
			q = q.Where("r.published_at IS NULL")
		}
	}
	count, err := q.Count(ctx)
	if err != nil {
		return 0, wrapStoreError(err, table, "")
	}
	return count, nil
}

// DeleteByID removes one record. Missing rows are not an error.
func (r *BunRepository) DeleteByID(ctx context.Context, table string, id uuid.UUID) error {
	_, err := r.db.NewDelete().
		Table(table).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return wrapStoreError(err, table, id.String())
	}
	return nil
}

// DeleteBySlug removes the record matching the slug, when present.
func (r *BunRepository) DeleteBySlug(ctx context.Context, table string, slug string) error {
	_, err := r.db.NewDelete().
		Table(table).
		Where("slug = ?", slug).
		Exec(ctx)
	if err != nil {
		return wrapStoreError(err, table, slug)
	}
	return nil
}

func wrapStoreError(err error, table, key string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return &content.NotFoundError{Resource: table, Key: key}
	}
	wrapped := goerrors.Wrap(err, repository.CategoryDatabase, table+" repository error")
	if key != "" {
		return wrapped.WithMetadata(map[string]any{"key": key})
	}
	return wrapped
}
