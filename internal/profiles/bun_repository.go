package profiles

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewProfileRepository creates a repository for Profile entities.
func NewProfileRepository(db *bun.DB) repository.Repository[*Profile] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Profile]{
		NewRecord: func() *Profile { return &Profile{} },
		GetID: func(p *Profile) uuid.UUID {
			return p.ID
		},
		SetID: func(p *Profile, id uuid.UUID) {
			p.ID = id
		},
		GetIdentifier: func() string {
			return "email"
		},
		GetIdentifierValue: func(p *Profile) string {
			return p.Email
		},
	})
}

// BunRepository implements Repository on top of go-repository-bun.
type BunRepository struct {
	db   *bun.DB
	repo repository.Repository[*Profile]
}

// NewBunRepository constructs a repository bound to the provided database.
func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

// NewBunRepositoryWithCache constructs a repository with optional read caching.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunRepository {
	base := NewProfileRepository(db)
	return &BunRepository{
		db:   db,
		repo: wrapWithCache(base, cacheService, keySerializer),
	}
}

func wrapWithCache(base repository.Repository[*Profile], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[*Profile] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}

// GetByID fetches one profile by identifier.
func (r *BunRepository) GetByID(ctx context.Context, id uuid.UUID) (*Profile, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return record, nil
}

// List returns every profile, newest first.
func (r *BunRepository) List(ctx context.Context) ([]*Profile, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.created_at DESC")
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "")
	}
	return records, nil
}

// Count returns the number of profiles.
func (r *BunRepository) Count(ctx context.Context) (int, error) {
	count, err := r.db.NewSelect().Model((*Profile)(nil)).Count(ctx)
	if err != nil {
		return 0, mapRepositoryError(err, "")
	}
	return count, nil
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Key: key}
	}
	return fmt.Errorf("profiles repository error: %w", err)
}
