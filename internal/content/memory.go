package content

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-panel/content"
)

// MemoryRepository is an in-memory implementation for scaffolding and tests.
type MemoryRepository struct {
	mu     sync.RWMutex
	tables map[string]*memoryTable
}

type memoryTable struct {
	records   map[uuid.UUID]*content.Record
	slugIndex map[string]uuid.UUID
}

// NewMemoryRepository creates an empty in-memory content repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{tables: make(map[string]*memoryTable)}
}

func (m *MemoryRepository) table(name string) *memoryTable {
	tbl, ok := m.tables[name]
	if !ok {
		tbl = &memoryTable{
			records:   make(map[uuid.UUID]*content.Record),
			slugIndex: make(map[string]uuid.UUID),
		}
		m.tables[name] = tbl
	}
	return tbl
}

// Insert stores the supplied record.
func (m *MemoryRepository) Insert(_ context.Context, table string, record *content.Record) (*content.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tbl := m.table(table)
	copied := record.Clone()
	tbl.records[copied.ID] = copied
	tbl.slugIndex[copied.Slug] = copied.ID
	return copied.Clone(), nil
}

// Update replaces the stored record with the same id.
func (m *MemoryRepository) Update(_ context.Context, table string, record *content.Record) (*content.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tbl := m.table(table)
	existing, ok := tbl.records[record.ID]
	if !ok {
		return nil, &content.NotFoundError{Resource: table, Key: record.ID.String()}
	}
	delete(tbl.slugIndex, existing.Slug)

	copied := record.Clone()
	tbl.records[copied.ID] = copied
	tbl.slugIndex[copied.Slug] = copied.ID
	return copied.Clone(), nil
}

// GetByID retrieves a record by identifier.
func (m *MemoryRepository) GetByID(_ context.Context, table string, id uuid.UUID) (*content.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tbl := m.table(table)
	rec, ok := tbl.records[id]
	if !ok {
		return nil, &content.NotFoundError{Resource: table, Key: id.String()}
	}
	return rec.Clone(), nil
}

// FindIDBySlug reports whether a row exists for the slug.
func (m *MemoryRepository) FindIDBySlug(_ context.Context, table string, slug string) (uuid.UUID, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tbl := m.table(table)
	id, ok := tbl.slugIndex[slug]
	return id, ok, nil
}

// List returns matching records, newest created first unless event ordering
// is requested.
func (m *MemoryRepository) List(_ context.Context, table string, opts ListOptions) ([]*content.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tbl := m.table(table)
	out := make([]*content.Record, 0, len(tbl.records))
	for _, rec := range tbl.records {
		if opts.EventsBetween != nil {
			if rec.EventDate == nil {
				continue
			}
			if rec.EventDate.Before(opts.EventsBetween.From) || rec.EventDate.After(opts.EventsBetween.To) {
				continue
			}
		}
		out = append(out, rec.Clone())
	}

	if opts.OrderByEventDate {
		sort.Slice(out, func(i, j int) bool {
			left, right := out[i].EventDate, out[j].EventDate
			if left == nil || right == nil {
				return right == nil && left != nil
			}
			return left.Before(*right)
		})
	} else {
		sort.Slice(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}

	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

// Count returns the number of rows matching the filter.
func (m *MemoryRepository) Count(_ context.Context, table string, filter CountFilter) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tbl := m.table(table)
	if filter.Published == nil {
		return len(tbl.records), nil
	}
	count := 0
	for _, rec := range tbl.records {
		if rec.Published() == *filter.Published {
			count++
		}
	}
	return count, nil
}

// DeleteByID removes the record with the given identifier.
func (m *MemoryRepository) DeleteByID(_ context.Context, table string, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tbl := m.table(table)
	rec, ok := tbl.records[id]
	if !ok {
		return nil
	}
	delete(tbl.slugIndex, rec.Slug)
	delete(tbl.records, id)
	return nil
}

// DeleteBySlug removes the record matching the slug, when present.
func (m *MemoryRepository) DeleteBySlug(_ context.Context, table string, slug string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tbl := m.table(table)
	id, ok := tbl.slugIndex[slug]
	if !ok {
		return nil
	}
	delete(tbl.slugIndex, slug)
	delete(tbl.records, id)
	return nil
}
