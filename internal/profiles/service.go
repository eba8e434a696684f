package profiles

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-panel/pkg/interfaces"
)

var (
	ErrProfileIDRequired = errors.New("profiles: profile id required")
	ErrNoCurrentUser     = errors.New("profiles: no authenticated user in context")
)

// NotFoundError represents missing profiles from repository lookups.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	if e == nil || e.Key == "" {
		return "profile not found"
	}
	return fmt.Sprintf("profile %q not found", e.Key)
}

// Service exposes profile lookups for the admin surface.
type Service interface {
	List(ctx context.Context) ([]*Profile, error)
	Get(ctx context.Context, id uuid.UUID) (*Profile, error)
	// Current resolves the acting user's profile through the host's auth
	// provider. The role on the returned profile drives navigation and
	// media-library access checks.
	Current(ctx context.Context) (*Profile, error)
}

type service struct {
	repo Repository
	auth interfaces.AuthProvider
}

// NewService constructs a profile service.
func NewService(repo Repository, auth interfaces.AuthProvider) Service {
	return &service{repo: repo, auth: auth}
}

func (s *service) List(ctx context.Context) ([]*Profile, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Profile, error) {
	if id == uuid.Nil {
		return nil, ErrProfileIDRequired
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) Current(ctx context.Context) (*Profile, error) {
	if s.auth == nil {
		return nil, ErrNoCurrentUser
	}
	raw, err := s.auth.CurrentUserID(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoCurrentUser, err)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoCurrentUser, err)
	}
	return s.repo.GetByID(ctx, id)
}

// MemoryRepository is an in-memory implementation for scaffolding and tests.
type MemoryRepository struct {
	mu       sync.RWMutex
	profiles map[uuid.UUID]*Profile
}

// NewMemoryRepository creates an empty in-memory profile repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{profiles: make(map[uuid.UUID]*Profile)}
}

// Put stores or replaces a profile.
func (m *MemoryRepository) Put(profile *Profile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *profile
	m.profiles[profile.ID] = &copied
}

// GetByID retrieves a profile by identifier.
func (m *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	profile, ok := m.profiles[id]
	if !ok {
		return nil, &NotFoundError{Key: id.String()}
	}
	copied := *profile
	return &copied, nil
}

// List returns every profile, newest first.
func (m *MemoryRepository) List(_ context.Context) ([]*Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Profile, 0, len(m.profiles))
	for _, profile := range m.profiles {
		copied := *profile
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Count returns the number of stored profiles.
func (m *MemoryRepository) Count(context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.profiles), nil
}
