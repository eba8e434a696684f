package profiles

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

type stubAuth struct {
	userID string
	err    error
}

func (a stubAuth) CurrentUserID(context.Context) (string, error) {
	return a.userID, a.err
}

func TestRolePermissions(t *testing.T) {
	if RoleUser.CanManageMedia() {
		t.Fatalf("user must not manage media")
	}
	if !RoleAdmin.CanManageMedia() || !RoleSuperadmin.CanManageMedia() {
		t.Fatalf("admin and superadmin manage media")
	}
	if RoleAdmin.CanViewActivityLogs() {
		t.Fatalf("admin must not view activity logs")
	}
	if !RoleSuperadmin.CanViewActivityLogs() {
		t.Fatalf("superadmin views activity logs")
	}
	if Role("owner").Valid() {
		t.Fatalf("unknown role must not validate")
	}
}

func TestServiceCurrentResolvesAuthenticatedProfile(t *testing.T) {
	repo := NewMemoryRepository()
	id := uuid.New()
	repo.Put(&Profile{ID: id, Email: "admin@example.com", Role: RoleAdmin, CreatedAt: time.Now()})

	svc := NewService(repo, stubAuth{userID: id.String()})
	profile, err := svc.Current(context.Background())
	if err != nil {
		t.Fatalf("Current returned error: %v", err)
	}
	if profile.Email != "admin@example.com" {
		t.Fatalf("unexpected profile %q", profile.Email)
	}
}

func TestServiceCurrentWithoutAuth(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil)
	if _, err := svc.Current(context.Background()); !errors.Is(err, ErrNoCurrentUser) {
		t.Fatalf("expected ErrNoCurrentUser, got %v", err)
	}
}

func TestServiceCurrentAuthFailure(t *testing.T) {
	svc := NewService(NewMemoryRepository(), stubAuth{err: errors.New("session expired")})
	if _, err := svc.Current(context.Background()); !errors.Is(err, ErrNoCurrentUser) {
		t.Fatalf("expected ErrNoCurrentUser, got %v", err)
	}

	svc = NewService(NewMemoryRepository(), stubAuth{userID: "not-a-uuid"})
	if _, err := svc.Current(context.Background()); !errors.Is(err, ErrNoCurrentUser) {
		t.Fatalf("expected ErrNoCurrentUser for malformed id, got %v", err)
	}
}

func TestServiceGetValidatesID(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil)
	if _, err := svc.Get(context.Background(), uuid.Nil); !errors.Is(err, ErrProfileIDRequired) {
		t.Fatalf("expected ErrProfileIDRequired, got %v", err)
	}
}

func TestMemoryRepositoryListNewestFirst(t *testing.T) {
	repo := NewMemoryRepository()
	older := &Profile{ID: uuid.New(), Email: "a@example.com", CreatedAt: time.Now().Add(-time.Hour)}
	newer := &Profile{ID: uuid.New(), Email: "b@example.com", CreatedAt: time.Now()}
	repo.Put(older)
	repo.Put(newer)

	listed, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(listed) != 2 || listed[0].Email != "b@example.com" {
		t.Fatalf("expected newest first, got %+v", listed)
	}

	count, err := repo.Count(context.Background())
	if err != nil || count != 2 {
		t.Fatalf("expected count 2, got %d (%v)", count, err)
	}
}

func TestMemoryRepositoryMissingProfile(t *testing.T) {
	repo := NewMemoryRepository()
	_, err := repo.GetByID(context.Background(), uuid.New())
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
