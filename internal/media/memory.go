package media

import (
	"context"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-panel/pkg/interfaces"
)

// MemoryObjectStore keeps objects in process memory. It backs tests and the
// store-less development setup.
type MemoryObjectStore struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
	baseURL string
	clock   func() time.Time
}

type memoryObject struct {
	data        []byte
	contentType string
	createdAt   time.Time
	updatedAt   time.Time
}

// MemoryObjectStoreOption configures the in-memory store.
type MemoryObjectStoreOption func(*MemoryObjectStore)

// WithBaseURL sets the URL prefix returned by PublicURL.
func WithBaseURL(base string) MemoryObjectStoreOption {
	return func(s *MemoryObjectStore) {
		s.baseURL = strings.TrimRight(base, "/")
	}
}

// WithMemoryClock overrides the timestamp source.
func WithMemoryClock(clock func() time.Time) MemoryObjectStoreOption {
	return func(s *MemoryObjectStore) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// NewMemoryObjectStore constructs an empty store.
func NewMemoryObjectStore(opts ...MemoryObjectStoreOption) *MemoryObjectStore {
	s := &MemoryObjectStore{
		objects: map[string]memoryObject{},
		baseURL: "memory://media",
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryObjectStore) List(_ context.Context, prefix string, limit int) ([]interfaces.ObjectInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]interfaces.ObjectInfo, 0, len(s.objects))
	for objPath, obj := range s.objects {
		if prefix != "" && !strings.HasPrefix(objPath, prefix) {
			continue
		}
		infos = append(infos, interfaces.ObjectInfo{
			Name:        path.Base(objPath),
			Path:        objPath,
			Size:        int64(len(obj.data)),
			ContentType: obj.contentType,
			CreatedAt:   obj.createdAt,
			UpdatedAt:   obj.updatedAt,
		})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].CreatedAt.After(infos[j].CreatedAt)
	})
	if limit > 0 && len(infos) > limit {
		infos = infos[:limit]
	}
	return infos, nil
}

func (s *MemoryObjectStore) Upload(_ context.Context, objPath string, body io.Reader, contentType string, upsert bool) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	existing, ok := s.objects[objPath]
	if ok && !upsert {
		return fmt.Errorf("media: object %q already exists", objPath)
	}

	obj := memoryObject{
		data:        data,
		contentType: contentType,
		createdAt:   now,
		updatedAt:   now,
	}
	if ok {
		obj.createdAt = existing.createdAt
	}
	s.objects[objPath] = obj
	return nil
}

func (s *MemoryObjectStore) Remove(_ context.Context, paths ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, objPath := range paths {
		delete(s.objects, objPath)
	}
	return nil
}

func (s *MemoryObjectStore) PublicURL(objPath string) string {
	return s.baseURL + "/" + strings.TrimLeft(objPath, "/")
}

// Object returns the stored bytes for tests.
func (s *MemoryObjectStore) Object(objPath string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, ok := s.objects[objPath]
	if !ok {
		return nil, false
	}
	out := make([]byte, len(obj.data))
	copy(out, obj.data)
	return out, true
}

// Len reports how many objects the store holds.
func (s *MemoryObjectStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

var _ interfaces.ObjectStore = (*MemoryObjectStore)(nil)
