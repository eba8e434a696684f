package media

import (
	"context"
	"errors"
	"io"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-panel/internal/logging"
	"github.com/goliatone/go-panel/pkg/interfaces"
)

var (
	ErrStoreUnavailable = errors.New("media: object store not configured")
	ErrNameRequired     = errors.New("media: object name required")
)

const defaultListLimit = 100

// Service exposes the media library backed by the hosted bucket. Entries
// without a file extension (bucket folder placeholders) are hidden from
// listings; URLs are passed through untouched.
type Service interface {
	List(ctx context.Context) ([]Asset, error)
	Upload(ctx context.Context, folder, name string, body io.Reader, contentType string) (*Asset, error)
	Replace(ctx context.Context, assetPath string, body io.Reader, contentType string) (*Asset, error)
	Remove(ctx context.Context, assetPath string) error
	PublicURL(assetPath string) string
}

// Asset describes one stored object together with its public URL.
type Asset struct {
	Name        string
	Path        string
	URL         string
	Size        int64
	ContentType string
	CreatedAt   time.Time
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithListLimit caps how many objects a listing returns.
func WithListLimit(limit int) ServiceOption {
	return func(s *service) {
		if limit > 0 {
			s.listLimit = limit
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
	store     interfaces.ObjectStore
	logger    interfaces.Logger
	listLimit int
}

// NewService constructs a media service around the provided bucket.
func NewService(store interfaces.ObjectStore, opts ...ServiceOption) Service {
	s := &service{
		store:     store,
		logger:    logging.NoOp(),
		listLimit: defaultListLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) List(ctx context.Context) ([]Asset, error) {
	if s.store == nil {
		return nil, ErrStoreUnavailable
	}
	infos, err := s.store.List(ctx, "", s.listLimit)
	if err != nil {
		return nil, err
	}

	assets := make([]Asset, 0, len(infos))
	for _, info := range infos {
		if !strings.Contains(info.Name, ".") {
			continue
		}
		assets = append(assets, s.toAsset(info))
	}
	sort.Slice(assets, func(i, j int) bool {
		return assets[i].CreatedAt.After(assets[j].CreatedAt)
	})
	return assets, nil
}

func (s *service) Upload(ctx context.Context, folder, name string, body io.Reader, contentType string) (*Asset, error) {
	if s.store == nil {
		return nil, ErrStoreUnavailable
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	assetPath := name
	if folder = strings.Trim(folder, "/"); folder != "" {
		assetPath = path.Join(folder, name)
	}
	if err := s.store.Upload(ctx, assetPath, body, contentType, false); err != nil {
		return nil, err
	}
	s.logger.Debug("media.upload", "path", assetPath, "content_type", contentType)
	asset := &Asset{
		Name:        name,
		Path:        assetPath,
		URL:         s.store.PublicURL(assetPath),
		ContentType: contentType,
	}
	return asset, nil
}

func (s *service) Replace(ctx context.Context, assetPath string, body io.Reader, contentType string) (*Asset, error) {
	if s.store == nil {
		return nil, ErrStoreUnavailable
	}
	assetPath = strings.Trim(strings.TrimSpace(assetPath), "/")
	if assetPath == "" {
		return nil, ErrNameRequired
	}
	if err := s.store.Upload(ctx, assetPath, body, contentType, true); err != nil {
		return nil, err
	}
	return &Asset{
		Name:        path.Base(assetPath),
		Path:        assetPath,
		URL:         s.store.PublicURL(assetPath),
		ContentType: contentType,
	}, nil
}

func (s *service) Remove(ctx context.Context, assetPath string) error {
	if s.store == nil {
		return ErrStoreUnavailable
	}
	return s.store.Remove(ctx, assetPath)
}

func (s *service) PublicURL(assetPath string) string {
	if s.store == nil {
		return ""
	}
	return s.store.PublicURL(assetPath)
}

func (s *service) toAsset(info interfaces.ObjectInfo) Asset {
	assetPath := info.Path
	if assetPath == "" {
		assetPath = info.Name
	}
	return Asset{
		Name:        info.Name,
		Path:        assetPath,
		URL:         s.store.PublicURL(assetPath),
		Size:        info.Size,
		ContentType: info.ContentType,
		CreatedAt:   info.CreatedAt,
	}
}
