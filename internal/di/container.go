package di

import (
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-panel/content"
	"github.com/goliatone/go-panel/internal/audit"
	"github.com/goliatone/go-panel/internal/audit/usersink"
	"github.com/goliatone/go-panel/internal/commands"
	auditcmd "github.com/goliatone/go-panel/internal/commands/audit"
	contentstore "github.com/goliatone/go-panel/internal/content"
	"github.com/goliatone/go-panel/internal/dashboard"
	"github.com/goliatone/go-panel/internal/logging"
	"github.com/goliatone/go-panel/internal/logging/console"
	"github.com/goliatone/go-panel/internal/logging/gologger"
	"github.com/goliatone/go-panel/internal/media"
	"github.com/goliatone/go-panel/internal/profiles"
	"github.com/goliatone/go-panel/internal/runtimeconfig"
	"github.com/goliatone/go-panel/pkg/interfaces"
)

// Container wires module dependencies. Without a database it falls back to
// in-memory repositories so hosts can embed the panel in tests and demos.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	auth           interfaces.AuthProvider
	objectStore    interfaces.ObjectStore

	bunDB         *bun.DB
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer
	clock         func() time.Time

	recorder     audit.Cleaner
	activitySink usersink.ActivitySink
	dispatcher   *audit.Dispatcher

	contentRepo contentstore.Repository
	profileRepo profiles.Repository

	contentSvc   content.Service
	profileSvc   profiles.Service
	mediaSvc     media.Service
	dashboardSvc dashboard.Service

	exportHandler  *auditcmd.ExportAuditHandler
	cleanupHandler *auditcmd.CleanupAuditHandler
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB binds the container to a relational database. Content, profile
// and audit storage switch from memory to bun-backed repositories.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithLoggerProvider overrides the logger provider derived from configuration.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithAuthProvider binds the host's authentication layer.
func WithAuthProvider(auth interfaces.AuthProvider) Option {
	return func(c *Container) {
		c.auth = auth
	}
}

// WithObjectStore binds the bucket backing the media library.
func WithObjectStore(store interfaces.ObjectStore) Option {
	return func(c *Container) {
		c.objectStore = store
	}
}

// WithAuditRecorder overrides the audit persistence layer.
func WithAuditRecorder(recorder audit.Cleaner) Option {
	return func(c *Container) {
		c.recorder = recorder
	}
}

// WithActivitySink mirrors audit events onto a go-users activity feed in
// addition to the panel's own recorder.
func WithActivitySink(sink usersink.ActivitySink) Option {
	return func(c *Container) {
		c.activitySink = sink
	}
}

// WithCache overrides the repository cache bindings.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithClock overrides the time source used by services.
func WithClock(clock func() time.Time) Option {
	return func(c *Container) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithContentService overrides the default content service binding.
func WithContentService(svc content.Service) Option {
	return func(c *Container) {
		c.contentSvc = svc
	}
}

// WithProfileService overrides the default profile service binding.
func WithProfileService(svc profiles.Service) Option {
	return func(c *Container) {
		c.profileSvc = svc
	}
}

// WithMediaService overrides the default media service binding.
func WithMediaService(svc media.Service) Option {
	return func(c *Container) {
		c.mediaSvc = svc
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		Config:      cfg,
		clock:       time.Now,
		contentRepo: contentstore.NewMemoryRepository(),
		profileRepo: profiles.NewMemoryRepository(),
		recorder:    audit.NewInMemoryRecorder(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.configureLogging()
	c.configureCacheDefaults()
	c.configureRepositories()
	c.configureAudit()
	c.configureServices()
	c.configureCommands()

	return c, nil
}

func (c *Container) configureLogging() {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return
	}

	logCfg := c.Config.Logging
	if logCfg.Provider == "gologger" {
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     logCfg.Level,
			Format:    logCfg.Format,
			AddSource: logCfg.AddSource,
			Focus:     logCfg.Focus,
		})
		if err == nil {
			c.loggerProvider = provider
			return
		}
	}

	minLevel := console.ParseLevel(logCfg.Level)
	c.loggerProvider = console.NewProvider(console.Options{MinLevel: &minLevel})
}

func (c *Container) configureCacheDefaults() {
	if c.bunDB == nil {
		return
	}

	if c.cacheService == nil {
		service, err := repocache.NewCacheService(repocache.DefaultConfig())
		if err == nil {
			c.cacheService = service
		}
	}
	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.bunDB == nil {
		return
	}

	c.contentRepo = contentstore.NewBunRepository(c.bunDB)
	c.profileRepo = profiles.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)

	if _, isMemory := c.recorder.(*audit.InMemoryRecorder); isMemory {
		c.recorder = audit.NewBunRecorder(c.bunDB)
	}
}

func (c *Container) configureAudit() {
	if !c.Config.Features.ActivityLog {
		return
	}

	sink := audit.Sink(c.recorder)
	if c.activitySink != nil {
		sink = audit.MultiSink(c.recorder, usersink.Hook{
			Sink:    c.activitySink,
			Channel: c.Config.Audit.Channel,
		})
	}

	dispatcherOpts := []audit.DispatcherOption{
		audit.WithLogger(logging.AuditLogger(c.loggerProvider)),
	}
	if c.Config.Audit.DispatchTimeout > 0 {
		dispatcherOpts = append(dispatcherOpts, audit.WithDispatchTimeout(c.Config.Audit.DispatchTimeout))
	}
	c.dispatcher = audit.NewDispatcher(sink, dispatcherOpts...)
}

func (c *Container) configureServices() {
	if c.mediaSvc == nil && c.Config.Features.MediaLibrary {
		store := c.objectStore
		if store == nil {
			storeOpts := []media.MemoryObjectStoreOption{}
			if c.Config.Media.BaseURL != "" {
				storeOpts = append(storeOpts, media.WithBaseURL(c.Config.Media.BaseURL))
			}
			store = media.NewMemoryObjectStore(storeOpts...)
			c.objectStore = store
		}
		mediaOpts := []media.ServiceOption{
			media.WithLogger(logging.MediaLogger(c.loggerProvider)),
		}
		if c.Config.Media.ListLimit > 0 {
			mediaOpts = append(mediaOpts, media.WithListLimit(c.Config.Media.ListLimit))
		}
		c.mediaSvc = media.NewService(store, mediaOpts...)
	}

	if c.contentSvc == nil {
		contentOpts := []contentstore.ServiceOption{
			contentstore.WithClock(c.clock),
			contentstore.WithLogger(logging.ContentLogger(c.loggerProvider)),
		}
		if c.dispatcher != nil {
			contentOpts = append(contentOpts, contentstore.WithAuditNotifier(c.dispatcher))
		}
		c.contentSvc = contentstore.NewService(c.contentRepo, contentOpts...)
	}

	if c.profileSvc == nil {
		c.profileSvc = profiles.NewService(c.profileRepo, c.auth)
	}

	if c.dashboardSvc == nil && c.Config.Features.Dashboard {
		dashboardOpts := []dashboard.ServiceOption{
			dashboard.WithClock(c.clock),
			dashboard.WithLogger(logging.DashboardLogger(c.loggerProvider)),
		}
		if c.mediaSvc != nil {
			dashboardOpts = append(dashboardOpts, dashboard.WithMedia(c.mediaSvc))
		}
		c.dashboardSvc = dashboard.NewService(c.contentRepo, c.profileRepo, dashboardOpts...)
	}
}

func (c *Container) configureCommands() {
	if !c.Config.Commands.Enabled || c.recorder == nil {
		return
	}

	logger := commands.CommandLogger(c.loggerProvider, "audit")
	c.exportHandler = auditcmd.NewExportAuditHandler(c.recorder, logger)

	cleanupOpts := []auditcmd.CleanupHandlerOption{}
	if cron := c.Config.Commands.CleanupAuditCron; cron != "" {
		cleanupOpts = append(cleanupOpts, auditcmd.CleanupWithCronExpression(cron))
	}
	c.cleanupHandler = auditcmd.NewCleanupAuditHandler(c.recorder, logger, cleanupOpts...)
}

// LoggerProvider exposes the resolved logger provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// AuthProvider exposes the bound auth provider.
func (c *Container) AuthProvider() interfaces.AuthProvider {
	return c.auth
}

// ObjectStore exposes the bucket backing the media library.
func (c *Container) ObjectStore() interfaces.ObjectStore {
	return c.objectStore
}

// ContentRepository exposes the active content storage binding.
func (c *Container) ContentRepository() contentstore.Repository {
	return c.contentRepo
}

// ProfileRepository exposes the active profile storage binding.
func (c *Container) ProfileRepository() profiles.Repository {
	return c.profileRepo
}

// AuditRecorder exposes the audit persistence layer.
func (c *Container) AuditRecorder() audit.Cleaner {
	return c.recorder
}

// AuditDispatcher exposes the background audit dispatcher. Nil when the
// activity log feature is disabled.
func (c *Container) AuditDispatcher() *audit.Dispatcher {
	return c.dispatcher
}

// ContentService returns the configured content service.
func (c *Container) ContentService() content.Service {
	return c.contentSvc
}

// ProfileService returns the configured profile service.
func (c *Container) ProfileService() profiles.Service {
	return c.profileSvc
}

// MediaService returns the configured media service. Nil when the media
// library feature is disabled.
func (c *Container) MediaService() media.Service {
	return c.mediaSvc
}

// DashboardService returns the configured dashboard service. Nil when the
// dashboard feature is disabled.
func (c *Container) DashboardService() dashboard.Service {
	return c.dashboardSvc
}

// ExportAuditHandler returns the audit export command handler. Nil unless
// commands are enabled.
func (c *Container) ExportAuditHandler() *auditcmd.ExportAuditHandler {
	return c.exportHandler
}

// CleanupAuditHandler returns the audit cleanup command handler. Nil unless
// commands are enabled.
func (c *Container) CleanupAuditHandler() *auditcmd.CleanupAuditHandler {
	return c.cleanupHandler
}
