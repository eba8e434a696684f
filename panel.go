package panel

import (
	"github.com/goliatone/go-panel/content"
	"github.com/goliatone/go-panel/internal/audit"
	auditcmd "github.com/goliatone/go-panel/internal/commands/audit"
	"github.com/goliatone/go-panel/internal/dashboard"
	"github.com/goliatone/go-panel/internal/di"
	"github.com/goliatone/go-panel/internal/navigation"
	"github.com/goliatone/go-panel/internal/profiles"
	"github.com/goliatone/go-panel/media"
)

// ContentService exports the localized content service contract.
type ContentService = content.Service

// ProfileService exports the profile directory contract.
type ProfileService = profiles.Service

// MediaService exports the media library contract.
type MediaService = media.Service

// DashboardService exports the dashboard aggregation contract.
type DashboardService = dashboard.Service

// AuditDispatcher exports the background audit dispatcher.
type AuditDispatcher = audit.Dispatcher

// AuditEvent exports the audit event shape.
type AuditEvent = audit.Event

// AuditRecorder exports the audit persistence contract.
type AuditRecorder = audit.Cleaner

// Role exports the admin role enumeration.
type Role = profiles.Role

// Profile exports the profile record.
type Profile = profiles.Profile

// NavigationSection exports one sidebar section.
type NavigationSection = navigation.Section

// NavigationItem exports one sidebar entry.
type NavigationItem = navigation.Item

// Module represents the top level admin panel runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a panel module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Content returns the configured content service.
func (m *Module) Content() ContentService {
	return m.container.ContentService()
}

// Profiles returns the configured profile service.
func (m *Module) Profiles() ProfileService {
	return m.container.ProfileService()
}

// Media returns the configured media service. Nil when the media library
// feature is disabled.
func (m *Module) Media() MediaService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.MediaService()
}

// Dashboard returns the configured dashboard service. Nil when the dashboard
// feature is disabled.
func (m *Module) Dashboard() DashboardService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.DashboardService()
}

// Audit returns the background audit dispatcher. Nil when the activity log
// feature is disabled.
func (m *Module) Audit() *AuditDispatcher {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.AuditDispatcher()
}

// AuditLog returns the audit persistence layer backing the activity feed.
func (m *Module) AuditLog() AuditRecorder {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.AuditRecorder()
}

// Navigation returns the sidebar sections visible to the given role.
func (m *Module) Navigation(role Role) []NavigationSection {
	return navigation.Build(role)
}

// ExportAudit returns the audit export command handler. Nil unless commands
// are enabled.
func (m *Module) ExportAudit() *auditcmd.ExportAuditHandler {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.ExportAuditHandler()
}

// CleanupAudit returns the audit cleanup command handler. Nil unless commands
// are enabled.
func (m *Module) CleanupAudit() *auditcmd.CleanupAuditHandler {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.CleanupAuditHandler()
}

// Shutdown flushes in-flight audit deliveries. Hosts should call it before
// process exit so fire-and-forget events are not lost.
func (m *Module) Shutdown() {
	if dispatcher := m.Audit(); dispatcher != nil {
		dispatcher.Flush()
	}
}
