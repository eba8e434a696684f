package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrLocalesRequired indicates the locale pair is incomplete.
var ErrLocalesRequired = errors.New("panel config: primary and secondary locales are required")

// ErrLocalesIdentical rejects a secondary locale equal to the primary.
var ErrLocalesIdentical = errors.New("panel config: secondary locale must differ from primary")

// ErrMediaFeatureRequired indicates inconsistent media configuration.
var ErrMediaFeatureRequired = errors.New("panel config: media library feature must be enabled to configure media")
var ErrMediaListLimitInvalid = errors.New("panel config: media list limit must be zero or positive")
var ErrAuditTimeoutInvalid = errors.New("panel config: audit dispatch timeout must be zero or positive")
var ErrCommandsCronRequiresAudit = errors.New("panel config: audit cleanup cron requires the activity log to be enabled")
var ErrLoggingProviderRequired = errors.New("panel config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("panel config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("panel config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("panel config: logging format is invalid")

// Config aggregates feature flags and adapter bindings for the panel module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Enabled  bool
	Locales  LocaleConfig
	Storage  StorageConfig
	Media    MediaConfig
	Audit    AuditConfig
	Commands CommandsConfig
	Features Features
	Logging  LoggingConfig
}

// LocaleConfig names the authoritative locale and its translated counterpart.
type LocaleConfig struct {
	Primary   string
	Secondary string
}

// StorageConfig lists identifiers for storage-related dependencies.
type StorageConfig struct {
	Provider string
}

// MediaConfig captures media library behaviour.
type MediaConfig struct {
	BaseURL   string
	Folder    string
	ListLimit int
}

// AuditConfig captures activity log behaviour.
type AuditConfig struct {
	Channel         string
	DispatchTimeout time.Duration
}

// CommandsConfig captures optional command-layer behaviour.
type CommandsConfig struct {
	Enabled          bool
	AutoRegisterCron bool
	CleanupAuditCron string
}

// Features toggles module functionality.
type Features struct {
	MediaLibrary bool
	ActivityLog  bool
	Dashboard    bool
	Logger       bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns opinionated defaults for an embedded panel.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Locales: LocaleConfig{
			Primary:   "en",
			Secondary: "az",
		},
		Storage: StorageConfig{
			Provider: "bun",
		},
		Media: MediaConfig{
			Folder:    "media",
			ListLimit: 100,
		},
		Audit: AuditConfig{
			Channel:         "panel",
			DispatchTimeout: 10 * time.Second,
		},
		Commands: CommandsConfig{
			CleanupAuditCron: "@daily",
		},
		Features: Features{
			MediaLibrary: true,
			ActivityLog:  true,
			Dashboard:    true,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	primary := strings.TrimSpace(cfg.Locales.Primary)
	secondary := strings.TrimSpace(cfg.Locales.Secondary)
	if primary == "" || secondary == "" {
		return ErrLocalesRequired
	}
	if strings.EqualFold(primary, secondary) {
		return ErrLocalesIdentical
	}
	if !cfg.Features.MediaLibrary {
		if strings.TrimSpace(cfg.Media.BaseURL) != "" {
			return ErrMediaFeatureRequired
		}
	}
	if cfg.Media.ListLimit < 0 {
		return ErrMediaListLimitInvalid
	}
	if cfg.Audit.DispatchTimeout < 0 {
		return ErrAuditTimeoutInvalid
	}
	if cfg.Commands.AutoRegisterCron && !cfg.Features.ActivityLog {
		return ErrCommandsCronRequiresAudit
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
