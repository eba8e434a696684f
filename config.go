package panel

import "github.com/goliatone/go-panel/internal/runtimeconfig"

var (
	ErrLocalesRequired           = runtimeconfig.ErrLocalesRequired
	ErrLocalesIdentical          = runtimeconfig.ErrLocalesIdentical
	ErrMediaFeatureRequired      = runtimeconfig.ErrMediaFeatureRequired
	ErrMediaListLimitInvalid     = runtimeconfig.ErrMediaListLimitInvalid
	ErrAuditTimeoutInvalid       = runtimeconfig.ErrAuditTimeoutInvalid
	ErrCommandsCronRequiresAudit = runtimeconfig.ErrCommandsCronRequiresAudit
	ErrLoggingProviderRequired   = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown    = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid       = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid      = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config         = runtimeconfig.Config
	LocaleConfig   = runtimeconfig.LocaleConfig
	StorageConfig  = runtimeconfig.StorageConfig
	MediaConfig    = runtimeconfig.MediaConfig
	AuditConfig    = runtimeconfig.AuditConfig
	CommandsConfig = runtimeconfig.CommandsConfig
	Features       = runtimeconfig.Features
	LoggingConfig  = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
