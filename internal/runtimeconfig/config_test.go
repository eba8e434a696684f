package runtimeconfig

import (
	"errors"
	"testing"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}

func TestConfigValidate_RequiresLocalePair(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Locales.Secondary = ""
	if err := cfg.Validate(); !errors.Is(err, ErrLocalesRequired) {
		t.Fatalf("expected ErrLocalesRequired, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.Locales.Secondary = "EN"
	if err := cfg.Validate(); !errors.Is(err, ErrLocalesIdentical) {
		t.Fatalf("expected ErrLocalesIdentical, got %v", err)
	}
}

func TestConfigValidate_MediaRequiresFeature(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Features.MediaLibrary = false
	cfg.Media.BaseURL = "https://cdn.example.com"
	if err := cfg.Validate(); !errors.Is(err, ErrMediaFeatureRequired) {
		t.Fatalf("expected ErrMediaFeatureRequired, got %v", err)
	}
}

func TestConfigValidate_CronRequiresActivityLog(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Commands.AutoRegisterCron = true
	cfg.Features.ActivityLog = false
	if err := cfg.Validate(); !errors.Is(err, ErrCommandsCronRequiresAudit) {
		t.Fatalf("expected ErrCommandsCronRequiresAudit, got %v", err)
	}
}

func TestConfigValidate_LoggingProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = ""
	if err := cfg.Validate(); !errors.Is(err, ErrLoggingProviderRequired) {
		t.Fatalf("expected ErrLoggingProviderRequired, got %v", err)
	}

	cfg.Logging.Provider = "syslog"
	if err := cfg.Validate(); !errors.Is(err, ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}

	cfg.Logging.Provider = "gologger"
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); !errors.Is(err, ErrLoggingLevelInvalid) {
		t.Fatalf("expected ErrLoggingLevelInvalid, got %v", err)
	}

	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "yaml"
	if err := cfg.Validate(); !errors.Is(err, ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}

	cfg.Logging.Format = "json"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid gologger config rejected: %v", err)
	}
}
