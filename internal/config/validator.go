package config

import (
	"fmt"
	"strings"

	"GestureBoard/internal/logging"
)

// Validate checks the configuration and fills in defaults for optional
// fields left empty.
func Validate(cfg *Config) error {
	if _, err := cfg.Port(); err != nil {
		return fmt.Errorf("listen %q: %w", cfg.Listen, err)
	}

	if cfg.WSPath == "" {
		cfg.WSPath = "/ws"
	}
	if !strings.HasPrefix(cfg.WSPath, "/") {
		return fmt.Errorf("ws_path must start with '/'")
	}

	if cfg.SaveDir == "" {
		return fmt.Errorf("save_dir is required")
	}
	switch cfg.SaveFormat {
	case "":
		cfg.SaveFormat = "png"
	case "png", "pdf":
	default:
		return fmt.Errorf("save_format must be png or pdf, got %q", cfg.SaveFormat)
	}

	if cfg.JPEGQuality < 1 || cfg.JPEGQuality > 100 {
		return fmt.Errorf("jpeg_quality must be in [1,100], got %d", cfg.JPEGQuality)
	}
	if cfg.MaxSessions < 0 {
		return fmt.Errorf("max_sessions must be >= 0")
	}
	if cfg.ReadLimitBytes <= 0 {
		cfg.ReadLimitBytes = 64 << 10
	}

	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return err
	}

	if cfg.MDNS.Enabled && !strings.HasSuffix(cfg.MDNS.Service, "._tcp") {
		return fmt.Errorf("mdns.service must end in ._tcp, got %q", cfg.MDNS.Service)
	}
	return nil
}
