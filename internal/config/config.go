package config

import (
	"fmt"
	"net"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the complete GestureBoard host configuration.
type Config struct {
	Listen         string     `yaml:"listen"`
	WSPath         string     `yaml:"ws_path"`
	SaveDir        string     `yaml:"save_dir"`
	SaveFormat     string     `yaml:"save_format"`  // png or pdf
	JPEGQuality    int        `yaml:"jpeg_quality"` // quality of streamed frames, 1-100
	MaxSessions    int        `yaml:"max_sessions"` // 0 = unlimited
	ReadLimitBytes int64      `yaml:"read_limit_bytes"`
	LogLevel       string     `yaml:"log_level"`
	AllowedOrigins []string   `yaml:"allowed_origins"` // empty = any origin
	MDNS           MDNSConfig `yaml:"mdns"`
}

// MDNSConfig controls service advertisement on the local network.
type MDNSConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Service  string `yaml:"service"`
	Instance string `yaml:"instance"` // default: hostname
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Listen:         ":5000",
		WSPath:         "/ws",
		SaveDir:        "saved_canvases",
		SaveFormat:     "png",
		JPEGQuality:    80,
		ReadLimitBytes: 64 << 10,
		LogLevel:       "info",
		MDNS: MDNSConfig{
			Enabled: true,
			Service: "_gestureboard._tcp",
		},
	}
}

// Load reads and parses a YAML configuration file on top of the defaults.
// An empty path yields the defaults. The PORT environment variable, when
// set, replaces the port of Listen.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if port := os.Getenv("PORT"); port != "" {
		host, _, err := net.SplitHostPort(cfg.Listen)
		if err != nil {
			host = ""
		}
		cfg.Listen = net.JoinHostPort(host, port)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Port returns the numeric port of Listen.
func (c *Config) Port() (int, error) {
	_, p, err := net.SplitHostPort(c.Listen)
	if err != nil {
		return 0, err
	}
	port, err := net.LookupPort("tcp", p)
	if err != nil {
		return 0, err
	}
	return port, nil
}
