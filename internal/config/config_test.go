package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gestureboard.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
	if port, _ := cfg.Port(); port != 5000 {
		t.Errorf("Port() = %d, want 5000", port)
	}
}

func TestLoadFile(t *testing.T) {
	t.Setenv("PORT", "")
	path := writeConfig(t, `
listen: "127.0.0.1:7000"
save_dir: /tmp/canvases
save_format: pdf
jpeg_quality: 60
max_sessions: 8
allowed_origins: ["https://board.example"]
mdns:
  enabled: false
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := Default()
	want.Listen = "127.0.0.1:7000"
	want.SaveDir = "/tmp/canvases"
	want.SaveFormat = "pdf"
	want.JPEGQuality = 60
	want.MaxSessions = 8
	want.AllowedOrigins = []string{"https://board.example"}
	want.MDNS.Enabled = false
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadPortOverride(t *testing.T) {
	t.Setenv("PORT", "8123")
	cfg, err := Load(writeConfig(t, `listen: "0.0.0.0:7000"`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Listen != "0.0.0.0:8123" {
		t.Errorf("Listen = %q, want 0.0.0.0:8123", cfg.Listen)
	}
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv("PORT", "")
	tests := []struct {
		name, body, want string
	}{
		{"quality", "jpeg_quality: 0", "jpeg_quality"},
		{"format", "save_format: gif", "save_format"},
		{"listen", "listen: nowhere", "listen"},
		{"sessions", "max_sessions: -1", "max_sessions"},
		{"level", "log_level: loud", "log level"},
		{"yaml", "listen: [", "parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load() of missing file succeeded")
	}
}
