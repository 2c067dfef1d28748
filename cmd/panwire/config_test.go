package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "panwire.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadToolConfig(t *testing.T) {
	path := writeConfig(t, `
observer = "noop"
validate_binary = true

[defaults]
spread = 2
ttl = 5
`)

	cfg, err := loadToolConfig(path)
	if err != nil {
		t.Fatalf("loadToolConfig error: %v", err)
	}
	if cfg.Observer != "noop" {
		t.Errorf("Observer = %q, want noop", cfg.Observer)
	}
	if !cfg.ValidateBinary {
		t.Error("ValidateBinary = false, want true")
	}
	if cfg.Defaults.Spread != 2 || cfg.Defaults.TTL != 5 {
		t.Errorf("Defaults = %+v, want spread 2 ttl 5", cfg.Defaults)
	}
	if cfg.Defaults.Flags != 0 {
		t.Errorf("Flags = %d, want default 0", cfg.Defaults.Flags)
	}
}

func TestLoadToolConfig_PartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `observer = "noop"`)

	cfg, err := loadToolConfig(path)
	if err != nil {
		t.Fatalf("loadToolConfig error: %v", err)
	}
	if cfg.Defaults.TTL != 1 {
		t.Errorf("TTL = %d, want protocol default 1", cfg.Defaults.TTL)
	}
	if cfg.ValidateBinary {
		t.Error("ValidateBinary = true, want default false")
	}
}

func TestLoadToolConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "ttl out of range", content: "[defaults]\nttl = 300\n"},
		{name: "spread out of range", content: "[defaults]\nspread = -1\n"},
		{name: "bad toml", content: "observer = \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			if _, err := loadToolConfig(path); err == nil {
				t.Error("loadToolConfig succeeded, want error")
			}
		})
	}
}

func TestLoadToolConfig_MissingFile(t *testing.T) {
	if _, err := loadToolConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("loadToolConfig of missing file succeeded, want error")
	}
}
