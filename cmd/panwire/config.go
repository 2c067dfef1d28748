package main

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/pan-protocol/pan/core/wire"
)

// panwire config.toml key mapping to codec settings.
type fileConfig struct {
	Observer       string `toml:"observer"`
	ValidateBinary bool   `toml:"validate_binary"`
	Defaults       struct {
		Spread int `toml:"spread"`
		TTL    int `toml:"ttl"`
		Flags  int `toml:"flags"`
	} `toml:"defaults"`
}

// toolConfig is the resolved runtime configuration for the tool.
type toolConfig struct {
	Observer       string
	ValidateBinary bool
	Defaults       wire.Config
}

func defaultToolConfig() toolConfig {
	return toolConfig{
		Observer: "slog",
		Defaults: wire.DefaultConfig(),
	}
}

// loadToolConfig overlays a TOML file onto the defaults. Only keys present
// in the file override.
func loadToolConfig(path string) (toolConfig, error) {
	cfg := defaultToolConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return toolConfig{}, fmt.Errorf("load panwire config: %w", err)
	}

	if meta.IsDefined("observer") {
		cfg.Observer = raw.Observer
	}
	if meta.IsDefined("validate_binary") {
		cfg.ValidateBinary = raw.ValidateBinary
	}
	if meta.IsDefined("defaults", "spread") {
		if raw.Defaults.Spread < 0 || raw.Defaults.Spread > 255 {
			return toolConfig{}, fmt.Errorf("defaults.spread out of range: %d", raw.Defaults.Spread)
		}
		cfg.Defaults.Spread = byte(raw.Defaults.Spread)
	}
	if meta.IsDefined("defaults", "ttl") {
		if raw.Defaults.TTL < 0 || raw.Defaults.TTL > 255 {
			return toolConfig{}, fmt.Errorf("defaults.ttl out of range: %d", raw.Defaults.TTL)
		}
		cfg.Defaults.TTL = byte(raw.Defaults.TTL)
	}
	if meta.IsDefined("defaults", "flags") {
		if raw.Defaults.Flags < 0 || raw.Defaults.Flags > 255 {
			return toolConfig{}, fmt.Errorf("defaults.flags out of range: %d", raw.Defaults.Flags)
		}
		cfg.Defaults.Flags = byte(raw.Defaults.Flags)
	}
	return cfg, nil
}
