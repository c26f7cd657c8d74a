// Package config loads the service configuration from a YAML or JSON file
// with optional environment overrides.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/askilde/dispatchdesk/core/metrics"
	"github.com/askilde/dispatchdesk/infra/backend"
	"github.com/askilde/dispatchdesk/infra/notify"
)

// HistoryConfig locates the assignment journal.
type HistoryConfig struct {
	Path string `json:"path"`
}

func (c *HistoryConfig) SetDefaults() {
	if c.Path == "" {
		c.Path = "assignments.jsonl"
	}
}

// APIConfig holds the history API listener settings.
type APIConfig struct {
	Enabled bool   `json:"enabled"`
	Addr    string `json:"addr"`
	Token   string `json:"token"`
}

func (c *APIConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}

type Config struct {
	Backend  backend.Config `json:"backend"`
	Metrics  metrics.Config `json:"metrics"`
	Notifier notify.Config  `json:"notifier"`
	History  HistoryConfig  `json:"history"`
	API      APIConfig      `json:"api"`
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("DD_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "dd_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Backend.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.Notifier.SetDefaults()
	cfg.History.SetDefaults()
	cfg.API.SetDefaults()
	if err := cfg.Backend.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Notifier.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
