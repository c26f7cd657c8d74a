package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `backend:
  base_url: "https://dispatch.example.com/api"
  agreements_base_url: "https://agreements.example.com/api"
  timeout_seconds: 5
metrics:
  prometheus_enabled: true
  prometheus_port: ":9100"
notifier:
  enabled: true
  broker: "tcp://localhost:1883"
  topic: "ops/notes"
  qos: 1
history:
  path: "journal.jsonl"
api:
  enabled: true
  addr: ":8088"
  token: "tok"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"base_url", cfg.Backend.BaseURL, "https://dispatch.example.com/api"},
		{"agreements_base_url", cfg.Backend.AgreementsBaseURL, "https://agreements.example.com/api"},
		{"timeout_seconds", cfg.Backend.TimeoutSeconds, 5},
		{"prometheus_enabled", cfg.Metrics.PrometheusEnabled, true},
		{"prometheus_port", cfg.Metrics.PrometheusPort, ":9100"},
		{"notifier.broker", cfg.Notifier.Broker, "tcp://localhost:1883"},
		{"notifier.topic", cfg.Notifier.Topic, "ops/notes"},
		{"history.path", cfg.History.Path, "journal.jsonl"},
		{"api.addr", cfg.API.Addr, ":8088"},
		{"api.token", cfg.API.Token, "tok"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s mismatch: %v", c.name, c.got)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	data := `{"backend": {"base_url": "http://localhost:3000"}}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Backend.TimeoutSeconds != 10 {
		t.Errorf("timeout default: %d", cfg.Backend.TimeoutSeconds)
	}
	if cfg.Backend.AgreementsBaseURL != "http://localhost:3000" {
		t.Errorf("agreements default: %s", cfg.Backend.AgreementsBaseURL)
	}
	if cfg.Metrics.PrometheusPort != ":2112" {
		t.Errorf("prometheus port default: %s", cfg.Metrics.PrometheusPort)
	}
	if cfg.History.Path != "assignments.jsonl" {
		t.Errorf("history path default: %s", cfg.History.Path)
	}
	if cfg.API.Addr != ":8080" {
		t.Errorf("api addr default: %s", cfg.API.Addr)
	}
}

func TestLoadRejectsMissingBaseURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("metrics: {}\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	if _, err := Load("config.toml"); err == nil {
		t.Fatal("expected format error")
	}
}

func TestEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := "backend:\n  base_url: \"http://localhost:3000\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("DD_BACKEND__BASE_URL", "http://override:3000")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Backend.BaseURL != "http://override:3000" {
		t.Errorf("env override not applied: %s", cfg.Backend.BaseURL)
	}
}
