package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

var envVars = []string{
	"SUPPLYRANK_PORT", "SUPPLYRANK_METRICS_PORT", "SUPPLYRANK_ADMIN_TOKEN",
	"SUPPLYRANK_DATABASE_URL", "SUPPLYRANK_HERMES_URL", "SUPPLYRANK_RANKING_STRICT",
	"SUPPLYRANK_LOG_LEVEL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envVars {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8700 {
		t.Errorf("expected port 8700, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 8701 {
		t.Errorf("expected metrics port 8701, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Server.RateLimitPerMin != 120 {
		t.Errorf("expected rate limit 120, got %d", cfg.Server.RateLimitPerMin)
	}
	if cfg.Database.URL != "" {
		t.Errorf("expected empty database URL, got %s", cfg.Database.URL)
	}
	if cfg.Hermes.URL != "nats://localhost:4222" {
		t.Errorf("expected nats URL, got %s", cfg.Hermes.URL)
	}
	if cfg.Ranking.Strict {
		t.Error("expected lenient ranking by default")
	}
	if len(cfg.Ranking.DefaultJudgments) != 6 {
		t.Fatalf("expected 6 default judgments, got %d", len(cfg.Ranking.DefaultJudgments))
	}
	for i, v := range cfg.Ranking.DefaultJudgments {
		if v != 1 {
			t.Errorf("default judgment %d: expected 1, got %f", i, v)
		}
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got '%s'", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected log format 'json', got '%s'", cfg.Logging.Format)
	}
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
server:
  port: 9000
  admin_token: secret
database:
  url: postgres://localhost/supplyrank
ranking:
  default_judgments: [3, 5, 7, 3, 5, 3]
  strict: true
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 8701 {
		t.Errorf("expected default metrics port to survive, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Server.AdminToken != "secret" {
		t.Errorf("expected admin token 'secret', got '%s'", cfg.Server.AdminToken)
	}
	if cfg.Database.URL != "postgres://localhost/supplyrank" {
		t.Errorf("unexpected database URL %s", cfg.Database.URL)
	}
	if !cfg.Ranking.Strict {
		t.Error("expected strict ranking")
	}
	p, err := cfg.DefaultPairwise()
	if err != nil {
		t.Fatalf("DefaultPairwise failed: %v", err)
	}
	if p.At(0, 3) != 7 {
		t.Errorf("expected cost vs recyclability 7, got %f", p.At(0, 3))
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SUPPLYRANK_PORT", "9100")
	t.Setenv("SUPPLYRANK_METRICS_PORT", "9101")
	t.Setenv("SUPPLYRANK_ADMIN_TOKEN", "tok")
	t.Setenv("SUPPLYRANK_DATABASE_URL", "postgres://db/x")
	t.Setenv("SUPPLYRANK_HERMES_URL", "")
	t.Setenv("SUPPLYRANK_RANKING_STRICT", "true")
	t.Setenv("SUPPLYRANK_LOG_LEVEL", "warn")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9100 || cfg.Server.MetricsPort != 9101 {
		t.Errorf("expected ports 9100/9101, got %d/%d", cfg.Server.Port, cfg.Server.MetricsPort)
	}
	if cfg.Server.AdminToken != "tok" {
		t.Errorf("expected admin token 'tok', got '%s'", cfg.Server.AdminToken)
	}
	if cfg.Database.URL != "postgres://db/x" {
		t.Errorf("unexpected database URL %s", cfg.Database.URL)
	}
	if cfg.Hermes.URL != "" {
		t.Errorf("expected empty hermes URL to disable events, got %s", cfg.Hermes.URL)
	}
	if !cfg.Ranking.Strict {
		t.Error("expected strict ranking from env")
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected log level 'warn', got '%s'", cfg.Logging.Level)
	}
}

func TestLoadRejectsBadJudgments(t *testing.T) {
	clearEnv(t)

	cases := map[string]string{
		"out of range": "ranking:\n  default_judgments: [1, 1, 1, 1, 1, 12]\n",
		"wrong count":  "ranking:\n  default_judgments: [1, 1, 1]\n",
		"bad level":    "logging:\n  level: chatty\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected Load to fail")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"":      slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		if err != nil {
			t.Errorf("%q: unexpected error %v", in, err)
		}
		if got != want {
			t.Errorf("%q: expected %v, got %v", in, want, got)
		}
	}
}
