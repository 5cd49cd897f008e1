package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/MikeSquared-Agency/SupplyRank/internal/scoring"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Hermes   HermesConfig   `yaml:"hermes"`
	Ranking  RankingConfig  `yaml:"ranking"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port            int    `yaml:"port"`
	MetricsPort     int    `yaml:"metrics_port"`
	AdminToken      string `yaml:"admin_token"`
	RateLimitPerMin int    `yaml:"rate_limit_per_min"`
}

// DatabaseConfig selects the record store. An empty URL keeps records in memory.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type HermesConfig struct {
	URL string `yaml:"url"`
}

// RankingConfig holds the defaults applied when a ranking request carries no judgments.
type RankingConfig struct {
	// DefaultJudgments is the upper triangle of the pairwise matrix in row-major
	// order: cost/emissions, cost/deforestation, cost/recyclability,
	// emissions/deforestation, emissions/recyclability, deforestation/recyclability.
	DefaultJudgments []float64 `yaml:"default_judgments"`
	Strict           bool      `yaml:"strict"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultPairwise builds the pairwise matrix from the configured default judgments.
func (c *Config) DefaultPairwise() (scoring.PairwiseMatrix, error) {
	return scoring.NewPairwiseMatrix(c.Ranking.DefaultJudgments)
}

// Validate checks values that cannot be corrected silently.
func (c *Config) Validate() error {
	p, err := c.DefaultPairwise()
	if err != nil {
		return fmt.Errorf("ranking.default_judgments: %w", err)
	}
	if p.N() != len(scoring.SupplierCriteria) {
		return fmt.Errorf("ranking.default_judgments: need %d values, got %d",
			len(scoring.SupplierCriteria)*(len(scoring.SupplierCriteria)-1)/2, len(c.Ranking.DefaultJudgments))
	}
	if _, err := ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a config level name to a slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            8700,
			MetricsPort:     8701,
			RateLimitPerMin: 120,
		},
		Hermes: HermesConfig{
			URL: "nats://localhost:4222",
		},
		Ranking: RankingConfig{
			DefaultJudgments: []float64{1, 1, 1, 1, 1, 1},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SUPPLYRANK_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("SUPPLYRANK_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("SUPPLYRANK_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("SUPPLYRANK_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v, ok := os.LookupEnv("SUPPLYRANK_HERMES_URL"); ok {
		cfg.Hermes.URL = v
	}
	if v := os.Getenv("SUPPLYRANK_RANKING_STRICT"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Ranking.Strict = b
		}
	}
	if v := os.Getenv("SUPPLYRANK_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
