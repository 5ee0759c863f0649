// Package config loads service settings from defaults, an optional YAML file
// and the environment, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// ConfigPathEnvVar overrides where the YAML file is read from.
const ConfigPathEnvVar = "CONFIG_PATH"

var defaultConfigPaths = []string{"config.yaml", "config.yml"}

type Config struct {
	Server     ServerConfig   `koanf:"server"`
	Data       DataConfig     `koanf:"data"`
	Chart      ChartConfig    `koanf:"chart"`
	Logging    LoggingConfig  `koanf:"logging"`
	Security   SecurityConfig `koanf:"security"`
	Migrations string         `koanf:"migrations_dir" validate:"required"`
}

type ServerConfig struct {
	Addr         string        `koanf:"addr" validate:"required"`
	ReadTimeout  time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"gt=0"`
	IdleTimeout  time.Duration `koanf:"idle_timeout" validate:"gt=0"`
}

// DataConfig selects where titles are read from. CSVPath is required in file
// mode and DSN in postgres mode; the import CLI needs both.
type DataConfig struct {
	Source  string `koanf:"source" validate:"oneof=file postgres"`
	CSVPath string `koanf:"csv_path" validate:"required_if=Source file"`
	DSN     string `koanf:"dsn" validate:"required_if=Source postgres"`
}

type ChartConfig struct {
	StaticDir string `koanf:"static_dir" validate:"required"`
	Width     int    `koanf:"width" validate:"min=100,max=4096"`
	Height    int    `koanf:"height" validate:"min=100,max=4096"`
	TopGenres int    `koanf:"top_genres" validate:"min=1"`
}

type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
}

type SecurityConfig struct {
	CORSOrigins    []string `koanf:"cors_origins"`
	RateLimitRPS   float64  `koanf:"rate_limit_rps" validate:"gte=0"`
	RateLimitBurst int      `koanf:"rate_limit_burst" validate:"gte=0"`
	TrustedProxies []string `koanf:"trusted_proxies" validate:"dive,ip"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Data: DataConfig{
			Source:  SourceFile,
			CSVPath: "data/netflix_titles.csv",
		},
		Chart: ChartConfig{
			StaticDir: "static/charts",
			Width:     1024,
			Height:    512,
			TopGenres: 10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Security: SecurityConfig{
			CORSOrigins:    []string{"*"},
			RateLimitRPS:   10,
			RateLimitBurst: 20,
		},
		Migrations: "db/migrations",
	}
}

var envMappings = map[string]string{
	"app_addr":         "server.addr",
	"read_timeout":     "server.read_timeout",
	"write_timeout":    "server.write_timeout",
	"idle_timeout":     "server.idle_timeout",
	"data_source":      "data.source",
	"data_csv_path":    "data.csv_path",
	"db_dsn":           "data.dsn",
	"static_dir":       "chart.static_dir",
	"chart_width":      "chart.width",
	"chart_height":     "chart.height",
	"top_genres":       "chart.top_genres",
	"log_level":        "logging.level",
	"log_format":       "logging.format",
	"cors_origins":     "security.cors_origins",
	"rate_limit_rps":   "security.rate_limit_rps",
	"rate_limit_burst": "security.rate_limit_burst",
	"trusted_proxies":  "security.trusted_proxies",
	"migrations_dir":   "migrations_dir",
}

// Unmapped variables return "" and are skipped.
func envTransform(key string) string {
	return envMappings[strings.ToLower(key)]
}

var sliceConfigPaths = []string{"security.cors_origins", "security.trusted_proxies"}

// LoadEnvFiles reads .env and .env.local into the process environment.
func LoadEnvFiles() {
	// Do not override environment provided by the runtime (e.g. Docker).
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// Load builds the configuration from struct defaults, then the YAML file (if
// any), then environment variables, and validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	if err := splitSliceFields(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		return p
	}
	for _, p := range defaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// splitSliceFields turns comma separated env values into string slices.
func splitSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		s, ok := k.Get(path).(string)
		if !ok {
			continue
		}
		parts := strings.Split(s, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("set %s: %w", path, err)
		}
	}
	return nil
}

var validate = validator.New()

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// RedactedDSN hides credentials so the DSN can be logged.
func (c *Config) RedactedDSN() string {
	return RedactDSN(c.Data.DSN)
}

func RedactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
