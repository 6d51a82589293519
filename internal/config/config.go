package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	envPrefix      = "DOCUT"
	defaultEnvFile = ".env"
)

// Config holds the CLI configuration loaded from flags, environment variables and .env files.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	LogLevel string `mapstructure:"log_level"`

	BaseURL            string        `mapstructure:"base_url"`
	APIKey             string        `mapstructure:"api_key"`
	UserAgent          string        `mapstructure:"user_agent"`
	HTTPTimeoutSeconds int64         `mapstructure:"http_timeout_seconds"`
	HTTPTimeout        time.Duration `mapstructure:"-"`

	PublishersFile string `mapstructure:"publishers_file"`

	StorageType            string        `mapstructure:"storage_type"`
	BBoltPath              string        `mapstructure:"bbolt_path"`
	StorageTTLSeconds      int64         `mapstructure:"storage_ttl_seconds"`
	StorageCleanupSeconds  int64         `mapstructure:"storage_cleanup_interval_seconds"`
	StorageTTL             time.Duration `mapstructure:"-"`
	StorageCleanupInterval time.Duration `mapstructure:"-"`

	ImportDelayMs int64         `mapstructure:"import_delay_ms"`
	ImportDelay   time.Duration `mapstructure:"-"`
}

// flagKeys maps CLI flag names to config keys.
var flagKeys = map[string]string{
	"base-url":        "base_url",
	"api-key":         "api_key",
	"log-level":       "log_level",
	"publishers-file": "publishers_file",
	"storage-type":    "storage_type",
	"bbolt-path":      "bbolt_path",
}

// Load reads configuration from an optional .env file (or the file named by
// DOCUT_ENV_FILE, which must exist), DOCUT_* environment
// variables and, when flags is non-nil, the matching command-line flags.
func Load(flags *pflag.FlagSet) (*Config, error) {
	if envFile := os.Getenv("DOCUT_ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	} else if err := godotenv.Load(defaultEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", defaultEnvFile, err)
	}

	v := viper.New()

	v.SetDefault("app_name", "docut")
	v.SetDefault("log_level", "warn")
	v.SetDefault("base_url", "https://docut.xyz/api")
	v.SetDefault("api_key", "")
	v.SetDefault("user_agent", "docut-go")
	v.SetDefault("http_timeout_seconds", 30)
	v.SetDefault("publishers_file", "")
	v.SetDefault("storage_type", "bbolt")
	v.SetDefault("bbolt_path", "./data/imported.db")
	v.SetDefault("storage_ttl_seconds", int64((30*24*time.Hour)/time.Second))
	v.SetDefault("storage_cleanup_interval_seconds", int64((12*time.Hour)/time.Second))
	v.SetDefault("import_delay_ms", 250)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) normalize() error {
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)

	if cfg.BaseURL == "" {
		return errors.New("invalid base_url (must not be empty)")
	}
	if cfg.HTTPTimeoutSeconds < 0 {
		return fmt.Errorf("invalid http_timeout_seconds (must not be negative)")
	}
	cfg.HTTPTimeout = time.Duration(cfg.HTTPTimeoutSeconds) * time.Second

	if cfg.StorageTTLSeconds <= 0 {
		return fmt.Errorf("invalid storage_ttl_seconds (must be positive seconds)")
	}
	if cfg.StorageCleanupSeconds <= 0 {
		return fmt.Errorf("invalid storage_cleanup_interval_seconds (must be positive seconds)")
	}
	cfg.StorageTTL = time.Duration(cfg.StorageTTLSeconds) * time.Second
	cfg.StorageCleanupInterval = time.Duration(cfg.StorageCleanupSeconds) * time.Second

	if cfg.ImportDelayMs < 0 {
		return fmt.Errorf("invalid import_delay_ms (must not be negative)")
	}
	cfg.ImportDelay = time.Duration(cfg.ImportDelayMs) * time.Millisecond

	return nil
}

// Redacted returns a copy safe to log: the API key is masked.
func (cfg Config) Redacted() Config {
	if cfg.APIKey != "" {
		cfg.APIKey = "****"
	}
	return cfg
}
