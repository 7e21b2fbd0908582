package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"seat-reservation/logger"
)

const (
	AppName        = "seat-reservation"
	DefaultAPIURL  = "https://ticket-book-backend-production.up.railway.app"
	defaultEnvFile = ".env"
)

type Config struct {
	API API `yaml:"api"`
	Log Log `yaml:"log"`
}

type API struct {
	BaseURL     string        `yaml:"base_url" env:"SEATS_API_URL" env-default:"https://ticket-book-backend-production.up.railway.app" env-description:"seat API base URL"`
	Timeout     time.Duration `yaml:"timeout" env:"SEATS_HTTP_TIMEOUT" env-default:"12s" env-description:"per-request timeout"`
	MaxAttempts int           `yaml:"max_attempts" env:"SEATS_HTTP_MAX_ATTEMPTS" env-default:"3" env-description:"attempts for seat list requests"`
}

type Log struct {
	Level string `yaml:"level" env:"SEATS_LOG_LEVEL" env-default:"info" env-description:"debug, info, warn or error"`
	Dir   string `yaml:"dir" env:"SEATS_LOG_DIR" env-description:"log directory (default: user cache dir)"`
}

// Load reads the configuration. A .env file in the working directory is applied
// first if present. When configPath is set the YAML file is read (environment
// variables still override it); otherwise only the environment is used.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(defaultEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", defaultEnvFile, err)
	}

	cfg := &Config{}
	if configPath != "" {
		if err := cleanenv.ReadConfig(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	} else if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment variables: %w", err)
	}

	if cfg.Log.Dir == "" {
		if dir, err := os.UserCacheDir(); err == nil {
			cfg.Log.Dir = filepath.Join(dir, AppName, "logs")
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	c.API.BaseURL = strings.TrimRight(strings.TrimSpace(c.API.BaseURL), "/")
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api base url %q", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api timeout must be positive, got %s", c.API.Timeout)
	}
	if c.API.MaxAttempts < 1 {
		return fmt.Errorf("api max attempts must be at least 1, got %d", c.API.MaxAttempts)
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// LogLevel returns the parsed log level. Validate has already rejected bad values.
func (c *Config) LogLevel() logger.LogLevel {
	level, _ := logger.ParseLevel(c.Log.Level)
	return level
}
