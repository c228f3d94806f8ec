package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	AppName  = "holystreak"
	FileName = "config.yaml"
)

// Config is resolved in order: defaults, <data-dir>/config.yaml, environment.
type Config struct {
	DataDir      string        `yaml:"-"`
	DBPath       string        `yaml:"db_path" env:"HOLYSTREAK_DB_PATH"`
	LogPath      string        `yaml:"log_path" env:"HOLYSTREAK_LOG_PATH"`
	LogLevel     string        `yaml:"log_level" env:"HOLYSTREAK_LOG_LEVEL"`
	TickInterval time.Duration `yaml:"tick_interval" env:"HOLYSTREAK_TICK_INTERVAL"`
	SaveRetries  int           `yaml:"save_retries" env:"HOLYSTREAK_SAVE_RETRIES"`
}

func Default(dataDir string) Config {
	return Config{
		DataDir:      dataDir,
		DBPath:       filepath.Join(dataDir, AppName+".db"),
		LogPath:      filepath.Join(dataDir, AppName+".log"),
		LogLevel:     "info",
		TickInterval: time.Second,
		SaveRetries:  3,
	}
}

// New builds the configuration for dataDir. An empty dataDir falls back to
// HOLYSTREAK_DATA_DIR and then the XDG data directory.
func New(dataDir string) (Config, error) {
	// .env is optional.
	_ = godotenv.Load()

	if strings.TrimSpace(dataDir) == "" {
		dataDir = DataDir(AppName)
	}
	cfg := Default(dataDir)
	if err := cfg.mergeFile(filepath.Join(dataDir, FileName)); err != nil {
		return Config{}, err
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

func (c Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data dir is required")
	}
	if c.DBPath == "" {
		return fmt.Errorf("db path is required")
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %s", c.TickInterval)
	}
	if c.SaveRetries < 0 {
		return fmt.Errorf("save retries must be non-negative, got %d", c.SaveRetries)
	}
	return nil
}

// DataDir resolves the per-user data directory for app.
func DataDir(app string) string {
	if dir := strings.TrimSpace(os.Getenv("HOLYSTREAK_DATA_DIR")); dir != "" {
		return dir
	}
	if base := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); base != "" {
		return filepath.Join(base, app)
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".", app)
	}
	return filepath.Join(home, ".local", "share", app)
}
