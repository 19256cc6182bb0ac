// Package config reads nova settings from the environment and optional .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/joho/godotenv"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Backends lists the valid storage backends.
var Backends = []string{BackendFile, BackendSQLite, BackendMemory}

// Config holds every setting of the application.
type Config struct {
	// Storage
	DataDir    string
	Backend    string
	SQLitePath string

	// Advisor
	APIKey         string
	Model          string
	AdvisorTimeout time.Duration // zero means no timeout

	// Presentation
	Lang     string
	Currency string

	// HTTP API
	Addr string

	LogLevel string
}

// Load reads the given .env files, ".env" by default, then the environment.
//
// Variables already set in the environment win over the files. Missing files
// are ignored.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", f, err)
		}
	}

	dataDir := getEnv("NOVA_DATA_DIR", defaultDataDir())
	timeout, err := getEnvDuration("NOVA_ADVISOR_TIMEOUT", 0)
	if err != nil {
		return nil, err
	}
	cfg := &Config{
		DataDir:        dataDir,
		Backend:        getEnv("NOVA_BACKEND", BackendFile),
		SQLitePath:     getEnv("NOVA_SQLITE_PATH", filepath.Join(dataDir, "nova.db")),
		APIKey:         getEnv("GEMINI_API_KEY", os.Getenv("API_KEY")),
		Model:          getEnv("NOVA_MODEL", "gemini-2.5-flash"),
		AdvisorTimeout: timeout,
		Lang:           getEnv("NOVA_LANG", "fr"),
		Currency:       strings.ToUpper(getEnv("NOVA_CURRENCY", "DZD")),
		Addr:           getEnv("NOVA_ADDR", ":8080"),
		LogLevel:       getEnv("NOVA_LOG_LEVEL", "warn"),
	}
	return cfg, nil
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var problems []string

	if !slices.Contains(Backends, c.Backend) {
		problems = append(problems, fmt.Sprintf("invalid backend '%s': must be one of %v", c.Backend, Backends))
	}
	if c.Backend == BackendFile && c.DataDir == "" {
		problems = append(problems, "data directory cannot be empty when using file backend")
	}
	if c.Backend == BackendSQLite && c.SQLitePath == "" {
		problems = append(problems, "SQLite database path cannot be empty when using sqlite backend")
	}
	if c.Model == "" {
		problems = append(problems, "model cannot be empty")
	}
	if c.AdvisorTimeout < 0 {
		problems = append(problems, fmt.Sprintf("invalid advisor timeout %v: must not be negative", c.AdvisorTimeout))
	}
	if c.Lang != "fr" && c.Lang != "en" {
		problems = append(problems, fmt.Sprintf("invalid language '%s': must be fr or en", c.Lang))
	}
	if money.GetCurrency(c.Currency) == nil {
		problems = append(problems, fmt.Sprintf("unknown currency '%s'", c.Currency))
	}
	if c.Addr == "" {
		problems = append(problems, "listen address cannot be empty")
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		problems = append(problems, fmt.Sprintf("invalid log level '%s'", c.LogLevel))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// HasCredential reports whether an advisor API key is configured.
func (c *Config) HasCredential() bool { return c.APIKey != "" }

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".nova"
	}
	return filepath.Join(home, ".nova")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

// SetDataDir moves the data directory. The SQLite database moves with it
// unless its path was set explicitly.
func (c *Config) SetDataDir(dir string) {
	if c.SQLitePath == filepath.Join(c.DataDir, "nova.db") {
		c.SQLitePath = filepath.Join(dir, "nova.db")
	}
	c.DataDir = dir
}
