package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func valid() Config {
	return Config{
		DataDir:  "/tmp/nova",
		Backend:  BackendFile,
		Model:    "gemini-2.5-flash",
		Lang:     "fr",
		Currency: "DZD",
		Addr:     ":8080",
		LogLevel: "warn",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(*Config)
		contains []string
	}{
		{name: "valid", modify: func(*Config) {}},
		{name: "valid sqlite", modify: func(c *Config) { c.Backend = BackendSQLite; c.SQLitePath = "/tmp/nova.db" }},
		{
			name:     "invalid backend",
			modify:   func(c *Config) { c.Backend = "postgres" },
			contains: []string{"invalid backend 'postgres': must be one of [file sqlite memory]"},
		},
		{
			name:     "sqlite without path",
			modify:   func(c *Config) { c.Backend = BackendSQLite },
			contains: []string{"SQLite database path cannot be empty"},
		},
		{
			name:     "unknown currency",
			modify:   func(c *Config) { c.Currency = "XYZ" },
			contains: []string{"unknown currency 'XYZ'"},
		},
		{
			name: "several problems at once",
			modify: func(c *Config) {
				c.Lang = "de"
				c.AdvisorTimeout = -time.Second
				c.LogLevel = "loud"
			},
			contains: []string{"invalid language 'de'", "invalid advisor timeout -1s", "invalid log level 'loud'"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.modify(&c)
			err := c.Validate()
			if len(tt.contains) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	env := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(env, []byte("NOVA_LANG=en\nNOVA_MODEL=from-file\n"), 0o644))

	t.Setenv("NOVA_DATA_DIR", dir)
	t.Setenv("NOVA_MODEL", "from-env")
	t.Setenv("NOVA_ADVISOR_TIMEOUT", "30s")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "legacy-key")
	t.Setenv("NOVA_CURRENCY", "eur")
	// godotenv sets variables for the whole process.
	t.Setenv("NOVA_LANG", "")
	os.Unsetenv("NOVA_LANG")

	cfg, err := Load(env)
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, filepath.Join(dir, "nova.db"), cfg.SQLitePath)
	assert.Equal(t, "from-env", cfg.Model, "environment wins over the file")
	assert.Equal(t, "en", cfg.Lang)
	assert.Equal(t, 30*time.Second, cfg.AdvisorTimeout)
	assert.Equal(t, "legacy-key", cfg.APIKey)
	assert.True(t, cfg.HasCredential())
	assert.Equal(t, "EUR", cfg.Currency)
	assert.Equal(t, BackendFile, cfg.Backend)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("NOVA_ADVISOR_TIMEOUT", "")
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	assert.NoError(t, err)
}

func TestLoadBadDuration(t *testing.T) {
	t.Setenv("NOVA_ADVISOR_TIMEOUT", "soon")
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	assert.ErrorContains(t, err, "invalid NOVA_ADVISOR_TIMEOUT")
}

func TestSetDataDir(t *testing.T) {
	c := valid()
	c.SQLitePath = filepath.Join(c.DataDir, "nova.db")
	c.SetDataDir("/srv/nova")
	assert.Equal(t, "/srv/nova", c.DataDir)
	assert.Equal(t, filepath.Join("/srv/nova", "nova.db"), c.SQLitePath)

	c.SQLitePath = "/var/lib/nova.db"
	c.SetDataDir("/elsewhere")
	assert.Equal(t, "/var/lib/nova.db", c.SQLitePath)
}
