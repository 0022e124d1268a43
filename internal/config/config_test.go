package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"SOLVER_CONFIG", "LOG_LEVEL", "PORT", "WORDS_ANSWERS_FILE", "WORDS_ALLOWED_FILE",
	"HARD_MODE", "CACHE_BACKEND", "CACHE_PATH", "HISTORY_DB", "JWT_SECRET",
	"DAILY_SALT", "WORKERS", "STRATEGY",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
	assert.Equal(t, zerolog.InfoLevel, cfg.Level())
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "solver.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level: debug
port: "8080"
hard_mode: true
cache_backend: sqlite
cache_path: /tmp/spaces.db
workers: 4
strategy: greedy
`), 0o644))
	t.Setenv("SOLVER_CONFIG", path)
	t.Setenv("PORT", "9090")
	t.Setenv("WORKERS", "2")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, cfg.Level())
	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.HardMode)
	assert.Equal(t, "sqlite", cfg.CacheBackend)
	assert.Equal(t, "/tmp/spaces.db", cfg.CachePath)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "greedy", cfg.Strategy)
	// untouched keys keep their defaults
	assert.Equal(t, "local_dev_salt", cfg.DailySalt)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing file", map[string]string{"SOLVER_CONFIG": filepath.Join(t.TempDir(), "nope.yaml")}},
		{"bad hard mode", map[string]string{"HARD_MODE": "maybe"}},
		{"bad workers", map[string]string{"WORKERS": "-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestBadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "solver.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: [nope"), 0o644))
	t.Setenv("SOLVER_CONFIG", path)
	_, err := Load()
	assert.Error(t, err)
}

func TestLevelFallback(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, Config{LogLevel: "loud"}.Level())
	assert.Equal(t, zerolog.WarnLevel, Config{LogLevel: "WARN"}.Level())
}
