// internal/config/config.go
//
// Runtime configuration for the solver CLI and HTTP server.
// Responsibilities:
//   - Load a .env file if present (godotenv).
//   - Read an optional YAML file named by SOLVER_CONFIG.
//   - Apply environment overrides on top of the file values.
//
// Precedence (lowest to highest): Defaults(), YAML file, environment.

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Config holds every tunable the binaries read.
type Config struct {
	LogLevel     string `yaml:"log_level"`
	Port         string `yaml:"port"`
	AnswersFile  string `yaml:"words_answers_file"`
	AllowedFile  string `yaml:"words_allowed_file"`
	HardMode     bool   `yaml:"hard_mode"`
	CacheBackend string `yaml:"cache_backend"`
	CachePath    string `yaml:"cache_path"`
	HistoryDB    string `yaml:"history_db"`
	JWTSecret    string `yaml:"jwt_secret"`
	DailySalt    string `yaml:"daily_salt"`
	Workers      int    `yaml:"workers"`
	Strategy     string `yaml:"strategy"`
}

// Defaults returns the values used when nothing else is configured.
func Defaults() Config {
	return Config{
		LogLevel:     "info",
		Port:         "5175",
		CacheBackend: "memory",
		HistoryDB:    "./data/history.db",
		JWTSecret:    "dev_secret_change_me",
		DailySalt:    "local_dev_salt",
		Strategy:     "ranked",
	}
}

// Load builds the configuration from .env, the YAML file and the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Defaults()
	if path := os.Getenv("SOLVER_CONFIG"); path != "" {
		if err := cfg.readFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.Port = getEnv("PORT", c.Port)
	c.AnswersFile = getEnv("WORDS_ANSWERS_FILE", c.AnswersFile)
	c.AllowedFile = getEnv("WORDS_ALLOWED_FILE", c.AllowedFile)
	c.CacheBackend = getEnv("CACHE_BACKEND", c.CacheBackend)
	c.CachePath = getEnv("CACHE_PATH", c.CachePath)
	c.HistoryDB = getEnv("HISTORY_DB", c.HistoryDB)
	c.JWTSecret = getEnv("JWT_SECRET", c.JWTSecret)
	c.DailySalt = getEnv("DAILY_SALT", c.DailySalt)
	c.Strategy = getEnv("STRATEGY", c.Strategy)

	if v := os.Getenv("HARD_MODE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("HARD_MODE: %w", err)
		}
		c.HardMode = b
	}
	if v := os.Getenv("WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("WORKERS: not a non-negative integer: %q", v)
		}
		c.Workers = n
	}
	return nil
}

// Level parses LogLevel, falling back to info.
func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil || c.LogLevel == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
