package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	ProjectID      string
	LogLevel       string
	Port           int
	RedisURL       string
	LeaderboardTTL time.Duration
	MaxBanners     int
}

// configFile mirrors the optional YAML file named by CONFIG_FILE.
type configFile struct {
	ProjectID      string `yaml:"project_id"`
	LogLevel       string `yaml:"log_level"`
	Port           int    `yaml:"port"`
	RedisURL       string `yaml:"redis_url"`
	LeaderboardTTL string `yaml:"leaderboard_ttl"`
	MaxBanners     int    `yaml:"max_banners"`
}

// New resolves configuration as defaults -> CONFIG_FILE -> environment.
// A .env file in the working directory is loaded first when present.
func New() (*Config, error) {
	// .env is optional outside local development
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:       "info",
		Port:           8080,
		LeaderboardTTL: time.Minute,
		MaxBanners:     10,
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var f configFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if f.ProjectID != "" {
		c.ProjectID = f.ProjectID
	}
	if f.LogLevel != "" {
		c.LogLevel = f.LogLevel
	}
	if f.Port > 0 {
		c.Port = f.Port
	}
	if f.RedisURL != "" {
		c.RedisURL = f.RedisURL
	}
	if f.LeaderboardTTL != "" {
		d, err := time.ParseDuration(f.LeaderboardTTL)
		if err != nil {
			return fmt.Errorf("parse leaderboard_ttl: %w", err)
		}
		c.LeaderboardTTL = d
	}
	if f.MaxBanners > 0 {
		c.MaxBanners = f.MaxBanners
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PROJECTID"); v != "" {
		c.ProjectID = v
	}
	if v := os.Getenv("LOGLEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("REDISURL"); v != "" {
		c.RedisURL = v
	}
	if v := os.Getenv("PORT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse PORT: %w", err)
		}
		c.Port = n
	}
	if v := os.Getenv("LEADERBOARDTTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse LEADERBOARDTTL: %w", err)
		}
		c.LeaderboardTTL = d
	}
	if v := os.Getenv("MAXBANNERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse MAXBANNERS: %w", err)
		}
		c.MaxBanners = n
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
