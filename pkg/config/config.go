package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Name string `yaml:"name"`
	Env  string `yaml:"env"` // development|production
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type BackendConfig struct {
	BaseURL        string `yaml:"baseUrl"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
}

type ScrapeConfig struct {
	PollIntervalMS int `yaml:"pollIntervalMs"`
}

type Config struct {
	App     AppConfig     `yaml:"app"`
	Server  ServerConfig  `yaml:"server"`
	Backend BackendConfig `yaml:"backend"`
	Scrape  ScrapeConfig  `yaml:"scrape"`
}

// Load reads the yaml config file, then applies environment overrides.
// A missing file is fine — defaults plus environment apply.
func Load(path string) (*Config, error) {
	cfg := &Config{
		App:     AppConfig{Name: "datascrapfront", Env: "development"},
		Server:  ServerConfig{Host: "0.0.0.0", Port: "8080"},
		Backend: BackendConfig{BaseURL: "http://localhost:3001", TimeoutSeconds: 10},
		Scrape:  ScrapeConfig{PollIntervalMS: 2000},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}

	cfg.App.Name = getEnv("APP_NAME", cfg.App.Name)
	cfg.App.Env = getEnv("APP_ENV", cfg.App.Env)
	cfg.Server.Host = getEnv("HOST", cfg.Server.Host)
	cfg.Server.Port = getEnv("PORT", cfg.Server.Port)
	cfg.Backend.BaseURL = getEnv("BACKEND_URL", cfg.Backend.BaseURL)
	cfg.Backend.TimeoutSeconds = getEnvInt("BACKEND_TIMEOUT_SECONDS", cfg.Backend.TimeoutSeconds)
	cfg.Scrape.PollIntervalMS = getEnvInt("SCRAPE_POLL_INTERVAL_MS", cfg.Scrape.PollIntervalMS)

	return cfg, nil
}

// Addr is the listen address for the dashboard server.
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// BackendTimeout is the per-request timeout for backend calls.
func (c *Config) BackendTimeout() time.Duration {
	return time.Duration(c.Backend.TimeoutSeconds) * time.Second
}

// PollInterval is the scrape-status polling cadence.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Scrape.PollIntervalMS) * time.Millisecond
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
