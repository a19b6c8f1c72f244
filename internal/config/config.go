package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is read once at startup and never changed afterwards.
type Config struct {
	Port           string
	DatabaseURL    string
	DatabaseName   string
	AdminPassword  string
	RabbitMQURL    string
	EventsQueue    string
	AllowedOrigins string
	LogMode        string
	DBTimeout      time.Duration
}

// Load reads configuration from an optional .env file and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load() // load .env if it exists

	v := viper.New()
	v.SetDefault("PORT", "8000")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DATABASE_NAME", "gemstone")
	v.SetDefault("ADMIN_PASSWORD", "admin123")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("EVENTS_QUEUE", "gem_events")
	v.SetDefault("ALLOWED_ORIGINS", "*")
	v.SetDefault("LOG_MODE", "development")
	v.SetDefault("DB_TIMEOUT", "5s")
	v.AutomaticEnv()

	cfg := &Config{
		Port:           strings.TrimPrefix(v.GetString("PORT"), ":"),
		DatabaseURL:    strings.TrimSpace(v.GetString("DATABASE_URL")),
		DatabaseName:   v.GetString("DATABASE_NAME"),
		AdminPassword:  v.GetString("ADMIN_PASSWORD"),
		RabbitMQURL:    strings.TrimSpace(v.GetString("RABBITMQ_URL")),
		EventsQueue:    v.GetString("EVENTS_QUEUE"),
		AllowedOrigins: v.GetString("ALLOWED_ORIGINS"),
		LogMode:        v.GetString("LOG_MODE"),
		DBTimeout:      v.GetDuration("DB_TIMEOUT"),
	}
	if cfg.DBTimeout <= 0 {
		cfg.DBTimeout = 5 * time.Second
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// HasDatabase reports whether a connection string was configured.
func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}
