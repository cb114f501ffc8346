package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Host              string        `envconfig:"HOST" default:""`
	Port              int           `envconfig:"PORT" default:"8000"`
	RedisAddr         string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	DocumentTTL       time.Duration `envconfig:"DOCUMENT_TTL" default:"1h"`
	KeepAliveInterval time.Duration `envconfig:"KEEPALIVE_INTERVAL" default:"5s"`
	SummarizerURL     string        `envconfig:"SUMMARIZER_URL" default:""`
}

// Load reads configuration from the environment, after loading a local .env
// file when one exists.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("duoreport", &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
