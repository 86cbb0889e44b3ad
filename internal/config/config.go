package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// DB_DRIVER is "sqlite" or "mysql". DSN demo for mysql:
	// app:apppass@tcp(127.0.0.1:3306)/devopstile?charset=utf8mb4&parseTime=true&loc=Local
	DBDriver string `env:"DB_DRIVER" envDefault:"sqlite"`
	DBDSN    string `env:"DB_DSN" envDefault:"file:devopstile.db?_pragma=busy_timeout(5000)"`

	// Redis is optional; empty address disables idempotency checks.
	RedisAddr      string        `env:"REDIS_ADDR"`
	RedisPassword  string        `env:"REDIS_PASSWORD"`
	RedisDB        int           `env:"REDIS_DB" envDefault:"0"`
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL" envDefault:"10m"`

	// Reply provider
	AIProvider     string        `env:"AI_PROVIDER" envDefault:"mock"`
	ChatReplyDelay time.Duration `env:"CHAT_REPLY_DELAY" envDefault:"1s"`

	// Sessions
	SessionTTL           time.Duration `env:"SESSION_TTL" envDefault:"30m"`
	SessionSweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"1m"`

	// Translator
	TranslateDelay time.Duration `env:"TRANSLATE_DELAY" envDefault:"1500ms"`
	SnippetsFile   string        `env:"SNIPPETS_FILE"`

	// rabbitMQ, empty URL runs translation jobs in-process
	RabbitURL         string `env:"RABBIT_URL"`
	RabbitQueue       string `env:"RABBIT_QUEUE" envDefault:"translation_jobs"`
	WorkerConcurrency int    `env:"WORKER_CONCURRENCY" envDefault:"2"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("read .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	c.DBDriver = strings.ToLower(strings.TrimSpace(c.DBDriver))
	c.AIProvider = strings.ToLower(strings.TrimSpace(c.AIProvider))
	if c.AIProvider == "" {
		c.AIProvider = "mock"
	}

	if c.WorkerConcurrency <= 0 {
		c.WorkerConcurrency = 2
	}
	if c.WorkerConcurrency > 50 {
		c.WorkerConcurrency = 50
	}
	if c.ChatReplyDelay < 0 {
		c.ChatReplyDelay = 0
	}
	if c.TranslateDelay < 0 {
		c.TranslateDelay = 0
	}
	if c.SessionSweepInterval <= 0 {
		c.SessionSweepInterval = time.Minute
	}
}
