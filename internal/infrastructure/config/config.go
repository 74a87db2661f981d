package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Content   ContentConfig
	Media     MediaConfig
	Scoring   ScoringConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	Ops       OpsConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string        `envconfig:"HOST" default:"127.0.0.1"`
	Port            int           `envconfig:"PORT" default:"3000"`
	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" default:"0s"` // 0 keeps long video streams alive
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`
}

// ContentConfig holds page loading configuration.
type ContentConfig struct {
	PagesDir string `envconfig:"PAGES_DIR"`
	Compress bool   `envconfig:"COMPRESS_PAGES" default:"true"`
}

// MediaConfig holds video asset configuration.
type MediaConfig struct {
	Path        string `envconfig:"MEDIA_PATH" default:"./naturevideo.mp4"`
	ContentType string `envconfig:"MEDIA_CONTENT_TYPE" default:"video/mp4"`
	ChunkSize   int    `envconfig:"MEDIA_CHUNK_SIZE" default:"32768"`
}

// ScoringConfig holds assessment scoring configuration.
type ScoringConfig struct {
	MaxBodyBytes int64  `envconfig:"SCORING_MAX_BODY" default:"8192"`
	TablePath    string `envconfig:"SCORING_TABLE"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"false"`
}

// CORSConfig toggles cross-origin access, mainly for embedding the video elsewhere.
type CORSConfig struct {
	Enabled bool `envconfig:"CORS_ENABLED" default:"false"`
}

// OpsConfig toggles the operational endpoints.
type OpsConfig struct {
	Metrics bool `envconfig:"METRICS_ENABLED" default:"true"`
	Health  bool `envconfig:"HEALTH_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "127.0.0.1",
			Port:            3000,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    0,
			ShutdownTimeout: 5 * time.Second,
		},
		Content: ContentConfig{
			Compress: true,
		},
		Media: MediaConfig{
			Path:        "./naturevideo.mp4",
			ContentType: "video/mp4",
			ChunkSize:   32 * 1024,
		},
		Scoring: ScoringConfig{
			MaxBodyBytes: 8 * 1024,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           false,
		},
		Ops: OpsConfig{
			Metrics: true,
			Health:  true,
		},
	}
}

// Validate checks the values envconfig cannot check on its own.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("port out of range: %d", c.Server.Port)
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.ShutdownTimeout < 0 {
		return errors.New("timeouts must not be negative")
	}
	if c.Media.Path == "" {
		return errors.New("media path is required")
	}
	if c.Media.ContentType == "" {
		return errors.New("media content type is required")
	}
	if c.Media.ChunkSize <= 0 {
		return fmt.Errorf("media chunk size must be positive: %d", c.Media.ChunkSize)
	}
	if c.Scoring.MaxBodyBytes <= 0 {
		return fmt.Errorf("scoring body limit must be positive: %d", c.Scoring.MaxBodyBytes)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		return errors.New("rate limit rps and burst must be positive")
	}
	return nil
}

// Address returns the listen address.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}
