package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultModel                = "gemini-2.0-flash-preview-image-generation"
	DefaultHTTPAddr             = ":8501"
	DefaultSessionTTL           = time.Hour
	DefaultSessionSweepSchedule = "0 */5 * * * *"
	DefaultMaxMultipartMemory   = 32 << 20
)

// GeminiConfig holds the generation API configuration
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	// Timeout bounds one generation call; zero means no timeout
	Timeout time.Duration
}

// ServerConfig holds web server configuration
type ServerConfig struct {
	Addr               string
	MaxMultipartMemory int64
}

// SessionConfig holds session store configuration
type SessionConfig struct {
	TTL           time.Duration
	SweepSchedule string
}

// Config holds all configuration for the application
type Config struct {
	Gemini  GeminiConfig
	Server  ServerConfig
	Session SessionConfig
}

// Load loads the configuration from environment variables, reading .env first when present
func Load(filenames ...string) (*Config, error) {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	config := &Config{
		Gemini: GeminiConfig{
			APIKey:  os.Getenv("GOOGLE_API_KEY"),
			Model:   os.Getenv("GEMINI_MODEL"),
			BaseURL: os.Getenv("GEMINI_BASE_URL"),
		},
		Server: ServerConfig{
			Addr: os.Getenv("HTTP_ADDR"),
		},
		Session: SessionConfig{
			SweepSchedule: os.Getenv("SESSION_SWEEP_SCHEDULE"),
		},
	}

	if config.Gemini.Model == "" {
		config.Gemini.Model = DefaultModel
	}
	if config.Server.Addr == "" {
		config.Server.Addr = DefaultHTTPAddr
	}
	if config.Session.SweepSchedule == "" {
		config.Session.SweepSchedule = DefaultSessionSweepSchedule
	}

	// Load and parse numeric values
	if timeout, err := strconv.Atoi(os.Getenv("GENERATION_TIMEOUT")); err == nil && timeout > 0 {
		config.Gemini.Timeout = time.Duration(timeout) * time.Second
	}

	if ttl, err := strconv.Atoi(os.Getenv("SESSION_TTL")); err == nil && ttl > 0 {
		config.Session.TTL = time.Duration(ttl) * time.Second
	} else {
		config.Session.TTL = DefaultSessionTTL
	}

	if memory, err := strconv.ParseInt(os.Getenv("MAX_MULTIPART_MEMORY"), 10, 64); err == nil && memory > 0 {
		config.Server.MaxMultipartMemory = memory
	} else {
		config.Server.MaxMultipartMemory = DefaultMaxMultipartMemory
	}

	// Validate required fields
	if config.Gemini.APIKey == "" {
		return nil, fmt.Errorf("GOOGLE_API_KEY is required")
	}

	return config, nil
}
