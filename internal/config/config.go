// Package config provides configuration loading and validation for the
// pipeline services.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/martin/hirepilot/internal/notify"
)

// Config is loaded from an optional JSON file, with environment variables
// filling in anything the file leaves empty.
type Config struct {
	Port        int    `json:"port,omitempty"`
	DatabaseURL string `json:"database_url,omitempty"`
	APIKey      string `json:"api_key,omitempty"` // Gemini API key
	JWTSecret   string `json:"jwt_secret,omitempty"`

	// SelectionPercentage is the percentile cutoff applied at stage
	// boundaries (0,1].
	SelectionPercentage float64 `json:"selection_percentage,omitempty"`
	// FuzzyThreshold is the label match ratio floor (0-100).
	FuzzyThreshold int `json:"fuzzy_threshold,omitempty"`
	// UseSemantic enables embedding-based blending in the similarity
	// scorer.
	UseSemantic bool `json:"use_semantic,omitempty"`

	SMTP notify.SMTPConfig `json:"smtp,omitempty"`

	JSONLogs bool `json:"json_logs,omitempty"`
	Debug    bool `json:"debug,omitempty"`
}

// Default values applied by Load.
const (
	DefaultPort                = 8080
	DefaultSelectionPercentage = 0.2
)

// Load reads the JSON config file when path is non-empty, then applies
// environment fallbacks and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	setIfEmpty(&c.DatabaseURL, "DATABASE_URL")
	setIfEmpty(&c.APIKey, "GEMINI_API_KEY")
	setIfEmpty(&c.JWTSecret, "JWT_SECRET")
	setIfEmpty(&c.SMTP.Host, "SMTP_HOST")
	setIfEmpty(&c.SMTP.Username, "SMTP_USER")
	setIfEmpty(&c.SMTP.Password, "SMTP_PASS")
	setIfEmpty(&c.SMTP.From, "SMTP_FROM")
	if c.SMTP.Port == 0 {
		if v := os.Getenv("SMTP_PORT"); v != "" {
			if port, err := strconv.Atoi(v); err == nil {
				c.SMTP.Port = port
			}
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.SelectionPercentage == 0 {
		c.SelectionPercentage = DefaultSelectionPercentage
	}
}

// Validate checks numeric ranges and required pairings.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' out of range: %d", c.Port)
	}
	if c.SelectionPercentage <= 0 || c.SelectionPercentage > 1 {
		return fmt.Errorf("config error: 'selection_percentage' must be in (0,1], got %g", c.SelectionPercentage)
	}
	if c.FuzzyThreshold < 0 || c.FuzzyThreshold > 100 {
		return fmt.Errorf("config error: 'fuzzy_threshold' must be in [0,100], got %d", c.FuzzyThreshold)
	}
	return nil
}

func setIfEmpty(target *string, envKey string) {
	if *target == "" {
		*target = os.Getenv(envKey)
	}
}
