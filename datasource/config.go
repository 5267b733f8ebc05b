package datasource

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	ARSO struct {
		BaseURL   string `yaml:"baseUrl"`   // API root, e.g. https://vreme.arso.gov.si/api/1.0/
		ImageBase string `yaml:"imageBase"` // icon asset root
		Language  string `yaml:"language"`  // display language passed to the forecast endpoint
	} `yaml:"arso"`

	CacheTTL        time.Duration `yaml:"cacheTtl"`
	RefreshInterval time.Duration `yaml:"refreshInterval"`

	RateLimit struct {
		Enabled bool    `yaml:"enabled"`
		RPS     float64 `yaml:"rps"`
		Burst   int     `yaml:"burst"`
	} `yaml:"rateLimit"`

	// StateFile holds the persisted location selection across restarts
	StateFile string `yaml:"stateFile"`
}

// DefaultConfig creates a configuration pointing at the public ARSO API
func DefaultConfig() *Config {
	config := &Config{}
	config.ARSO.BaseURL = "https://vreme.arso.gov.si/api/1.0/"
	config.ARSO.ImageBase = "https://vreme.arso.gov.si/app/common/images/svg/weather/"
	config.ARSO.Language = "sl"
	config.CacheTTL = 10 * time.Minute
	config.RefreshInterval = 15 * time.Minute
	config.RateLimit.Enabled = true
	config.RateLimit.RPS = 1.0
	config.RateLimit.Burst = 5
	config.StateFile = "selected_location.json"
	return config
}

// LoadConfig loads configuration from a YAML file, then applies environment
// variable overrides. A missing file is not an error; defaults are used.
func LoadConfig(filename string) (*Config, error) {
	config := DefaultConfig()

	if filename != "" {
		data, err := os.ReadFile(filename)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file %s: %w", filename, err)
			}
		} else if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", filename, err)
		}
	}

	applyEnvOverrides(config)
	return config, nil
}

// applyEnvOverrides lets individual settings be overridden without editing
// the config file
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("ARSO_BASE_URL"); v != "" {
		config.ARSO.BaseURL = v
	}
	if v := os.Getenv("ARSO_IMAGE_BASE"); v != "" {
		config.ARSO.ImageBase = v
	}
	if v := os.Getenv("ARSO_LANG"); v != "" {
		config.ARSO.Language = v
	}
	if v := os.Getenv("CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			config.CacheTTL = d
		}
	}
	if v := os.Getenv("REFRESH_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			config.RefreshInterval = d
		}
	}
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			config.RateLimit.RPS = f
		}
	}
	if v := os.Getenv("STATE_FILE"); v != "" {
		config.StateFile = v
	}
}
