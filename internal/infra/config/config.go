// Package config provides configuration loading from YAML files.
package config

import (
	"io/fs"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	YouTube      YouTubeConfig      `yaml:"youtube"`
	Cache        CacheConfig        `yaml:"cache"`
	Locales      LocalesConfig      `yaml:"locales"`
	Dictionaries DictionariesConfig `yaml:"dictionaries"`
}

// ServerConfig represents server configuration.
type ServerConfig struct {
	Addr           string        `yaml:"addr" default:":8080"`
	RequestTimeout time.Duration `yaml:"request_timeout" default:"60s" validate:"gt=0"`
	Hooks          HooksConfig   `yaml:"hooks"`
}

// HooksConfig represents lifecycle hooks configuration.
type HooksConfig struct {
	OnStarted []string `yaml:"on_started"`
	OnStopped []string `yaml:"on_stopped"`
}

// YouTubeConfig represents YouTube Data API configuration.
type YouTubeConfig struct {
	APIKey    string                    `yaml:"api_key" validate:"required"`
	BaseURL   string                    `yaml:"base_url" default:"https://www.googleapis.com/youtube/v3/" validate:"url"`
	BatchSize int                       `yaml:"batch_size" default:"50" validate:"gte=1,lte=50"`
	Timeout   time.Duration             `yaml:"timeout" default:"10s" validate:"gt=0"`
	ListParam string                    `yaml:"list_param" default:"list" validate:"required"`
	Endpoints map[string]EndpointConfig `yaml:"endpoints" validate:"dive"`
}

// EndpointConfig overrides the selectors of a single Data API endpoint.
// Empty fields keep the built-in values.
type EndpointConfig struct {
	Path       string `yaml:"path"`
	Part       string `yaml:"part"`
	Fields     string `yaml:"fields"`
	MaxResults int    `yaml:"max_results" validate:"gte=0,lte=50"`
}

// CacheConfig represents upstream response caching.
type CacheConfig struct {
	Backend   string        `yaml:"backend" default:"memory" validate:"oneof=memory redis none"`
	RedisURL  string        `yaml:"redis_url" validate:"required_if=Backend redis"`
	Size      int           `yaml:"size" default:"1024" validate:"gt=0"`
	Short     time.Duration `yaml:"short" default:"1h" validate:"gt=0"`
	Long      time.Duration `yaml:"long" default:"24h" validate:"gt=0"`
	Threshold time.Duration `yaml:"threshold" default:"168h" validate:"gt=0"`
}

// LocalesConfig represents the supported report languages.
type LocalesConfig struct {
	Default   string   `yaml:"default" default:"en" validate:"required"`
	Supported []string `yaml:"supported" default:"[\"de\",\"en\",\"es\",\"fr\",\"hi\",\"mr\",\"nl\",\"ru\",\"zh\"]" validate:"required,min=1,dive,required"`
}

// DictionariesConfig represents where translation overrides are read from.
type DictionariesConfig struct {
	Dir string `yaml:"dir"`
}

// Load loads configuration from a YAML file.
// A missing file is not an error; defaults and environment variables apply.
// Environment variables take precedence over file values.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(err, "failed to parse config file")
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, errors.Wrap(err, "failed to read config file")
	}

	// Override with environment variables
	cfg.overrideFromEnv()

	// Set defaults using creasty/defaults
	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

// overrideFromEnv overrides config values with environment variables.
func (c *Config) overrideFromEnv() {
	if v := os.Getenv("YOUTUBE_API_KEY"); v != "" {
		c.YouTube.APIKey = v
	}
	if v := os.Getenv("YOUTUBE_API_BASE_URL"); v != "" {
		c.YouTube.BaseURL = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		c.Cache.RedisURL = v
	}
	if v := os.Getenv("DEFAULT_LOCALE"); v != "" {
		c.Locales.Default = v
	}
	if v := os.Getenv("LOCALES"); v != "" {
		var codes []string
		for _, code := range strings.Split(v, ",") {
			if code = strings.TrimSpace(code); code != "" {
				codes = append(codes, code)
			}
		}
		c.Locales.Supported = codes
	}
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		c.Server.Addr = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}

	if !slices.Contains(c.Locales.Supported, c.Locales.Default) {
		return errors.Newf("default locale %q is not in supported locales %v", c.Locales.Default, c.Locales.Supported)
	}

	for name := range c.YouTube.Endpoints {
		switch name {
		case "playlists", "playlistItems", "videos":
		default:
			return errors.Newf("unknown youtube endpoint %q", name)
		}
	}

	return nil
}
