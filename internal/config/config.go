package config

import (
	"fmt"
	"net/url"
	"time"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/dshills/storefront/internal/config/loader"
	"github.com/dshills/storefront/internal/logging"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "STOREFRONT_"

// Config is the complete application configuration.
type Config struct {
	API     API     `yaml:"api"`
	Logging Logging `yaml:"logging"`
	Metrics Metrics `yaml:"metrics"`
}

// API configures the remote API client.
type API struct {
	BaseURL string        `yaml:"baseUrl"`
	CDNURL  string        `yaml:"cdnUrl"`
	Timeout time.Duration `yaml:"timeout"`
}

// Logging configures the logger.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Metrics configures the metrics endpoint. An empty Addr disables it.
type Metrics struct {
	Addr string `yaml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		API: API{
			BaseURL: "https://larek-api.nomoreparties.co/api/weblarek",
			CDNURL:  "https://larek-api.nomoreparties.co/content/weblarek",
			Timeout: 10 * time.Second,
		},
		Logging: Logging{
			Level:  "info",
			Format: string(logging.FormatConsole),
		},
	}
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs error
	for _, u := range []struct {
		path, value string
	}{
		{"api.baseUrl", c.API.BaseURL},
		{"api.cdnUrl", c.API.CDNURL},
	} {
		parsed, err := url.Parse(u.value)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			errs = multierr.Append(errs, &ValidationError{Path: u.path, Message: "must be an absolute URL", Value: u.value})
		}
	}
	if c.API.Timeout <= 0 {
		errs = multierr.Append(errs, &ValidationError{Path: "api.timeout", Message: "must be positive", Value: c.API.Timeout})
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		errs = multierr.Append(errs, &ValidationError{Path: "logging.level", Message: "unknown level", Value: c.Logging.Level})
	}
	switch logging.Format(c.Logging.Format) {
	case logging.FormatConsole, logging.FormatJSON:
	default:
		errs = multierr.Append(errs, &ValidationError{Path: "logging.format", Message: "must be console or json", Value: c.Logging.Format})
	}
	return errs
}

// LoggingConfig converts the logging section for logging.New.
func (c Config) LoggingConfig() logging.Config {
	cfg := logging.DefaultConfig()
	if l, err := logging.ParseLevel(c.Logging.Level); err == nil {
		cfg.Level = l
	}
	cfg.Format = logging.Format(c.Logging.Format)
	return cfg
}

// Options controls where Load reads from.
type Options struct {
	// Path is the config file. Empty means no file.
	Path string
	// FS reads the file. Defaults to the OS file system.
	FS loader.FileSystem
	// Env supplies environment overrides. Defaults to STOREFRONT_* variables.
	Env loader.Loader
}

// Load layers defaults, the file and the environment, then validates.
func Load(opts Options) (Config, error) {
	if opts.FS == nil {
		opts.FS = loader.DefaultFS()
	}
	if opts.Env == nil {
		opts.Env = loader.NewEnvLoader(EnvPrefix)
	}

	sources := []loader.Loader{opts.Env}
	if opts.Path != "" {
		sources = []loader.Loader{loader.ForFile(opts.FS, opts.Path), opts.Env}
	}

	merged := make(map[string]any)
	for _, src := range sources {
		m, err := src.Load()
		if err != nil {
			return Config{}, err
		}
		merged = loader.DeepMerge(merged, m)
	}

	cfg, err := decode(Default(), merged)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// decode applies a settings map on top of base.
func decode(base Config, settings map[string]any) (Config, error) {
	if len(settings) == 0 {
		return base, nil
	}
	raw, err := yaml.Marshal(settings)
	if err != nil {
		return Config{}, fmt.Errorf("encoding settings: %w", err)
	}
	if err := yaml.Unmarshal(raw, &base); err != nil {
		return Config{}, fmt.Errorf("decoding settings: %w", err)
	}
	return base, nil
}
