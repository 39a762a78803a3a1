package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/dshills/storefront/internal/logging"
)

// staticEnv is a fixed environment layer.
type staticEnv map[string]any

func (e staticEnv) Load() (map[string]any, error) {
	return map[string]any(e), nil
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestConfig_Validate(t *testing.T) {
	cfg := Default()
	cfg.API.BaseURL = "not a url"
	cfg.API.Timeout = 0
	cfg.Logging.Level = "loud"
	cfg.Logging.Format = "xml"

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidationFailed)

	var paths []string
	for _, e := range multierr.Errors(err) {
		var verr *ValidationError
		require.ErrorAs(t, e, &verr)
		paths = append(paths, verr.Path)
	}
	assert.Equal(t, []string{"api.baseUrl", "api.timeout", "logging.level", "logging.format"}, paths)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(Options{Env: staticEnv{}})
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, "storefront.toml", `
[api]
baseUrl = "http://localhost:3000/api"
timeout = "3s"

[logging]
level = "debug"
format = "json"

[metrics]
addr = ":9090"
`)

	cfg, err := Load(Options{Path: path, Env: staticEnv{}})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000/api", cfg.API.BaseURL)
	assert.Equal(t, Default().API.CDNURL, cfg.API.CDNURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, ":9090", cfg.Metrics.Addr)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "storefront.yaml", `
api:
  cdnUrl: http://cdn.local/content
logging:
  level: warn
`)

	cfg, err := Load(Options{Path: path, Env: staticEnv{}})
	require.NoError(t, err)
	assert.Equal(t, "http://cdn.local/content", cfg.API.CDNURL)
	assert.Equal(t, Default().API.BaseURL, cfg.API.BaseURL)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "storefront.toml", "[logging]\nlevel = \"debug\"\n")

	cfg, err := Load(Options{Path: path, Env: staticEnv{
		"logging": map[string]any{"level": "error"},
		"api":     map[string]any{"timeout": "250ms"},
	}})
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Logging.Level)
	assert.Equal(t, 250*time.Millisecond, cfg.API.Timeout)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(Options{Path: filepath.Join(t.TempDir(), "absent.toml"), Env: staticEnv{}})
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Invalid(t *testing.T) {
	path := writeFile(t, "storefront.toml", "[api]\nbaseUrl = \"relative/path\"\n")

	_, err := Load(Options{Path: path, Env: staticEnv{}})
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestLoad_ParseError(t *testing.T) {
	path := writeFile(t, "storefront.toml", "[api\n")

	_, err := Load(Options{Path: path, Env: staticEnv{}})
	assert.Error(t, err)
}

func TestConfig_LoggingConfig(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "warn"
	cfg.Logging.Format = "json"

	lc := cfg.LoggingConfig()
	assert.Equal(t, logging.LevelWarn, lc.Level)
	assert.Equal(t, logging.FormatJSON, lc.Format)
}

func TestWatch_Reloads(t *testing.T) {
	path := writeFile(t, "storefront.toml", "[logging]\nlevel = \"info\"\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan Config, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, Options{Path: path, Env: staticEnv{}}, nil, func(c Config) {
			reloaded <- c
		})
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("[logging]\nlevel = \"debug\"\n"), 0o600))

	select {
	case cfg := <-reloaded:
		assert.Equal(t, "debug", cfg.Logging.Level)
	case <-time.After(5 * time.Second):
		t.Fatal("config was not reloaded")
	}

	cancel()
	assert.NoError(t, <-done)
}

func TestWatch_NoPath(t *testing.T) {
	assert.Error(t, Watch(context.Background(), Options{}, nil, func(Config) {}))
}
