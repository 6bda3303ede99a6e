package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "https://pokeapi.co/api/v2", cfg.Catalog.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, "sqlite", cfg.Cache.Backend)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "en", cfg.I18n.Default)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pokedex.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9000"
catalog:
  timeout: 3s
cache:
  backend: redis
  ttl: 30m
i18n:
  default: sv
`), 0o600))

	t.Setenv("POKEDEX_SERVER_ADDR", ":9100")
	t.Setenv("POKEDEX_LOG_FORMAT", "json")
	t.Setenv("POKEDEX_SERVER_CORS_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, ":9100", cfg.Server.Addr, "env beats file")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 3*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Equal(t, 30*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "sv", cfg.I18n.Default)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "failed to read config")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:  Server{Addr: ":8080"},
			Catalog: Catalog{BaseURL: "https://pokeapi.co/api/v2", Timeout: time.Second},
			Cache:   Cache{Backend: "sqlite", DSN: "x.db", TTL: time.Hour},
			Log:     Log{Level: "info", Format: "console"},
			I18n:    I18n{Default: "en"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"no cache", func(c *Config) { c.Cache = Cache{Backend: "none"} }, ""},
		{"empty addr", func(c *Config) { c.Server.Addr = "" }, "server.addr"},
		{"relative base url", func(c *Config) { c.Catalog.BaseURL = "/api" }, "catalog.base_url"},
		{"zero timeout", func(c *Config) { c.Catalog.Timeout = 0 }, "catalog.timeout"},
		{"unknown backend", func(c *Config) { c.Cache.Backend = "memcached" }, "cache.backend"},
		{"postgres without dsn", func(c *Config) { c.Cache = Cache{Backend: "postgres", TTL: time.Hour} }, "cache.dsn"},
		{"redis without url", func(c *Config) { c.Cache = Cache{Backend: "redis", TTL: time.Hour} }, "cache.redis_url"},
		{"zero ttl", func(c *Config) { c.Cache.TTL = 0 }, "cache.ttl"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"bad language", func(c *Config) { c.I18n.Default = "de" }, "i18n.default"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}
