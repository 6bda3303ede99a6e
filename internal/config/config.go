// Package config loads settings from defaults, an optional YAML file and
// POKEDEX_ environment variables, in that order of precedence (lowest first).
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/meur/pokedex/internal/catalog"
)

// EnvPrefix is prepended to every environment variable, e.g. POKEDEX_SERVER_ADDR
const EnvPrefix = "POKEDEX"

type Server struct {
	Addr            string        `mapstructure:"addr"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type Catalog struct {
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

type Cache struct {
	Backend  string        `mapstructure:"backend"`
	DSN      string        `mapstructure:"dsn"`
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type Palette struct {
	File string `mapstructure:"file"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type I18n struct {
	Default string `mapstructure:"default"`
}

// Config is the full application configuration
type Config struct {
	Server  Server  `mapstructure:"server"`
	Catalog Catalog `mapstructure:"catalog"`
	Cache   Cache   `mapstructure:"cache"`
	Palette Palette `mapstructure:"palette"`
	Log     Log     `mapstructure:"log"`
	I18n    I18n    `mapstructure:"i18n"`
}

// SetDefaults registers every key with its default on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("catalog.base_url", catalog.DefaultBaseURL)
	v.SetDefault("catalog.timeout", 10*time.Second)
	v.SetDefault("catalog.user_agent", "pokedex-web/1.0")

	v.SetDefault("cache.backend", "sqlite")
	v.SetDefault("cache.dsn", "./pokedex.db")
	v.SetDefault("cache.redis_url", "redis://localhost:6379/0")
	v.SetDefault("cache.ttl", time.Hour)

	v.SetDefault("palette.file", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("i18n.default", "en")
}

// Load reads configuration into v. An empty path searches ./pokedex.yaml and
// $HOME/.config/pokedex/pokedex.yaml; a missing file is fine then.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("pokedex")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/pokedex")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values viper cannot check on its own
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if u, err := url.Parse(c.Catalog.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("catalog.base_url %q is not an absolute URL", c.Catalog.BaseURL))
	}
	if c.Catalog.Timeout <= 0 {
		errs = append(errs, errors.New("catalog.timeout must be positive"))
	}

	switch c.Cache.Backend {
	case "sqlite", "postgres":
		if c.Cache.DSN == "" {
			errs = append(errs, fmt.Errorf("cache.dsn is required for the %s backend", c.Cache.Backend))
		}
	case "redis":
		if c.Cache.RedisURL == "" {
			errs = append(errs, errors.New("cache.redis_url is required for the redis backend"))
		}
	case "none":
	default:
		errs = append(errs, fmt.Errorf("cache.backend %q is not one of sqlite, postgres, redis, none", c.Cache.Backend))
	}
	if c.Cache.Backend != "none" && c.Cache.TTL <= 0 {
		errs = append(errs, errors.New("cache.ttl must be positive"))
	}

	switch c.Log.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q is not console or json", c.Log.Format))
	}
	switch c.I18n.Default {
	case "en", "sv":
	default:
		errs = append(errs, fmt.Errorf("i18n.default %q is not en or sv", c.I18n.Default))
	}

	return errors.Join(errs...)
}
