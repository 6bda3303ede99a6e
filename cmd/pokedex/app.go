package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/meur/pokedex/internal/cache"
	"github.com/meur/pokedex/internal/catalog"
	"github.com/meur/pokedex/internal/config"
	"github.com/meur/pokedex/internal/controller"
	"github.com/meur/pokedex/internal/i18n"
	"github.com/meur/pokedex/internal/palette"
)

// app wires the long-lived pieces shared by every command
type app struct {
	client    *catalog.Client
	cache     cache.Backend
	decorator *palette.Decorator
	bundle    *i18n.Bundle
	logger    *zap.Logger
}

func newApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*app, error) {
	colors := palette.Default()
	if cfg.Palette.File != "" {
		var err error
		colors, err = palette.LoadFile(cfg.Palette.File)
		if err != nil {
			return nil, err
		}
		logger.Info("Loaded palette overrides", zap.String("file", cfg.Palette.File))
	}

	bundle, err := i18n.New(cfg.I18n.Default)
	if err != nil {
		return nil, err
	}

	backend, err := cache.Open(ctx, cfg.Cache.Backend, cfg.Cache.DSN, cfg.Cache.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s cache: %w", cfg.Cache.Backend, err)
	}

	client, err := newClient(cfg, backend, logger)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return &app{
		client:    client,
		cache:     backend,
		decorator: palette.NewDecorator(colors),
		bundle:    bundle,
		logger:    logger,
	}, nil
}

// newClient builds a catalog client that reads and writes through cache
func newClient(cfg *config.Config, cache catalog.Cache, logger *zap.Logger) (*catalog.Client, error) {
	return catalog.New(cfg.Catalog.BaseURL,
		catalog.WithTimeout(cfg.Catalog.Timeout),
		catalog.WithUserAgent(cfg.Catalog.UserAgent),
		catalog.WithCache(cache, cfg.Cache.TTL),
		catalog.WithLogger(logger.Named("catalog")),
	)
}

func (a *app) deps() controller.Deps {
	return controller.Deps{
		Catalog:   a.client,
		Decorator: a.decorator,
		Logger:    a.logger.Named("controller"),
	}
}

func (a *app) Close() error {
	return a.cache.Close()
}
