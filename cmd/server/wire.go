package main

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"

	"github.com/osa030/playtime/internal/app/analyzer"
	"github.com/osa030/playtime/internal/app/report"
	"github.com/osa030/playtime/internal/domain/locale"
	"github.com/osa030/playtime/internal/infra/config"
	"github.com/osa030/playtime/internal/infra/dictionary"
	"github.com/osa030/playtime/internal/infra/fetchcache"
	"github.com/osa030/playtime/internal/infra/youtube"
)

// components are the long-lived objects shared by the server and the report command.
type components struct {
	cache     fetchcache.Cache
	service   *analyzer.Service
	validator *analyzer.Validator
}

func (c *components) Close() error {
	return c.cache.Close()
}

// build wires the analyzer from configuration.
func build(ctx context.Context, cfg *config.Config) (*components, error) {
	logger := zerolog.Ctx(ctx)

	locales, err := locale.NewSet(cfg.Locales.Supported, cfg.Locales.Default)
	if err != nil {
		return nil, errors.Wrap(err, "invalid locales")
	}

	dicts, err := dictionary.New(cfg.Dictionaries.Dir)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open dictionaries")
	}
	if err := dicts.Preload(locales.Supported()); err != nil {
		return nil, errors.Wrap(err, "failed to load dictionaries")
	}

	cache, err := fetchcache.New(fetchcache.Config{
		Backend:  cfg.Cache.Backend,
		RedisURL: cfg.Cache.RedisURL,
		Size:     cfg.Cache.Size,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fetch cache")
	}

	client, err := youtube.New(youtube.Config{
		APIKey:    cfg.YouTube.APIKey,
		BaseURL:   cfg.YouTube.BaseURL,
		BatchSize: cfg.YouTube.BatchSize,
		Timeout:   cfg.YouTube.Timeout,
		Endpoints: endpoints(cfg.YouTube.Endpoints),
		Cache:     cache,
	})
	if err != nil {
		_ = cache.Close()
		return nil, errors.Wrap(err, "failed to create youtube client")
	}

	logger.Info().
		Str("cache", cfg.Cache.Backend).
		Int("batch_size", cfg.YouTube.BatchSize).
		Strs("locales", cfg.Locales.Supported).
		Msg("Analyzer ready")

	policy := analyzer.CachePolicy{
		Short:     cfg.Cache.Short,
		Long:      cfg.Cache.Long,
		Threshold: cfg.Cache.Threshold,
	}

	return &components{
		cache:     cache,
		service:   analyzer.NewService(client, policy, report.NewBuilder(dicts)),
		validator: analyzer.NewValidator(locales, cfg.YouTube.ListParam),
	}, nil
}

// endpoints overlays configured selectors on the built-in ones.
func endpoints(overrides map[string]config.EndpointConfig) map[youtube.Endpoint]youtube.EndpointConfig {
	out := youtube.DefaultEndpoints()
	for name, o := range overrides {
		ep := youtube.Endpoint(name)
		cur := out[ep]
		if o.Path != "" {
			cur.Path = o.Path
		}
		if o.Part != "" {
			cur.Part = o.Part
		}
		if o.Fields != "" {
			cur.Fields = o.Fields
		}
		if o.MaxResults > 0 {
			cur.MaxResults = o.MaxResults
		}
		out[ep] = cur
	}
	return out
}
