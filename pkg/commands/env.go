package commands

import (
	"tableflip.dev/pokebox/pkg/app"
	"tableflip.dev/pokebox/pkg/client"
	"tableflip.dev/pokebox/pkg/commands/options"
	"tableflip.dev/pokebox/pkg/config"
	"tableflip.dev/pokebox/pkg/logging"
	"tableflip.dev/pokebox/pkg/sprite"
	"tableflip.dev/pokebox/pkg/store"
)

// env is what every command that talks to the API needs.
type env struct {
	cfg     *config.Config
	log     *logging.Logger
	service *app.Service
}

func loadConfig(ao *options.APIOptions) (*config.Config, error) {
	cfg, err := config.Load(ao.Config)
	if err != nil {
		return nil, err
	}
	if ao.URL != "" {
		cfg.API.URL = ao.URL
	}
	return cfg, nil
}

func openCache(cfg *config.Config) (*store.Cache, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}
	return store.NewCache(store.CacheOptions{Path: cfg.Cache.Path, TTL: cfg.Cache.TTL})
}

func setup(ao *options.APIOptions) (*env, error) {
	cfg, err := loadConfig(ao)
	if err != nil {
		return nil, err
	}
	log, err := logging.New(logging.Config{Level: cfg.Log.Level, Path: cfg.Log.Path})
	if err != nil {
		return nil, err
	}

	h, err := client.NewHTTP(client.Options{
		BaseURL:      cfg.API.URL,
		EditionsPath: cfg.API.EditionsPath,
		BoxNamesPath: cfg.API.BoxNamesPath,
		Timeout:      cfg.API.Timeout,
		Logger:       log.Logger,
	})
	if err != nil {
		return nil, err
	}
	var c client.Client = h
	if !ao.NoCache {
		cache, err := openCache(cfg)
		if err != nil {
			return nil, err
		}
		if cache != nil {
			c = store.NewCachingClient(h, cache, store.Scope(cfg.API.URL), log.Logger)
		}
	}

	return &env{
		cfg:     cfg,
		log:     log,
		service: &app.Service{Client: c, Logger: log.Logger},
	}, nil
}

func (e *env) sprites() sprite.Resolver {
	return sprite.Resolver{BaseURL: e.cfg.Sprites.URL, Dir: e.cfg.Sprites.Dir}
}

func (e *env) close() {
	_ = e.log.Sync()
}
