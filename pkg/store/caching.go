package store

import (
	"context"

	"go.uber.org/zap"

	"tableflip.dev/pokebox/pkg/client"
	"tableflip.dev/pokebox/pkg/pokemon"
)

// Snapshot names under a scope.
const (
	SpeciesKey   = "species"
	EditionsKey  = "editions"
	BoxNamesKey  = "boxnames"
	EvolutionKey = "evolution"
)

// CachingClient serves reference reads (species, editions, box names,
// evolution rules) from a Cache and passes everything else straight through.
// Owned entries and boxes are never cached.
type CachingClient struct {
	client.Client

	cache *Cache
	scope string
	log   *zap.Logger
}

var _ client.Client = (*CachingClient)(nil)

// NewCachingClient wraps c. scope keeps snapshots of different APIs apart;
// see Scope.
func NewCachingClient(c client.Client, cache *Cache, scope string, log *zap.Logger) *CachingClient {
	if log == nil {
		log = zap.NewNop()
	}
	return &CachingClient{Client: c, cache: cache, scope: scope, log: log.Named("cache")}
}

// ListSpecies implements client.Client.
func (c *CachingClient) ListSpecies(ctx context.Context) ([]pokemon.Species, error) {
	return cached(ctx, c, SpeciesKey, c.Client.ListSpecies)
}

// ListEditions implements client.Client.
func (c *CachingClient) ListEditions(ctx context.Context) ([]string, error) {
	return cached(ctx, c, EditionsKey, c.Client.ListEditions)
}

// ListBoxNames implements client.Client.
func (c *CachingClient) ListBoxNames(ctx context.Context) ([]string, error) {
	return cached(ctx, c, BoxNamesKey, c.Client.ListBoxNames)
}

// EvolutionRules implements client.Client.
func (c *CachingClient) EvolutionRules(ctx context.Context) (pokemon.EvolutionRules, error) {
	return cached(ctx, c, EvolutionKey, c.Client.EvolutionRules)
}

func cached[T any](ctx context.Context, c *CachingClient, name string, fetch func(context.Context) (T, error)) (T, error) {
	k := key(c.scope, name)
	var out T
	if c.cache.Get(k, &out) {
		c.log.Debug("hit", zap.String("key", k))
		return out, nil
	}
	out, err := fetch(ctx)
	if err != nil {
		return out, err
	}
	if err := c.cache.Put(k, out); err != nil {
		c.log.Warn("write failed", zap.String("key", k), zap.Error(err))
	}
	return out, nil
}
