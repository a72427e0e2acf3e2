package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"tableflip.dev/pokebox/pkg/client"
	"tableflip.dev/pokebox/pkg/pokemon"
)

type countingClient struct {
	client.Client

	species  int
	editions int
	boxes    int
	rules    int
	fail     bool
}

func (c *countingClient) ListSpecies(context.Context) ([]pokemon.Species, error) {
	c.species++
	if c.fail {
		return nil, errors.New("offline")
	}
	return []pokemon.Species{{PokedexID: 1, Name: "Bisasam", Type1: "Pflanze", Type2: "Gift"}}, nil
}

func (c *countingClient) ListEditions(context.Context) ([]string, error) {
	c.editions++
	return []string{"ROT", "BLAU"}, nil
}

func (c *countingClient) ListBoxNames(context.Context) ([]string, error) {
	c.boxes++
	return []string{"TEAM", "BOX1"}, nil
}

func (c *countingClient) EvolutionRules(context.Context) (pokemon.EvolutionRules, error) {
	c.rules++
	return pokemon.EvolutionRules{1: {2}}, nil
}

func (c *countingClient) BoxContents(context.Context, string, string) (*pokemon.BoxContents, error) {
	return &pokemon.BoxContents{Capacity: 6}, nil
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newCache(t *testing.T, clk *clock) *Cache {
	t.Helper()
	c, err := NewCache(CacheOptions{Path: t.TempDir(), TTL: time.Hour, Now: clk.now})
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	return c
}

func TestCachingClientServesReferenceFromCache(t *testing.T) {
	clk := &clock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	inner := &countingClient{}
	cc := NewCachingClient(inner, newCache(t, clk), Scope("http://localhost:8080/api"), nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		species, err := cc.ListSpecies(ctx)
		if err != nil {
			t.Fatalf("ListSpecies: %v", err)
		}
		if diff := cmp.Diff([]pokemon.Species{{PokedexID: 1, Name: "Bisasam", Type1: "Pflanze", Type2: "Gift"}}, species); diff != "" {
			t.Fatalf("unexpected species (-want +got):\n%s", diff)
		}
		if _, err := cc.ListEditions(ctx); err != nil {
			t.Fatalf("ListEditions: %v", err)
		}
		if _, err := cc.ListBoxNames(ctx); err != nil {
			t.Fatalf("ListBoxNames: %v", err)
		}
		rules, err := cc.EvolutionRules(ctx)
		if err != nil {
			t.Fatalf("EvolutionRules: %v", err)
		}
		if !rules.Allows(1, 2) {
			t.Fatalf("rules lost in the cache round trip: %v", rules)
		}
	}
	if inner.species != 1 || inner.editions != 1 || inner.boxes != 1 || inner.rules != 1 {
		t.Fatalf("expected one fetch per reference list, got %+v", inner)
	}

	clk.t = clk.t.Add(2 * time.Hour)
	if _, err := cc.ListSpecies(ctx); err != nil {
		t.Fatalf("ListSpecies: %v", err)
	}
	if inner.species != 2 {
		t.Fatalf("expected expired snapshot to be refetched, got %d fetches", inner.species)
	}
}

func TestCachingClientPassesBoxesThrough(t *testing.T) {
	clk := &clock{t: time.Now()}
	cc := NewCachingClient(&countingClient{}, newCache(t, clk), "s", nil)
	box, err := cc.BoxContents(context.Background(), "ROT", "TEAM")
	if err != nil || box.Capacity != 6 {
		t.Fatalf("expected pass-through box, got %+v, %v", box, err)
	}
	for _, k := range cc.cache.Keys() {
		if k != key("s", SpeciesKey) && k != key("s", EditionsKey) && k != key("s", BoxNamesKey) && k != key("s", EvolutionKey) {
			t.Fatalf("unexpected cached key %q", k)
		}
	}
}

func TestCachingClientDoesNotCacheFailures(t *testing.T) {
	clk := &clock{t: time.Now()}
	inner := &countingClient{fail: true}
	cc := NewCachingClient(inner, newCache(t, clk), "s", nil)
	if _, err := cc.ListSpecies(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	inner.fail = false
	if _, err := cc.ListSpecies(context.Background()); err != nil {
		t.Fatalf("ListSpecies: %v", err)
	}
	if inner.species != 2 {
		t.Fatalf("expected the failure to leave nothing behind, got %d fetches", inner.species)
	}
}

func TestCacheClearAndScopes(t *testing.T) {
	clk := &clock{t: time.Now()}
	c := newCache(t, clk)
	a, b := Scope("http://a/api"), Scope("http://b/api/")
	if a == b {
		t.Fatalf("different APIs must not share a scope")
	}
	if Scope("http://a/api/") != a {
		t.Fatalf("trailing slash must not change the scope")
	}
	if err := c.Put(key(a, EditionsKey), []string{"ROT"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	var got []string
	if !c.Get(key(a, EditionsKey), &got) || len(got) != 1 {
		t.Fatalf("expected a hit, got %v", got)
	}
	if c.Get(key(b, EditionsKey), &got) {
		t.Fatalf("expected a miss for another scope")
	}
	if err := c.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if c.Get(key(a, EditionsKey), &got) {
		t.Fatalf("expected a miss after clear")
	}
}
