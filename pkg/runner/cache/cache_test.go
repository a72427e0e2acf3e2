package cache

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/pokebox/pkg/store"
)

func init() {
	color.NoColor = true
}

func TestListAndClear(t *testing.T) {
	c, err := store.NewCache(store.CacheOptions{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	if err := c.Put("abc-species", []string{"x"}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var buf bytes.Buffer
	list := Cache{Cache: c, Out: &buf}
	if err := list.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if !strings.Contains(buf.String(), "abc-species") {
		t.Fatalf("expected the key listed, got %q", buf.String())
	}

	buf.Reset()
	wipe := Cache{Clear: true, Cache: c, Out: &buf}
	if err := wipe.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if keys := c.Keys(); len(keys) != 0 {
		t.Fatalf("cache should be empty, got %v", keys)
	}
}

func TestDisabled(t *testing.T) {
	c := Cache{}
	if err := c.Do(context.Background()); err == nil {
		t.Fatalf("expected an error without a cache")
	}
}
