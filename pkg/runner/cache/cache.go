// Package cache inspects and clears the reference data cache.
package cache

import (
	"context"
	"errors"
	"io"
	"sort"

	"tableflip.dev/pokebox/pkg/printers"
	"tableflip.dev/pokebox/pkg/store"
)

type Cache struct {
	Clear bool
	JSON  bool
	Cache *store.Cache
	Out   io.Writer
}

func (c *Cache) Do(_ context.Context) error {
	if c.Cache == nil {
		return errors.New("the reference cache is disabled")
	}
	pp := printers.PrettyPrint{Out: c.Out}

	if c.Clear {
		if err := c.Cache.Clear(); err != nil {
			return err
		}
		if c.JSON {
			return printers.JSON(c.Out, map[string]string{"cleared": c.Cache.Path()})
		}
		pp.Done("cleared %s", c.Cache.Path())
		return nil
	}

	keys := c.Cache.Keys()
	sort.Strings(keys)
	if c.JSON {
		return printers.JSON(c.Out, map[string]interface{}{"path": c.Cache.Path(), "keys": keys})
	}
	pp.Title(c.Cache.Path())
	if len(keys) == 0 {
		pp.Note(" empty")
		return nil
	}
	for _, k := range keys {
		pp.Note(" %s", k)
	}
	return nil
}
