package store

import (
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"
)

// DefaultTTL is how long a reference snapshot is trusted.
const DefaultTTL = 24 * time.Hour

// CacheOptions configure a Cache.
type CacheOptions struct {
	// Path is the directory snapshots are written to.
	Path string
	// TTL bounds the age of a snapshot. Zero means DefaultTTL.
	TTL time.Duration
	// Now is the clock; tests replace it.
	Now func() time.Time
}

// Cache persists JSON snapshots of reference data on disk. Keys are
// "scope-name"; every scope is stored in its own directory.
type Cache struct {
	d    *diskv.Diskv
	base string
	ttl  time.Duration
	now  func() time.Time
}

type snapshot struct {
	Stored time.Time       `json:"stored"`
	Data   json.RawMessage `json:"data"`
}

// NewCache opens (and lazily creates) a cache rooted at opts.Path.
func NewCache(opts CacheOptions) (*Cache, error) {
	if opts.Path == "" {
		return nil, errors.New("store: cache path is required")
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Cache{
		d: diskv.New(diskv.Options{
			BasePath:          opts.Path,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
		base: opts.Path,
		ttl:  ttl,
		now:  now,
	}, nil
}

// Scope derives a stable key prefix for an API base URL so two collections
// never share snapshots.
func Scope(baseURL string) string {
	sum := md5.Sum([]byte(strings.TrimRight(baseURL, "/")))
	return fmt.Sprintf("%x", sum[:6])
}

// Get decodes the snapshot stored under key into out. It reports false when
// the key is missing, expired or unreadable.
func (c *Cache) Get(key string, out any) bool {
	if !c.d.Has(key) {
		return false
	}
	raw, err := c.d.Read(key)
	if err != nil {
		return false
	}
	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return false
	}
	if c.now().Sub(snap.Stored) > c.ttl {
		return false
	}
	return json.Unmarshal(snap.Data, out) == nil
}

// Put stores v under key, stamped with the current time.
func (c *Cache) Put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	raw, err := json.Marshal(snapshot{Stored: c.now().UTC(), Data: data})
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	if err := c.d.Write(key, raw); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

// Keys lists every stored key.
func (c *Cache) Keys() []string {
	var keys []string
	for k := range c.d.Keys(nil) {
		keys = append(keys, k)
	}
	return keys
}

// Clear removes every snapshot.
func (c *Cache) Clear() error {
	if err := c.d.EraseAll(); err != nil {
		return fmt.Errorf("store: clear %s: %w", c.base, err)
	}
	return nil
}

// Path returns the cache directory.
func (c *Cache) Path() string { return c.base }

func key(scope, name string) string {
	return scope + "-" + name
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}
