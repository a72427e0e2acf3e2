// Package sprite resolves where the artwork for a catalog number lives.
package sprite

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Placeholder is the file shown when a sprite is unavailable.
const Placeholder = "placeholder.png"

// Resolver maps catalog numbers to sprite locations under BaseURL. When Dir
// is set, a sprite missing from it resolves to the placeholder.
type Resolver struct {
	BaseURL string
	Dir     string
}

// File returns the sprite file name for a catalog number.
func File(pokedexID int) string {
	return fmt.Sprintf("%03d.png", pokedexID)
}

// Resolve returns the sprite location for pokedexID, or the placeholder.
func (r Resolver) Resolve(pokedexID int) string {
	if !r.Available(pokedexID) {
		return r.join(Placeholder)
	}
	return r.join(File(pokedexID))
}

// Available reports whether a real sprite exists for pokedexID.
func (r Resolver) Available(pokedexID int) bool {
	if pokedexID <= 0 {
		return false
	}
	if r.Dir == "" {
		return true
	}
	info, err := os.Stat(filepath.Join(r.Dir, File(pokedexID)))
	return err == nil && !info.IsDir()
}

func (r Resolver) join(name string) string {
	base := strings.TrimRight(r.BaseURL, "/")
	if base == "" {
		return name
	}
	return base + "/" + name
}
