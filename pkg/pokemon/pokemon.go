// Package pokemon holds the data model shared by the client, the service and
// the terminal UI: catalog species, owned entries, boxes and evolution rules.
package pokemon

import (
	"fmt"
	"strings"
)

const (
	// MaxNicknameLength is the longest nickname an owned entry may carry.
	MaxNicknameLength = 11
	// MinLevel and MaxLevel bound an owned entry's level.
	MinLevel = 1
	MaxLevel = 100

	// TeamCapacity is the number of entries the reserved team box holds.
	TeamCapacity = 6
	// BoxCapacity is the number of entries every numbered box holds.
	BoxCapacity = 20

	// NeutralType is the default type that is never shown as a second tag.
	NeutralType = "Normal"
)

// Species is an immutable catalog record.
type Species struct {
	ID        int    `json:"id,omitempty"`
	PokedexID int    `json:"pokedexId"`
	Name      string `json:"name"`
	Type1     string `json:"type1"`
	Type2     string `json:"type2,omitempty"`
}

// Number renders the catalog number the way cards show it, e.g. "#025".
func (s Species) Number() string {
	return Number(s.PokedexID)
}

// OwnedEntry is a captured instance of a Species.
type OwnedEntry struct {
	ID          int    `json:"id"`
	PokedexID   int    `json:"pokedexId"`
	SpeciesName string `json:"speciesName,omitempty"`
	Nickname    string `json:"nickname,omitempty"`
	Level       int    `json:"level"`
	Edition     string `json:"edition"`
	BoxName     string `json:"boxName"`
	Type1       string `json:"type1,omitempty"`
	Type2       string `json:"type2,omitempty"`
}

// DisplayName returns the nickname when one is set, otherwise the species
// name.
func (e OwnedEntry) DisplayName() string {
	if nick := strings.TrimSpace(e.Nickname); nick != "" {
		return nick
	}
	if e.SpeciesName != "" {
		return e.SpeciesName
	}
	return Number(e.PokedexID)
}

// HasNickname reports whether the entry carries a non-blank nickname.
func (e OwnedEntry) HasNickname() bool {
	return strings.TrimSpace(e.Nickname) != ""
}

// Location returns the box the entry currently lives in.
func (e OwnedEntry) Location() BoxRef {
	return BoxRef{Edition: e.Edition, Box: e.BoxName}
}

// Number renders the catalog number for the entry.
func (e OwnedEntry) Number() string {
	return Number(e.PokedexID)
}

// Number zero-pads a catalog identifier to three digits.
func Number(pokedexID int) string {
	return fmt.Sprintf("#%03d", pokedexID)
}

// BoxRef identifies a box by its (edition, box name) pair. Values may be
// display labels or API tokens depending on the layer holding them.
type BoxRef struct {
	Edition string `json:"edition"`
	Box     string `json:"box"`
}

// String renders the pair for logs and status lines.
func (b BoxRef) String() string {
	return b.Edition + "/" + b.Box
}

// IsZero reports whether neither half of the pair is set.
func (b BoxRef) IsZero() bool {
	return b.Edition == "" && b.Box == ""
}

// BoxContents is the API's view of a single box.
type BoxContents struct {
	Name     string       `json:"name,omitempty"`
	Capacity int          `json:"capacity"`
	Pokemons []OwnedEntry `json:"pokemons"`
}

// Count returns the number of entries in the box.
func (b *BoxContents) Count() int {
	if b == nil {
		return 0
	}
	return len(b.Pokemons)
}

// Full reports whether the box has reached its capacity.
func (b *BoxContents) Full() bool {
	if b == nil || b.Capacity <= 0 {
		return false
	}
	return len(b.Pokemons) >= b.Capacity
}

// Capacity returns the number of entries a box may hold. The reserved team
// box holds six; every numbered box holds twenty.
func Capacity(box string) int {
	if strings.EqualFold(strings.TrimSpace(box), "team") {
		return TeamCapacity
	}
	return BoxCapacity
}

// CreateRequest is the body of a catch (POST /pokemon).
type CreateRequest struct {
	PokedexID int    `json:"pokedexId"`
	Nickname  string `json:"nickname,omitempty"`
	Level     int    `json:"level"`
	Edition   string `json:"edition"`
	Box       string `json:"box"`
}

// UpdateRequest is the body of an update (PATCH /pokemon/{id}). Updates always
// carry the full field set; a single-field change re-sends every other value.
type UpdateRequest struct {
	PokedexID int    `json:"pokedexId"`
	Nickname  string `json:"nickname"`
	Level     int    `json:"level"`
	Edition   string `json:"edition"`
	Box       string `json:"box"`
}

// UpdateFrom builds a full-field update request from the entry's current
// values.
func UpdateFrom(e OwnedEntry) UpdateRequest {
	return UpdateRequest{
		PokedexID: e.PokedexID,
		Nickname:  e.Nickname,
		Level:     e.Level,
		Edition:   e.Edition,
		Box:       e.BoxName,
	}
}

// Move describes a relocation. All fields except ID are API tokens.
type Move struct {
	SourceBox     string
	TargetBox     string
	ID            int
	SourceEdition string
	TargetEdition string
}

// String renders the move the way the API path orders its segments.
func (m Move) String() string {
	return fmt.Sprintf("%s/move-to/%s/%d/%s/%s", m.SourceBox, m.TargetBox, m.ID, m.SourceEdition, m.TargetEdition)
}
