package card

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/muesli/reflow/ansi"

	"tableflip.dev/pokebox/pkg/pokemon"
	"tableflip.dev/pokebox/pkg/sprite"
	"tableflip.dev/pokebox/pkg/tui/theme"
)

func stripANSI(s string) string {
	var b strings.Builder
	seq := false
	for _, r := range s {
		if r == ansi.Marker {
			seq = true
			continue
		}
		if seq {
			if ansi.IsTerminator(r) {
				seq = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

var sprites = sprite.Resolver{BaseURL: "/sprites"}

func TestTypeTags(t *testing.T) {
	cases := []struct {
		type1, type2 string
		want         []string
	}{
		{"Pflanze", "Gift", []string{"Pflanze", "Gift"}},
		{"Elektro", "", []string{"Elektro"}},
		{"Feuer", "Feuer", []string{"Feuer"}},
		{"Feuer", "feuer", []string{"Feuer"}},
		{"Flug", "Normal", []string{"Flug"}},
		{"Flug", "NORMAL", []string{"Flug"}},
		{"Normal", "Flug", []string{"Normal", "Flug"}},
		{"", "", nil},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, TypeTags(tc.type1, tc.type2)); diff != "" {
			t.Fatalf("TypeTags(%q, %q) (-want +got):\n%s", tc.type1, tc.type2, diff)
		}
	}
}

func TestEntryCardContent(t *testing.T) {
	e := pokemon.OwnedEntry{ID: 1, PokedexID: 25, SpeciesName: "Pikachu", Nickname: "Blitz", Level: 12, Edition: "GRUEN", BoxName: "BOX3", Type1: "Elektro"}
	c := ForEntry(e, sprites, theme.Default())

	want := []string{"[/sprites/025.png]", "#025 Blitz (Pikachu)", "Lv. 12  Grün · Box 3", "Elektro"}
	if diff := cmp.Diff(want, c.Lines()); diff != "" {
		t.Fatalf("unexpected lines (-want +got):\n%s", diff)
	}

	out := stripANSI(c.Render(40, false, false))
	for _, s := range want[1:] {
		if !strings.Contains(out, s) {
			t.Fatalf("rendered card missing %q:\n%s", s, out)
		}
	}
}

func TestEntryCardWithoutNickname(t *testing.T) {
	e := pokemon.OwnedEntry{PokedexID: 7, SpeciesName: "Schiggy", Level: 5, Edition: "ROT", BoxName: "TEAM", Type1: "Wasser", Type2: "Normal"}
	c := ForEntry(e, sprites, theme.Default())
	if c.Title() != "Schiggy" {
		t.Fatalf("expected species name, got %q", c.Title())
	}
	if diff := cmp.Diff([]string{"Wasser"}, c.Tags()); diff != "" {
		t.Fatalf("neutral second type must be hidden (-want +got):\n%s", diff)
	}
	if c.Location() != "Rot · Team" {
		t.Fatalf("unexpected location %q", c.Location())
	}
}

func TestSpeciesCard(t *testing.T) {
	c := ForSpecies(pokemon.Species{PokedexID: 1, Name: "Bisasam", Type1: "Pflanze", Type2: "Gift"}, sprites, theme.Default())
	if _, ok := c.Entry(); ok {
		t.Fatalf("species card must not expose an entry")
	}
	if c.Click() != nil {
		t.Fatalf("species cards cannot be opened")
	}
	if diff := cmp.Diff([]string{"[/sprites/001.png]", "#001 Bisasam", "Pflanze Gift"}, c.Lines()); diff != "" {
		t.Fatalf("unexpected lines (-want +got):\n%s", diff)
	}
}

func TestPlaceholderSprite(t *testing.T) {
	c := ForEntry(pokemon.OwnedEntry{PokedexID: 0}, sprites, theme.Default())
	if c.Sprite() != "/sprites/placeholder.png" {
		t.Fatalf("expected placeholder, got %q", c.Sprite())
	}
}

func TestClickEmitsEntry(t *testing.T) {
	e := pokemon.OwnedEntry{ID: 5, PokedexID: 4}
	msg := ForEntry(e, sprites, theme.Default()).Click()()
	click, ok := msg.(ClickMsg)
	if !ok || click.Entry.ID != 5 {
		t.Fatalf("expected ClickMsg for entry 5, got %#v", msg)
	}
}

func TestRowTruncates(t *testing.T) {
	e := pokemon.OwnedEntry{PokedexID: 130, SpeciesName: "Garados", Nickname: "Seeschlange", Level: 40, Type1: "Wasser", Type2: "Flug"}
	c := ForEntry(e, sprites, theme.Default())
	row := stripANSI(c.Row(20, true, false))
	if !strings.HasPrefix(row, "› #130") {
		t.Fatalf("unexpected row %q", row)
	}
	if !strings.HasSuffix(row, "…") {
		t.Fatalf("expected truncated row, got %q", row)
	}
	if full := stripANSI(c.Row(0, false, true)); !strings.Contains(full, "Wasser/Flug") || !strings.HasPrefix(full, "⇄ ") {
		t.Fatalf("unexpected dragging row %q", full)
	}
}
