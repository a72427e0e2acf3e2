package mapper

import (
	"strings"
	"testing"
	"unicode"

	"tableflip.dev/pokebox/pkg/pokemon"
)

func TestToAPIEdition(t *testing.T) {
	cases := map[string]string{
		"":         "",
		"Rot":      "ROT",
		"Grün":     "GRUEN",
		"GRÜN":     "GRUEN",
		"Straße":   "STRASSE",
		"Öl Äpfel": "OEL AEPFEL",
		"ümlaüt":   "UEMLAUET",
		"ROT":      "ROT",
		"Kristall": "KRISTALL",
	}
	for in, want := range cases {
		if got := ToAPIEdition(in); got != want {
			t.Fatalf("ToAPIEdition(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestToAPIEditionHasNoUmlauts(t *testing.T) {
	for _, in := range []string{"Grün", "Gold ä ö ü ß", "ÄÖÜẞ", "blaü"} {
		got := ToAPIEdition(in)
		if strings.ContainsAny(got, "äöüÄÖÜßẞ") {
			t.Fatalf("ToAPIEdition(%q) = %q still contains umlauts", in, got)
		}
		for _, r := range got {
			if unicode.IsLower(r) {
				t.Fatalf("ToAPIEdition(%q) = %q is not uppercase", in, got)
			}
		}
	}
}

func TestToAPIBoxName(t *testing.T) {
	cases := map[string]string{
		"":        "",
		"Team":    "TEAM",
		"Box 1":   "BOX1",
		"Box 7":   "BOX7",
		"Box 12":  "BOX12",
		"Box 123": "BOX123",
		"box 3":   "BOX3",
		"my  box": "MYBOX",
	}
	for in, want := range cases {
		if got := ToAPIBoxName(in); got != want {
			t.Fatalf("ToAPIBoxName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTokensAreIdempotent(t *testing.T) {
	for _, b := range pokemon.DefaultBoxes() {
		if got := ToAPIBoxName(b.Token); got != b.Token {
			t.Fatalf("ToAPIBoxName(%q) = %q, want token unchanged", b.Token, got)
		}
		if got := ToAPIBoxName(ToAPIBoxName(b.Display)); got != b.Token {
			t.Fatalf("double mapping of %q = %q, want %q", b.Display, got, b.Token)
		}
	}
	for _, ed := range pokemon.DefaultEditions() {
		if got := ToAPIEdition(ed.Token); got != ed.Token {
			t.Fatalf("ToAPIEdition(%q) = %q, want token unchanged", ed.Token, got)
		}
	}
}

func TestDisplayRoundTrip(t *testing.T) {
	for _, ed := range pokemon.DefaultEditions() {
		if got := DisplayEdition(ToAPIEdition(ed.Display)); got != ed.Display {
			t.Fatalf("edition round trip %q -> %q", ed.Display, got)
		}
	}
	for _, b := range pokemon.DefaultBoxes() {
		if got := DisplayBoxName(ToAPIBoxName(b.Display)); got != b.Display {
			t.Fatalf("box round trip %q -> %q", b.Display, got)
		}
	}
}

func TestDisplayFallbacks(t *testing.T) {
	if got := DisplayEdition("GRÜN"); got != "Grün" {
		t.Fatalf("expected raw enum name to map to Grün, got %q", got)
	}
	if got := DisplayEdition("KRISTALL"); got != "Kristall" {
		t.Fatalf("expected title-case fallback, got %q", got)
	}
	if got := DisplayBoxName("BOX03"); got != "Box 3" {
		t.Fatalf("expected Box 3, got %q", got)
	}
	if got := DisplayBoxName("PC"); got != "PC" {
		t.Fatalf("expected unknown box token to pass through, got %q", got)
	}
	if DisplayEdition("") != "" || DisplayBoxName("") != "" {
		t.Fatalf("empty input must map to empty output")
	}
}

func TestToAPIBox(t *testing.T) {
	got := ToAPIBox(pokemon.BoxRef{Edition: "Grün", Box: "Box 4"})
	if got.Edition != "GRUEN" || got.Box != "BOX4" {
		t.Fatalf("unexpected tokens %+v", got)
	}
}
