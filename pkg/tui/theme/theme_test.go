package theme

import (
	"strings"
	"testing"
)

func TestTypeColorKnownTypes(t *testing.T) {
	r1, g1, b1, _ := TypeColor("Feuer").RGBA()
	r2, g2, b2, _ := TypeColor(" FEUER ").RGBA()
	if r1 != r2 || g1 != g2 || b1 != b2 {
		t.Fatalf("type lookup must ignore case and spacing")
	}
	if r, g, b, _ := TypeColor("Wasser").RGBA(); r == r1 && g == g1 && b == b1 {
		t.Fatalf("distinct types should get distinct colors")
	}
}

func TestTypeColorUnknownTypeIsStable(t *testing.T) {
	r1, g1, b1, _ := TypeColor("Stahl").RGBA()
	r2, g2, b2, _ := TypeColor("stahl").RGBA()
	if r1 != r2 || g1 != g2 || b1 != b2 {
		t.Fatalf("derived colors must be stable")
	}
}

func TestTypeTagKeepsLabel(t *testing.T) {
	if out := Default().TypeTag("Pflanze"); !strings.Contains(out, "Pflanze") {
		t.Fatalf("tag lost its label: %q", out)
	}
	if New(false).Dark {
		t.Fatalf("expected light theme")
	}
}
