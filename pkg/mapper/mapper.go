// Package mapper converts between the labels the UI shows (edition names such
// as "Grün", box names such as "Box 3") and the canonical tokens the
// collection API expects in paths and bodies ("GRUEN", "BOX3").
//
// Every function is pure and total: unknown input never fails, it falls back
// to a deterministic normalization.
package mapper

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"tableflip.dev/pokebox/pkg/pokemon"
)

var (
	umlauts = strings.NewReplacer(
		"ä", "AE", "Ä", "AE",
		"ö", "OE", "Ö", "OE",
		"ü", "UE", "Ü", "UE",
		"ß", "SS", "ẞ", "SS",
	)

	numberedBox = regexp.MustCompile(`^Box (\d{1,2})$`)
	boxToken    = regexp.MustCompile(`^BOX(\d{1,2})$`)
	whitespace  = regexp.MustCompile(`\s+`)
)

// ToAPIEdition converts an edition label into its API token: the label is
// uppercased and each umlaut or sharp s is replaced by its ASCII digraph.
func ToAPIEdition(display string) string {
	if display == "" {
		return ""
	}
	return strings.ToUpper(umlauts.Replace(display))
}

// ToAPIBoxName converts a box label into its API token. "Team" becomes
// "TEAM", "Box N" becomes "BOXN", anything else is uppercased with its
// whitespace removed, which leaves canonical tokens untouched.
func ToAPIBoxName(display string) string {
	if display == "" {
		return ""
	}
	if display == "Team" {
		return "TEAM"
	}
	if m := numberedBox.FindStringSubmatch(display); m != nil {
		return "BOX" + m[1]
	}
	return whitespace.ReplaceAllString(strings.ToUpper(display), "")
}

// ToAPIBox converts both halves of a box reference.
func ToAPIBox(ref pokemon.BoxRef) pokemon.BoxRef {
	return pokemon.BoxRef{
		Edition: ToAPIEdition(ref.Edition),
		Box:     ToAPIBoxName(ref.Box),
	}
}

// DisplayEdition converts an edition token (or an already-displayable label)
// back into the label the UI shows.
func DisplayEdition(token string) string {
	if token == "" {
		return ""
	}
	canonical := ToAPIEdition(token)
	for _, ed := range pokemon.DefaultEditions() {
		if ed.Token == canonical {
			return ed.Display
		}
	}
	return titleCase(token)
}

// DisplayBoxName converts a box token back into its label. Tokens that are
// neither the team nor a numbered box are returned unchanged.
func DisplayBoxName(token string) string {
	if token == "" {
		return ""
	}
	canonical := ToAPIBoxName(token)
	if canonical == "TEAM" {
		return "Team"
	}
	if m := boxToken.FindStringSubmatch(canonical); m != nil {
		n, _ := strconv.Atoi(m[1])
		return "Box " + strconv.Itoa(n)
	}
	return token
}

// DisplayEditions maps a token list into labels, preserving order.
func DisplayEditions(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, DisplayEdition(t))
	}
	return out
}

// DisplayBoxNames maps a token list into labels, preserving order.
func DisplayBoxNames(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, DisplayBoxName(t))
	}
	return out
}

func titleCase(s string) string {
	lower := strings.ToLower(s)
	r, size := utf8.DecodeRuneInString(lower)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + lower[size:]
}
