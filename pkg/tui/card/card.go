// Package card renders a single catalog species or owned entry.
package card

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/pokebox/pkg/mapper"
	"tableflip.dev/pokebox/pkg/pokemon"
	"tableflip.dev/pokebox/pkg/sprite"
	"tableflip.dev/pokebox/pkg/tui/theme"
)

// ClickMsg is emitted when a card is activated.
type ClickMsg struct {
	Entry pokemon.OwnedEntry
}

// Click returns a command emitting ClickMsg for e.
func Click(e pokemon.OwnedEntry) tea.Cmd {
	return func() tea.Msg { return ClickMsg{Entry: e} }
}

// Model is a stateless view of one entry or species.
type Model struct {
	entry   *pokemon.OwnedEntry
	species *pokemon.Species
	sprites sprite.Resolver
	theme   theme.Theme
}

// ForEntry returns a card for an owned entry.
func ForEntry(e pokemon.OwnedEntry, sprites sprite.Resolver, th theme.Theme) Model {
	return Model{entry: &e, sprites: sprites, theme: th}
}

// ForSpecies returns a card for a catalog species.
func ForSpecies(s pokemon.Species, sprites sprite.Resolver, th theme.Theme) Model {
	return Model{species: &s, sprites: sprites, theme: th}
}

// Entry returns the owned entry, if the card shows one.
func (m Model) Entry() (pokemon.OwnedEntry, bool) {
	if m.entry == nil {
		return pokemon.OwnedEntry{}, false
	}
	return *m.entry, true
}

// Species returns the species, if the card shows one.
func (m Model) Species() (pokemon.Species, bool) {
	if m.species == nil {
		return pokemon.Species{}, false
	}
	return *m.species, true
}

// Click emits ClickMsg for the card's entry. Species cards have nothing to
// open and return nil.
func (m Model) Click() tea.Cmd {
	if m.entry == nil {
		return nil
	}
	return Click(*m.entry)
}

// TypeTags returns the tags to show for a pair of types. The second is
// dropped when absent, equal to the first, or the neutral type.
func TypeTags(type1, type2 string) []string {
	type1, type2 = strings.TrimSpace(type1), strings.TrimSpace(type2)
	var tags []string
	if type1 != "" {
		tags = append(tags, type1)
	}
	if type2 == "" || strings.EqualFold(type2, type1) || strings.EqualFold(type2, pokemon.NeutralType) {
		return tags
	}
	return append(tags, type2)
}

// Tags returns the card's type tags.
func (m Model) Tags() []string {
	switch {
	case m.entry != nil:
		return TypeTags(m.entry.Type1, m.entry.Type2)
	case m.species != nil:
		return TypeTags(m.species.Type1, m.species.Type2)
	}
	return nil
}

// Sprite returns the resolved sprite location.
func (m Model) Sprite() string {
	return m.sprites.Resolve(m.pokedexID())
}

func (m Model) pokedexID() int {
	switch {
	case m.entry != nil:
		return m.entry.PokedexID
	case m.species != nil:
		return m.species.PokedexID
	}
	return 0
}

// Title is the headline: the nickname (with the species name after it) or
// the species name.
func (m Model) Title() string {
	switch {
	case m.entry != nil:
		if m.entry.HasNickname() && m.entry.SpeciesName != "" {
			return fmt.Sprintf("%s (%s)", strings.TrimSpace(m.entry.Nickname), m.entry.SpeciesName)
		}
		return m.entry.DisplayName()
	case m.species != nil:
		return m.species.Name
	}
	return ""
}

// Location returns "Rot · Team" for entries and "" for species.
func (m Model) Location() string {
	if m.entry == nil {
		return ""
	}
	return mapper.DisplayEdition(m.entry.Edition) + " · " + mapper.DisplayBoxName(m.entry.BoxName)
}

// Lines returns the card content as plain text.
func (m Model) Lines() []string {
	number := pokemon.Number(m.pokedexID())
	lines := []string{"[" + m.Sprite() + "]", number + " " + m.Title()}
	if m.entry != nil {
		lines = append(lines, fmt.Sprintf("Lv. %d  %s", m.entry.Level, m.Location()))
	}
	if tags := m.Tags(); len(tags) > 0 {
		lines = append(lines, strings.Join(tags, " "))
	}
	return lines
}

// Render draws the full card. width bounds the content; zero leaves it
// unbounded.
func (m Model) Render(width int, selected, dragging bool) string {
	th := m.theme.Card
	number := pokemon.Number(m.pokedexID())

	rows := []string{
		th.Sprite.Render(clip("["+m.Sprite()+"]", width)),
		th.Number.Render(number) + " " + th.Name.Render(clip(m.Title(), width-len(number)-1)),
	}
	if m.entry != nil {
		rows = append(rows, th.Meta.Render(clip(fmt.Sprintf("Lv. %d  %s", m.entry.Level, m.Location()), width)))
	}
	if tags := m.Tags(); len(tags) > 0 {
		rendered := make([]string, 0, len(tags))
		for _, tag := range tags {
			rendered = append(rendered, m.theme.TypeTag(tag))
		}
		rows = append(rows, strings.Join(rendered, " "))
	}

	frame := th.Frame
	switch {
	case dragging:
		frame = th.Dragging
	case selected:
		frame = th.Selected
	}
	return frame.Render(strings.Join(rows, "\n"))
}

const markerWidth = 2

// Row draws the card as a single line for lists.
func (m Model) Row(width int, selected, dragging bool) string {
	marker := "  "
	switch {
	case dragging:
		marker = "⇄ "
	case selected:
		marker = "› "
	}
	text := pokemon.Number(m.pokedexID()) + " " + m.Title()
	if m.entry != nil {
		text += fmt.Sprintf("  Lv.%d", m.entry.Level)
	}
	if tags := m.Tags(); len(tags) > 0 {
		text += "  " + strings.Join(tags, "/")
	}
	line := marker + clip(text, width-markerWidth)
	switch {
	case dragging:
		return m.theme.Card.RowDragging.Render(line)
	case selected:
		return m.theme.Card.RowSelected.Render(line)
	}
	return line
}

func clip(s string, width int) string {
	if width <= 0 {
		return s
	}
	return truncate.StringWithTail(s, uint(width), "…")
}
