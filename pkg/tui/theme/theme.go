package theme

import (
	"hash/fnv"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Dark   bool
	Footer FooterTheme
	Panel  PanelTheme
	Card   CardTheme
	Modal  ModalTheme
}

// FooterTheme groups styles used by the bottom status and help bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// PanelTheme styles the organizer panels.
type PanelTheme struct {
	Frame    lipgloss.Style
	Focused  lipgloss.Style
	DropZone lipgloss.Style
	Title    lipgloss.Style
	Count    lipgloss.Style
	Full     lipgloss.Style
	Empty    lipgloss.Style
}

// CardTheme styles entry cards.
type CardTheme struct {
	Frame    lipgloss.Style
	Selected lipgloss.Style
	Dragging lipgloss.Style
	Name     lipgloss.Style
	Species  lipgloss.Style
	Number   lipgloss.Style
	Meta     lipgloss.Style
	Sprite   lipgloss.Style
	Tag      lipgloss.Style

	RowSelected lipgloss.Style
	RowDragging lipgloss.Style
}

// ModalTheme styles centered overlays.
type ModalTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
	Label lipgloss.Style
	Error lipgloss.Style
}

var (
	accent = colorful.Color{R: 0.85, G: 0.25, B: 0.55}
	danger = colorful.Color{R: 0.9, G: 0.2, B: 0.2}
	// typeColors follows the classic type palette; unknown types get a
	// stable hue derived from their name.
	typeColors = map[string]string{
		"normal":  "#A8A878",
		"pflanze": "#78C850",
		"gift":    "#A040A0",
		"feuer":   "#F08030",
		"flug":    "#A890F0",
		"wasser":  "#6890F0",
		"käfer":   "#A8B820",
		"elektro": "#F8D030",
		"boden":   "#E0C068",
		"kampf":   "#C03028",
		"psycho":  "#F85888",
		"gestein": "#B8A038",
		"eis":     "#98D8D8",
		"geist":   "#705898",
		"drache":  "#7038F8",
	}
)

// Detect returns the default theme for the terminal's background.
func Detect() Theme {
	return New(termenv.HasDarkBackground())
}

// Default returns the built-in dark theme.
func Default() Theme {
	return New(true)
}

// New builds the theme for a dark or light background.
func New(dark bool) Theme {
	bg := colorful.Color{R: 1, G: 1, B: 1}
	muted := lipgloss.Color("244")
	if dark {
		bg = colorful.Color{R: 0.08, G: 0.08, B: 0.1}
		muted = lipgloss.Color("245")
	}
	// Drop zones use the accent washed toward the background.
	drop := accent.BlendLab(bg, 0.55).Clamped()

	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("241")).
		Padding(0, 1)
	card := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return Theme{
		Dark: dark,
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(muted),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Error:  lipgloss.NewStyle().Foreground(danger).Bold(true),
		},
		Panel: PanelTheme{
			Frame:    frame,
			Focused:  frame.BorderForeground(accent),
			DropZone: frame.BorderStyle(lipgloss.DoubleBorder()).BorderForeground(accent).Background(drop),
			Title:    lipgloss.NewStyle().Bold(true),
			Count:    lipgloss.NewStyle().Foreground(muted),
			Full:     lipgloss.NewStyle().Foreground(danger).Bold(true),
			Empty:    lipgloss.NewStyle().Foreground(muted).Italic(true),
		},
		Card: CardTheme{
			Frame:    card,
			Selected: card.BorderForeground(accent),
			Dragging: card.BorderStyle(lipgloss.DoubleBorder()).BorderForeground(accent).Faint(true),
			Name:     lipgloss.NewStyle().Bold(true),
			Species:  lipgloss.NewStyle().Foreground(muted),
			Number:   lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
			Meta:     lipgloss.NewStyle().Foreground(muted),
			Sprite:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
			Tag:      lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#FFFFFF")),

			RowSelected: lipgloss.NewStyle().Bold(true).Foreground(accent),
			RowDragging: lipgloss.NewStyle().Faint(true).Italic(true),
		},
		Modal: ModalTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(accent).
				Padding(1, 2),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle(),
			Label: lipgloss.NewStyle().Foreground(muted),
			Error: lipgloss.NewStyle().Foreground(danger),
		},
	}
}

// TypeColor returns the tag color for a species type.
func TypeColor(typ string) color.Color {
	key := strings.ToLower(strings.TrimSpace(typ))
	if hex, ok := typeColors[key]; ok {
		if c, err := colorful.Hex(hex); err == nil {
			return c
		}
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return colorful.Hcl(float64(h.Sum32()%360), 0.6, 0.55).Clamped()
}

// TypeTag renders a type name as a colored tag.
func (t Theme) TypeTag(typ string) string {
	return t.Card.Tag.Background(TypeColor(typ)).Render(typ)
}
