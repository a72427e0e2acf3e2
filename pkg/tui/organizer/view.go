package organizer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/pokebox/pkg/pokemon"
	"tableflip.dev/pokebox/pkg/tui/card"
)

const helpText = "tab/h/l panel · j/k move · e/E edition · b/B box · space pick up · enter drop · esc cancel · o open · r reload · q back"

// View implements tea.Model.
func (m *Model) View() string {
	width := m.width
	if width <= 0 {
		width = 100
	}
	panelWidth := max(24, width/2-1)

	left := m.renderPanel(Left, panelWidth)
	right := m.renderPanel(Right, panelWidth)
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)

	lines := []string{body, m.statusLine()}
	lines = append(lines, m.theme.Footer.Help.Render(helpText))
	return strings.Join(lines, "\n")
}

// Header returns the panel's title line: selection plus count/capacity.
func (m *Model) Header(side Side) string {
	p := m.panels[side]
	title := p.Edition + " · " + p.Box
	switch {
	case p.Contents != nil:
		capacity := p.Contents.Capacity
		if capacity <= 0 {
			capacity = pokemon.Capacity(p.Box)
		}
		title += fmt.Sprintf("  %d/%d", p.Contents.Count(), capacity)
		if p.Contents.Count() >= capacity {
			title += " full"
		}
	case p.Loading:
		title += "  loading…"
	}
	return title
}

func (m *Model) renderPanel(side Side, width int) string {
	p := m.panels[side]
	th := m.theme.Panel

	header := th.Title.Render(m.Header(side))
	if p.Contents.Full() {
		header = th.Full.Render(m.Header(side))
	}

	inner := width - 4
	rows := []string{header, ""}
	switch {
	case p.Contents == nil && p.Loading:
		rows = append(rows, th.Empty.Render("loading…"))
	case p.Contents == nil:
		rows = append(rows, th.Empty.Render("not loaded"))
	case p.Contents.Count() == 0:
		rows = append(rows, th.Empty.Render("empty"))
	default:
		for i, e := range p.Contents.Pokemons {
			selected := side == m.focus && i == p.cursor
			dragging := m.drag != nil && m.drag.Entry.ID == e.ID
			rows = append(rows, card.ForEntry(e, m.sprites, m.theme).Row(inner, selected, dragging))
		}
	}

	frame := th.Frame
	switch {
	case p.DragOver:
		frame = th.DropZone
	case side == m.focus:
		frame = th.Focused
	}
	return frame.Width(width).Render(strings.Join(rows, "\n"))
}

func (m *Model) statusLine() string {
	switch {
	case m.err != nil:
		return m.theme.Footer.Error.Render("error: " + m.err.Error())
	case m.relocating:
		return m.theme.Footer.Status.Render("moving…")
	case m.drag != nil:
		d := m.drag
		return m.theme.Footer.Status.Render(fmt.Sprintf("holding %s %s from %s · move to a panel and press enter",
			d.Entry.Number(), d.Entry.DisplayName(), d.Source))
	}
	return ""
}
