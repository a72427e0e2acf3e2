// Package organizer implements the dual-panel box organizer: two
// independently selectable (edition, box) panels and a pick-up and drop
// gesture that relocates entries between them.
//
// All state changes happen on the Bubble Tea event loop. API calls run as
// commands and report back through messages tagged with the panel's request
// sequence, so a slow response can never overwrite a newer selection.
package organizer

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"
	"go.uber.org/zap"

	"tableflip.dev/pokebox/pkg/client"
	"tableflip.dev/pokebox/pkg/mapper"
	"tableflip.dev/pokebox/pkg/pokemon"
	"tableflip.dev/pokebox/pkg/sprite"
	"tableflip.dev/pokebox/pkg/tui/theme"
)

// Side identifies a panel.
type Side int

const (
	Left Side = iota
	Right
)

// Other returns the opposite panel.
func (s Side) Other() Side {
	if s == Left {
		return Right
	}
	return Left
}

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// ErrTargetFull is reported when a capacity preflight finds the drop target
// full.
var ErrTargetFull = errors.New("target box is full")

// Panel is the state of one side. Edition and Box hold display labels.
type Panel struct {
	Edition string
	Box     string
	// Contents is nil until a load succeeds and after a load fails.
	Contents *pokemon.BoxContents
	Loading  bool
	DragOver bool

	seq    uint64
	cursor int
}

// Ref returns the panel's selection.
func (p Panel) Ref() pokemon.BoxRef {
	return pokemon.BoxRef{Edition: p.Edition, Box: p.Box}
}

// Entries returns the loaded entries, or nil.
func (p Panel) Entries() []pokemon.OwnedEntry {
	if p.Contents == nil {
		return nil
	}
	return p.Contents.Pokemons
}

// Cursor returns the highlighted row.
func (p Panel) Cursor() int { return p.cursor }

// Drag is the entry currently picked up.
type Drag struct {
	Entry  pokemon.OwnedEntry
	Origin Side
	// Source is where the entry lives, as API tokens.
	Source pokemon.BoxRef
}

// Options configure a Model.
type Options struct {
	Client client.Client
	// Editions and Boxes are display labels in selection order.
	Editions []string
	Boxes    []string
	// OnBack runs when the user leaves the organizer.
	OnBack func() tea.Cmd
	// PreflightCapacity checks the target with IsBoxFull before moving.
	PreflightCapacity bool
	Logger            *zap.Logger
	Context           context.Context
	Sprites           sprite.Resolver
	Theme             theme.Theme
}

// Model is the organizer component.
type Model struct {
	client    client.Client
	editions  []string
	boxes     []string
	onBack    func() tea.Cmd
	preflight bool
	log       *zap.Logger
	ctx       context.Context
	sprites   sprite.Resolver
	theme     theme.Theme

	panels     [2]Panel
	focus      Side
	drag       *Drag
	err        error
	relocating bool

	width  int
	height int
}

type loadedMsg struct {
	side Side
	seq  uint64
	ref  pokemon.BoxRef
	box  *pokemon.BoxContents
	err  error
}

type relocatedMsg struct {
	move pokemon.Move
	err  error
}

// New returns an organizer. The left panel starts on the first edition and
// box; the right panel on the second edition (or the first, when there is
// only one) and the first box.
func New(opts Options) *Model {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	m := &Model{
		client:    opts.Client,
		editions:  opts.Editions,
		boxes:     opts.Boxes,
		onBack:    opts.OnBack,
		preflight: opts.PreflightCapacity,
		log:       log.Named("organizer"),
		ctx:       ctx,
		sprites:   opts.Sprites,
		theme:     opts.Theme,
	}
	m.panels[Left] = Panel{Edition: at(opts.Editions, 0), Box: at(opts.Boxes, 0)}
	m.panels[Right] = Panel{Edition: at(opts.Editions, 1), Box: at(opts.Boxes, 0)}
	if m.panels[Right].Edition == "" {
		m.panels[Right].Edition = m.panels[Left].Edition
	}
	return m
}

func at(list []string, i int) string {
	if i < len(list) {
		return list[i]
	}
	return ""
}

// Init loads both panels.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.load(Left), m.load(Right))
}

// Panel returns a copy of a panel's state.
func (m *Model) Panel(side Side) Panel { return m.panels[side] }

// Focus returns the focused panel.
func (m *Model) Focus() Side { return m.focus }

// Dragging returns the picked-up entry, if any.
func (m *Model) Dragging() (Drag, bool) {
	if m.drag == nil {
		return Drag{}, false
	}
	return *m.drag, true
}

// Err returns the shared error slot.
func (m *Model) Err() error { return m.err }

// Relocating reports whether a move is in flight.
func (m *Model) Relocating() bool { return m.relocating }

// SetSize records the available area.
func (m *Model) SetSize(width, height int) {
	m.width, m.height = width, height
}

// SelectEdition changes a panel's edition and reloads only that panel.
func (m *Model) SelectEdition(side Side, edition string) tea.Cmd {
	m.err = nil
	m.panels[side].Edition = edition
	return m.load(side)
}

// SelectBox changes a panel's box and reloads only that panel.
func (m *Model) SelectBox(side Side, box string) tea.Cmd {
	m.err = nil
	m.panels[side].Box = box
	return m.load(side)
}

// CycleEdition steps a panel's edition through the option list.
func (m *Model) CycleEdition(side Side, delta int) tea.Cmd {
	return m.SelectEdition(side, cycle(m.editions, m.panels[side].Edition, delta))
}

// CycleBox steps a panel's box through the option list.
func (m *Model) CycleBox(side Side, delta int) tea.Cmd {
	return m.SelectBox(side, cycle(m.boxes, m.panels[side].Box, delta))
}

func cycle(options []string, current string, delta int) string {
	if len(options) == 0 {
		return current
	}
	idx := 0
	for i, o := range options {
		if o == current {
			idx = i
			break
		}
	}
	n := len(options)
	return options[((idx+delta)%n+n)%n]
}

// Reload refreshes both panels.
func (m *Model) Reload() tea.Cmd {
	return tea.Batch(m.load(Left), m.load(Right))
}

func (m *Model) load(side Side) tea.Cmd {
	p := &m.panels[side]
	p.seq++
	p.Loading = true
	seq := p.seq
	ref := mapper.ToAPIBox(p.Ref())
	c, ctx := m.client, m.ctx
	return func() tea.Msg {
		if c == nil {
			return loadedMsg{side: side, seq: seq, ref: ref, err: errors.New("organizer: no client configured")}
		}
		box, err := c.BoxContents(ctx, ref.Edition, ref.Box)
		return loadedMsg{side: side, seq: seq, ref: ref, box: box, err: err}
	}
}

func (m *Model) applyLoaded(msg loadedMsg) {
	p := &m.panels[msg.side]
	if msg.seq != p.seq {
		m.log.Debug("discarding stale box",
			zap.Stringer("side", msg.side),
			zap.Stringer("box", msg.ref),
			zap.Uint64("seq", msg.seq),
			zap.Uint64("current", p.seq))
		return
	}
	p.Loading = false
	if msg.err != nil {
		p.Contents = nil
		p.cursor = 0
		m.err = fmt.Errorf("load %s: %w", msg.ref, msg.err)
		m.log.Warn("load failed", zap.Stringer("box", msg.ref), zap.Error(msg.err))
		return
	}
	p.Contents = msg.box
	if p.cursor >= p.Contents.Count() {
		p.cursor = max(0, p.Contents.Count()-1)
	}
}

// DragStart picks up an entry shown in side. The source box comes from the
// entry itself, falling back to the panel's selection.
func (m *Model) DragStart(side Side, e pokemon.OwnedEntry) {
	if m.relocating {
		return
	}
	m.err = nil
	src := m.panels[side].Ref()
	if e.Edition != "" {
		src.Edition = e.Edition
	}
	if e.BoxName != "" {
		src.Box = e.BoxName
	}
	m.drag = &Drag{Entry: e, Origin: side, Source: mapper.ToAPIBox(src)}
}

// DragOver highlights side as the drop target and clears the other panel's
// highlight.
func (m *Model) DragOver(side Side) {
	if m.drag == nil {
		return
	}
	m.panels[side].DragOver = true
	m.panels[side.Other()].DragOver = false
}

// DragLeave clears side's highlight.
func (m *Model) DragLeave(side Side) {
	m.panels[side].DragOver = false
}

// CancelDrag ends a drag without dropping.
func (m *Model) CancelDrag() {
	m.drag = nil
	m.panels[Left].DragOver = false
	m.panels[Right].DragOver = false
}

// Drop relocates the dragged entry into side's current selection. The drag
// ends immediately; the move result arrives as a message. Dropping onto the
// source box is passed to the API like any other move.
func (m *Model) Drop(side Side) tea.Cmd {
	if m.drag == nil || m.relocating {
		return nil
	}
	d := *m.drag
	m.CancelDrag()

	dst := mapper.ToAPIBox(m.panels[side].Ref())
	move := pokemon.Move{
		SourceBox:     d.Source.Box,
		TargetBox:     dst.Box,
		ID:            d.Entry.ID,
		SourceEdition: d.Source.Edition,
		TargetEdition: dst.Edition,
	}
	m.relocating = true
	m.log.Info("move", zap.Stringer("move", move))

	c, ctx, preflight := m.client, m.ctx, m.preflight
	return func() tea.Msg {
		if c == nil {
			return relocatedMsg{move: move, err: errors.New("organizer: no client configured")}
		}
		if preflight {
			full, err := c.IsBoxFull(ctx, move.TargetEdition, move.TargetBox)
			if err != nil {
				return relocatedMsg{move: move, err: err}
			}
			if full {
				return relocatedMsg{move: move, err: fmt.Errorf("%w: %s/%s", ErrTargetFull, move.TargetEdition, move.TargetBox)}
			}
		}
		return relocatedMsg{move: move, err: c.MoveEntry(ctx, move)}
	}
}

func (m *Model) applyRelocated(msg relocatedMsg) tea.Cmd {
	m.relocating = false
	if msg.err != nil {
		m.err = fmt.Errorf("move #%d: %w", msg.move.ID, msg.err)
		m.log.Warn("move failed", zap.Stringer("move", msg.move), zap.Error(msg.err))
		return nil
	}
	return m.Reload()
}

// Back hands control to the caller.
func (m *Model) Back() tea.Cmd {
	if m.onBack == nil {
		return nil
	}
	return m.onBack()
}

// Selected returns the highlighted entry of side.
func (m *Model) Selected(side Side) (pokemon.OwnedEntry, bool) {
	p := m.panels[side]
	entries := p.Entries()
	if p.cursor < 0 || p.cursor >= len(entries) {
		return pokemon.OwnedEntry{}, false
	}
	return entries[p.cursor], true
}

func (m *Model) moveCursor(delta int) {
	p := &m.panels[m.focus]
	n := len(p.Entries())
	if n == 0 {
		p.cursor = 0
		return
	}
	p.cursor = min(max(p.cursor+delta, 0), n-1)
}

func (m *Model) setFocus(side Side) {
	if side == m.focus {
		return
	}
	if m.drag != nil {
		m.DragLeave(m.focus)
		m.DragOver(side)
	}
	m.focus = side
}
