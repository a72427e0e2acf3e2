// Package printers renders collection data for the non-interactive commands.
package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/pokebox/pkg/app"
	"tableflip.dev/pokebox/pkg/mapper"
	"tableflip.dev/pokebox/pkg/pokemon"
)

type PrettyPrint struct {
	ShowID bool
	// Out defaults to color.Output.
	Out io.Writer
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count, capacity int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	if capacity > 0 {
		_, _ = c.Fprintf(pp.out(), " - %d/%d\n", count, capacity)
		return
	}
	_, _ = c.Fprintf(pp.out(), " - %d", count)
	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " entry")
	default:
		_, _ = c.Fprintln(pp.out(), " entries")
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

func (pp *PrettyPrint) table() *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	return tbl
}

func (pp *PrettyPrint) flush(tbl *uitable.Table) {
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Types joins the type tags shown for a species. The neutral type is hidden
// when it is the secondary type.
func Types(type1, type2 string) string {
	if type2 == "" || type2 == pokemon.NeutralType {
		return type1
	}
	return type1 + "/" + type2
}

// Species prints the catalog.
func (pp *PrettyPrint) Species(all ...pokemon.Species) {
	pp.TitleWithCount("Species", len(all), 0)
	if len(all) == 0 {
		pp.none()
		return
	}
	bold := color.New(color.Bold)
	tbl := pp.table()
	tbl.AddRow(bold.Sprint("No."), bold.Sprint("Name"), bold.Sprint("Types"))
	for _, sp := range all {
		tbl.AddRow(sp.Number(), sp.Name, Types(sp.Type1, sp.Type2))
	}
	pp.flush(tbl)
}

// Owned prints owned entries with their location.
func (pp *PrettyPrint) Owned(title string, all ...pokemon.OwnedEntry) {
	pp.TitleWithCount(title, len(all), 0)
	pp.entries(true, all)
}

// Box prints the contents of one box.
func (pp *PrettyPrint) Box(ref pokemon.BoxRef, box *pokemon.BoxContents) {
	title := mapper.DisplayEdition(ref.Edition) + " · " + mapper.DisplayBoxName(ref.Box)
	capacity := pokemon.Capacity(mapper.ToAPIBoxName(ref.Box))
	var entries []pokemon.OwnedEntry
	if box != nil {
		entries = box.Pokemons
		if box.Capacity > 0 {
			capacity = box.Capacity
		}
	}
	pp.TitleWithCount(title, len(entries), capacity)
	pp.entries(false, entries)
}

func (pp *PrettyPrint) entries(location bool, all []pokemon.OwnedEntry) {
	if len(all) == 0 {
		pp.none()
		return
	}
	bold := color.New(color.Bold)
	y := color.New(color.FgHiYellow, color.Faint)

	tbl := pp.table()
	header := []interface{}{bold.Sprint("No."), bold.Sprint("Name"), bold.Sprint("Lv."), bold.Sprint("Types")}
	if location {
		header = append(header, bold.Sprint("Edition"), bold.Sprint("Box"))
	}
	if pp.ShowID {
		header = append([]interface{}{bold.Sprint("ID")}, header...)
	}
	tbl.AddRow(header...)
	for _, e := range all {
		row := []interface{}{e.Number(), name(e), e.Level, Types(e.Type1, e.Type2)}
		if location {
			row = append(row, mapper.DisplayEdition(e.Edition), mapper.DisplayBoxName(e.BoxName))
		}
		if pp.ShowID {
			row = append([]interface{}{y.Sprint(e.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	pp.flush(tbl)
}

func name(e pokemon.OwnedEntry) string {
	if e.HasNickname() && e.SpeciesName != "" {
		return fmt.Sprintf("%s (%s)", strings.TrimSpace(e.Nickname), e.SpeciesName)
	}
	return e.DisplayName()
}

// Summary prints the occupied boxes.
func (pp *PrettyPrint) Summary(s app.Summary) {
	pp.TitleWithCount("Boxes", s.Total, 0)
	if len(s.Rows) == 0 {
		pp.none()
		return
	}
	bold := color.New(color.Bold)
	red := color.New(color.FgRed)

	tbl := pp.table()
	tbl.AddRow(bold.Sprint("Edition"), bold.Sprint("Box"), bold.Sprint("Used"))
	for _, r := range s.Rows {
		used := fmt.Sprintf("%d/%d", r.Count, r.Capacity)
		if r.Full() {
			used = red.Sprint(used + " full")
		}
		tbl.AddRow(mapper.DisplayEdition(r.Box.Edition), mapper.DisplayBoxName(r.Box.Box), used)
	}
	pp.flush(tbl)
}

// Labels prints an enumeration with its API tokens. capacity adds the
// capacity column for box names.
func (pp *PrettyPrint) Labels(title string, labels []pokemon.Label, capacity bool) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	pp.Title(title)
	tbl := pp.table()
	header := []interface{}{bold.Sprint("Label"), bold.Sprint("Token")}
	if capacity {
		header = append(header, bold.Sprint("Capacity"))
	}
	tbl.AddRow(header...)
	for _, l := range labels {
		row := []interface{}{l.Display, faint.Sprint(l.Token)}
		if capacity {
			row = append(row, strconv.Itoa(pokemon.Capacity(l.Token)))
		}
		tbl.AddRow(row...)
	}
	pp.flush(tbl)
}

// Done prints a one-line confirmation.
func (pp *PrettyPrint) Done(format string, args ...interface{}) {
	g := color.New(color.FgGreen)
	_, _ = g.Fprint(pp.out(), "✓ ")
	_, _ = fmt.Fprintf(pp.out(), format+"\n", args...)
}

// Note prints a faint one-line remark.
func (pp *PrettyPrint) Note(format string, args ...interface{}) {
	f := color.New(color.Faint)
	_, _ = f.Fprintf(pp.out(), format+"\n", args...)
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v interface{}) error {
	if w == nil {
		w = color.Output
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
