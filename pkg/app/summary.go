package app

import (
	"context"
	"sort"

	"tableflip.dev/pokebox/pkg/mapper"
	"tableflip.dev/pokebox/pkg/pokemon"
)

// SummaryRow counts the entries stored in one box.
type SummaryRow struct {
	Box      pokemon.BoxRef
	Count    int
	Capacity int
}

// Full reports whether the row's box is at capacity.
func (r SummaryRow) Full() bool { return r.Count >= r.Capacity }

// Summary groups owned entries by edition and box.
type Summary struct {
	Rows  []SummaryRow
	Total int
}

// Summarize returns occupied boxes ordered by edition then box, following the
// order of the reference enumerations when ref is given.
func (s *Service) Summarize(ctx context.Context, ref *Reference) (Summary, error) {
	all, err := s.Owned(ctx)
	if err != nil {
		return Summary{}, err
	}
	return summarize(all, ref), nil
}

func summarize(all []pokemon.OwnedEntry, ref *Reference) Summary {
	counts := make(map[pokemon.BoxRef]int)
	for _, e := range all {
		counts[mapper.ToAPIBox(e.Location())]++
	}

	editionRank := rank(nil)
	boxRank := rank(nil)
	if ref != nil {
		editionRank = rank(ref.Editions)
		boxRank = rank(ref.Boxes)
	}

	rows := make([]SummaryRow, 0, len(counts))
	for box, n := range counts {
		rows = append(rows, SummaryRow{Box: box, Count: n, Capacity: pokemon.Capacity(box.Box)})
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i].Box, rows[j].Box
		if a.Edition != b.Edition {
			return less(editionRank, a.Edition, b.Edition)
		}
		return less(boxRank, a.Box, b.Box)
	})
	return Summary{Rows: rows, Total: len(all)}
}

func rank(labels []pokemon.Label) map[string]int {
	out := make(map[string]int, len(labels))
	for i, l := range labels {
		out[l.Token] = i
	}
	return out
}

func less(order map[string]int, a, b string) bool {
	ra, oka := order[a]
	rb, okb := order[b]
	switch {
	case oka && okb:
		return ra < rb
	case oka != okb:
		return oka
	default:
		return a < b
	}
}
