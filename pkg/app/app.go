package app

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tableflip.dev/pokebox/pkg/client"
	"tableflip.dev/pokebox/pkg/mapper"
	"tableflip.dev/pokebox/pkg/pokemon"
)

// Service provides high-level operations on the collection.
// It wraps the API client and the identifier mapping so UIs and CLIs can share logic.
type Service struct {
	Client client.Client
	Logger *zap.Logger
}

var (
	ErrNoClient = errors.New("app: no client configured")
	ErrNotFound = errors.New("app: pokemon not found")
)

func (s *Service) log() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// Reference is the read-only data every screen needs: the enumerations with
// their display labels, the species catalog and the evolution rules.
type Reference struct {
	Editions []pokemon.Label
	Boxes    []pokemon.Label
	Catalog  []pokemon.Species
	Rules    pokemon.EvolutionRules

	byID map[int]pokemon.Species
}

// NewReference indexes the catalog.
func NewReference(editions, boxes []pokemon.Label, catalog []pokemon.Species, rules pokemon.EvolutionRules) *Reference {
	r := &Reference{Editions: editions, Boxes: boxes, Catalog: catalog, Rules: rules}
	r.byID = make(map[int]pokemon.Species, len(catalog))
	for _, sp := range catalog {
		r.byID[sp.PokedexID] = sp
	}
	return r
}

// Lookup finds a species by catalog identifier.
func (r *Reference) Lookup(pokedexID int) (pokemon.Species, bool) {
	sp, ok := r.byID[pokedexID]
	return sp, ok
}

// EditionDisplays returns the edition labels in API order.
func (r *Reference) EditionDisplays() []string { return pokemon.Displays(r.Editions) }

// BoxDisplays returns the box labels in API order.
func (r *Reference) BoxDisplays() []string { return pokemon.Displays(r.Boxes) }

// EvolutionTargets returns the species an entry of pokedexID may evolve into,
// in rule order. Targets missing from the catalog carry only their number.
func (r *Reference) EvolutionTargets(pokedexID int) []pokemon.Species {
	ids := r.Rules.Targets(pokedexID)
	out := make([]pokemon.Species, 0, len(ids))
	for _, id := range ids {
		if sp, ok := r.Lookup(id); ok {
			out = append(out, sp)
			continue
		}
		out = append(out, pokemon.Species{PokedexID: id, Name: pokemon.Number(id)})
	}
	return out
}

// LoadReference fetches editions, box names, species and evolution rules
// concurrently. An empty enumeration falls back to the known defaults.
func (s *Service) LoadReference(ctx context.Context) (*Reference, error) {
	if s.Client == nil {
		return nil, ErrNoClient
	}
	var (
		editions, boxes []string
		catalog         []pokemon.Species
		rules           pokemon.EvolutionRules
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		editions, err = s.Client.ListEditions(gctx)
		return wrap("list editions", err)
	})
	g.Go(func() (err error) {
		boxes, err = s.Client.ListBoxNames(gctx)
		return wrap("list box names", err)
	})
	g.Go(func() (err error) {
		catalog, err = s.Client.ListSpecies(gctx)
		return wrap("list species", err)
	})
	g.Go(func() (err error) {
		rules, err = s.Client.EvolutionRules(gctx)
		return wrap("evolution rules", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(catalog, func(i, j int) bool { return catalog[i].PokedexID < catalog[j].PokedexID })
	ref := NewReference(labels(editions, mapper.ToAPIEdition, mapper.DisplayEdition, pokemon.DefaultEditions()),
		labels(boxes, mapper.ToAPIBoxName, mapper.DisplayBoxName, pokemon.DefaultBoxes()), catalog, rules)
	s.log().Debug("reference loaded",
		zap.Int("editions", len(ref.Editions)),
		zap.Int("boxes", len(ref.Boxes)),
		zap.Int("species", len(ref.Catalog)),
		zap.Int("rules", len(ref.Rules)))
	return ref, nil
}

// labels accepts either tokens or display names from the API; both halves
// are normalized so "Box 1" and "BOX1" yield the same label.
func labels(values []string, token, display func(string) string, fallback []pokemon.Label) []pokemon.Label {
	if len(values) == 0 {
		return fallback
	}
	out := make([]pokemon.Label, 0, len(values))
	for _, v := range values {
		out = append(out, pokemon.Label{Token: token(v), Display: display(v)})
	}
	return out
}

// Species lists the catalog ordered by catalog number.
func (s *Service) Species(ctx context.Context) ([]pokemon.Species, error) {
	if s.Client == nil {
		return nil, ErrNoClient
	}
	all, err := s.Client.ListSpecies(ctx)
	if err != nil {
		return nil, wrap("list species", err)
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].PokedexID < all[j].PokedexID })
	return all, nil
}

// Owned lists every owned entry.
func (s *Service) Owned(ctx context.Context) ([]pokemon.OwnedEntry, error) {
	if s.Client == nil {
		return nil, ErrNoClient
	}
	all, err := s.Client.ListOwned(ctx)
	return all, wrap("list pokemon", err)
}

// Find returns the owned entry with the given id.
func (s *Service) Find(ctx context.Context, id int) (*pokemon.OwnedEntry, error) {
	all, err := s.Owned(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
}

// Box returns the contents of a box. ref may hold labels or tokens.
func (s *Service) Box(ctx context.Context, ref pokemon.BoxRef) (*pokemon.BoxContents, error) {
	if s.Client == nil {
		return nil, ErrNoClient
	}
	tok := mapper.ToAPIBox(ref)
	box, err := s.Client.BoxContents(ctx, tok.Edition, tok.Box)
	if err != nil {
		return nil, wrap("box "+tok.String(), err)
	}
	return box, nil
}

// Catch validates the form and creates a new owned entry. Nothing is sent
// when validation fails.
func (s *Service) Catch(ctx context.Context, f CatchForm) (*pokemon.OwnedEntry, error) {
	if s.Client == nil {
		return nil, ErrNoClient
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	created, err := s.Client.CreateOwned(ctx, f.Request())
	if err != nil {
		return nil, wrap("catch", err)
	}
	s.log().Info("caught", zap.Int("id", created.ID), zap.Int("pokedexId", created.PokedexID))
	return created, nil
}

// Update validates the form against the entry's current values and sends the
// full field set. A level below the current one is rejected locally.
func (s *Service) Update(ctx context.Context, current pokemon.OwnedEntry, f UpdateForm) (*pokemon.OwnedEntry, error) {
	if s.Client == nil {
		return nil, ErrNoClient
	}
	if err := f.Validate(current); err != nil {
		return nil, err
	}
	updated, err := s.Client.UpdateOwned(ctx, current.ID, f.Request(current))
	if err != nil {
		return nil, wrap("update", err)
	}
	s.log().Info("updated", zap.Int("id", current.ID))
	return updated, nil
}

// Evolve replaces the entry's species with target, re-sending every other
// field unchanged. target must be allowed by rules.
func (s *Service) Evolve(ctx context.Context, current pokemon.OwnedEntry, target int, rules pokemon.EvolutionRules) (*pokemon.OwnedEntry, error) {
	if s.Client == nil {
		return nil, ErrNoClient
	}
	if !rules.Allows(current.PokedexID, target) {
		return nil, &FormError{
			Field:   FieldPokedexID,
			Message: fmt.Sprintf("%s cannot evolve into %s", current.Number(), pokemon.Number(target)),
		}
	}
	req := pokemon.UpdateFrom(current)
	req.PokedexID = target
	req.Edition = mapper.ToAPIEdition(req.Edition)
	req.Box = mapper.ToAPIBoxName(req.Box)
	evolved, err := s.Client.UpdateOwned(ctx, current.ID, req)
	if err != nil {
		return nil, wrap("evolve", err)
	}
	s.log().Info("evolved", zap.Int("id", current.ID), zap.Int("from", current.PokedexID), zap.Int("to", target))
	return evolved, nil
}

// Release deletes an owned entry.
func (s *Service) Release(ctx context.Context, id int) error {
	if s.Client == nil {
		return ErrNoClient
	}
	if err := s.Client.DeleteOwned(ctx, id); err != nil {
		return wrap("release", err)
	}
	s.log().Info("released", zap.Int("id", id))
	return nil
}

// Move relocates an entry between boxes. from and to may hold labels or
// tokens.
func (s *Service) Move(ctx context.Context, id int, from, to pokemon.BoxRef) error {
	if s.Client == nil {
		return ErrNoClient
	}
	src, dst := mapper.ToAPIBox(from), mapper.ToAPIBox(to)
	m := pokemon.Move{
		SourceBox:     src.Box,
		TargetBox:     dst.Box,
		ID:            id,
		SourceEdition: src.Edition,
		TargetEdition: dst.Edition,
	}
	if err := s.Client.MoveEntry(ctx, m); err != nil {
		return wrap("move", err)
	}
	s.log().Info("moved", zap.Stringer("move", m))
	return nil
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("app: %s: %w", op, err)
}
