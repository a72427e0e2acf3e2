package app

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tableflip.dev/pokebox/pkg/client"
	"tableflip.dev/pokebox/pkg/pokemon"
)

type memoryClient struct {
	client.Client

	mu       sync.Mutex
	owned    []pokemon.OwnedEntry
	creates  []pokemon.CreateRequest
	updates  map[int]pokemon.UpdateRequest
	moves    []pokemon.Move
	deletes  []int
	editions []string
	boxes    []string
	failRef  error
}

func newMemoryClient(entries ...pokemon.OwnedEntry) *memoryClient {
	return &memoryClient{owned: entries, updates: map[int]pokemon.UpdateRequest{}}
}

func (m *memoryClient) ListSpecies(context.Context) ([]pokemon.Species, error) {
	if m.failRef != nil {
		return nil, m.failRef
	}
	return []pokemon.Species{
		{PokedexID: 25, Name: "Pikachu", Type1: "Elektro"},
		{PokedexID: 1, Name: "Bisasam", Type1: "Pflanze", Type2: "Gift"},
		{PokedexID: 2, Name: "Bisaknosp", Type1: "Pflanze", Type2: "Gift"},
	}, nil
}

func (m *memoryClient) ListEditions(context.Context) ([]string, error) { return m.editions, nil }

func (m *memoryClient) ListBoxNames(context.Context) ([]string, error) {
	if m.boxes != nil {
		return m.boxes, nil
	}
	return []string{"TEAM", "BOX1", "BOX2"}, nil
}

func (m *memoryClient) EvolutionRules(context.Context) (pokemon.EvolutionRules, error) {
	return pokemon.EvolutionRules{1: {2}, 25: {26}}, nil
}

func (m *memoryClient) ListOwned(context.Context) ([]pokemon.OwnedEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]pokemon.OwnedEntry(nil), m.owned...), nil
}

func (m *memoryClient) CreateOwned(_ context.Context, req pokemon.CreateRequest) (*pokemon.OwnedEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates = append(m.creates, req)
	return &pokemon.OwnedEntry{ID: 99, PokedexID: req.PokedexID, Level: req.Level, Edition: req.Edition, BoxName: req.Box}, nil
}

func (m *memoryClient) UpdateOwned(_ context.Context, id int, req pokemon.UpdateRequest) (*pokemon.OwnedEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates[id] = req
	return &pokemon.OwnedEntry{ID: id, PokedexID: req.PokedexID, Nickname: req.Nickname, Level: req.Level, Edition: req.Edition, BoxName: req.Box}, nil
}

func (m *memoryClient) DeleteOwned(_ context.Context, id int) error {
	m.deletes = append(m.deletes, id)
	return nil
}

func (m *memoryClient) MoveEntry(_ context.Context, mv pokemon.Move) error {
	m.moves = append(m.moves, mv)
	return nil
}

func (m *memoryClient) BoxContents(_ context.Context, edition, box string) (*pokemon.BoxContents, error) {
	return &pokemon.BoxContents{Name: box, Capacity: pokemon.Capacity(box), Pokemons: []pokemon.OwnedEntry{}}, nil
}

func TestLoadReference(t *testing.T) {
	mc := newMemoryClient()
	mc.editions = []string{"ROT", "GRUEN"}
	svc := &Service{Client: mc}

	ref, err := svc.LoadReference(context.Background())
	if err != nil {
		t.Fatalf("LoadReference: %v", err)
	}
	if diff := cmp.Diff([]string{"Rot", "Grün"}, ref.EditionDisplays()); diff != "" {
		t.Fatalf("unexpected editions (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Team", "Box 1", "Box 2"}, ref.BoxDisplays()); diff != "" {
		t.Fatalf("unexpected boxes (-want +got):\n%s", diff)
	}
	if ref.Catalog[0].PokedexID != 1 {
		t.Fatalf("expected catalog sorted by number, got %v", ref.Catalog)
	}
	if sp, ok := ref.Lookup(25); !ok || sp.Name != "Pikachu" {
		t.Fatalf("lookup failed: %+v", sp)
	}
	targets := ref.EvolutionTargets(25)
	if len(targets) != 1 || targets[0].Name != "#026" {
		t.Fatalf("expected unknown target to fall back to its number, got %v", targets)
	}
	if got := ref.EvolutionTargets(1); len(got) != 1 || got[0].Name != "Bisaknosp" {
		t.Fatalf("unexpected targets %v", got)
	}
}

func TestLoadReferenceDefaultsAndErrors(t *testing.T) {
	mc := newMemoryClient()
	svc := &Service{Client: mc}
	ref, err := svc.LoadReference(context.Background())
	if err != nil {
		t.Fatalf("LoadReference: %v", err)
	}
	if len(ref.Editions) != len(pokemon.DefaultEditions()) {
		t.Fatalf("expected default editions for an empty list, got %v", ref.Editions)
	}

	boom := errors.New("boom")
	mc.failRef = boom
	if _, err := svc.LoadReference(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped failure, got %v", err)
	}
	if _, err := (&Service{}).LoadReference(context.Background()); !errors.Is(err, ErrNoClient) {
		t.Fatalf("expected ErrNoClient, got %v", err)
	}
}

func TestLoadReferenceAcceptsDisplayNames(t *testing.T) {
	mc := newMemoryClient(
		pokemon.OwnedEntry{ID: 1, Edition: "ROT", BoxName: "BOX10"},
		pokemon.OwnedEntry{ID: 2, Edition: "ROT", BoxName: "BOX2"},
		pokemon.OwnedEntry{ID: 3, Edition: "ROT", BoxName: "TEAM"},
		pokemon.OwnedEntry{ID: 4, Edition: "GRUEN", BoxName: "TEAM"},
	)
	mc.editions = []string{"Gelb", "Rot", "Blau", "Grün"}
	mc.boxes = []string{"Team", "Box 1", "Box 2", "Box 10"}
	svc := &Service{Client: mc}

	ref, err := svc.LoadReference(context.Background())
	if err != nil {
		t.Fatalf("LoadReference: %v", err)
	}
	wantEditions := []pokemon.Label{
		{Token: "GELB", Display: "Gelb"},
		{Token: "ROT", Display: "Rot"},
		{Token: "BLAU", Display: "Blau"},
		{Token: "GRUEN", Display: "Grün"},
	}
	if diff := cmp.Diff(wantEditions, ref.Editions); diff != "" {
		t.Fatalf("unexpected editions (-want +got):\n%s", diff)
	}
	wantBoxes := []pokemon.Label{
		{Token: "TEAM", Display: "Team"},
		{Token: "BOX1", Display: "Box 1"},
		{Token: "BOX2", Display: "Box 2"},
		{Token: "BOX10", Display: "Box 10"},
	}
	if diff := cmp.Diff(wantBoxes, ref.Boxes); diff != "" {
		t.Fatalf("unexpected boxes (-want +got):\n%s", diff)
	}

	sum, err := svc.Summarize(context.Background(), ref)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	want := []pokemon.BoxRef{
		{Edition: "ROT", Box: "TEAM"},
		{Edition: "ROT", Box: "BOX2"},
		{Edition: "ROT", Box: "BOX10"},
		{Edition: "GRUEN", Box: "TEAM"},
	}
	got := make([]pokemon.BoxRef, 0, len(sum.Rows))
	for _, r := range sum.Rows {
		got = append(got, r.Box)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("summary should follow the reference order (-want +got):\n%s", diff)
	}
}

func TestCatchMapsLabels(t *testing.T) {
	mc := newMemoryClient()
	svc := &Service{Client: mc}
	_, err := svc.Catch(context.Background(), CatchForm{PokedexID: 25, Nickname: " Blitz ", Level: 5, Edition: "Grün", Box: "Box 3"})
	if err != nil {
		t.Fatalf("Catch: %v", err)
	}
	want := []pokemon.CreateRequest{{PokedexID: 25, Nickname: "Blitz", Level: 5, Edition: "GRUEN", Box: "BOX3"}}
	if diff := cmp.Diff(want, mc.creates); diff != "" {
		t.Fatalf("unexpected create (-want +got):\n%s", diff)
	}
}

func TestCatchValidationSendsNothing(t *testing.T) {
	cases := map[string]struct {
		form  CatchForm
		field string
	}{
		"long nickname": {form: CatchForm{PokedexID: 1, Nickname: "Bisasamkoenig", Level: 5, Edition: "Rot", Box: "Team"}, field: FieldNickname},
		"level zero":    {form: CatchForm{PokedexID: 1, Level: 0, Edition: "Rot", Box: "Team"}, field: FieldLevel},
		"level 101":     {form: CatchForm{PokedexID: 1, Level: 101, Edition: "Rot", Box: "Team"}, field: FieldLevel},
		"no edition":    {form: CatchForm{PokedexID: 1, Level: 1, Box: "Team"}, field: FieldEdition},
		"no box":        {form: CatchForm{PokedexID: 1, Level: 1, Edition: "Rot"}, field: FieldBox},
		"no species":    {form: CatchForm{Level: 1, Edition: "Rot", Box: "Team"}, field: FieldPokedexID},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			mc := newMemoryClient()
			svc := &Service{Client: mc}
			_, err := svc.Catch(context.Background(), tc.form)
			var fe *FormError
			if !errors.As(err, &fe) || fe.Field != tc.field {
				t.Fatalf("expected form error on %s, got %v", tc.field, err)
			}
			if len(mc.creates) != 0 {
				t.Fatalf("no request may be sent on validation failure")
			}
		})
	}
}

func TestNicknameLengthCountsCharacters(t *testing.T) {
	if err := ValidateNickname("Äöüßäöüßäöü"); err != nil {
		t.Fatalf("11 umlaut characters must be accepted: %v", err)
	}
	if err := ValidateNickname("Äöüßäöüßäöüß"); err == nil {
		t.Fatalf("12 characters must be rejected")
	}
}

func TestUpdateSendsFullFieldSet(t *testing.T) {
	current := pokemon.OwnedEntry{ID: 4, PokedexID: 1, Nickname: "Bulby", Level: 10, Edition: "GRUEN", BoxName: "BOX2"}
	mc := newMemoryClient(current)
	svc := &Service{Client: mc}

	form := FormFor(current)
	if form.Edition != "Grün" || form.Box != "Box 2" {
		t.Fatalf("expected display labels in the form, got %+v", form)
	}
	form.Level = 12
	if _, err := svc.Update(context.Background(), current, form); err != nil {
		t.Fatalf("Update: %v", err)
	}
	want := pokemon.UpdateRequest{PokedexID: 1, Nickname: "Bulby", Level: 12, Edition: "GRUEN", Box: "BOX2"}
	if diff := cmp.Diff(want, mc.updates[4]); diff != "" {
		t.Fatalf("unexpected update (-want +got):\n%s", diff)
	}
}

func TestUpdateRejectsLoweredLevel(t *testing.T) {
	current := pokemon.OwnedEntry{ID: 4, PokedexID: 1, Level: 10, Edition: "ROT", BoxName: "TEAM"}
	mc := newMemoryClient(current)
	svc := &Service{Client: mc}

	form := FormFor(current)
	form.Level = 9
	_, err := svc.Update(context.Background(), current, form)
	var fe *FormError
	if !errors.As(err, &fe) || fe.Field != FieldLevel {
		t.Fatalf("expected level error, got %v", err)
	}
	if len(mc.updates) != 0 {
		t.Fatalf("no request may be sent when the level is lowered")
	}
}

func TestEvolve(t *testing.T) {
	current := pokemon.OwnedEntry{ID: 7, PokedexID: 1, Nickname: "Bulby", Level: 16, Edition: "BLAU", BoxName: "BOX1"}
	mc := newMemoryClient(current)
	svc := &Service{Client: mc}
	rules := pokemon.EvolutionRules{1: {2}}

	if _, err := svc.Evolve(context.Background(), current, 3, rules); err == nil {
		t.Fatalf("expected disallowed target to fail")
	}
	if len(mc.updates) != 0 {
		t.Fatalf("no request may be sent for a disallowed target")
	}
	evolved, err := svc.Evolve(context.Background(), current, 2, rules)
	if err != nil {
		t.Fatalf("Evolve: %v", err)
	}
	if evolved.PokedexID != 2 {
		t.Fatalf("expected new species, got %d", evolved.PokedexID)
	}
	want := pokemon.UpdateRequest{PokedexID: 2, Nickname: "Bulby", Level: 16, Edition: "BLAU", Box: "BOX1"}
	if diff := cmp.Diff(want, mc.updates[7]); diff != "" {
		t.Fatalf("other fields must be preserved (-want +got):\n%s", diff)
	}
}

func TestMoveMapsBothEnds(t *testing.T) {
	mc := newMemoryClient()
	svc := &Service{Client: mc}
	if err := svc.Move(context.Background(), 1, pokemon.BoxRef{Edition: "Rot", Box: "Team"}, pokemon.BoxRef{Edition: "ROT", Box: "Box 1"}); err != nil {
		t.Fatalf("Move: %v", err)
	}
	want := []pokemon.Move{{SourceBox: "TEAM", TargetBox: "BOX1", ID: 1, SourceEdition: "ROT", TargetEdition: "ROT"}}
	if diff := cmp.Diff(want, mc.moves); diff != "" {
		t.Fatalf("unexpected move (-want +got):\n%s", diff)
	}
}

func TestFindAndRelease(t *testing.T) {
	mc := newMemoryClient(pokemon.OwnedEntry{ID: 3, PokedexID: 25})
	svc := &Service{Client: mc}
	if e, err := svc.Find(context.Background(), 3); err != nil || e.PokedexID != 25 {
		t.Fatalf("Find: %+v, %v", e, err)
	}
	if _, err := svc.Find(context.Background(), 4); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := svc.Release(context.Background(), 3); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if len(mc.deletes) != 1 || mc.deletes[0] != 3 {
		t.Fatalf("unexpected deletes %v", mc.deletes)
	}
}

func TestSummarize(t *testing.T) {
	mc := newMemoryClient(
		pokemon.OwnedEntry{ID: 1, Edition: "ROT", BoxName: "BOX1"},
		pokemon.OwnedEntry{ID: 2, Edition: "ROT", BoxName: "TEAM"},
		pokemon.OwnedEntry{ID: 3, Edition: "GELB", BoxName: "TEAM"},
		pokemon.OwnedEntry{ID: 4, Edition: "ROT", BoxName: "TEAM"},
	)
	svc := &Service{Client: mc}
	ref := NewReference(pokemon.DefaultEditions(), pokemon.DefaultBoxes(), nil, nil)

	sum, err := svc.Summarize(context.Background(), ref)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	want := []SummaryRow{
		{Box: pokemon.BoxRef{Edition: "GELB", Box: "TEAM"}, Count: 1, Capacity: 6},
		{Box: pokemon.BoxRef{Edition: "ROT", Box: "TEAM"}, Count: 2, Capacity: 6},
		{Box: pokemon.BoxRef{Edition: "ROT", Box: "BOX1"}, Count: 1, Capacity: 20},
	}
	if diff := cmp.Diff(want, sum.Rows); diff != "" {
		t.Fatalf("unexpected rows (-want +got):\n%s", diff)
	}
	if sum.Total != 4 {
		t.Fatalf("expected total 4, got %d", sum.Total)
	}
}

func TestParseLevel(t *testing.T) {
	if n, err := ParseLevel(" 42 "); err != nil || n != 42 {
		t.Fatalf("ParseLevel: %d, %v", n, err)
	}
	for _, in := range []string{"", "abc", "4.2"} {
		if _, err := ParseLevel(in); err == nil {
			t.Fatalf("expected %q to fail", in)
		}
	}
}
