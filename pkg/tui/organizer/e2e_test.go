package organizer

import (
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/pokebox/pkg/apitest"
	"tableflip.dev/pokebox/pkg/client"
	"tableflip.dev/pokebox/pkg/pokemon"
	"tableflip.dev/pokebox/pkg/tui/theme"
)

func TestDragAcrossHTTP(t *testing.T) {
	api := apitest.New(apitest.Options{})
	api.Seed(pokemon.OwnedEntry{ID: 1, PokedexID: 25, Nickname: "Pika", Level: 7, Edition: "ROT", BoxName: "TEAM"})
	srv := httptest.NewServer(api)
	defer srv.Close()

	c, err := client.NewHTTP(client.Options{BaseURL: srv.URL + "/api"})
	if err != nil {
		t.Fatalf("NewHTTP: %v", err)
	}
	m := New(Options{
		Client:   c,
		Editions: []string{"Rot", "Blau"},
		Boxes:    []string{"Team", "Box 1"},
		Theme:    theme.Default(),
	})
	drain(t, m, m.Init())
	drain(t, m, m.SelectEdition(Right, "Rot"), m.SelectBox(Right, "Box 1"))
	api.ResetCalls()

	press(t, m, tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
	press(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	press(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})

	if m.Err() != nil {
		t.Fatalf("unexpected error %v", m.Err())
	}
	if n := api.Calls(apitest.RouteMove); n != 1 {
		t.Fatalf("expected one move call, got %d", n)
	}
	if n := api.Calls(apitest.RouteBox); n != 2 {
		t.Fatalf("expected two box reloads, got %d", n)
	}
	if got := m.Panel(Left).Entries(); len(got) != 0 {
		t.Fatalf("left panel should be empty, got %v", got)
	}
	if got := m.Panel(Right).Entries(); len(got) != 1 || got[0].ID != 1 || got[0].BoxName != "BOX1" {
		t.Fatalf("right panel should hold entry 1, got %v", got)
	}

	// Dropping back onto the same box is passed through and rejected there.
	m.DragStart(Right, m.Panel(Right).Entries()[0])
	drain(t, m, m.Drop(Right))
	if !client.IsConflict(m.Err()) {
		t.Fatalf("expected a conflict from the server, got %v", m.Err())
	}
	if got := m.Panel(Right).Entries(); len(got) != 1 {
		t.Fatalf("failed move must keep contents, got %v", got)
	}
}
