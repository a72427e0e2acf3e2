package catch

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/fatih/color"

	"tableflip.dev/pokebox/pkg/apitest"
	"tableflip.dev/pokebox/pkg/app"
	"tableflip.dev/pokebox/pkg/client"
	"tableflip.dev/pokebox/pkg/pokemon"
	teaui "tableflip.dev/pokebox/pkg/tui/app"
	"tableflip.dev/pokebox/pkg/tui/overlay"
)

func init() {
	color.NoColor = true
}

func setup(t *testing.T, seed ...pokemon.OwnedEntry) (*app.Service, *apitest.Server) {
	t.Helper()
	api := apitest.New(apitest.Options{})
	api.Seed(seed...)
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	c, err := client.NewHTTP(client.Options{BaseURL: srv.URL + "/api"})
	if err != nil {
		t.Fatalf("NewHTTP: %v", err)
	}
	return &app.Service{Client: c}, api
}

func noPrompt(t *testing.T) func(context.Context, teaui.Pane) (tea.Msg, error) {
	return func(context.Context, teaui.Pane) (tea.Msg, error) {
		t.Fatalf("no prompt expected")
		return nil, nil
	}
}

func TestCatchFromFlags(t *testing.T) {
	svc, api := setup(t)
	var buf bytes.Buffer
	c := Catch{PokedexID: 25, Nickname: "Blitz", Edition: "Rot", Box: "Box 1", Service: svc, Out: &buf, Prompt: noPrompt(t)}
	if err := c.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	got := api.Owned()
	if len(got) != 1 {
		t.Fatalf("expected one entry, got %v", got)
	}
	if e := got[0]; e.Edition != "ROT" || e.BoxName != "BOX1" || e.Level != 1 || e.Nickname != "Blitz" {
		t.Fatalf("unexpected entry %+v", e)
	}
	if out := buf.String(); !strings.Contains(out, "caught #025 Blitz (id 1) into Rot · Box 1") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestCatchValidationSendsNothing(t *testing.T) {
	svc, api := setup(t)
	c := Catch{PokedexID: 25, Nickname: "Donnerblitzer", Edition: "ROT", Box: "TEAM", Service: svc, Out: &bytes.Buffer{}, Prompt: noPrompt(t)}
	err := c.Do(context.Background())
	var fe *app.FormError
	if !errors.As(err, &fe) || fe.Field != app.FieldNickname {
		t.Fatalf("expected a nickname error, got %v", err)
	}
	if n := api.Calls(apitest.RouteCreate); n != 0 {
		t.Fatalf("no request should be sent, got %d", n)
	}
}

func TestCatchPromptsForMissingBox(t *testing.T) {
	svc, _ := setup(t)
	var shown *overlay.CatchForm
	var buf bytes.Buffer
	c := Catch{
		PokedexID: 4,
		Nickname:  "Funke",
		Level:     7,
		Edition:   "BLAU",
		Service:   svc,
		Out:       &buf,
		Prompt: func(_ context.Context, p teaui.Pane) (tea.Msg, error) {
			shown = p.(*overlay.CatchForm)
			e := pokemon.OwnedEntry{ID: 3, PokedexID: 4, Nickname: "Funke", Level: 7, Edition: "BLAU", BoxName: "TEAM"}
			return overlay.SavedMsg{Entry: e, Created: true}, nil
		},
	}
	if err := c.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if shown == nil {
		t.Fatalf("the catch form was not shown")
	}
	v := shown.Value()
	if v.Nickname != "Funke" || v.Level != 7 || v.Edition != "Blau" || v.Box != "Team" {
		t.Fatalf("form not prefilled: %+v", v)
	}
	if out := buf.String(); !strings.Contains(out, "caught #004 Funke (id 3)") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestCatchPromptCancelled(t *testing.T) {
	svc, _ := setup(t)
	var buf bytes.Buffer
	c := Catch{
		PokedexID: 4,
		Service:   svc,
		Out:       &buf,
		Prompt: func(context.Context, teaui.Pane) (tea.Msg, error) {
			return overlay.ClosedMsg{}, nil
		},
	}
	if err := c.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if !strings.Contains(buf.String(), "cancelled") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestCatchUnknownSpecies(t *testing.T) {
	svc, _ := setup(t)
	c := Catch{PokedexID: 999, Service: svc, Prompt: noPrompt(t)}
	if err := c.Do(context.Background()); err == nil || !strings.Contains(err.Error(), "#999") {
		t.Fatalf("expected an unknown species error, got %v", err)
	}
}
