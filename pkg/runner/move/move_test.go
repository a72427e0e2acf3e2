package move

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/pokebox/pkg/apitest"
	"tableflip.dev/pokebox/pkg/app"
	"tableflip.dev/pokebox/pkg/client"
	"tableflip.dev/pokebox/pkg/pokemon"
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

func TestMoveKeepsEditionByDefault(t *testing.T) {
	svc, api := setup(t, pokemon.OwnedEntry{PokedexID: 25, Nickname: "Blitz", Level: 5, Edition: "ROT", BoxName: "TEAM"})
	var buf bytes.Buffer
	m := Move{ID: 1, Box: "Box 3", Service: svc, Out: &buf}
	if err := m.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	got := api.Owned()
	if len(got) != 1 || got[0].Edition != "ROT" || got[0].BoxName != "BOX3" {
		t.Fatalf("unexpected collection %v", got)
	}
	if out := buf.String(); !strings.Contains(out, "moved Blitz from Rot · Team to Rot · Box 3") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestMoveAcrossEditions(t *testing.T) {
	svc, api := setup(t, pokemon.OwnedEntry{PokedexID: 4, Level: 5, Edition: "ROT", BoxName: "BOX1"})
	m := Move{ID: 1, Edition: "grün", Box: "team", Service: svc, Out: &bytes.Buffer{}}
	if err := m.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if got := api.Owned()[0]; got.Edition != "GRUEN" || got.BoxName != "TEAM" {
		t.Fatalf("entry ended in %s", got.Location())
	}
}

func TestMoveErrors(t *testing.T) {
	svc, _ := setup(t, pokemon.OwnedEntry{PokedexID: 4, Level: 5, Edition: "ROT", BoxName: "BOX1"})

	same := Move{ID: 1, Box: "BOX1", Service: svc, Out: &bytes.Buffer{}}
	if err := same.Do(context.Background()); !client.IsConflict(err) {
		t.Fatalf("same box should conflict, got %v", err)
	}
	missing := Move{ID: 9, Box: "BOX2", Service: svc, Out: &bytes.Buffer{}}
	if err := missing.Do(context.Background()); err == nil {
		t.Fatalf("unknown id should fail")
	}
	nobox := Move{ID: 1, Service: svc}
	if err := nobox.Do(context.Background()); err == nil {
		t.Fatalf("missing target box should fail")
	}
}
