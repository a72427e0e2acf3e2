package release

import (
	"bytes"
	"context"
	"net/http/httptest"
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

func TestRelease(t *testing.T) {
	api := apitest.New(apitest.Options{})
	api.Seed(pokemon.OwnedEntry{PokedexID: 25, Level: 7, Edition: "ROT", BoxName: "TEAM"})
	srv := httptest.NewServer(api)
	defer srv.Close()
	c, err := client.NewHTTP(client.Options{BaseURL: srv.URL + "/api"})
	if err != nil {
		t.Fatalf("NewHTTP: %v", err)
	}
	svc := &app.Service{Client: c}

	var buf bytes.Buffer
	r := Release{ID: 1, JSON: true, Service: svc, Out: &buf}
	if err := r.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if got := buf.String(); got != "{\n  \"released\": 1\n}\n" {
		t.Fatalf("unexpected output %q", got)
	}
	if len(api.Owned()) != 0 {
		t.Fatalf("entry should be gone")
	}

	again := Release{ID: 1, Service: svc, Out: &buf}
	if err := again.Do(context.Background()); !client.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
