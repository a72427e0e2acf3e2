// Command demo opens the organizer against an in-process collection API
// seeded with a few entries.
package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"

	"tableflip.dev/pokebox/pkg/app"
	"tableflip.dev/pokebox/pkg/client"
	"tableflip.dev/pokebox/pkg/runner/organize"
	"tableflip.dev/pokebox/pkg/runner/serve"
	"tableflip.dev/pokebox/pkg/tui/theme"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ready := make(chan string, 1)
	s := serve.Serve{Addr: "127.0.0.1:0", Demo: true, Out: io.Discard, Ready: func(addr string) { ready <- addr }}
	errs := make(chan error, 1)
	go func() { errs <- s.Do(ctx) }()

	var addr string
	select {
	case addr = <-ready:
	case err := <-errs:
		log.Fatalf("error starting the demo API: %v", err)
	}

	c, err := client.NewHTTP(client.Options{BaseURL: "http://" + addr + "/api"})
	if err != nil {
		log.Fatalf("error creating the client: %v", err)
	}
	o := organize.Organize{Service: &app.Service{Client: c}, Theme: theme.Detect()}
	if err := o.Do(ctx); err != nil {
		log.Fatalf("error during organize: %v", err)
	}
}
