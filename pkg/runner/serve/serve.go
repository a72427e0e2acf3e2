// Package serve runs the in-memory collection API for local use.
package serve

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tableflip.dev/pokebox/pkg/apitest"
	"tableflip.dev/pokebox/pkg/printers"
)

type Serve struct {
	Addr string
	// Demo seeds a handful of entries so the organizer has something to show.
	Demo   bool
	Logger *zap.Logger
	Out    io.Writer
	// Ready receives the bound address once the listener is up.
	Ready func(addr string)
}

// Do serves until ctx is done.
func (s *Serve) Do(ctx context.Context) error {
	log := s.Logger
	if log == nil {
		log = zap.NewNop()
	}
	api := apitest.New(apitest.Options{Logger: log.Named("api")})
	if s.Demo {
		api.Seed(apitest.Demo()...)
	}

	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	srv := &http.Server{Handler: api, ReadHeaderTimeout: 5 * time.Second}

	addr := ln.Addr().String()
	pp := printers.PrettyPrint{Out: s.Out}
	pp.Done("serving the collection API on http://%s/api", addr)
	log.Info("serving", zap.String("addr", addr), zap.Bool("demo", s.Demo))
	if s.Ready != nil {
		s.Ready(addr)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdown)
	})
	return g.Wait()
}
