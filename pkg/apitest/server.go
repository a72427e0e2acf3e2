// Package apitest is an in-memory implementation of the collection API. It
// backs the client and organizer tests and the `pokebox serve` command, and
// enforces the same capacity, move and update rules as the real back end.
package apitest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"tableflip.dev/pokebox/pkg/pokemon"
)

// Route patterns, as counted by Calls.
const (
	RouteSpecies     = "GET /api/species"
	RouteListOwned   = "GET /api/pokemon"
	RouteGetOwned    = "GET /api/pokemon/{id}"
	RouteCreate      = "POST /api/pokemon"
	RouteUpdate      = "PATCH /api/pokemon/{id}"
	RouteDelete      = "DELETE /api/pokemon/{id}"
	RouteEditions    = "GET /api/editions"
	RouteBoxNames    = "GET /api/boxnames"
	RouteBox         = "GET /api/boxes/{edition}/{box}"
	RouteIsFull      = "GET /api/boxes/{edition}/{box}/is-full"
	RouteMove        = "PUT /api/boxes/{sourceBox}/move-to/{targetBox}/{id}/{sourceEdition}/{targetEdition}"
	RouteEvolution   = "GET /api/evolution-rules"
	RouteAltEditions = "GET /api/boxes/editions"
	RouteAltBoxNames = "GET /api/boxes/names"
)

// Options configure a Server. Empty fields fall back to the built-in
// catalog, rules and enumerations.
type Options struct {
	Species  []pokemon.Species
	Rules    pokemon.EvolutionRules
	Editions []string
	Boxes    []string
	Logger   *zap.Logger
	Now      func() time.Time
}

// Server holds the collection in memory.
type Server struct {
	mu       sync.Mutex
	species  map[int]pokemon.Species
	catalog  []pokemon.Species
	rules    pokemon.EvolutionRules
	editions []string
	boxes    []string
	owned    map[int]pokemon.OwnedEntry
	nextID   int
	calls    map[string]int

	log    *zap.Logger
	now    func() time.Time
	router chi.Router
}

// New builds a server with an empty collection.
func New(opts Options) *Server {
	s := &Server{
		catalog:  opts.Species,
		rules:    opts.Rules,
		editions: opts.Editions,
		boxes:    opts.Boxes,
		owned:    map[int]pokemon.OwnedEntry{},
		nextID:   1,
		calls:    map[string]int{},
		log:      opts.Logger,
		now:      opts.Now,
	}
	if s.catalog == nil {
		s.catalog = Catalog()
	}
	if s.rules == nil {
		s.rules = Rules()
	}
	if s.editions == nil {
		s.editions = tokens(pokemon.DefaultEditions())
	}
	if s.boxes == nil {
		s.boxes = tokens(pokemon.DefaultBoxes())
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.species = make(map[int]pokemon.Species, len(s.catalog))
	for _, sp := range s.catalog {
		s.species[sp.PokedexID] = sp
	}
	s.router = s.routes()
	return s
}

func tokens(labels []pokemon.Label) []string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		out = append(out, l.Token)
	}
	return out
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.count)

	r.Route("/api", func(api chi.Router) {
		api.Get("/species", s.listSpecies)
		api.Get("/evolution-rules", s.evolutionRules)
		api.Get("/editions", s.listEditions)
		api.Get("/boxnames", s.listBoxNames)

		api.Route("/pokemon", func(p chi.Router) {
			p.Get("/", s.listOwned)
			p.Post("/", s.create)
			p.Get("/{id}", s.getOwned)
			p.Patch("/{id}", s.update)
			p.Delete("/{id}", s.release)
		})

		api.Route("/boxes", func(b chi.Router) {
			b.Get("/editions", s.listEditions)
			b.Get("/names", s.listBoxNames)
			b.Get("/{edition}/{box}", s.box)
			b.Get("/{edition}/{box}/is-full", s.isFull)
			b.Put("/{sourceBox}/move-to/{targetBox}/{id}/{sourceEdition}/{targetEdition}", s.move)
		})
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := s.now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		pattern := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			pattern = strings.TrimSuffix(rc.RoutePattern(), "/")
		}
		key := r.Method + " " + pattern
		s.mu.Lock()
		s.calls[key]++
		s.mu.Unlock()

		s.log.Debug("request",
			zap.String("route", key),
			zap.String("path", r.URL.Path),
			zap.String("requestId", r.Header.Get("X-Request-Id")),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", s.now().Sub(start)))
	})
}

// Calls returns how often route was served. Routes are "METHOD pattern",
// see the Route constants.
func (s *Server) Calls(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[route]
}

// ResetCalls zeroes every counter.
func (s *Server) ResetCalls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = map[string]int{}
}

// Seed stores entries as they are, filling species data from the catalog.
// Entries without an ID get the next free one.
func (s *Server) Seed(entries ...pokemon.OwnedEntry) []pokemon.OwnedEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]pokemon.OwnedEntry, 0, len(entries))
	for _, e := range entries {
		if e.ID == 0 {
			e.ID = s.nextID
		}
		s.nextID = max(s.nextID, e.ID+1)
		e = s.withSpecies(e)
		s.owned[e.ID] = e
		out = append(out, e)
	}
	return out
}

// Owned returns the collection ordered by id.
func (s *Server) Owned() []pokemon.OwnedEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedOwned(func(pokemon.OwnedEntry) bool { return true })
}

func (s *Server) sortedOwned(keep func(pokemon.OwnedEntry) bool) []pokemon.OwnedEntry {
	out := make([]pokemon.OwnedEntry, 0, len(s.owned))
	for _, e := range s.owned {
		if keep(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Server) withSpecies(e pokemon.OwnedEntry) pokemon.OwnedEntry {
	if sp, ok := s.species[e.PokedexID]; ok {
		e.SpeciesName, e.Type1, e.Type2 = sp.Name, sp.Type1, sp.Type2
	}
	return e
}

// apiError is a failure with the status it maps to.
type apiError struct {
	status  int
	message string
	fields  map[string]string
}

func (e *apiError) Error() string { return e.message }

func notFound(format string, args ...any) error {
	return &apiError{status: http.StatusNotFound, message: fmt.Sprintf(format, args...)}
}

func conflict(format string, args ...any) error {
	return &apiError{status: http.StatusConflict, message: fmt.Sprintf(format, args...)}
}

func badRequest(format string, args ...any) error {
	return &apiError{status: http.StatusBadRequest, message: fmt.Sprintf(format, args...)}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("encode response", zap.Error(err))
	}
}

// writeError renders validation failures as a field map and everything else
// as {"timestamp", "message"}.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var ae *apiError
	if !errors.As(err, &ae) {
		ae = &apiError{status: http.StatusInternalServerError, message: "unexpected error: " + err.Error()}
	}
	if len(ae.fields) > 0 {
		s.writeJSON(w, ae.status, ae.fields)
		return
	}
	s.writeJSON(w, ae.status, map[string]string{
		"timestamp": s.now().Format("2006-01-02T15:04:05.000"),
		"message":   ae.message,
	})
}

func (s *Server) listSpecies(w http.ResponseWriter, _ *http.Request) {
	out := slices.Clone(s.catalog)
	sort.Slice(out, func(i, j int) bool { return out[i].PokedexID < out[j].PokedexID })
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) evolutionRules(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[int][]int(s.rules))
}

func (s *Server) listEditions(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.editions)
}

func (s *Server) listBoxNames(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.boxes)
}

func (s *Server) listOwned(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeJSON(w, http.StatusOK, s.sortedOwned(func(pokemon.OwnedEntry) bool { return true }))
}

func pathID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, badRequest("invalid id %q", raw)
	}
	return id, nil
}

func (s *Server) getOwned(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.owned[id]
	if !ok {
		s.writeError(w, notFound("Pokemon with id %d not found", id))
		return
	}
	s.writeJSON(w, http.StatusOK, e)
}

// checkBox reports 404 for an edition or box the server does not know.
func (s *Server) checkBox(edition, box string) error {
	if !slices.Contains(s.editions, edition) || !slices.Contains(s.boxes, box) {
		return notFound("Box %s/%s not found", edition, box)
	}
	return nil
}

func (s *Server) countIn(edition, box string) int {
	n := 0
	for _, e := range s.owned {
		if e.Edition == edition && e.BoxName == box {
			n++
		}
	}
	return n
}

func (s *Server) full(edition, box string) bool {
	return s.countIn(edition, box) >= pokemon.Capacity(box)
}

func (s *Server) box(w http.ResponseWriter, r *http.Request) {
	edition, box := chi.URLParam(r, "edition"), chi.URLParam(r, "box")
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkBox(edition, box); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, pokemon.BoxContents{
		Name:     box,
		Capacity: pokemon.Capacity(box),
		Pokemons: s.sortedOwned(func(e pokemon.OwnedEntry) bool {
			return e.Edition == edition && e.BoxName == box
		}),
	})
}

func (s *Server) isFull(w http.ResponseWriter, r *http.Request) {
	edition, box := chi.URLParam(r, "edition"), chi.URLParam(r, "box")
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkBox(edition, box); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.full(edition, box))
}

func (s *Server) move(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	src := pokemon.BoxRef{Edition: chi.URLParam(r, "sourceEdition"), Box: chi.URLParam(r, "sourceBox")}
	dst := pokemon.BoxRef{Edition: chi.URLParam(r, "targetEdition"), Box: chi.URLParam(r, "targetBox")}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.relocate(id, src, dst); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// relocate applies the back end's move rules. Callers hold s.mu.
func (s *Server) relocate(id int, src, dst pokemon.BoxRef) error {
	if src == dst {
		return conflict("Pokemon %d is already in %s", id, dst)
	}
	e, ok := s.owned[id]
	if !ok {
		return notFound("Pokemon with id %d not found", id)
	}
	if e.Location() != src {
		return conflict("Pokemon %d is not in source box %s", id, src)
	}
	if err := s.checkBox(dst.Edition, dst.Box); err != nil {
		return err
	}
	if s.full(dst.Edition, dst.Box) {
		return conflict("Target box %s is full", dst)
	}
	e.Edition, e.BoxName = dst.Edition, dst.Box
	s.owned[id] = e
	s.log.Info("moved", zap.Int("id", id), zap.Stringer("from", src), zap.Stringer("to", dst))
	return nil
}

func validateFields(nickname *string, level *int) error {
	fields := map[string]string{}
	if nickname != nil {
		if n := utf8.RuneCountInString(strings.TrimSpace(*nickname)); n > pokemon.MaxNicknameLength {
			fields["nickname"] = fmt.Sprintf("must be at most %d characters", pokemon.MaxNicknameLength)
		}
	}
	if level != nil && (*level < pokemon.MinLevel || *level > pokemon.MaxLevel) {
		fields["level"] = fmt.Sprintf("must be between %d and %d", pokemon.MinLevel, pokemon.MaxLevel)
	}
	if len(fields) > 0 {
		return &apiError{status: http.StatusBadRequest, message: "validation failed", fields: fields}
	}
	return nil
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	var req pokemon.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, badRequest("invalid body: %v", err))
		return
	}
	if err := validateFields(&req.Nickname, &req.Level); err != nil {
		s.writeError(w, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sp, ok := s.species[req.PokedexID]
	if !ok {
		s.writeError(w, notFound("No species with pokedex id %d", req.PokedexID))
		return
	}
	if req.Box == "" || req.Edition == "" {
		s.writeError(w, conflict("Edition and box are required"))
		return
	}
	if err := s.checkBox(req.Edition, req.Box); err != nil {
		s.writeError(w, err)
		return
	}
	if s.full(req.Edition, req.Box) {
		if req.Box == "TEAM" {
			s.writeError(w, conflict("Team is full (max. %d)", pokemon.TeamCapacity))
		} else {
			s.writeError(w, conflict("Target box is full (max. %d)", pokemon.BoxCapacity))
		}
		return
	}

	e := pokemon.OwnedEntry{
		ID:        s.nextID,
		PokedexID: sp.PokedexID,
		Nickname:  strings.TrimSpace(req.Nickname),
		Level:     req.Level,
		Edition:   req.Edition,
		BoxName:   req.Box,
	}
	s.nextID++
	e = s.withSpecies(e)
	s.owned[e.ID] = e
	s.log.Info("created", zap.Int("id", e.ID), zap.Int("pokedexId", e.PokedexID))
	s.writeJSON(w, http.StatusCreated, e)
}

// patchBody mirrors UpdateRequest with every field optional.
type patchBody struct {
	PokedexID *int    `json:"pokedexId"`
	Nickname  *string `json:"nickname"`
	Level     *int    `json:"level"`
	Edition   *string `json:"edition"`
	Box       *string `json:"box"`
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	var req patchBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, badRequest("invalid body: %v", err))
		return
	}
	if err := validateFields(req.Nickname, req.Level); err != nil {
		s.writeError(w, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	updated, err := s.apply(id, req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, updated)
}

// apply validates every change before storing any of them. Callers hold s.mu.
func (s *Server) apply(id int, req patchBody) (pokemon.OwnedEntry, error) {
	e, ok := s.owned[id]
	if !ok {
		return e, notFound("Pokemon with id %d not found", id)
	}
	next := e
	if req.Level != nil && *req.Level != e.Level {
		if *req.Level < e.Level {
			return e, badRequest("Level cannot be lowered")
		}
		next.Level = *req.Level
	}
	if req.Nickname != nil {
		next.Nickname = strings.TrimSpace(*req.Nickname)
	}
	if req.PokedexID != nil && *req.PokedexID != e.PokedexID {
		if !s.rules.Allows(e.PokedexID, *req.PokedexID) {
			return e, badRequest("Evolution from %d to %d is not allowed", e.PokedexID, *req.PokedexID)
		}
		if _, ok := s.species[*req.PokedexID]; !ok {
			return e, notFound("No species with pokedex id %d", *req.PokedexID)
		}
		next.PokedexID = *req.PokedexID
	}

	dst := e.Location()
	if req.Edition != nil && *req.Edition != "" {
		dst.Edition = *req.Edition
	}
	if req.Box != nil && *req.Box != "" {
		dst.Box = *req.Box
	}
	if dst != e.Location() {
		if err := s.relocate(id, e.Location(), dst); err != nil {
			return e, err
		}
		next.Edition, next.BoxName = dst.Edition, dst.Box
	}

	next = s.withSpecies(next)
	s.owned[id] = next
	return next, nil
}

func (s *Server) release(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.owned[id]; !ok {
		s.writeError(w, notFound("Pokemon with id %d not found", id))
		return
	}
	delete(s.owned, id)
	s.log.Info("deleted", zap.Int("id", id))
	w.WriteHeader(http.StatusNoContent)
}
