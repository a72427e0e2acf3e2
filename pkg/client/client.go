// Package client talks to the collection API: the species catalog, owned
// entries, boxes and evolution rules. UI components depend on the Client
// interface so tests can substitute a double for the HTTP implementation.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"tableflip.dev/pokebox/pkg/pokemon"
)

// Client is the full surface of the collection API. Edition and box arguments
// are API tokens (see package mapper), never display labels.
type Client interface {
	ListSpecies(ctx context.Context) ([]pokemon.Species, error)
	ListOwned(ctx context.Context) ([]pokemon.OwnedEntry, error)
	CreateOwned(ctx context.Context, req pokemon.CreateRequest) (*pokemon.OwnedEntry, error)
	UpdateOwned(ctx context.Context, id int, req pokemon.UpdateRequest) (*pokemon.OwnedEntry, error)
	DeleteOwned(ctx context.Context, id int) error

	ListEditions(ctx context.Context) ([]string, error)
	ListBoxNames(ctx context.Context) ([]string, error)
	BoxContents(ctx context.Context, edition, box string) (*pokemon.BoxContents, error)
	IsBoxFull(ctx context.Context, edition, box string) (bool, error)
	MoveEntry(ctx context.Context, move pokemon.Move) error

	EvolutionRules(ctx context.Context) (pokemon.EvolutionRules, error)
}

// APIError is returned for every non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
	// Fields carries per-field messages from validation failures.
	Fields map[string]string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" && len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+": "+e.Fields[k])
		}
		msg = strings.Join(parts, "; ")
	}
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("api: %d: %s", e.StatusCode, msg)
}

// IsNotFound reports whether err is an API 404.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsConflict reports whether err is an API 409 (full box, same box, entry
// not in the source box).
func IsConflict(err error) bool {
	return hasStatus(err, http.StatusConflict)
}

// IsBadRequest reports whether err is an API 400.
func IsBadRequest(err error) bool {
	return hasStatus(err, http.StatusBadRequest)
}

func hasStatus(err error, status int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == status
	}
	return false
}
