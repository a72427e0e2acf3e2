package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tableflip.dev/pokebox/pkg/pokemon"
)

const (
	// DefaultBaseURL is where the collection API listens unless configured.
	DefaultBaseURL = "http://localhost:8080/api"
	// DefaultEditionsPath and DefaultBoxNamesPath are the enum listing routes.
	// Some deployments serve them as /boxes/editions and /boxes/names.
	DefaultEditionsPath = "/editions"
	DefaultBoxNamesPath = "/boxnames"

	requestIDHeader = "X-Request-Id"
)

// Options configure an HTTP client.
type Options struct {
	BaseURL      string
	EditionsPath string
	BoxNamesPath string
	// Timeout bounds each request; zero leaves the transport default.
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// HTTP implements Client against the REST API.
type HTTP struct {
	base         string
	editionsPath string
	boxNamesPath string
	hc           *http.Client
	log          *zap.Logger
}

var _ Client = (*HTTP)(nil)

// NewHTTP returns a client for the API rooted at opts.BaseURL.
func NewHTTP(opts Options) (*HTTP, error) {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("client: invalid base url %q: %w", opts.BaseURL, err)
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &HTTP{
		base:         base,
		editionsPath: pathOr(opts.EditionsPath, DefaultEditionsPath),
		boxNamesPath: pathOr(opts.BoxNamesPath, DefaultBoxNamesPath),
		hc:           hc,
		log:          log.Named("client"),
	}, nil
}

// BaseURL returns the API root the client talks to.
func (c *HTTP) BaseURL() string { return c.base }

// ListSpecies implements Client.
func (c *HTTP) ListSpecies(ctx context.Context) ([]pokemon.Species, error) {
	var out []pokemon.Species
	if err := c.do(ctx, http.MethodGet, "/species", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListOwned implements Client.
func (c *HTTP) ListOwned(ctx context.Context) ([]pokemon.OwnedEntry, error) {
	var out []pokemon.OwnedEntry
	if err := c.do(ctx, http.MethodGet, "/pokemon", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateOwned implements Client.
func (c *HTTP) CreateOwned(ctx context.Context, req pokemon.CreateRequest) (*pokemon.OwnedEntry, error) {
	out := &pokemon.OwnedEntry{}
	if err := c.do(ctx, http.MethodPost, "/pokemon", req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateOwned implements Client.
func (c *HTTP) UpdateOwned(ctx context.Context, id int, req pokemon.UpdateRequest) (*pokemon.OwnedEntry, error) {
	out := &pokemon.OwnedEntry{}
	if err := c.do(ctx, http.MethodPatch, segments("pokemon", strconv.Itoa(id)), req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteOwned implements Client.
func (c *HTTP) DeleteOwned(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, segments("pokemon", strconv.Itoa(id)), nil, nil)
}

// ListEditions implements Client.
func (c *HTTP) ListEditions(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.do(ctx, http.MethodGet, c.editionsPath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListBoxNames implements Client.
func (c *HTTP) ListBoxNames(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.do(ctx, http.MethodGet, c.boxNamesPath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// BoxContents implements Client.
func (c *HTTP) BoxContents(ctx context.Context, edition, box string) (*pokemon.BoxContents, error) {
	out := &pokemon.BoxContents{}
	if err := c.do(ctx, http.MethodGet, segments("boxes", edition, box), nil, out); err != nil {
		return nil, err
	}
	if out.Pokemons == nil {
		out.Pokemons = []pokemon.OwnedEntry{}
	}
	return out, nil
}

// IsBoxFull implements Client.
func (c *HTTP) IsBoxFull(ctx context.Context, edition, box string) (bool, error) {
	var full bool
	if err := c.do(ctx, http.MethodGet, segments("boxes", edition, box, "is-full"), nil, &full); err != nil {
		return false, err
	}
	return full, nil
}

// MoveEntry implements Client.
func (c *HTTP) MoveEntry(ctx context.Context, m pokemon.Move) error {
	p := segments("boxes", m.SourceBox, "move-to", m.TargetBox, strconv.Itoa(m.ID), m.SourceEdition, m.TargetEdition)
	return c.do(ctx, http.MethodPut, p, nil, nil)
}

// EvolutionRules implements Client.
func (c *HTTP) EvolutionRules(ctx context.Context) (pokemon.EvolutionRules, error) {
	out := pokemon.EvolutionRules{}
	if err := c.do(ctx, http.MethodGet, "/evolution-rules", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTP) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return fmt.Errorf("client: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	reqID := uuid.NewString()
	req.Header.Set(requestIDHeader, reqID)

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		c.log.Debug("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", reqID),
			zap.Error(err))
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.log.Debug("request",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", reqID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("client: decode %s %s: %w", method, path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil || len(bytes.TrimSpace(raw)) == 0 {
		return apiErr
	}

	var generic map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		apiErr.Message = strings.TrimSpace(string(raw))
		return apiErr
	}
	if msg, ok := generic["message"].(string); ok {
		apiErr.Message = msg
		return apiErr
	}
	if msg, ok := generic["error"].(string); ok {
		apiErr.Message = msg
		return apiErr
	}
	// Validation failures come back as a flat field -> message object.
	fields := map[string]string{}
	for k, v := range generic {
		if s, ok := v.(string); ok {
			fields[k] = s
		}
	}
	if len(fields) > 0 {
		apiErr.Fields = fields
	}
	return apiErr
}

func segments(parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(p))
	}
	return b.String()
}

func pathOr(p, fallback string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return fallback
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return strings.TrimRight(p, "/")
}
