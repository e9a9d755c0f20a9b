// Package pokeapi is the HTTP client for the PokeAPI catalog
package pokeapi

//go:generate mockgen -destination=mock/mock_client.go -package=pokeapimock github.com/KirkDiggler/pokedex-api/internal/clients/pokeapi Client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/KirkDiggler/pokedex-api/internal/entities"
	"github.com/KirkDiggler/pokedex-api/internal/errors"
)

const (
	// DefaultBaseURL is the public PokeAPI v2 root
	DefaultBaseURL = "https://pokeapi.co/api/v2"

	defaultHTTPTimeout = 30 * time.Second
	pokemonPath        = "/pokemon"
)

// Client defines the outbound calls the catalog needs
type Client interface {
	// ListPokemon fetches the first page of the roster, at most limit entries,
	// in server order
	ListPokemon(ctx context.Context, limit int) ([]*entities.RosterEntry, error)

	// GetPokemon fetches one detail record from its detail reference URL
	GetPokemon(ctx context.Context, detailRef string) (*PokemonDetail, error)
}

// Config contains configuration options for the PokeAPI client.
type Config struct {
	// BaseURL of the catalog (optional, defaults to https://pokeapi.co/api/v2)
	BaseURL string
	// HTTPTimeout bounds each request (optional, defaults to 30 seconds)
	HTTPTimeout time.Duration
	// HTTPClient overrides the transport (optional)
	HTTPClient *http.Client
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = defaultHTTPTimeout
	}

	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.InvalidArgumentf("invalid base URL %q", cfg.BaseURL)
	}
	return nil
}

type client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new PokeAPI client with the given configuration.
func New(cfg *Config) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: cfg.HTTPTimeout,
		}
	}

	return &client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
	}, nil
}

func (c *client) ListPokemon(ctx context.Context, limit int) ([]*entities.RosterEntry, error) {
	if limit <= 0 {
		return nil, errors.InvalidArgumentf("limit must be positive, got %d", limit)
	}

	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	endpoint := c.baseURL + pokemonPath + "?" + query.Encode()

	slog.Info("Calling PokeAPI to list pokemon", "limit", limit)
	var resp listResponse
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, errors.Wrap(err, "failed to list pokemon")
	}
	if resp.Results == nil {
		return nil, errors.MalformedResponse("roster payload has no results").WithMeta("url", endpoint)
	}

	results := *resp.Results
	if len(results) > limit {
		slog.Warn("PokeAPI returned more entries than requested", "limit", limit, "count", len(results))
		results = results[:limit]
	}

	roster := make([]*entities.RosterEntry, len(results))
	for i, ref := range results {
		if ref.Name == "" || ref.URL == "" {
			return nil, errors.MalformedResponsef("roster entry %d is missing name or url", i).
				WithMeta("url", endpoint)
		}
		roster[i] = &entities.RosterEntry{
			Name:      ref.Name,
			DetailRef: ref.URL,
		}
	}
	slog.Info("Got pokemon references", "count", len(roster))

	return roster, nil
}

func (c *client) GetPokemon(ctx context.Context, detailRef string) (*PokemonDetail, error) {
	if detailRef == "" {
		return nil, errors.InvalidArgument("detail reference is required")
	}

	var detail PokemonDetail
	if err := c.getJSON(ctx, detailRef, &detail); err != nil {
		return nil, err
	}
	if err := detail.validate(); err != nil {
		return nil, err.WithMeta("url", detailRef)
	}

	return &detail, nil
}

// validate checks the lists the catalog reads are present. Empty lists are
// allowed; a missing key decodes to nil.
func (d *PokemonDetail) validate() *errors.Error {
	switch {
	case d.Types == nil:
		return errors.MalformedResponse("detail payload has no types")
	case d.Abilities == nil:
		return errors.MalformedResponse("detail payload has no abilities")
	case d.Stats == nil:
		return errors.MalformedResponse("detail payload has no stats")
	}

	for i, t := range d.Types {
		if t.Type.Name == "" {
			return errors.MalformedResponsef("type %d has no name", i)
		}
	}
	for i, a := range d.Abilities {
		if a.Ability.Name == "" {
			return errors.MalformedResponsef("ability %d has no name", i)
		}
	}
	for i, s := range d.Stats {
		if s.Stat.Name == "" {
			return errors.MalformedResponsef("stat %d has no name", i)
		}
	}
	return nil
}

// getJSON issues a GET and decodes a 2xx JSON body into out
func (c *client) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.WrapWithCodef(err, errors.CodeInvalidArgument, "invalid request URL %s", endpoint)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		code := errors.CodeNetwork
		switch ctx.Err() {
		case context.Canceled:
			code = errors.CodeCanceled
		case context.DeadlineExceeded:
			code = errors.CodeDeadlineExceeded
		}
		return errors.WrapWithCodef(err, code, "GET %s failed", endpoint).
			WithMeta("url", endpoint)
	}
	defer func() {
		_ = resp.Body.Close() // nolint:errcheck // body already consumed
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.Networkf("GET %s returned %d", endpoint, resp.StatusCode).
			WithMeta("url", endpoint).
			WithMeta("status_code", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.WrapWithCode(err, errors.CodeMalformedResponse, fmt.Sprintf("failed to decode %s", endpoint)).
			WithMeta("url", endpoint)
	}
	return nil
}
