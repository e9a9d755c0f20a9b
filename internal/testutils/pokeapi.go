package testutils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

// FakePokemon describes one detail record served by FakePokeAPI
type FakePokemon struct {
	Name      string
	Sprite    *string
	Types     []string
	Abilities []string
	Stats     []FakeStat

	// Status overrides the detail response code when non-zero
	Status int
	// Delay holds the detail response back
	Delay time.Duration
}

// FakeStat is a name/base_stat pair
type FakeStat struct {
	Name  string
	Value int
}

// FakePokeAPI is an httptest server speaking the subset of PokeAPI the
// catalog uses. Detail URLs are {URL}/pokemon/{index+1}/.
type FakePokeAPI struct {
	*httptest.Server

	mu           sync.Mutex
	pokemon      []FakePokemon
	rosterStatus int
	detailHits   int
	lastLimit    string
}

// NewFakePokeAPI starts the server; it is closed when the test ends
func NewFakePokeAPI(t *testing.T, pokemon ...FakePokemon) *FakePokeAPI {
	t.Helper()

	f := &FakePokeAPI{pokemon: pokemon}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /pokemon", f.handleRoster)
	mux.HandleFunc("GET /pokemon/{id}/", f.handleDetail)
	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

// FailRoster makes the listing endpoint answer with status
func (f *FakePokeAPI) FailRoster(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rosterStatus = status
}

// DetailHits returns how many detail requests were served
func (f *FakePokeAPI) DetailHits() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.detailHits
}

// LastLimit returns the limit query parameter of the last roster request
func (f *FakePokeAPI) LastLimit() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastLimit
}

// DetailURL returns the detail reference for the i-th pokemon
func (f *FakePokeAPI) DetailURL(i int) string {
	return fmt.Sprintf("%s/pokemon/%d/", f.URL, i+1)
}

func (f *FakePokeAPI) handleRoster(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	status := f.rosterStatus
	f.lastLimit = r.URL.Query().Get("limit")
	f.mu.Unlock()

	if status != 0 {
		w.WriteHeader(status)
		return
	}

	type ref struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	}
	results := make([]ref, len(f.pokemon))
	for i, p := range f.pokemon {
		results[i] = ref{Name: p.Name, URL: f.DetailURL(i)}
	}
	writeJSON(w, map[string]interface{}{
		"count":   len(results),
		"results": results,
	})
}

func (f *FakePokeAPI) handleDetail(w http.ResponseWriter, r *http.Request) {
	var id int
	if _, err := fmt.Sscanf(r.PathValue("id"), "%d", &id); err != nil || id < 1 || id > len(f.pokemon) {
		http.NotFound(w, r)
		return
	}

	f.mu.Lock()
	f.detailHits++
	f.mu.Unlock()

	p := f.pokemon[id-1]
	if p.Delay > 0 {
		select {
		case <-time.After(p.Delay):
		case <-r.Context().Done():
			return
		}
	}
	if p.Status != 0 {
		w.WriteHeader(p.Status)
		return
	}

	body := map[string]interface{}{
		"id":      id,
		"name":    p.Name,
		"sprites": map[string]interface{}{"front_default": p.Sprite},
	}

	// A nil list leaves the key out, which PokeAPI never does
	if p.Types != nil {
		types := make([]map[string]interface{}, len(p.Types))
		for i, name := range p.Types {
			types[i] = map[string]interface{}{"slot": i + 1, "type": map[string]string{"name": name}}
		}
		body["types"] = types
	}
	if p.Abilities != nil {
		abilities := make([]map[string]interface{}, len(p.Abilities))
		for i, name := range p.Abilities {
			abilities[i] = map[string]interface{}{"slot": i + 1, "ability": map[string]string{"name": name}}
		}
		body["abilities"] = abilities
	}
	if p.Stats != nil {
		stats := make([]map[string]interface{}, len(p.Stats))
		for i, st := range p.Stats {
			stats[i] = map[string]interface{}{"base_stat": st.Value, "stat": map[string]string{"name": st.Name}}
		}
		body["stats"] = stats
	}

	writeJSON(w, body)
}

func writeJSON(w http.ResponseWriter, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body) // nolint:errcheck // test server
}

// Sprite returns a pointer for FakePokemon.Sprite
func Sprite(url string) *string {
	return &url
}

// Bulbasaur is the canonical first-generation fixture
func Bulbasaur() FakePokemon {
	return FakePokemon{
		Name:      "bulbasaur",
		Sprite:    Sprite("img.png"),
		Types:     []string{"grass", "poison"},
		Abilities: []string{"overgrow"},
		Stats:     []FakeStat{{Name: "hp", Value: 45}},
	}
}
