package pokeapi

// NamedResource is PokeAPI's {name, url} reference shape
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// listResponse is the body of GET /pokemon?limit=N. Results is a pointer so
// a missing key can be told apart from an empty page.
type listResponse struct {
	Count    int              `json:"count"`
	Next     *string          `json:"next"`
	Previous *string          `json:"previous"`
	Results  *[]NamedResource `json:"results"`
}

// PokemonDetail is the raw detail record. Only the fields the catalog reads
// are decoded.
type PokemonDetail struct {
	ID        int           `json:"id"`
	Name      string        `json:"name"`
	Sprites   *Sprites      `json:"sprites"`
	Types     []TypeSlot    `json:"types"`
	Abilities []AbilitySlot `json:"abilities"`
	Stats     []StatEntry   `json:"stats"`
}

// Sprites holds image references; FrontDefault is null for some records
type Sprites struct {
	FrontDefault *string `json:"front_default"`
}

// TypeSlot is one entry of the types list
type TypeSlot struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

// AbilitySlot is one entry of the abilities list
type AbilitySlot struct {
	Slot     int           `json:"slot"`
	IsHidden bool          `json:"is_hidden"`
	Ability  NamedResource `json:"ability"`
}

// StatEntry is one entry of the stats list
type StatEntry struct {
	BaseStat int           `json:"base_stat"`
	Effort   int           `json:"effort"`
	Stat     NamedResource `json:"stat"`
}

// DefaultSprite returns the front default sprite URL or "" when absent
func (d *PokemonDetail) DefaultSprite() string {
	if d.Sprites == nil || d.Sprites.FrontDefault == nil {
		return ""
	}
	return *d.Sprites.FrontDefault
}
