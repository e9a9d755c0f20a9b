// Package entities holds the domain types shared across layers
package entities

// RosterEntry is one row of the catalog listing: a name and the URL of its
// detail record. Order is the order the catalog endpoint returned.
type RosterEntry struct {
	Name      string `json:"name"`
	DetailRef string `json:"detail_ref"`
}

// Pokemon is the flattened, presentation-ready view of a detail record
type Pokemon struct {
	Name string `json:"name"`
	// ImageURL is empty when the record has no default sprite
	ImageURL  string   `json:"image_url"`
	Types     []string `json:"types"`
	Abilities []string `json:"abilities"`
	Stats     []Stat   `json:"stats"`
}

// Stat is a named base stat copied verbatim from the detail record
type Stat struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}
