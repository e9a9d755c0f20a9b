package catalog

import (
	"github.com/KirkDiggler/pokedex-api/internal/clients/pokeapi"
	"github.com/KirkDiggler/pokedex-api/internal/entities"
)

// ToPokemon flattens a detail record into the presentation view. It is pure:
// lists keep the API order and stat values are copied unchanged.
func ToPokemon(entry *entities.RosterEntry, detail *pokeapi.PokemonDetail) *entities.Pokemon {
	types := make([]string, len(detail.Types))
	for i, t := range detail.Types {
		types[i] = t.Type.Name
	}

	abilities := make([]string, len(detail.Abilities))
	for i, a := range detail.Abilities {
		abilities[i] = a.Ability.Name
	}

	stats := make([]entities.Stat, len(detail.Stats))
	for i, s := range detail.Stats {
		stats[i] = entities.Stat{
			Name:  s.Stat.Name,
			Value: s.BaseStat,
		}
	}

	return &entities.Pokemon{
		Name:      entry.Name,
		ImageURL:  detail.DefaultSprite(),
		Types:     types,
		Abilities: abilities,
		Stats:     stats,
	}
}
