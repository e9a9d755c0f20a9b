package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/pokedex-api/internal/clients/pokeapi"
	"github.com/KirkDiggler/pokedex-api/internal/entities"
	"github.com/KirkDiggler/pokedex-api/internal/orchestrators/catalog"
)

func named(name string) pokeapi.NamedResource {
	return pokeapi.NamedResource{Name: name, URL: "https://pokeapi.test/" + name}
}

func charizardDetail() *pokeapi.PokemonDetail {
	sprite := "https://img.test/6.png"
	return &pokeapi.PokemonDetail{
		ID:      6,
		Name:    "charizard",
		Sprites: &pokeapi.Sprites{FrontDefault: &sprite},
		Types: []pokeapi.TypeSlot{
			{Slot: 1, Type: named("fire")},
			{Slot: 2, Type: named("flying")},
		},
		Abilities: []pokeapi.AbilitySlot{
			{Slot: 1, Ability: named("blaze")},
			{Slot: 3, IsHidden: true, Ability: named("solar-power")},
		},
		Stats: []pokeapi.StatEntry{
			{BaseStat: 78, Stat: named("hp")},
			{BaseStat: 84, Stat: named("attack")},
			{BaseStat: 78, Stat: named("defense")},
			{BaseStat: 109, Stat: named("special-attack")},
			{BaseStat: 85, Stat: named("special-defense")},
			{BaseStat: 100, Stat: named("speed")},
		},
	}
}

func TestToPokemon(t *testing.T) {
	entry := &entities.RosterEntry{Name: "charizard", DetailRef: "https://pokeapi.test/pokemon/6/"}

	pokemon := catalog.ToPokemon(entry, charizardDetail())

	assert.Equal(t, "charizard", pokemon.Name)
	assert.Equal(t, "https://img.test/6.png", pokemon.ImageURL)
	assert.Equal(t, []string{"fire", "flying"}, pokemon.Types)
	assert.Equal(t, []string{"blaze", "solar-power"}, pokemon.Abilities)
	assert.Equal(t, []entities.Stat{
		{Name: "hp", Value: 78},
		{Name: "attack", Value: 84},
		{Name: "defense", Value: 78},
		{Name: "special-attack", Value: 109},
		{Name: "special-defense", Value: 85},
		{Name: "speed", Value: 100},
	}, pokemon.Stats)
}

func TestToPokemon_IsDeterministic(t *testing.T) {
	entry := &entities.RosterEntry{Name: "charizard", DetailRef: "https://pokeapi.test/pokemon/6/"}
	detail := charizardDetail()

	first := catalog.ToPokemon(entry, detail)
	second := catalog.ToPokemon(entry, detail)

	assert.Equal(t, first, second)
	assert.Equal(t, charizardDetail(), detail, "input must not be modified")

	// Results do not share backing arrays
	first.Types[0] = "water"
	assert.Equal(t, "fire", second.Types[0])
	assert.Equal(t, "fire", detail.Types[0].Type.Name)
}

func TestToPokemon_UsesRosterName(t *testing.T) {
	entry := &entities.RosterEntry{Name: "mr-mime", DetailRef: "https://pokeapi.test/pokemon/122/"}
	detail := charizardDetail()
	detail.Name = "something-else"

	assert.Equal(t, "mr-mime", catalog.ToPokemon(entry, detail).Name)
}

func TestToPokemon_MissingSprite(t *testing.T) {
	entry := &entities.RosterEntry{Name: "charizard"}

	t.Run("null front_default", func(t *testing.T) {
		detail := charizardDetail()
		detail.Sprites.FrontDefault = nil
		assert.Equal(t, "", catalog.ToPokemon(entry, detail).ImageURL)
	})

	t.Run("no sprites object", func(t *testing.T) {
		detail := charizardDetail()
		detail.Sprites = nil
		assert.Equal(t, "", catalog.ToPokemon(entry, detail).ImageURL)
	})
}

func TestToPokemon_EmptyListsStayNonNil(t *testing.T) {
	entry := &entities.RosterEntry{Name: "ditto"}
	detail := &pokeapi.PokemonDetail{
		Types:     []pokeapi.TypeSlot{},
		Abilities: []pokeapi.AbilitySlot{},
		Stats:     []pokeapi.StatEntry{},
	}

	pokemon := catalog.ToPokemon(entry, detail)

	require.NotNil(t, pokemon.Types)
	require.NotNil(t, pokemon.Abilities)
	require.NotNil(t, pokemon.Stats)
	assert.Empty(t, pokemon.Types)
}
