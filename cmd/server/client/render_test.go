package client

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/pokedex-api/internal/handlers/pokedex/v1alpha1"
)

func TestRenderSession_Ready(t *testing.T) {
	var buf bytes.Buffer
	view := &v1alpha1.SessionView{
		SessionID: "catalog_1",
		Status:    "READY",
		Pokemon: []v1alpha1.PokemonView{
			{
				Name:      "bulbasaur",
				ImageURL:  "img.png",
				Types:     []string{"grass", "poison"},
				Abilities: []string{"overgrow"},
				Stats:     []v1alpha1.StatView{{Name: "hp", Value: 45}, {Name: "speed", Value: 45}},
			},
			{Name: "missingno", Types: []string{}, Abilities: []string{}, Stats: []v1alpha1.StatView{}},
		},
	}

	require.NoError(t, renderSession(&buf, view))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"#", "NAME", "TYPES", "ABILITIES", "STATS", "IMAGE"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"1", "bulbasaur", "grass,poison", "overgrow", "hp=45", "speed=45", "img.png"}, strings.Fields(lines[1]))
	assert.True(t, strings.HasSuffix(lines[2], "-"))
	assert.Equal(t, "2 pokemon in session catalog_1", lines[3])
}

func TestRenderSession_Pending(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, renderSession(&buf, &v1alpha1.SessionView{SessionID: "catalog_2", Status: "PENDING"}))
	assert.Equal(t, "Session catalog_2 is loading...\n", buf.String())
}

func TestRenderSession_Failed(t *testing.T) {
	var buf bytes.Buffer
	view := &v1alpha1.SessionView{
		SessionID: "catalog_3",
		Status:    "FAILED",
		ErrorCode: "NETWORK",
		Reason:    "pokeapi returned status 500",
	}

	err := renderSession(&buf, view)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NETWORK")
	assert.Contains(t, buf.String(), "pokeapi returned status 500")
}
