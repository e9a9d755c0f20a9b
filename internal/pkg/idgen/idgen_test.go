package idgen_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/pokedex-api/internal/pkg/idgen"
)

func TestUUIDGenerator(t *testing.T) {
	gen := idgen.NewUUID("catalog")

	first := gen.Generate()
	second := gen.Generate()

	assert.NotEqual(t, first, second)
	require.True(t, strings.HasPrefix(first, "catalog_"))
	_, err := uuid.Parse(strings.TrimPrefix(first, "catalog_"))
	assert.NoError(t, err)

	_, err = uuid.Parse(idgen.NewUUID("").Generate())
	assert.NoError(t, err)
}

func TestSequentialGenerator(t *testing.T) {
	gen := idgen.NewSequential("session")

	assert.Equal(t, "session_1", gen.Generate())
	assert.Equal(t, "session_2", gen.Generate())
	assert.Equal(t, "1", idgen.NewSequential("").Generate())
}
