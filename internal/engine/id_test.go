package engine

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDv7Generator_ValidFormat(t *testing.T) {
	id := UUIDv7Generator{}.Generate()

	parsed, err := uuid.Parse(id)
	require.NoError(t, err, "id should be valid UUID")
	assert.Equal(t, uuid.Version(7), parsed.Version())
	assert.Regexp(t, `^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`, id)
}

func TestUUIDv7Generator_Uniqueness(t *testing.T) {
	gen := UUIDv7Generator{}
	const iterations = 1000

	ids := make(map[string]bool, iterations)
	for i := 0; i < iterations; i++ {
		id := gen.Generate()
		require.False(t, ids[id], "id %s generated twice", id)
		ids[id] = true
	}
}

func TestFixedGenerator_Sequence(t *testing.T) {
	gen := NewFixedGenerator("s-1", "s-2")

	assert.Equal(t, "s-1", gen.Generate())
	assert.Equal(t, "s-2", gen.Generate())
	assert.PanicsWithValue(t, "FixedGenerator: all ids exhausted", func() { gen.Generate() })
}
