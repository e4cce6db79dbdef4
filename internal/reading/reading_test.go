package reading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/diviner/internal/catalog"
	"github.com/arcanaland/diviner/internal/deck"
	"github.com/arcanaland/diviner/internal/spread"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)
	return cat
}

func TestAssembleThreeCard(t *testing.T) {
	t.Parallel()
	cat := testCatalog(t)

	rd, err := Assemble(cat, "3card", DefaultOptions())
	require.NoError(t, err)

	require.Len(t, rd.Entries, 3)
	assert.Equal(t, "Past", rd.Entries[0].Position.Label)
	assert.Equal(t, "Present", rd.Entries[1].Position.Label)
	assert.Equal(t, "Future", rd.Entries[2].Position.Label)

	seen := make(map[string]bool)
	for _, e := range rd.Entries {
		assert.False(t, seen[e.Card.ID], "card %s appears twice", e.Card.ID)
		seen[e.Card.ID] = true
		assert.NotEmpty(t, e.Meaning)
		assert.Empty(t, e.Interpretation)
	}
	assert.False(t, rd.CreatedAt.IsZero())
}

func TestAssembleCelticCross(t *testing.T) {
	t.Parallel()
	cat := testCatalog(t)

	rd, err := Assemble(cat, "celticcross", DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, rd.Entries, 10)
}

func TestAssembleDeterministicWithSeed(t *testing.T) {
	t.Parallel()
	cat := testCatalog(t)

	seed := int64(99)
	opts := DefaultOptions()
	opts.Seed = &seed

	first, err := Assemble(cat, "celticcross", opts)
	require.NoError(t, err)
	second, err := Assemble(cat, "celticcross", opts)
	require.NoError(t, err)

	for i := range first.Entries {
		assert.Equal(t, first.Entries[i].Card.ID, second.Entries[i].Card.ID)
		assert.Equal(t, first.Entries[i].Orientation, second.Entries[i].Orientation)
	}
}

func TestAssembleNoReversals(t *testing.T) {
	t.Parallel()
	cat := testCatalog(t)

	opts := Options{ReversalProb: 1, AllowReversed: false}
	rd, err := Assemble(cat, "3card", opts)
	require.NoError(t, err)
	for _, e := range rd.Entries {
		assert.Equal(t, "upright", string(e.Orientation))
	}
}

func TestAssembleUnknownSpread(t *testing.T) {
	t.Parallel()
	cat := testCatalog(t)

	_, err := Assemble(cat, "doesnotexist", DefaultOptions())
	assert.ErrorIs(t, err, spread.ErrUnknownSpread)
}

func TestAssembleInvalidProbability(t *testing.T) {
	t.Parallel()
	cat := testCatalog(t)

	opts := Options{ReversalProb: 1.5, AllowReversed: true}
	_, err := Assemble(cat, "3card", opts)
	assert.ErrorIs(t, err, deck.ErrInvalidDraw)
}
