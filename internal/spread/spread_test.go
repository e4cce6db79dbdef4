package spread

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetThreeCard(t *testing.T) {
	t.Parallel()

	def, err := Get("3card")
	require.NoError(t, err)

	assert.Equal(t, "Three-Card Spread", def.Name)
	assert.Equal(t, []string{"Past", "Present", "Future"}, def.Labels())
}

func TestGetCelticCross(t *testing.T) {
	t.Parallel()

	def, err := Get("celticcross")
	require.NoError(t, err)

	require.Equal(t, 10, def.Size())
	assert.Equal(t, "Present", def.Positions[0].Label)
	assert.Equal(t, "Outcome", def.Positions[9].Label)

	for i, p := range def.Positions {
		assert.Equal(t, i+1, p.Index)
		assert.NotEmpty(t, p.Label)
		assert.NotEmpty(t, p.Represents)
	}
}

func TestGetUnknown(t *testing.T) {
	t.Parallel()

	_, err := Get("doesnotexist")
	assert.ErrorIs(t, err, ErrUnknownSpread)
}

func TestKeys(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"3card", "celticcross"}, Keys())
}
