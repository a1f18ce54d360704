package home

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDice(t *testing.T) {
	count, sides, err := parseDice("2d6")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, 6, sides)

	count, sides, err = parseDice(" 1D20 ")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, 20, sides)

	for _, bad := range []string{"", "d6", "2d", "2x6", "0d6", "2d0", "-1d6", "2d6d8", "ad6"} {
		_, _, err := parseDice(bad)
		assert.Error(t, err, bad)
	}
}
