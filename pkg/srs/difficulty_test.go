package srs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDifficulty(t *testing.T) {
	d, err := ParseDifficulty("good")
	require.NoError(t, err)
	assert.Equal(t, Good, d)

	d, err = ParseDifficulty("AGAIN")
	require.NoError(t, err)
	assert.Equal(t, Again, d)

	_, err = ParseDifficulty("meh")
	assert.ErrorIs(t, err, ErrInvalidDifficulty)
}

func TestDifficultyText(t *testing.T) {
	text, err := Hard.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "Hard", string(text))

	var d Difficulty
	require.NoError(t, d.UnmarshalText([]byte("easy")))
	assert.Equal(t, Easy, d)

	_, err = Difficulty(9).MarshalText()
	assert.ErrorIs(t, err, ErrInvalidDifficulty)
}

func TestDifficultyValidity(t *testing.T) {
	for _, d := range Difficulties() {
		assert.True(t, d.IsValid(), d.String())
	}
	assert.False(t, Difficulty(-1).IsValid())
	assert.False(t, Difficulty(4).IsValid())
	assert.Equal(t, "Difficulty(4)", Difficulty(4).String())
}
