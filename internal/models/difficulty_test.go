package models

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDifficultyLadderSaturates(t *testing.T) {
	require.Equal(t, DifficultyMedium, DifficultyEasy.Increase())
	require.Equal(t, DifficultyHard, DifficultyMedium.Increase())
	require.Equal(t, DifficultyHard, DifficultyHard.Increase(), "hard must not increase past the top rung")

	require.Equal(t, DifficultyMedium, DifficultyHard.Decrease())
	require.Equal(t, DifficultyEasy, DifficultyMedium.Decrease())
	require.Equal(t, DifficultyEasy, DifficultyEasy.Decrease(), "easy must not decrease past the bottom rung")
}

func TestDifficultyAlternateNeverReturnsCurrent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, current := range Difficulties() {
		for i := 0; i < 50; i++ {
			got := current.Alternate(rng)
			require.NotEqual(t, current, got)
			require.True(t, got.Valid())
		}
	}
}

func TestParseDifficulty(t *testing.T) {
	parsed, ok := ParseDifficulty("medium")
	require.True(t, ok)
	require.Equal(t, DifficultyMedium, parsed)

	_, ok = ParseDifficulty("extreme")
	require.False(t, ok)

	_, ok = ParseDifficulty("")
	require.False(t, ok)
}

func TestDifficultyTitle(t *testing.T) {
	require.Equal(t, "Easy", DifficultyEasy.Title())
	require.Equal(t, "Medium", DifficultyMedium.Title())
	require.Equal(t, "Hard", DifficultyHard.Title())
}

func TestParseDomain(t *testing.T) {
	parsed, ok := ParseDomain("system_design")
	require.True(t, ok)
	require.Equal(t, DomainSystemDesign, parsed)
	require.Equal(t, "System Design", parsed.DisplayName())

	_, ok = ParseDomain("astrology")
	require.False(t, ok)
}
