package models

import (
	"math/rand"
	"strings"
)

// Difficulty is one of the three ordered question difficulty rungs.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

var difficultyOrder = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Difficulties returns the rungs from easiest to hardest.
func Difficulties() []Difficulty {
	out := make([]Difficulty, len(difficultyOrder))
	copy(out, difficultyOrder)
	return out
}

// ParseDifficulty maps a raw string onto a known rung.
func ParseDifficulty(value string) (Difficulty, bool) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(value)))
	return d, d.Valid()
}

// Valid reports whether the value is one of the three known rungs.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

func (d Difficulty) index() int {
	for i, rung := range difficultyOrder {
		if rung == d {
			return i
		}
	}
	return 0
}

// Increase returns the next harder rung, saturating at hard.
func (d Difficulty) Increase() Difficulty {
	idx := d.index()
	if idx < len(difficultyOrder)-1 {
		return difficultyOrder[idx+1]
	}
	return difficultyOrder[idx]
}

// Decrease returns the next easier rung, saturating at easy.
func (d Difficulty) Decrease() Difficulty {
	idx := d.index()
	if idx > 0 {
		return difficultyOrder[idx-1]
	}
	return difficultyOrder[idx]
}

// Alternate returns one of the two rungs other than d, chosen uniformly
// at random. Callers use it to force a change when Increase/Decrease
// saturated at a boundary.
func (d Difficulty) Alternate(rng *rand.Rand) Difficulty {
	others := make([]Difficulty, 0, 2)
	for _, rung := range difficultyOrder {
		if rung != d {
			others = append(others, rung)
		}
	}
	return others[rng.Intn(len(others))]
}

// Title renders the rung with its first letter capitalised, e.g. "Medium".
func (d Difficulty) Title() string {
	s := string(d)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// RandomDifficulty draws a starting rung uniformly from the ladder.
func RandomDifficulty(rng *rand.Rand) Difficulty {
	return difficultyOrder[rng.Intn(len(difficultyOrder))]
}
