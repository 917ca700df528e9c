package srs

import (
	"encoding"
	"fmt"
	"strings"
)

// Difficulty is the learner's self-assessed recall quality for a review.
type Difficulty int

const (
	Again Difficulty = iota // no recall, back to the start
	Hard                    // recalled with real effort
	Good                    // recalled
	Easy                    // recalled instantly
)

var difficultyNames = [...]string{
	Again: "Again",
	Hard:  "Hard",
	Good:  "Good",
	Easy:  "Easy",
}

var (
	_ fmt.Stringer             = Difficulty(0)
	_ encoding.TextMarshaler   = Difficulty(0)
	_ encoding.TextUnmarshaler = (*Difficulty)(nil)
)

// Difficulties lists all valid difficulties in answer-button order.
func Difficulties() []Difficulty {
	return []Difficulty{Again, Hard, Good, Easy}
}

// IsValid reports whether d is one of the four answer difficulties.
func (d Difficulty) IsValid() bool {
	return d >= Again && d <= Easy
}

func (d Difficulty) String() string {
	if d.IsValid() {
		return difficultyNames[d]
	}
	return fmt.Sprintf("Difficulty(%d)", int(d))
}

// MarshalText implements encoding.TextMarshaler.
func (d Difficulty) MarshalText() ([]byte, error) {
	if !d.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDifficulty, int(d))
	}
	return []byte(difficultyNames[d]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Names are
// case-insensitive.
func (d *Difficulty) UnmarshalText(text []byte) error {
	v, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// ParseDifficulty converts a difficulty name to its value.
func ParseDifficulty(s string) (Difficulty, error) {
	for i, name := range difficultyNames {
		if strings.EqualFold(s, name) {
			return Difficulty(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDifficulty, s)
}
