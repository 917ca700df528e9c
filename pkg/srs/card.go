package srs

import (
	"math"
	"time"
)

// The Anki learning steps. A card graduates once its review count walks
// past the last step.
var initialIntervals = [...]time.Duration{
	1 * time.Minute,
	10 * time.Minute,
	24 * time.Hour,
}

// LearningSteps is the number of learning steps before a card graduates.
const LearningSteps = len(initialIntervals)

const (
	// DefaultEase seeds new cards.
	DefaultEase = 2.5
	// MinimumEase is the floor applied after every ease adjustment.
	MinimumEase = 1.3

	easyBonus    = 1.3
	hardInterval = 1.2
)

// Card is the persistent review state of a single schedulable unit.
// Zero-valued Due means the unit has never been reviewed; zero-valued
// Interval means no spacing has been computed yet.
type Card struct {
	UnitID      string
	ReviewCount int
	Ease        float64
	Interval    time.Duration
	Due         time.Time
	AddedOrder  int64
}

// NewCard seeds the review state for a freshly ingested unit.
func NewCard(unitID string, addedOrder int64) Card {
	return Card{
		UnitID:     unitID,
		Ease:       DefaultEase,
		AddedOrder: addedOrder,
	}
}

// IsNew reports whether the card has never been reviewed. This is the
// operational test used by all selection queries; Advance keeps it
// consistent with InLearning by always setting Due.
func (c Card) IsNew() bool {
	return c.Due.IsZero()
}

// InLearning reports whether the card is still on the initial steps.
func (c Card) InLearning() bool {
	return c.ReviewCount < LearningSteps
}

// Advance computes the card's next review state for an answer given at
// time now. It is pure: the input card is not modified.
//
// Cards on the learning steps move along initialIntervals: Again restarts,
// Hard repeats the step, Good moves one step forward, Easy graduates
// immediately. Ease is untouched while learning.
//
// Graduated cards follow the Anki ease arithmetic: Again drops the card
// back into learning and costs 0.2 ease, Hard multiplies the interval by
// 1.2 and costs 0.15, Good multiplies by the ease, Easy multiplies by
// ease times the easy bonus and earns 0.15. Ease never drops below
// MinimumEase.
func Advance(c Card, d Difficulty, now time.Time) Card {
	if c.InLearning() {
		switch d {
		case Again:
			c.ReviewCount = 0
		case Hard:
			// repeat the current step
		case Good:
			c.ReviewCount++
		case Easy:
			c.ReviewCount = LearningSteps
		}

		idx := c.ReviewCount
		if idx > LearningSteps-1 {
			idx = LearningSteps - 1
		}
		c.Interval = initialIntervals[idx]
		c.Due = now.Add(c.Interval)
		return c
	}

	ease := c.Ease
	switch d {
	case Again:
		c.Interval = initialIntervals[0]
		ease -= 0.2
		c.ReviewCount = 0
	case Hard:
		c.Interval = mulInterval(c.Interval, hardInterval)
		ease -= 0.15
		c.ReviewCount++
	case Good:
		c.Interval = mulInterval(c.Interval, ease)
		c.ReviewCount++
	case Easy:
		c.Interval = mulInterval(c.Interval, ease*easyBonus)
		ease += 0.15
		c.ReviewCount++
	}

	c.Due = now.Add(c.Interval)
	c.Ease = math.Max(MinimumEase, ease)
	return c
}

// mulInterval scales an interval, truncating to whole seconds. The
// truncation (not rounding) is load-bearing: downstream consumers compare
// against reference schedules computed the same way. The relative epsilon
// keeps exact products (86400 * 1.2 = 103680) from truncating one second
// low when the float result lands just under the integer.
func mulInterval(iv time.Duration, multiplier float64) time.Duration {
	secs := float64(iv/time.Second) * multiplier
	secs += secs * 1e-9
	return time.Duration(int64(secs)) * time.Second
}

// NextMidnight returns the first midnight after now, in now's location.
// Due cards are any cards due before that horizon: reviews scheduled for
// later today still count as today's work.
func NextMidnight(now time.Time) time.Time {
	t := now.AddDate(0, 0, 1)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
