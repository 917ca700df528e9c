// Package simulate replays multi-day review sessions with randomized
// answers, for comparing scheduling behavior over time.
package simulate

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"strconv"

	"github.com/tsumiki/tsumiki/pkg/srs"
)

// scoreWeights approximates a real learner: mostly Good, occasional
// lapses.
var scoreWeights = []struct {
	difficulty srs.Difficulty
	weight     int
}{
	{srs.Again, 5},
	{srs.Hard, 10},
	{srs.Good, 80},
	{srs.Easy, 5},
}

// RandomDifficulty draws an answer from the score distribution.
func RandomDifficulty(rng *rand.Rand) srs.Difficulty {
	total := 0
	for _, sw := range scoreWeights {
		total += sw.weight
	}

	v := rng.Intn(total)
	acc := 0
	for _, sw := range scoreWeights {
		if v < acc+sw.weight {
			return sw.difficulty
		}
		acc += sw.weight
	}
	panic("simulate: weights exhausted")
}

// DayResult is one simulated day's totals.
type DayResult struct {
	Day      int
	Learned  int
	Reviewed int
}

// Run drives the session for the given number of days, answering every
// review with a weighted random difficulty. Each day the clock advances
// by 24 hours from the session's starting instant and the daily counters
// reset. Results stream to w as CSV (day,learnt,reviewed).
func Run(session *srs.Session, days int, seed int64, w io.Writer) ([]DayResult, error) {
	rng := rand.New(rand.NewSource(seed))
	start := session.Now()

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"day", "learnt", "reviewed"}); err != nil {
		return nil, err
	}

	results := make([]DayResult, 0, days)
	for day := 0; day < days; day++ {
		session.AdvanceClock(start.AddDate(0, 0, day))
		slog.Info("simulating day", "day", day)

		for {
			review, err := session.NextReview()
			if err != nil {
				return results, fmt.Errorf("day %d: %w", day, err)
			}
			if review == nil {
				break
			}
			if err := session.SubmitReview(RandomDifficulty(rng)); err != nil {
				return results, fmt.Errorf("day %d: %w", day, err)
			}
		}

		res := DayResult{
			Day:      day,
			Learned:  session.CardsLearnedToday(),
			Reviewed: session.CardsReviewedToday(),
		}
		results = append(results, res)

		if err := cw.Write([]string{
			strconv.Itoa(res.Day),
			strconv.Itoa(res.Learned),
			strconv.Itoa(res.Reviewed),
		}); err != nil {
			return results, err
		}

		session.ResetDailyCounters()
	}

	cw.Flush()
	return results, cw.Error()
}
