package simulate_test

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsumiki/tsumiki/pkg/simulate"
	"github.com/tsumiki/tsumiki/pkg/srs"
	"github.com/tsumiki/tsumiki/pkg/store"
)

type fieldTokenizer struct{}

func (fieldTokenizer) Tokenize(text string) ([]srs.Token, error) {
	var out []srs.Token
	for _, f := range strings.Fields(text) {
		out = append(out, srs.Token{Lemma: f, IsWord: true})
	}
	return out, nil
}

func TestRandomDifficultyDeterministic(t *testing.T) {
	a := rand.New(rand.NewSource(7))
	b := rand.New(rand.NewSource(7))
	for i := 0; i < 32; i++ {
		da := simulate.RandomDifficulty(a)
		assert.True(t, da.IsValid())
		assert.Equal(t, da, simulate.RandomDifficulty(b))
	}
}

func TestRunProducesDailyResults(t *testing.T) {
	db, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	const dailyNewLimit = 2
	session := srs.NewSession(
		srs.NewWordScheduler(store.NewWords(db), fieldTokenizer{}),
		dailyNewLimit, 20)
	session.AdvanceClock(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))

	require.NoError(t, session.AddMaterial([]string{"あ い", "う え"}))

	var buf bytes.Buffer
	results, err := simulate.Run(session, 3, 42, &buf)
	require.NoError(t, err)
	require.Len(t, results, 3)

	var learned int
	for i, res := range results {
		assert.Equal(t, i, res.Day)
		assert.LessOrEqual(t, res.Learned, dailyNewLimit)
		assert.GreaterOrEqual(t, res.Reviewed, res.Learned)
		learned += res.Learned
	}
	assert.LessOrEqual(t, learned, 4, "only four words exist")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4, "header plus one row per day")
	assert.Equal(t, "day,learnt,reviewed", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "0,"))

	// Counters were reset after the last day.
	assert.Zero(t, session.CardsLearnedToday())
	assert.Zero(t, session.CardsReviewedToday())
}
