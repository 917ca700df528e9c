package srs

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Session is the scheduling facade for one learner. It owns the logical
// clock, the daily counters and the single in-flight review. It is not
// safe for concurrent use; one session drives one learner at a time.
//
// The clock is caller-controlled: nothing rolls the day over
// automatically, and the engine never assumes monotonic time. Daily
// counters live on the session, not in process globals, so independent
// sessions do not interfere. They are not persisted across restarts.
type Session struct {
	algo Algorithm
	log  *slog.Logger

	now              time.Time
	dailyNewLimit    int
	maxLearningCards int

	learnedToday  int
	reviewedToday int
	pending       *Review
}

// NewSession creates a facade over the given algorithm. The clock starts
// at wall time; use AdvanceClock for deterministic replay.
func NewSession(algo Algorithm, dailyNewLimit, maxLearningCards int) *Session {
	return &Session{
		algo:             algo,
		log:              slog.Default(),
		now:              time.Now(),
		dailyNewLimit:    dailyNewLimit,
		maxLearningCards: maxLearningCards,
	}
}

// AddMaterial ingests raw sentences. Every sentence must contain
// non-whitespace text; on a validation failure nothing is ingested.
func (s *Session) AddMaterial(texts []string) error {
	sentences := make([]Sentence, 0, len(texts))
	for _, t := range texts {
		if strings.TrimSpace(t) == "" {
			return ErrEmptySentence
		}
		sentences = append(sentences, Sentence{ID: uuid.NewString(), Text: t})
	}
	if err := s.algo.Ingest(sentences); err != nil {
		return fmt.Errorf("ingest material: %w", err)
	}
	s.log.Info("added material", "sentences", len(sentences))
	return nil
}

// NextReview returns the next unit to present, or nil when there is
// nothing left today. While a review is in flight the same review is
// returned again.
func (s *Session) NextReview() (*Review, error) {
	if s.pending != nil {
		return s.pending, nil
	}

	r, err := s.algo.NextReview(s.now, Policy{
		DailyNewLimit:    s.dailyNewLimit,
		MaxLearningCards: s.maxLearningCards,
		LearnedToday:     s.learnedToday,
	})
	if err != nil {
		return nil, err
	}
	s.pending = r
	return r, nil
}

// SubmitReview answers the in-flight review. On storage failure the
// review stays in flight so the caller can retry or abandon.
func (s *Session) SubmitReview(d Difficulty) error {
	if s.pending == nil {
		return ErrNoPendingReview
	}
	if !d.IsValid() {
		return fmt.Errorf("%w: %d", ErrInvalidDifficulty, int(d))
	}

	learned, reviewed, err := s.algo.Apply(*s.pending, d, s.now)
	if err != nil {
		return err
	}
	s.learnedToday += learned
	s.reviewedToday += reviewed
	s.pending = nil
	return nil
}

// CardsLearnedToday reports how many cards saw their first review since
// the last counter reset.
func (s *Session) CardsLearnedToday() int { return s.learnedToday }

// CardsReviewedToday reports how many card reviews completed since the
// last counter reset.
func (s *Session) CardsReviewedToday() int { return s.reviewedToday }

// Suggest lists sentences with at most maxUnknown unlearned words.
func (s *Session) Suggest(maxUnknown int) ([]Suggestion, error) {
	return s.algo.Suggest(maxUnknown)
}

// ResetDailyCounters starts a new day. The caller owns when "today"
// changes.
func (s *Session) ResetDailyCounters() {
	s.log.Info("resetting daily counters",
		"learned", s.learnedToday, "reviewed", s.reviewedToday)
	s.learnedToday = 0
	s.reviewedToday = 0
}

// AdvanceClock sets the logical clock. Tests may move it backwards.
func (s *Session) AdvanceClock(to time.Time) {
	s.now = to
}

// Now returns the session's logical clock.
func (s *Session) Now() time.Time { return s.now }
