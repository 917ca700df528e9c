package srs

import (
	"fmt"
	"time"
)

// SentenceScheduler schedules one card per sentence, classic
// flashcard-style. It ignores word composition entirely: no aggregation,
// no i+N ordering, new sentences are presented in insertion order.
type SentenceScheduler struct {
	store SentenceStore
}

var _ Algorithm = (*SentenceScheduler)(nil)

// NewSentenceScheduler wires the scheduler to its store.
func NewSentenceScheduler(store SentenceStore) *SentenceScheduler {
	return &SentenceScheduler{store: store}
}

// Ingest stores the sentences and seeds one card each.
func (ss *SentenceScheduler) Ingest(sentences []Sentence) error {
	if err := ss.store.AddSentences(sentences); err != nil {
		return fmt.Errorf("add sentences: %w", err)
	}
	return nil
}

// NextReview picks the next sentence card under the same caps as the
// word-level scheduler, new before due.
func (ss *SentenceScheduler) NextReview(now time.Time, p Policy) (*Review, error) {
	horizon := NextMidnight(now)

	allowNew := true
	learning, err := ss.store.LearningCount(horizon)
	if err != nil {
		return nil, fmt.Errorf("count learning cards: %w", err)
	}
	if learning >= p.MaxLearningCards {
		allowNew = false
	} else if p.LearnedToday >= p.DailyNewLimit {
		allowNew = false
	}

	if allowNew {
		sent, err := ss.store.NextNewSentence()
		if err != nil {
			return nil, fmt.Errorf("next new sentence: %w", err)
		}
		if sent != nil {
			return &Review{Kind: ReviewNew, Sentence: *sent, UnknownWords: 1}, nil
		}
	}

	sent, err := ss.store.NextDueSentence(horizon)
	if err != nil {
		return nil, fmt.Errorf("next due sentence: %w", err)
	}
	if sent == nil {
		return nil, nil
	}
	return &Review{Kind: ReviewDue, Sentence: *sent, WordsDue: 1}, nil
}

// Apply advances the sentence's own card.
func (ss *SentenceScheduler) Apply(r Review, d Difficulty, now time.Time) (learned, reviewed int, err error) {
	card, err := ss.store.SentenceCard(r.Sentence.ID)
	if err != nil {
		return 0, 0, fmt.Errorf("sentence card: %w", err)
	}

	if card.IsNew() {
		learned = 1
	}
	card = Advance(card, d, now)

	if err := ss.store.UpdateCards([]Card{card}); err != nil {
		return 0, 0, fmt.Errorf("update card: %w", err)
	}
	return learned, 1, nil
}

// Suggest has no meaning for per-sentence cards; there is no unknown-word
// notion to rank by.
func (ss *SentenceScheduler) Suggest(maxUnknown int) ([]Suggestion, error) {
	return nil, nil
}
