package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/tsumiki/tsumiki/pkg/srs"
)

// Sentences persists the sentence-level scheduler's state: one card per
// sentence, no word decomposition.
type Sentences struct {
	db *sql.DB
}

var _ srs.SentenceStore = (*Sentences)(nil)

// NewSentences creates a sentence-card store over an initialized
// connection.
func NewSentences(db *sql.DB) *Sentences {
	return &Sentences{db: db}
}

// AddSentences stores the sentences and seeds one card each, in one
// transaction.
func (s *Sentences) AddSentences(sentences []srs.Sentence) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, sent := range sentences {
		if _, err := tx.Exec(`INSERT INTO sentences (id, text) VALUES (?, ?)`,
			sent.ID, sent.Text); err != nil {
			return fmt.Errorf("insert sentence: %w", err)
		}
		if _, err := tx.Exec(`
			INSERT INTO sentence_cards (sentence_id, review_count, ease, interval_secs, due, added_order)
			VALUES (?, 0, ?, NULL, NULL, (SELECT COALESCE(MAX(added_order)+1, 0) FROM sentence_cards))`,
			sent.ID, srs.DefaultEase); err != nil {
			return fmt.Errorf("seed sentence card: %w", err)
		}
	}

	return tx.Commit()
}

// NextNewSentence returns the oldest never-reviewed sentence.
func (s *Sentences) NextNewSentence() (*srs.Sentence, error) {
	var sent srs.Sentence
	err := s.db.QueryRow(`
		SELECT s.id, s.text
		FROM sentence_cards c
		JOIN sentences s ON s.id = c.sentence_id
		WHERE c.due IS NULL
		ORDER BY c.added_order ASC
		LIMIT 1`).Scan(&sent.ID, &sent.Text)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sent, nil
}

// NextDueSentence returns the sentence due soonest before the horizon.
func (s *Sentences) NextDueSentence(before time.Time) (*srs.Sentence, error) {
	var sent srs.Sentence
	err := s.db.QueryRow(`
		SELECT s.id, s.text
		FROM sentence_cards c
		JOIN sentences s ON s.id = c.sentence_id
		WHERE c.due IS NOT NULL AND c.due < ?
		ORDER BY c.due ASC, c.added_order ASC
		LIMIT 1`, before.Unix()).Scan(&sent.ID, &sent.Text)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sent, nil
}

// SentenceCard loads the sentence's card.
func (s *Sentences) SentenceCard(sentenceID string) (srs.Card, error) {
	var (
		reviewCount   int64
		ease          float64
		interval, due sql.NullInt64
		addedOrder    int64
	)
	err := s.db.QueryRow(`
		SELECT review_count, ease, interval_secs, due, added_order
		FROM sentence_cards
		WHERE sentence_id = ?`, sentenceID).
		Scan(&reviewCount, &ease, &interval, &due, &addedOrder)
	if err == sql.ErrNoRows {
		return srs.Card{}, fmt.Errorf("%w: sentence %s", srs.ErrCardMissing, sentenceID)
	}
	if err != nil {
		return srs.Card{}, err
	}
	return cardFromRow(sentenceID, reviewCount, ease, interval, due, addedOrder), nil
}

// UpdateCards writes the given sentence cards in a single transaction.
func (s *Sentences) UpdateCards(cards []srs.Card) error {
	return updateCardsTx(s.db, `
		UPDATE sentence_cards
		SET review_count = ?, ease = ?, interval_secs = ?, due = ?
		WHERE sentence_id = ?`, cards)
}

// LearningCount counts sentence cards on the learning steps due before
// the horizon.
func (s *Sentences) LearningCount(before time.Time) (int, error) {
	var n int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM sentence_cards
		WHERE review_count < ? AND due IS NOT NULL AND due < ?`,
		srs.LearningSteps, before.Unix()).Scan(&n)
	return n, err
}
