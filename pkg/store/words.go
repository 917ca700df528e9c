package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tsumiki/tsumiki/pkg/srs"
)

// Words persists the word-level scheduler's state: the lexicon, the
// sentence-word links and one card per word.
type Words struct {
	db *sql.DB
}

var _ srs.WordStore = (*Words)(nil)

// NewWords creates a word store over an initialized connection.
func NewWords(db *sql.DB) *Words {
	return &Words{db: db}
}

// createOrGetWord returns the existing word id or inserts a new word.
// The insert-then-select dance keeps it safe under a concurrent insert of
// the same word.
func createOrGetWord(e execer, text string) (string, error) {
	var id string
	err := e.QueryRow(`SELECT id FROM words WHERE word = ?`, text).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return "", err
	}
	if _, err := e.Exec(`INSERT OR IGNORE INTO words (id, word) VALUES (?, ?)`,
		uuid.NewString(), text); err != nil {
		return "", err
	}
	if err := e.QueryRow(`SELECT id FROM words WHERE word = ?`, text).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

// AddSentence stores the sentence and links it to every distinct lemma,
// creating missing words and seeding their cards, all in one transaction.
// added_order is a global insertion sequence across all cards.
func (w *Words) AddSentence(s srs.Sentence, lemmas []string) error {
	tx, err := w.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	seen := make(map[string]bool, len(lemmas))
	wordIDs := make([]string, 0, len(lemmas))
	for _, lemma := range lemmas {
		if seen[lemma] {
			continue
		}
		seen[lemma] = true
		id, err := createOrGetWord(tx, lemma)
		if err != nil {
			return fmt.Errorf("upsert word %q: %w", lemma, err)
		}
		wordIDs = append(wordIDs, id)
	}

	if _, err := tx.Exec(`INSERT INTO sentences (id, text) VALUES (?, ?)`,
		s.ID, s.Text); err != nil {
		return fmt.Errorf("insert sentence: %w", err)
	}

	for _, wordID := range wordIDs {
		if _, err := tx.Exec(`INSERT OR IGNORE INTO sentence_words (sentence_id, word_id) VALUES (?, ?)`,
			s.ID, wordID); err != nil {
			return fmt.Errorf("link word: %w", err)
		}
		if _, err := tx.Exec(`
			INSERT OR IGNORE INTO cards (word_id, review_count, ease, interval_secs, due, added_order)
			VALUES (?, 0, ?, NULL, NULL, (SELECT COALESCE(MAX(added_order)+1, 0) FROM cards))`,
			wordID, srs.DefaultEase); err != nil {
			return fmt.Errorf("seed card: %w", err)
		}
	}

	return tx.Commit()
}

// SentenceCards returns the cards of every word linked to the sentence.
func (w *Words) SentenceCards(sentenceID string) ([]srs.Card, error) {
	rows, err := w.db.Query(`
		SELECT sw.word_id, c.review_count, c.ease, c.interval_secs, c.due, c.added_order
		FROM sentence_words sw
		LEFT JOIN cards c ON c.word_id = sw.word_id
		WHERE sw.sentence_id = ?
		ORDER BY c.added_order`, sentenceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []srs.Card
	for rows.Next() {
		var (
			wordID      string
			reviewCount sql.NullInt64
			ease        sql.NullFloat64
			interval    sql.NullInt64
			due         sql.NullInt64
			addedOrder  sql.NullInt64
		)
		if err := rows.Scan(&wordID, &reviewCount, &ease, &interval, &due, &addedOrder); err != nil {
			return nil, err
		}
		if !reviewCount.Valid {
			return nil, fmt.Errorf("%w: word %s", srs.ErrCardMissing, wordID)
		}
		cards = append(cards, cardFromRow(wordID, reviewCount.Int64, ease.Float64,
			interval, due, addedOrder.Int64))
	}
	return cards, rows.Err()
}

// UpdateCards writes the given cards in a single transaction. A card that
// no longer exists aborts the whole batch.
func (w *Words) UpdateCards(cards []srs.Card) error {
	return updateCardsTx(w.db, `
		UPDATE cards
		SET review_count = ?, ease = ?, interval_secs = ?, due = ?
		WHERE word_id = ?`, cards)
}

// LearningCount counts cards on the learning steps due before the
// horizon.
func (w *Words) LearningCount(before time.Time) (int, error) {
	var n int
	err := w.db.QueryRow(`
		SELECT COUNT(*) FROM cards
		WHERE review_count < ? AND due IS NOT NULL AND due < ?`,
		srs.LearningSteps, before.Unix()).Scan(&n)
	return n, err
}

// NextNewWord returns the best unlearned word: the one whose sentence has
// the fewest unlearned words, ties by earliest added order.
func (w *Words) NextNewWord() (string, error) {
	var id string
	err := w.db.QueryRow(`
		WITH unknown_counts AS (
			SELECT sw.sentence_id AS sid, COUNT(*) AS unknown
			FROM sentence_words sw
			JOIN cards c ON c.word_id = sw.word_id
			WHERE c.due IS NULL
			GROUP BY sw.sentence_id
		)
		SELECT c.word_id
		FROM cards c
		JOIN sentence_words sw ON sw.word_id = c.word_id
		JOIN unknown_counts u ON u.sid = sw.sentence_id
		WHERE c.due IS NULL
		ORDER BY u.unknown ASC, c.added_order ASC
		LIMIT 1`).Scan(&id)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

// SentenceForWord resolves a word to its easiest containing sentence,
// ties broken by smallest sentence id so the choice is deterministic.
func (w *Words) SentenceForWord(wordID string) (*srs.Sentence, error) {
	var s srs.Sentence
	err := w.db.QueryRow(`
		SELECT s.id, s.text
		FROM sentence_words sw
		JOIN sentences s ON s.id = sw.sentence_id
		WHERE sw.word_id = ?
		ORDER BY (
			SELECT COUNT(*)
			FROM sentence_words sw2
			JOIN cards c2 ON c2.word_id = sw2.word_id
			WHERE sw2.sentence_id = s.id AND c2.due IS NULL
		) ASC, s.id ASC
		LIMIT 1`, wordID).Scan(&s.ID, &s.Text)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// UnknownWordCount counts the sentence's never-reviewed words.
func (w *Words) UnknownWordCount(sentenceID string) (int, error) {
	var n int
	err := w.db.QueryRow(`
		SELECT COUNT(*)
		FROM sentence_words sw
		JOIN cards c ON c.word_id = sw.word_id
		WHERE sw.sentence_id = ? AND c.due IS NULL`, sentenceID).Scan(&n)
	return n, err
}

// NextDueSentence returns the fully-known sentence with the most words
// due before the horizon.
func (w *Words) NextDueSentence(before time.Time) (*srs.DueSentence, error) {
	var d srs.DueSentence
	err := w.db.QueryRow(`
		WITH stats AS (
			SELECT sw.sentence_id AS sid,
			       SUM(CASE WHEN c.due IS NULL THEN 1 ELSE 0 END) AS unknown,
			       SUM(CASE WHEN c.due IS NOT NULL AND c.due < ?1 THEN 1 ELSE 0 END) AS words_due,
			       MIN(CASE WHEN c.due IS NOT NULL AND c.due < ?1 THEN c.due END) AS first_due,
			       MIN(c.added_order) AS first_order
			FROM sentence_words sw
			JOIN cards c ON c.word_id = sw.word_id
			GROUP BY sw.sentence_id
		)
		SELECT s.id, s.text, stats.words_due
		FROM stats
		JOIN sentences s ON s.id = stats.sid
		WHERE stats.unknown = 0 AND stats.words_due > 0
		ORDER BY stats.words_due DESC, stats.first_due ASC, stats.first_order ASC
		LIMIT 1`, before.Unix()).Scan(&d.Sentence.ID, &d.Sentence.Text, &d.WordsDue)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// SentencesByUnknown lists sentences with at most maxUnknown unlearned
// words, ascending by unknown count, each paired with its unlearned
// words in insertion order.
func (w *Words) SentencesByUnknown(maxUnknown int) ([]srs.Suggestion, error) {
	rows, err := w.db.Query(`
		WITH counts AS (
			SELECT sw.sentence_id AS sid,
			       SUM(CASE WHEN c.due IS NULL THEN 1 ELSE 0 END) AS unknown
			FROM sentence_words sw
			JOIN cards c ON c.word_id = sw.word_id
			GROUP BY sw.sentence_id
		)
		SELECT s.id, s.text, wd.word
		FROM counts
		JOIN sentences s ON s.id = counts.sid
		LEFT JOIN (
			SELECT sw.sentence_id AS sid, words.word AS word, c.added_order AS ord
			FROM sentence_words sw
			JOIN cards c ON c.word_id = sw.word_id AND c.due IS NULL
			JOIN words ON words.id = sw.word_id
		) wd ON wd.sid = counts.sid
		WHERE counts.unknown <= ?
		ORDER BY counts.unknown ASC, s.id ASC, wd.ord ASC`, maxUnknown)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		out  []srs.Suggestion
		last string
	)
	for rows.Next() {
		var (
			s    srs.Sentence
			word sql.NullString
		)
		if err := rows.Scan(&s.ID, &s.Text, &word); err != nil {
			return nil, err
		}
		if s.ID != last {
			out = append(out, srs.Suggestion{Sentence: s})
			last = s.ID
		}
		if word.Valid {
			cur := &out[len(out)-1]
			cur.Unknown = append(cur.Unknown, word.String)
		}
	}
	return out, rows.Err()
}

// Stats summarizes the store for display.
type Stats struct {
	Words     int
	Sentences int
	NewCards  int
	DueCards  int
}

// CollectStats counts words, sentences, unlearned cards and cards due
// before the horizon.
func (w *Words) CollectStats(before time.Time) (Stats, error) {
	var st Stats
	err := w.db.QueryRow(`
		SELECT (SELECT COUNT(*) FROM words),
		       (SELECT COUNT(*) FROM sentences),
		       (SELECT COUNT(*) FROM cards WHERE due IS NULL),
		       (SELECT COUNT(*) FROM cards WHERE due IS NOT NULL AND due < ?)`,
		before.Unix()).Scan(&st.Words, &st.Sentences, &st.NewCards, &st.DueCards)
	return st, err
}
