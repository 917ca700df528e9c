package store

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/tsumiki/tsumiki/pkg/srs"
)

var testNow = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func addSentence(t *testing.T, w *Words, id, text string, lemmas ...string) {
	t.Helper()
	if err := w.AddSentence(srs.Sentence{ID: id, Text: text}, lemmas); err != nil {
		t.Fatalf("add sentence %s: %v", id, err)
	}
}

func wordID(t *testing.T, db *sql.DB, text string) string {
	t.Helper()
	var id string
	if err := db.QueryRow(`SELECT id FROM words WHERE word = ?`, text).Scan(&id); err != nil {
		t.Fatalf("lookup word %q: %v", text, err)
	}
	return id
}

// markReviewed gives a word's card a review count and due time without
// going through the scheduler.
func markReviewed(t *testing.T, w *Words, db *sql.DB, text string, reviewCount int, due time.Time) {
	t.Helper()
	err := w.UpdateCards([]srs.Card{{
		UnitID:      wordID(t, db, text),
		ReviewCount: reviewCount,
		Ease:        srs.DefaultEase,
		Interval:    time.Minute,
		Due:         due,
	}})
	if err != nil {
		t.Fatalf("mark %q reviewed: %v", text, err)
	}
}

func TestAddSentenceDedupesWords(t *testing.T) {
	db := setupTestDB(t)
	w := NewWords(db)

	addSentence(t, w, "s1", "猫が好き。", "猫", "好き")
	addSentence(t, w, "s2", "猫と犬。", "猫", "犬")

	var words, cards, links int
	if err := db.QueryRow(`SELECT COUNT(*) FROM words`).Scan(&words); err != nil {
		t.Fatalf("count words: %v", err)
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM cards`).Scan(&cards); err != nil {
		t.Fatalf("count cards: %v", err)
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM sentence_words`).Scan(&links); err != nil {
		t.Fatalf("count links: %v", err)
	}
	if words != 3 || cards != 3 {
		t.Fatalf("expected 3 words and 3 cards, got %d and %d", words, cards)
	}
	if links != 4 {
		t.Fatalf("expected 4 links, got %d", links)
	}

	// added_order is a global sequence: 猫=0, 好き=1, 犬=2.
	var order int64
	err := db.QueryRow(`SELECT added_order FROM cards WHERE word_id = ?`,
		wordID(t, db, "犬")).Scan(&order)
	if err != nil {
		t.Fatalf("query added_order: %v", err)
	}
	if order != 2 {
		t.Fatalf("expected added_order 2, got %d", order)
	}
}

func TestAddSentenceRepeatedLemma(t *testing.T) {
	db := setupTestDB(t)
	w := NewWords(db)

	addSentence(t, w, "s1", "猫は猫。", "猫", "猫")

	cards, err := w.SentenceCards("s1")
	if err != nil {
		t.Fatalf("sentence cards: %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("expected 1 card, got %d", len(cards))
	}
	if !cards[0].IsNew() {
		t.Fatalf("seeded card should be new")
	}
	if cards[0].Ease != srs.DefaultEase {
		t.Fatalf("expected default ease, got %v", cards[0].Ease)
	}
}

func TestNextNewWordPrefersEasiestSentence(t *testing.T) {
	db := setupTestDB(t)
	w := NewWords(db)

	addSentence(t, w, "s1", "三語の文。", "あ", "い", "う")
	addSentence(t, w, "s2", "二語の文。", "え", "お")

	// s2 has fewer unlearned words, so its first word wins even though
	// s1's words were added earlier.
	id, err := w.NextNewWord()
	if err != nil {
		t.Fatalf("next new word: %v", err)
	}
	if want := wordID(t, db, "え"); id != want {
		t.Fatalf("expected word え (%s), got %s", want, id)
	}

	sent, err := w.SentenceForWord(id)
	if err != nil {
		t.Fatalf("sentence for word: %v", err)
	}
	if sent == nil || sent.ID != "s2" {
		t.Fatalf("expected sentence s2, got %+v", sent)
	}

	n, err := w.UnknownWordCount("s2")
	if err != nil {
		t.Fatalf("unknown count: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 unknown, got %d", n)
	}
}

func TestNextNewWordEmptyStore(t *testing.T) {
	db := setupTestDB(t)
	w := NewWords(db)

	id, err := w.NextNewWord()
	if err != nil {
		t.Fatalf("next new word: %v", err)
	}
	if id != "" {
		t.Fatalf("expected no word, got %s", id)
	}
}

func TestNextDueSentenceMostDueFirst(t *testing.T) {
	db := setupTestDB(t)
	w := NewWords(db)

	addSentence(t, w, "s1", "二語。", "あ", "い")
	addSentence(t, w, "s2", "三語。", "う", "え", "お")

	due := testNow.Add(-time.Hour)
	for _, text := range []string{"あ", "い", "う", "え", "お"} {
		markReviewed(t, w, db, text, 3, due)
	}

	d, err := w.NextDueSentence(testNow)
	if err != nil {
		t.Fatalf("next due: %v", err)
	}
	if d == nil || d.Sentence.ID != "s2" {
		t.Fatalf("expected s2, got %+v", d)
	}
	if d.WordsDue != 3 {
		t.Fatalf("expected 3 words due, got %d", d.WordsDue)
	}

	// Push two of s2's words into the future; s1 now has the most due.
	markReviewed(t, w, db, "え", 3, testNow.Add(time.Hour))
	markReviewed(t, w, db, "お", 3, testNow.Add(time.Hour))

	d, err = w.NextDueSentence(testNow)
	if err != nil {
		t.Fatalf("next due: %v", err)
	}
	if d == nil || d.Sentence.ID != "s1" {
		t.Fatalf("expected s1, got %+v", d)
	}
	if d.WordsDue != 2 {
		t.Fatalf("expected 2 words due, got %d", d.WordsDue)
	}
}

func TestNextDueSentenceRequiresFullyKnown(t *testing.T) {
	db := setupTestDB(t)
	w := NewWords(db)

	addSentence(t, w, "s1", "二語。", "あ", "い")
	markReviewed(t, w, db, "あ", 1, testNow.Add(-time.Hour))
	// い has never been reviewed, so the sentence is not a due candidate.

	d, err := w.NextDueSentence(testNow)
	if err != nil {
		t.Fatalf("next due: %v", err)
	}
	if d != nil {
		t.Fatalf("expected no due sentence, got %+v", d)
	}
}

func TestUpdateCardsAllOrNothing(t *testing.T) {
	db := setupTestDB(t)
	w := NewWords(db)

	addSentence(t, w, "s1", "二語。", "あ", "い")

	cards, err := w.SentenceCards("s1")
	if err != nil {
		t.Fatalf("sentence cards: %v", err)
	}
	for i := range cards {
		cards[i].ReviewCount = 1
		cards[i].Due = testNow
		cards[i].Interval = time.Minute
	}
	cards[1].UnitID = "no-such-word"

	err = w.UpdateCards(cards)
	if !errors.Is(err, srs.ErrCardMissing) {
		t.Fatalf("expected ErrCardMissing, got %v", err)
	}

	// The first card's update must have rolled back.
	reloaded, err := w.SentenceCards("s1")
	if err != nil {
		t.Fatalf("reload cards: %v", err)
	}
	for _, c := range reloaded {
		if !c.IsNew() {
			t.Fatalf("card %s was updated despite rollback", c.UnitID)
		}
	}
}

func TestLearningCount(t *testing.T) {
	db := setupTestDB(t)
	w := NewWords(db)

	addSentence(t, w, "s1", "二語。", "あ", "い")

	n, err := w.LearningCount(testNow)
	if err != nil {
		t.Fatalf("learning count: %v", err)
	}
	if n != 0 {
		t.Fatalf("new cards are not learning, got %d", n)
	}

	markReviewed(t, w, db, "あ", 1, testNow.Add(-time.Minute))
	markReviewed(t, w, db, "い", srs.LearningSteps, testNow.Add(-time.Minute))

	n, err = w.LearningCount(testNow)
	if err != nil {
		t.Fatalf("learning count: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 learning card, got %d", n)
	}
}

func TestSentencesByUnknown(t *testing.T) {
	db := setupTestDB(t)
	w := NewWords(db)

	addSentence(t, w, "s1", "あ い", "あ", "い")
	addSentence(t, w, "s2", "あ う", "あ", "う")
	markReviewed(t, w, db, "あ", 1, testNow)

	suggestions, err := w.SentencesByUnknown(1)
	if err != nil {
		t.Fatalf("sentences by unknown: %v", err)
	}
	if len(suggestions) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(suggestions))
	}
	for _, sug := range suggestions {
		if len(sug.Unknown) != 1 {
			t.Fatalf("sentence %s: expected 1 unknown word, got %v", sug.Sentence.ID, sug.Unknown)
		}
	}

	// Nothing is fully known yet.
	suggestions, err = w.SentencesByUnknown(0)
	if err != nil {
		t.Fatalf("sentences by unknown: %v", err)
	}
	if len(suggestions) != 0 {
		t.Fatalf("expected no fully-known sentences, got %d", len(suggestions))
	}

	markReviewed(t, w, db, "い", 1, testNow)
	markReviewed(t, w, db, "う", 1, testNow)

	suggestions, err = w.SentencesByUnknown(0)
	if err != nil {
		t.Fatalf("sentences by unknown: %v", err)
	}
	if len(suggestions) != 2 {
		t.Fatalf("expected 2 fully-known sentences, got %d", len(suggestions))
	}
	for _, sug := range suggestions {
		if len(sug.Unknown) != 0 {
			t.Fatalf("sentence %s: expected no unknown words, got %v", sug.Sentence.ID, sug.Unknown)
		}
	}
}

func TestSentenceCardsMissingCard(t *testing.T) {
	db := setupTestDB(t)
	w := NewWords(db)

	addSentence(t, w, "s1", "一語。", "あ")
	if _, err := db.Exec(`DELETE FROM cards`); err != nil {
		t.Fatalf("delete cards: %v", err)
	}

	_, err := w.SentenceCards("s1")
	if !errors.Is(err, srs.ErrCardMissing) {
		t.Fatalf("expected ErrCardMissing, got %v", err)
	}
}

func TestCollectStats(t *testing.T) {
	db := setupTestDB(t)
	w := NewWords(db)

	addSentence(t, w, "s1", "二語。", "あ", "い")
	markReviewed(t, w, db, "あ", 1, testNow.Add(-time.Minute))

	st, err := w.CollectStats(testNow)
	if err != nil {
		t.Fatalf("collect stats: %v", err)
	}
	if st.Words != 2 || st.Sentences != 1 {
		t.Fatalf("expected 2 words / 1 sentence, got %+v", st)
	}
	if st.NewCards != 1 || st.DueCards != 1 {
		t.Fatalf("expected 1 new / 1 due, got %+v", st)
	}
}
