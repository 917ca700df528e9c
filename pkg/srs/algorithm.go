package srs

import "time"

// Token is a segmenter output unit. Non-word tokens (punctuation,
// particles, digits) are filtered out before the lemma becomes a
// schedulable word.
type Token struct {
	Lemma  string
	IsWord bool
}

// Tokenizer segments raw sentence text. Implementations live outside the
// engine; see pkg/tokenize for the kagome-backed one.
type Tokenizer interface {
	Tokenize(text string) ([]Token, error)
}

// Policy carries the selection caps the session enforces on every
// next-review query.
type Policy struct {
	// DailyNewLimit caps how many cards may be learned per day.
	DailyNewLimit int
	// MaxLearningCards caps how many cards may sit on the learning steps
	// at once. When reached, new-card selection is suppressed entirely.
	MaxLearningCards int
	// LearnedToday is the session's running learned counter.
	LearnedToday int
}

// Algorithm is the scheduling capability the session drives. Two
// implementations exist: WordScheduler (a card per word, reviews applied
// per sentence) and SentenceScheduler (a card per sentence).
type Algorithm interface {
	// Ingest registers sentences and seeds cards for their units.
	Ingest(sentences []Sentence) error

	// NextReview picks the next unit to present, or nil when the day is
	// done. New candidates take priority over due ones.
	NextReview(now time.Time, p Policy) (*Review, error)

	// Apply records an answer for every unit the review covers and
	// returns how many units were learned (first-ever review) and how
	// many were reviewed in total. Partial application is not allowed:
	// either every card updates or none does.
	Apply(r Review, d Difficulty, now time.Time) (learned, reviewed int, err error)

	// Suggest lists sentences with at most maxUnknown unlearned words,
	// easiest first, each with its unlearned words.
	Suggest(maxUnknown int) ([]Suggestion, error)
}

// DueSentence is a due-candidate query result.
type DueSentence struct {
	Sentence Sentence
	WordsDue int
}

// WordStore is the persistence contract of the word-level scheduler.
// Implementations must guarantee read-your-writes within a single engine
// call, and UpdateCards must be all-or-nothing.
type WordStore interface {
	// AddSentence stores the sentence, creates any missing words and
	// their seed cards, and links the sentence to every distinct lemma.
	AddSentence(s Sentence, lemmas []string) error

	// SentenceCards returns the cards of every word linked to the
	// sentence. A link whose word has no card is ErrCardMissing.
	SentenceCards(sentenceID string) ([]Card, error)

	// UpdateCards writes the given cards in a single transaction.
	UpdateCards(cards []Card) error

	// LearningCount counts cards on the learning steps that are due
	// before the given horizon.
	LearningCount(before time.Time) (int, error)

	// NextNewWord returns the id of the best unlearned word: the one in
	// the sentence with the fewest unlearned words, ties broken by
	// earliest added order. Empty string when none exist.
	NextNewWord() (string, error)

	// SentenceForWord resolves a word to a displayable sentence: the
	// containing sentence with the fewest unlearned words, ties broken
	// by smallest sentence id. Nil when the word is in no sentence.
	SentenceForWord(wordID string) (*Sentence, error)

	// UnknownWordCount counts the sentence's never-reviewed words.
	UnknownWordCount(sentenceID string) (int, error)

	// NextDueSentence returns the fully-known sentence with the most
	// words due before the horizon, ties broken by earliest due then
	// added order. Nil when nothing is due.
	NextDueSentence(before time.Time) (*DueSentence, error)

	// SentencesByUnknown lists sentences with at most maxUnknown
	// unlearned words, ascending by unknown count.
	SentencesByUnknown(maxUnknown int) ([]Suggestion, error)
}

// SentenceStore is the persistence contract of the sentence-level
// scheduler, where the sentence itself is the schedulable unit.
type SentenceStore interface {
	AddSentences(sentences []Sentence) error
	NextNewSentence() (*Sentence, error)
	NextDueSentence(before time.Time) (*Sentence, error)
	SentenceCard(sentenceID string) (Card, error)
	UpdateCards(cards []Card) error
	LearningCount(before time.Time) (int, error)
}
