package srs

import (
	"fmt"
	"time"
)

// WordScheduler schedules one card per word. Reviews are presented as
// sentences; answering a sentence advances every word it contains, so a
// shared word reviewed through one sentence is immediately up to date in
// every other sentence containing it.
type WordScheduler struct {
	store WordStore
	tok   Tokenizer
}

var _ Algorithm = (*WordScheduler)(nil)

// NewWordScheduler wires the scheduler to its store and tokenizer.
func NewWordScheduler(store WordStore, tok Tokenizer) *WordScheduler {
	return &WordScheduler{store: store, tok: tok}
}

// Ingest tokenizes each sentence and registers it. Words are deduplicated
// against the lexicon; sentences are not, so callers must not re-ingest
// identical material.
func (ws *WordScheduler) Ingest(sentences []Sentence) error {
	for _, s := range sentences {
		tokens, err := ws.tok.Tokenize(s.Text)
		if err != nil {
			return fmt.Errorf("tokenize %q: %w", s.Text, err)
		}

		lemmas := make([]string, 0, len(tokens))
		for _, t := range tokens {
			if t.IsWord {
				lemmas = append(lemmas, t.Lemma)
			}
		}

		if err := ws.store.AddSentence(s, lemmas); err != nil {
			return fmt.Errorf("add sentence: %w", err)
		}
	}
	return nil
}

// NextReview applies the selection policy:
//
//  1. at the learning-card cap, or at the daily new limit, new-card
//     selection is suppressed;
//  2. otherwise the best new word is the one whose easiest containing
//     sentence has the fewest unlearned words (i+1 preference);
//  3. the due candidate is the fully-known sentence with the most words
//     due before the next midnight;
//  4. a new candidate wins over a due one.
func (ws *WordScheduler) NextReview(now time.Time, p Policy) (*Review, error) {
	horizon := NextMidnight(now)

	allowNew := true
	learning, err := ws.store.LearningCount(horizon)
	if err != nil {
		return nil, fmt.Errorf("count learning cards: %w", err)
	}
	if learning >= p.MaxLearningCards {
		allowNew = false
	} else if p.LearnedToday >= p.DailyNewLimit {
		allowNew = false
	}

	if allowNew {
		r, err := ws.nextNew()
		if err != nil {
			return nil, err
		}
		if r != nil {
			return r, nil
		}
	}

	due, err := ws.store.NextDueSentence(horizon)
	if err != nil {
		return nil, fmt.Errorf("next due sentence: %w", err)
	}
	if due == nil {
		return nil, nil
	}
	return &Review{Kind: ReviewDue, Sentence: due.Sentence, WordsDue: due.WordsDue}, nil
}

func (ws *WordScheduler) nextNew() (*Review, error) {
	wordID, err := ws.store.NextNewWord()
	if err != nil {
		return nil, fmt.Errorf("next new word: %w", err)
	}
	if wordID == "" {
		return nil, nil
	}

	sent, err := ws.store.SentenceForWord(wordID)
	if err != nil {
		return nil, fmt.Errorf("resolve sentence for word %s: %w", wordID, err)
	}
	if sent == nil {
		// A card exists for a word no sentence contains.
		return nil, fmt.Errorf("%w: word %s has no sentence", ErrCardMissing, wordID)
	}

	unknown, err := ws.store.UnknownWordCount(sent.ID)
	if err != nil {
		return nil, fmt.Errorf("unknown word count: %w", err)
	}
	return &Review{Kind: ReviewNew, Sentence: *sent, UnknownWords: unknown}, nil
}

// Apply advances every word linked to the reviewed sentence with the same
// difficulty, in one batch. Words seen for the first time count as
// learned.
func (ws *WordScheduler) Apply(r Review, d Difficulty, now time.Time) (learned, reviewed int, err error) {
	cards, err := ws.store.SentenceCards(r.Sentence.ID)
	if err != nil {
		return 0, 0, fmt.Errorf("sentence cards: %w", err)
	}

	for i := range cards {
		if cards[i].IsNew() {
			learned++
		}
		cards[i] = Advance(cards[i], d, now)
	}

	if err := ws.store.UpdateCards(cards); err != nil {
		return 0, 0, fmt.Errorf("update cards: %w", err)
	}
	return learned, len(cards), nil
}

// Suggest lists i+N sentences with N at most maxUnknown, easiest first.
func (ws *WordScheduler) Suggest(maxUnknown int) ([]Suggestion, error) {
	return ws.store.SentencesByUnknown(maxUnknown)
}
