package srs

import "errors"

var (
	// ErrEmptySentence is returned by AddMaterial when a sentence is
	// empty or whitespace-only.
	ErrEmptySentence = errors.New("srs: sentence text is empty")

	// ErrNoPendingReview is returned by SubmitReview when no review has
	// been selected.
	ErrNoPendingReview = errors.New("srs: no review in flight")

	// ErrInvalidDifficulty is returned for difficulty values outside
	// Again..Easy.
	ErrInvalidDifficulty = errors.New("srs: invalid difficulty")

	// ErrCardMissing indicates a sentence-word link whose word has no
	// card. The store is corrupted; the operation is aborted.
	ErrCardMissing = errors.New("srs: card missing for linked word")
)
