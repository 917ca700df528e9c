package srs

import "fmt"

// Word is a normalized lemma extracted from sentence text. Words are
// deduplicated by text and never deleted.
type Word struct {
	ID   string
	Text string
}

// Sentence is a raw display string as ingested.
type Sentence struct {
	ID   string
	Text string
}

// ReviewKind tags the two review variants.
type ReviewKind int

const (
	// ReviewNew presents a sentence that still contains unlearned words.
	ReviewNew ReviewKind = iota
	// ReviewDue presents a fully-known sentence with words due.
	ReviewDue
)

func (k ReviewKind) String() string {
	switch k {
	case ReviewNew:
		return "New"
	case ReviewDue:
		return "Due"
	}
	return fmt.Sprintf("ReviewKind(%d)", int(k))
}

// Review is a presentation-ready unit of work. It is derived, never
// stored. For ReviewNew, UnknownWords is the number of the sentence's
// words that have never been reviewed (the N of an i+N sentence). For
// ReviewDue, WordsDue is the number of the sentence's words currently
// due.
type Review struct {
	Kind         ReviewKind
	Sentence     Sentence
	UnknownWords int
	WordsDue     int
}

// Suggestion pairs a near-comprehensible sentence with the words the
// learner has not yet seen in it.
type Suggestion struct {
	Sentence Sentence
	Unknown  []string
}
