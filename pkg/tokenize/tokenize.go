package tokenize

import (
	"regexp"
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"github.com/tsumiki/tsumiki/pkg/srs"
)

// POS classes that never become schedulable words: symbols, particles and
// auxiliary verbs.
var skipPOS = map[string]bool{
	"記号":   true,
	"補助記号": true,
	"助詞":   true,
	"助動詞":  true,
}

var asciiOnly = regexp.MustCompile(`^[a-zA-Z0-9\s[:punct:]]+$`)

// Analyzer segments Japanese text with kagome and the IPA dictionary.
// It implements srs.Tokenizer.
type Analyzer struct {
	t *tokenizer.Tokenizer
}

var _ srs.Tokenizer = (*Analyzer)(nil)

// NewAnalyzer builds a tokenizer instance. The IPA dictionary load is the
// expensive part; reuse one Analyzer per process.
func NewAnalyzer() (*Analyzer, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, err
	}
	return &Analyzer{t: t}, nil
}

// Tokenize segments text into lemma tokens. Particles, auxiliaries,
// symbols, digits and ASCII runs are kept but flagged as non-words.
//
// Kagome IPA features:
//
//	0: part of speech  1-3: sub-POS  4-5: conjugation  6: base form
//	7: reading  8: pronunciation
func (a *Analyzer) Tokenize(text string) ([]srs.Token, error) {
	var out []srs.Token
	for _, tok := range a.t.Tokenize(text) {
		if tok.Class == tokenizer.DUMMY {
			continue
		}
		if strings.TrimSpace(tok.Surface) == "" {
			continue
		}

		features := tok.Features()

		lemma := tok.Surface
		if len(features) > 6 && features[6] != "*" {
			lemma = features[6]
		}

		isWord := true
		if len(features) > 0 && skipPOS[features[0]] {
			isWord = false
		}
		if len(features) > 1 && features[1] == "数" {
			isWord = false
		}
		if asciiOnly.MatchString(tok.Surface) {
			isWord = false
		}

		out = append(out, srs.Token{Lemma: lemma, IsWord: isWord})
	}
	return out, nil
}
