package tokenize

import (
	"testing"

	"github.com/tsumiki/tsumiki/pkg/srs"
)

func analyze(t *testing.T, text string) []srs.Token {
	t.Helper()
	a, err := NewAnalyzer()
	if err != nil {
		t.Fatalf("create analyzer: %v", err)
	}
	tokens, err := a.Tokenize(text)
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	return tokens
}

func words(tokens []srs.Token) []string {
	var out []string
	for _, tok := range tokens {
		if tok.IsWord {
			out = append(out, tok.Lemma)
		}
	}
	return out
}

func TestTokenizeFiltersParticlesAndSymbols(t *testing.T) {
	tokens := analyze(t, "猫が好きです。")
	got := words(tokens)

	want := map[string]bool{"猫": true, "好き": true}
	for _, w := range got {
		if !want[w] {
			t.Errorf("unexpected word %q", w)
		}
		delete(want, w)
	}
	for w := range want {
		t.Errorf("missing word %q", w)
	}
}

func TestTokenizeLemmatizesConjugations(t *testing.T) {
	got := words(analyze(t, "食べました"))
	if len(got) != 1 || got[0] != "食べる" {
		t.Fatalf("expected [食べる], got %v", got)
	}
}

func TestTokenizeSkipsASCIIAndDigits(t *testing.T) {
	got := words(analyze(t, "OK 123"))
	if len(got) != 0 {
		t.Fatalf("expected no words, got %v", got)
	}
}

func TestSplitSentences(t *testing.T) {
	got := SplitSentences("今日は晴れ。明日は雨？\nそして雪")
	want := []string{"今日は晴れ。", "明日は雨？", "そして雪"}
	if len(got) != len(want) {
		t.Fatalf("expected %d sentences, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sentence %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestSplitSentencesKeepsQuotesIntact(t *testing.T) {
	got := SplitSentences("彼は「行く。戻らない。」と言った。次の文。")
	if len(got) != 2 {
		t.Fatalf("expected 2 sentences, got %v", got)
	}
	if got[0] != "彼は「行く。戻らない。」と言った。" {
		t.Fatalf("quoted sentence split: %q", got[0])
	}
}

func TestSanitizeRuby(t *testing.T) {
	in := []byte("<ruby>漢字<rp>(</rp><rt>かんじ</rt><rp>)</rp></ruby>を読む。")
	got := string(SanitizeRuby(in))
	want := "<ruby>漢字</ruby>を読む。"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
