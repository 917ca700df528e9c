package tokenize

import (
	"regexp"
	"strings"
)

// SplitSentences cuts raw text into sentences on 。！？ and newlines,
// without splitting inside quotes. 「」 nest; straight quotes toggle.
func SplitSentences(text string) []string {
	var (
		sentences []string
		current   strings.Builder
		depth     int
	)

	flush := func() {
		s := strings.TrimSpace(current.String())
		if s != "" {
			sentences = append(sentences, s)
		}
		current.Reset()
	}

	for _, r := range text {
		current.WriteRune(r)

		switch r {
		case '「':
			depth++
		case '」':
			depth--
		case '\'', '"':
			// Straight quotes don't nest; assume a second one closes.
			if depth > 0 {
				depth--
			} else {
				depth++
			}
		case '。', '！', '？', '\n':
			if depth == 0 {
				flush()
			}
		}
	}
	flush()

	return sentences
}

var (
	reRT = regexp.MustCompile(`(?si)<rt\b[^>]*>.*?</rt>`)
	reRP = regexp.MustCompile(`(?si)<rp\b[^>]*>.*?</rp>`)
)

// SanitizeRuby strips ruby annotations (<rt>, <rp>) from HTML so that
// extracted text doesn't duplicate kanji with their furigana.
func SanitizeRuby(content []byte) []byte {
	cleaned := reRT.ReplaceAll(content, []byte{})
	return reRP.ReplaceAll(cleaned, []byte{})
}
