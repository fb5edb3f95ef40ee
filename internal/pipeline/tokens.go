package pipeline

import (
	"unicode"
	"unicode/utf8"

	"github.com/clipperhouse/uax29/v2/words"

	"github.com/sells-group/ecoscan/internal/model"
)

// tokensPerWord approximates the model tokenizer's unit: subword
// tokenizers average ~1.3 tokens per natural-language word. Counting is
// local and never calls the model.
const tokensPerWord = 1.3

// CountTokens estimates model-countable tokens via Unicode word
// segmentation. Deterministic for identical input.
func CountTokens(text string) int {
	n := 0
	tokens := words.FromString(text)
	for tokens.Next() {
		if isWordlike(tokens.Value()) {
			n++
		}
	}
	return int(float64(n) * tokensPerWord)
}

// NewTokenAccount captures the two pipeline checkpoints: before
// noise/relevance filtering and after.
func NewTokenAccount(rawText, cleanText string) model.TokenAccount {
	return model.TokenAccount{
		TokensRaw:   CountTokens(rawText),
		TokensClean: CountTokens(cleanText),
	}
}

// isWordlike reports whether a segment carries a letter or digit, so
// whitespace and bare punctuation segments are not counted.
func isWordlike(s string) bool {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
		i += size
	}
	return false
}
