package pipeline

import (
	"strings"

	"github.com/clipperhouse/uax29/v2/sentences"
	"go.uber.org/zap"

	"github.com/sells-group/ecoscan/internal/model"
)

// relevanceFallbackRatio guards against over-aggressive filtering: when
// strict keyword matching keeps fewer than this share of paragraphs, the
// whole cleaned set is retained for the LLM. Density is still computed
// from the strict match.
const relevanceFallbackRatio = 0.05

// FilterRelevance retains paragraphs containing at least one ESG lexicon
// term and computes CSR density as relevant sentences over total
// sentences. Non-matching paragraphs are dropped from the corpus but
// stay in the density denominator.
func FilterRelevance(paragraphs []model.CleanParagraph) *model.RelevantCorpus {
	corpus := &model.RelevantCorpus{}

	var relevant []model.CleanParagraph
	for _, p := range paragraphs {
		n := countSentences(p.Text)
		corpus.TotalSentences += n
		if matchesLexicon(p.Text) {
			relevant = append(relevant, p)
			corpus.RelevantSentences += n
		}
	}

	if corpus.TotalSentences > 0 {
		corpus.CSRDensity = float64(corpus.RelevantSentences) / float64(corpus.TotalSentences)
	}

	corpus.Paragraphs = relevant
	if len(paragraphs) > 0 && float64(len(relevant)) < relevanceFallbackRatio*float64(len(paragraphs)) {
		// Strict filtering removed nearly everything; keep the cleaned
		// text so the extraction agent still sees the document.
		zap.L().Warn("relevance: strict filter kept too little, falling back to full cleaned text",
			zap.Int("relevant", len(relevant)),
			zap.Int("total", len(paragraphs)),
		)
		corpus.Paragraphs = paragraphs
	}

	return corpus
}

// RemoveStopwords returns the paragraph texts with low-information
// tokens deleted. The reduced text feeds TF-IDF and token accounting
// only; sentiment scoring and the LLM always receive original phrasing.
func RemoveStopwords(paragraphs []model.CleanParagraph) []string {
	out := make([]string, len(paragraphs))
	for i, p := range paragraphs {
		var kept []string
		for _, tok := range strings.Fields(p.Text) {
			folded := foldText(strings.Trim(tok, ".,;:!?()\"'"))
			if folded == "" || isStopword(folded) {
				continue
			}
			kept = append(kept, tok)
		}
		out[i] = strings.Join(kept, " ")
	}
	return out
}

// countSentences counts Unicode sentence segments containing word
// characters.
func countSentences(text string) int {
	n := 0
	segs := sentences.FromString(text)
	for segs.Next() {
		if isWordlike(segs.Value()) {
			n++
		}
	}
	return n
}
