package pipeline

import (
	"github.com/clipperhouse/uax29/v2/sentences"
	"github.com/jonreiter/govader"

	"github.com/sells-group/ecoscan/internal/model"
)

// AnalyzeTone scores per-sentence polarity over the cleaned,
// pre-stopword-removal text and returns the arithmetic mean compound
// score. Zero sentences yield 0.
func AnalyzeTone(paragraphs []model.CleanParagraph) float64 {
	analyzer := govader.NewSentimentIntensityAnalyzer()

	var (
		sum   float64
		count int
	)
	for _, p := range paragraphs {
		segs := sentences.FromString(p.Text)
		for segs.Next() {
			sent := segs.Value()
			if !isWordlike(sent) {
				continue
			}
			sum += analyzer.PolarityScores(sent).Compound
			count++
		}
	}

	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
