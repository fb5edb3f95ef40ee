package pipeline

import (
	"math"
	"sort"
	"strings"
)

// TopKeywords ranks salient terms across the stopword-reduced corpus
// using TF-IDF with paragraphs as documents. Terms on the exclusion
// list never rank; ties break by first-seen order.
func TopKeywords(reducedParagraphs []string, exclusions []string, n int) []string {
	if n <= 0 || len(reducedParagraphs) == 0 {
		return nil
	}

	excluded := make(map[string]struct{}, len(exclusions))
	for _, e := range exclusions {
		excluded[foldText(e)] = struct{}{}
	}

	type stat struct {
		tf        int // total occurrences across the corpus
		df        int // paragraphs containing the term
		firstSeen int
	}
	stats := make(map[string]*stat)
	order := 0

	for _, para := range reducedParagraphs {
		seenHere := make(map[string]struct{})
		for _, tok := range strings.Fields(para) {
			term := foldText(strings.Trim(tok, ".,;:!?()\"'·•-–—"))
			if len(term) < 3 || !isWordlike(term) {
				continue
			}
			if _, skip := excluded[term]; skip {
				continue
			}
			if isStopword(term) {
				continue
			}
			s, ok := stats[term]
			if !ok {
				s = &stat{firstSeen: order}
				stats[term] = s
				order++
			}
			s.tf++
			if _, dup := seenHere[term]; !dup {
				s.df++
				seenHere[term] = struct{}{}
			}
		}
	}

	type scored struct {
		term      string
		score     float64
		firstSeen int
	}
	ranked := make([]scored, 0, len(stats))
	docs := float64(len(reducedParagraphs))
	for term, s := range stats {
		idf := math.Log(docs / float64(s.df))
		ranked = append(ranked, scored{
			term:      term,
			score:     float64(s.tf) * idf,
			firstSeen: s.firstSeen,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].firstSeen < ranked[j].firstSeen
	})

	if n > len(ranked) {
		n = len(ranked)
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = ranked[i].term
	}
	return out
}
