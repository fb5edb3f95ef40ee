package pipeline

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// esgLexicon holds the domain terms that mark a paragraph as
// ESG-relevant. Matching is case- and diacritic-insensitive.
var esgLexicon = []string{
	// Environment
	"emission", "ghg", "scope 1", "scope 2", "scope 3", "energy",
	"renewable", "carbon", "climate", "water", "waste", "biodiversity",
	"tco2", "mwh", "gj",
	// Social
	"safety", "injury", "trir", "incident", "fatality", "workforce",
	"employee", "diversity", "women", "gender", "training", "human rights",
	"community",
	// Governance
	"governance", "board", "supplier", "supply chain", "traceability",
	"code of conduct", "corruption", "audit", "compliance", "risk",
	"materiality", "stakeholder",
}

// stopwords are low-information tokens removed before TF-IDF scoring and
// token-delta accounting. English plus Italian, since sustainability
// reports from EU issuers are frequently bilingual.
var stopwords = map[string]struct{}{}

// defaultExclusions filters boilerplate corporate filler out of the
// keyword ranking. These terms are ESG-relevant but so generic that
// ranking them tells the reader nothing.
var defaultExclusions = []string{
	"sustainability", "report", "company", "group", "business",
	"corporate", "annual", "year", "approach", "commitment",
	"performance", "management", "strategy", "value", "values",
	"stakeholders", "responsibility",
}

// DefaultExclusions returns a copy of the built-in boilerplate exclusion
// list for keyword ranking.
func DefaultExclusions() []string {
	out := make([]string, len(defaultExclusions))
	copy(out, defaultExclusions)
	return out
}

func init() {
	for _, w := range []string{
		// English
		"a", "an", "and", "are", "as", "at", "be", "been", "but", "by",
		"for", "from", "has", "have", "in", "is", "it", "its", "of", "on",
		"or", "our", "that", "the", "their", "this", "to", "was", "we",
		"were", "which", "will", "with",
		// Italian
		"che", "con", "del", "della", "delle", "dei", "di", "e", "ed",
		"gli", "il", "in", "la", "le", "lo", "nel", "nella", "non", "per",
		"più", "si", "sono", "su", "un", "una", "uno",
	} {
		stopwords[foldText(w)] = struct{}{}
	}
}

// foldTransformer lowercases indirectly via strings.ToLower; the chain
// strips combining marks so "più" and "piu" compare equal.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldText normalizes text for lexicon matching: lowercase, diacritics
// removed.
func foldText(s string) string {
	folded, _, err := transform.String(foldTransformer, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return folded
}

// isStopword reports whether a folded token is on the stopword list.
func isStopword(folded string) bool {
	_, ok := stopwords[folded]
	return ok
}

// matchesLexicon reports whether the text contains at least one ESG
// lexicon term.
func matchesLexicon(text string) bool {
	folded := foldText(text)
	for _, term := range esgLexicon {
		if strings.Contains(folded, term) {
			return true
		}
	}
	return false
}

