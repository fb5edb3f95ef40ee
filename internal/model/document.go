package model

// Format identifies the source document encoding.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatText Format = "text"
)

// Fragment is one unit of extracted source text (a PDF page, or a line of
// a plain-text document) with its origin offset.
type Fragment struct {
	Page   int    `json:"page"`   // 1-based source page
	Offset int    `json:"offset"` // 0-based position within the extraction order
	Text   string `json:"text"`
}

// RawDocument is the ordered sequence of fragments pulled from a source
// document. Immutable once extracted.
type RawDocument struct {
	Format    Format     `json:"format"`
	Fragments []Fragment `json:"fragments"`
}

// PageCount returns the number of distinct source pages.
func (d *RawDocument) PageCount() int {
	pages := make(map[int]struct{})
	for _, f := range d.Fragments {
		pages[f.Page] = struct{}{}
	}
	return len(pages)
}

// Text joins all fragments into a single newline-separated string.
func (d *RawDocument) Text() string {
	var n int
	for _, f := range d.Fragments {
		n += len(f.Text) + 1
	}
	b := make([]byte, 0, n)
	for i, f := range d.Fragments {
		if i > 0 {
			b = append(b, '\n')
		}
		b = append(b, f.Text...)
	}
	return string(b)
}

// CleanParagraph is a reconstructed unit of prose. Position is a
// monotonically increasing index within one pipeline run.
type CleanParagraph struct {
	Position int    `json:"position"`
	Page     int    `json:"page"` // first source page contributing to the paragraph
	Text     string `json:"text"`
}

// RelevantCorpus is the subset of clean paragraphs that matched the ESG
// lexicon, plus the sentence-level density measurement.
type RelevantCorpus struct {
	Paragraphs        []CleanParagraph `json:"paragraphs"`
	RelevantSentences int              `json:"relevant_sentences"`
	TotalSentences    int              `json:"total_sentences"`
	CSRDensity        float64          `json:"csr_density"`
}

// TokenAccount records token counts at the two pipeline checkpoints.
type TokenAccount struct {
	TokensRaw   int `json:"tokens_raw"`
	TokensClean int `json:"tokens_clean"`
}

// ReductionPct returns the relative token reduction in [0,1].
// Zero raw tokens yields 0, not NaN.
func (a TokenAccount) ReductionPct() float64 {
	if a.TokensRaw == 0 {
		return 0
	}
	return 1 - float64(a.TokensClean)/float64(a.TokensRaw)
}
