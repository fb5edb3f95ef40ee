package pipeline

import (
	"regexp"
	"strings"

	"github.com/sells-group/ecoscan/internal/model"
)

// NoiseConfig tunes the layout-noise filter.
type NoiseConfig struct {
	// MinLineLen drops snippets shorter than this many characters.
	MinLineLen int
	// HeaderMinPages is the number of distinct pages an identical line
	// must recur on before it is classified as a running header/footer.
	HeaderMinPages int
}

// DefaultNoiseConfig returns the empirically chosen thresholds.
func DefaultNoiseConfig() NoiseConfig {
	return NoiseConfig{MinLineLen: 5, HeaderMinPages: 2}
}

// noisePatterns match structural artifacts that carry no prose: page
// numbers, TOC dot leaders, PDF encoding residue, footer URLs, and
// legal boilerplate.
var noisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d+\s*$`),          // bare page number
	regexp.MustCompile(`^page\s+\d+$`),      // "Page 12"
	regexp.MustCompile(`^\s*report\s*$`),    // generic running header
	regexp.MustCompile(`confidential`),      // confidentiality marker
	regexp.MustCompile(`all rights reserved`),
	regexp.MustCompile(`\(cid:\d+\)`),       // PDF encoding artifact
	regexp.MustCompile(`www\.[a-z0-9-]+\.[a-z]+`),
	regexp.MustCompile(`\.{4,}\s*\d+\s*$`),  // TOC dot leader "... 12"
}

var (
	cidArtifact = regexp.MustCompile(`\(cid:\d+\)`)
	multiSpace  = regexp.MustCompile(`\s+`)
)

// FilterNoise strips layout noise from the raw document and merges the
// surviving lines into coherent paragraphs. Pure transform; an empty
// result is valid (the document is usable but uninformative).
func FilterNoise(doc *model.RawDocument, cfg NoiseConfig) []model.CleanParagraph {
	recurring := recurringLines(doc, cfg.HeaderMinPages)

	type line struct {
		page int
		text string
	}
	var cleaned []line
	for _, frag := range doc.Fragments {
		for _, raw := range strings.Split(frag.Text, "\n") {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			if isNoise(raw, cfg.MinLineLen) {
				continue
			}
			if _, repeated := recurring[strings.ToLower(raw)]; repeated {
				continue
			}
			raw = cidArtifact.ReplaceAllString(raw, "")
			raw = multiSpace.ReplaceAllString(raw, " ")
			cleaned = append(cleaned, line{page: frag.Page, text: strings.TrimSpace(raw)})
		}
	}

	// Merge mechanically wrapped lines into paragraphs. A paragraph ends
	// when a line closes with sentence punctuation or is a short
	// all-caps heading.
	var (
		paragraphs []model.CleanParagraph
		current    []string
		page       int
	)
	flush := func() {
		if len(current) == 0 {
			return
		}
		paragraphs = append(paragraphs, model.CleanParagraph{
			Position: len(paragraphs),
			Page:     page,
			Text:     strings.Join(current, " "),
		})
		current = nil
	}
	for _, l := range cleaned {
		if len(current) == 0 {
			page = l.page
		}
		current = append(current, l.text)
		if endsParagraph(l.text) {
			flush()
		}
	}
	flush()

	return paragraphs
}

// recurringLines finds identical lines that appear on at least minPages
// distinct pages, the recurrence signature of running headers/footers.
// Single-page documents have no recurrence signal and return nothing.
func recurringLines(doc *model.RawDocument, minPages int) map[string]struct{} {
	if doc.PageCount() < 2 || minPages < 2 {
		return nil
	}
	pagesSeen := make(map[string]map[int]struct{})
	for _, frag := range doc.Fragments {
		for _, raw := range strings.Split(frag.Text, "\n") {
			raw = strings.ToLower(strings.TrimSpace(raw))
			if raw == "" {
				continue
			}
			if pagesSeen[raw] == nil {
				pagesSeen[raw] = make(map[int]struct{})
			}
			pagesSeen[raw][frag.Page] = struct{}{}
		}
	}
	out := make(map[string]struct{})
	for text, pages := range pagesSeen {
		if len(pages) >= minPages {
			out[text] = struct{}{}
		}
	}
	return out
}

func isNoise(text string, minLen int) bool {
	lower := strings.ToLower(text)
	if len(lower) < minLen {
		return true
	}
	for _, p := range noisePatterns {
		if p.MatchString(lower) {
			return true
		}
	}
	return false
}

// endsParagraph applies the merge-boundary heuristics: terminal
// punctuation, or a short ALL-CAPS heading line.
func endsParagraph(line string) bool {
	switch {
	case strings.HasSuffix(line, "."),
		strings.HasSuffix(line, "!"),
		strings.HasSuffix(line, "?"),
		strings.HasSuffix(line, ":"):
		return true
	}
	return isHeading(line)
}

// isHeading reports whether a line looks like a section heading: short
// and fully uppercase (ignoring digits and punctuation).
func isHeading(line string) bool {
	if len(line) >= 100 {
		return false
	}
	hasLetter := false
	for _, r := range line {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			hasLetter = true
		}
	}
	return hasLetter
}
