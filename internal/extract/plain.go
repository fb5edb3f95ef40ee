package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/sells-group/ecoscan/internal/model"
)

// extractText splits a plain-text document into line fragments. A form
// feed (\f) marks a page break, so multi-page text fixtures keep page
// identity for the recurrence-based header detection downstream.
func extractText(data []byte) (*model.RawDocument, error) {
	if !utf8.Valid(data) {
		return nil, &model.ExtractionError{Reason: "document is not valid UTF-8"}
	}

	out := &model.RawDocument{Format: model.FormatText}
	page := 1
	offset := 0
	for _, chunk := range strings.Split(string(data), "\f") {
		for _, line := range strings.Split(chunk, "\n") {
			out.Fragments = append(out.Fragments, model.Fragment{
				Page:   page,
				Offset: offset,
				Text:   strings.TrimRight(line, "\r"),
			})
			offset++
		}
		page++
	}
	return out, nil
}
