package extract

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/sells-group/ecoscan/internal/model"
)

// extractPDF reads per-page text in reading order. The reader operates
// over the in-memory byte slice, so there is no handle to release.
func extractPDF(data []byte) (doc *model.RawDocument, err error) {
	// The pdf package panics on some malformed cross-reference tables;
	// convert that to the same terminal extraction failure.
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = &model.ExtractionError{Reason: fmt.Sprintf("malformed PDF: %v", r)}
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &model.ExtractionError{Reason: "open PDF", Err: err}
	}

	numPages := r.NumPage()
	if numPages == 0 {
		return nil, &model.ExtractionError{Reason: "PDF has no pages"}
	}

	out := &model.RawDocument{Format: model.FormatPDF}
	offset := 0
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, pageErr := page.GetPlainText(nil)
		if pageErr != nil {
			return nil, &model.ExtractionError{
				Reason: fmt.Sprintf("extract page %d", i),
				Err:    pageErr,
			}
		}
		out.Fragments = append(out.Fragments, model.Fragment{
			Page:   i,
			Offset: offset,
			Text:   text,
		})
		offset++
	}

	return out, nil
}
