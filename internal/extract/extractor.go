// Package extract pulls raw text out of source documents (PDF or plain
// text), producing the ordered fragment sequence the cleaning stages
// consume. Extraction is terminal on failure: encrypted, corrupt, or
// image-only sources surface a model.ExtractionError with no OCR
// fallback.
package extract

import (
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/ecoscan/internal/model"
)

// Extract reads document bytes in the declared format and returns the
// raw fragment sequence, one fragment per PDF page or text line.
func Extract(data []byte, format model.Format) (*model.RawDocument, error) {
	if len(data) == 0 {
		return nil, &model.ExtractionError{Reason: "empty document"}
	}

	var (
		doc *model.RawDocument
		err error
	)
	switch format {
	case model.FormatPDF:
		doc, err = extractPDF(data)
	case model.FormatText:
		doc, err = extractText(data)
	default:
		return nil, &model.ExtractionError{Reason: "unsupported format " + string(format)}
	}
	if err != nil {
		return nil, err
	}

	if !hasText(doc) {
		return nil, &model.ExtractionError{Reason: "no extractable text layer"}
	}

	zap.L().Debug("extract: document read",
		zap.String("format", string(format)),
		zap.Int("fragments", len(doc.Fragments)),
		zap.Int("pages", doc.PageCount()),
	)
	return doc, nil
}

func hasText(doc *model.RawDocument) bool {
	for _, f := range doc.Fragments {
		if strings.TrimSpace(f.Text) != "" {
			return true
		}
	}
	return false
}
