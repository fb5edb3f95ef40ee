package pipeline

import (
	"strings"

	"github.com/sells-group/ecoscan/internal/model"
)

// ToMarkdown renders the relevant paragraphs as lightweight Markdown for
// the extraction prompt: short all-caps paragraphs become headings,
// bullet-prefixed ones become list items. Everything else passes
// through unchanged so grounding stays intact.
func ToMarkdown(paragraphs []model.CleanParagraph) string {
	var out []string
	for _, p := range paragraphs {
		text := p.Text
		switch {
		case isHeading(text):
			out = append(out, "## "+titleCase(text))
		case strings.HasPrefix(text, "•"), strings.HasPrefix(text, "-"), strings.HasPrefix(text, "–"):
			out = append(out, "- "+strings.TrimLeft(text, "•-– "))
		default:
			out = append(out, text)
		}
	}
	return strings.Join(out, "\n\n")
}

// titleCase lowercases an all-caps heading and capitalizes each word.
func titleCase(s string) string {
	fields := strings.Fields(strings.ToLower(s))
	for i, f := range fields {
		r := []rune(f)
		if len(r) > 0 {
			r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		}
		fields[i] = string(r)
	}
	return strings.Join(fields, " ")
}
