package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/ecoscan/internal/model"
)

func textDoc(pages ...string) *model.RawDocument {
	doc := &model.RawDocument{Format: model.FormatText}
	offset := 0
	for i, p := range pages {
		doc.Fragments = append(doc.Fragments, model.Fragment{
			Page:   i + 1,
			Offset: offset,
			Text:   p,
		})
		offset++
	}
	return doc
}

func TestFilterNoise_DropsPageNumbersAndArtifacts(t *testing.T) {
	doc := textDoc("12\nPage 3\nOur emissions fell by ten percent this year.\n(cid:88)\nwww.example.com")

	paras := FilterNoise(doc, DefaultNoiseConfig())

	require.Len(t, paras, 1)
	assert.Equal(t, "Our emissions fell by ten percent this year.", paras[0].Text)
}

func TestFilterNoise_DropsRecurringHeaders(t *testing.T) {
	doc := textDoc(
		"ACME SUSTAINABILITY REPORT 2023\nWe reduced water consumption substantially.",
		"ACME SUSTAINABILITY REPORT 2023\nSupplier audits expanded to all regions.",
	)

	paras := FilterNoise(doc, DefaultNoiseConfig())

	require.Len(t, paras, 2)
	for _, p := range paras {
		assert.NotContains(t, p.Text, "ACME SUSTAINABILITY REPORT")
	}
}

func TestFilterNoise_KeepsHeaderOnSinglePage(t *testing.T) {
	// No recurrence signal in a one-page document.
	doc := textDoc("ENVIRONMENTAL PERFORMANCE\nEmissions fell in the reporting period.")

	paras := FilterNoise(doc, DefaultNoiseConfig())

	require.Len(t, paras, 2)
	assert.Equal(t, "ENVIRONMENTAL PERFORMANCE", paras[0].Text)
}

func TestFilterNoise_MergesWrappedLines(t *testing.T) {
	doc := textDoc("Total recordable incidents decreased across\nall operating regions during the fiscal\nyear under review.\nA second paragraph follows here.")

	paras := FilterNoise(doc, DefaultNoiseConfig())

	require.Len(t, paras, 2)
	assert.Equal(t, "Total recordable incidents decreased across all operating regions during the fiscal year under review.", paras[0].Text)
	assert.Equal(t, "A second paragraph follows here.", paras[1].Text)
}

func TestFilterNoise_HeadingEndsParagraph(t *testing.T) {
	doc := textDoc("SOCIAL RESPONSIBILITY\nTraining hours per employee increased markedly.")

	paras := FilterNoise(doc, DefaultNoiseConfig())

	require.Len(t, paras, 2)
	assert.Equal(t, "SOCIAL RESPONSIBILITY", paras[0].Text)
	assert.Equal(t, 0, paras[0].Position)
	assert.Equal(t, 1, paras[1].Position)
}

func TestFilterNoise_EmptyResultIsValid(t *testing.T) {
	doc := textDoc("7\n8\n9")

	paras := FilterNoise(doc, DefaultNoiseConfig())

	assert.Empty(t, paras)
}

func TestFilterNoise_DropsTOCDotLeaders(t *testing.T) {
	doc := textDoc("Environmental performance .......... 12\nActual prose about our carbon footprint.")

	paras := FilterNoise(doc, DefaultNoiseConfig())

	require.Len(t, paras, 1)
	assert.Contains(t, paras[0].Text, "carbon footprint")
}
