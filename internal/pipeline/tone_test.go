package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeTone_PromotionalScoresHigherThanNeutral(t *testing.T) {
	promotional := AnalyzeTone(paras(
		"We are incredibly proud of our amazing, award-winning achievements!",
		"Our fantastic team delivered outstanding, wonderful results.",
	))
	neutral := AnalyzeTone(paras(
		"Scope 1 emissions were 12,500 tCO2e in the reporting period.",
		"The facility operated for 340 days.",
	))

	assert.Greater(t, promotional, neutral)
	assert.Greater(t, promotional, 0.0)
}

func TestAnalyzeTone_EmptyInput(t *testing.T) {
	assert.Zero(t, AnalyzeTone(nil))
}

func TestAnalyzeTone_Deterministic(t *testing.T) {
	input := paras("A great year for safety performance.")
	assert.Equal(t, AnalyzeTone(input), AnalyzeTone(input))
}
