package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopKeywords_IDFDiscountsUbiquitousTerms(t *testing.T) {
	// "sustainability" appears in every paragraph, "packaging" in one.
	// With an empty exclusion list, the inverse-document-frequency
	// discount must rank "packaging" above "sustainability".
	corpus := []string{
		"sustainability packaging goals",
		"sustainability targets ambitions",
		"sustainability milestones ambitions",
	}

	kws := TopKeywords(corpus, nil, 10)

	require.NotEmpty(t, kws)
	pkg, sus := indexOf(kws, "packaging"), indexOf(kws, "sustainability")
	require.NotEqual(t, -1, pkg)
	if sus != -1 {
		assert.Less(t, pkg, sus)
	}
}

func TestTopKeywords_ExclusionListFilters(t *testing.T) {
	corpus := []string{"packaging traceability report", "report packaging audits"}

	kws := TopKeywords(corpus, []string{"report"}, 10)

	assert.NotContains(t, kws, "report")
	assert.Contains(t, kws, "packaging")
}

func TestTopKeywords_TiesBreakByFirstSeen(t *testing.T) {
	// "alpha" and "beta" have identical tf and df; "alpha" is seen first.
	corpus := []string{"alpha beta", "gamma delta"}

	kws := TopKeywords(corpus, nil, 4)

	require.Len(t, kws, 4)
	assert.Less(t, indexOf(kws, "alpha"), indexOf(kws, "beta"))
	assert.Less(t, indexOf(kws, "gamma"), indexOf(kws, "delta"))
}

func TestTopKeywords_TopNAndEmpty(t *testing.T) {
	assert.Nil(t, TopKeywords(nil, nil, 5))
	assert.Nil(t, TopKeywords([]string{"packaging emissions"}, nil, 0))

	kws := TopKeywords([]string{"packaging emissions audits", "waste recycling"}, nil, 2)
	assert.Len(t, kws, 2)
}

func TestTopKeywords_ShortAndNumericTokensIgnored(t *testing.T) {
	kws := TopKeywords([]string{"co packaging 12 traceability"}, nil, 10)

	assert.NotContains(t, kws, "co")
	assert.NotContains(t, kws, "12")
	assert.Contains(t, kws, "traceability")
}

func indexOf(list []string, term string) int {
	for i, s := range list {
		if s == term {
			return i
		}
	}
	return -1
}
