package pipeline

import (
	"strings"

	"github.com/sells-group/ecoscan/internal/model"
)

// AggregateMetrics combines the density, token, extraction, and tone
// measurements into the final quality bundle. Pure function; every
// division guards its denominator with a 0 result.
func AggregateMetrics(corpus *model.RelevantCorpus, account model.TokenAccount, report *model.ESGReport, tone float64) model.QualityMetrics {
	m := model.QualityMetrics{
		CSRDensity:   corpus.CSRDensity,
		ToneEmphasis: tone,
		TokensRaw:    account.TokensRaw,
		TokensClean:  account.TokensClean,
		ReductionPct: account.ReductionPct(),
	}

	if account.TokensClean > 0 {
		m.ConcisenessProxy = float64(kpiValueTokens(report)) / float64(account.TokensClean)
	}

	return m
}

// kpiValueTokens counts the tokens underlying only the non-null KPI
// values the agent returned.
func kpiValueTokens(report *model.ESGReport) int {
	if report == nil {
		return 0
	}
	var parts []string
	for _, kpi := range report.PopulatedKPIs() {
		parts = append(parts, kpi.Value.String(), kpi.Unit, kpi.Year, kpi.Trend, kpi.Standard)
	}
	return CountTokens(strings.Join(parts, " "))
}
