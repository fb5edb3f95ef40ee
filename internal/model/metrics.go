package model

// QualityMetrics bundles the data-quality proxies computed around one
// extraction run.
type QualityMetrics struct {
	CSRDensity       float64 `json:"csr_density"`
	ConcisenessProxy float64 `json:"conciseness_proxy"`
	ToneEmphasis     float64 `json:"tone_emphasis_score"`
	TokensRaw        int     `json:"tokens_raw"`
	TokensClean      int     `json:"tokens_clean"`
	ReductionPct     float64 `json:"reduction_pct"`
}

// PipelineResult is the terminal artifact of one pipeline invocation.
// It owns no reference back to the raw document.
type PipelineResult struct {
	Report   *ESGReport     `json:"esg_report"`
	Metrics  QualityMetrics `json:"quality_metrics"`
	Keywords []string       `json:"keywords"`
}
