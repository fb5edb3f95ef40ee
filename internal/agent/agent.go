// Package agent issues the single structured-extraction call against the
// inference endpoint and enforces the strict-grounding contract on its
// output.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/ecoscan/internal/config"
	"github.com/sells-group/ecoscan/internal/model"
	"github.com/sells-group/ecoscan/pkg/anthropic"
)

const systemPrompt = `You are an expert ESG analyst for a top-tier consultancy.
Your task is to extract structured ESG data from corporate sustainability reports.

You will receive the pre-processed, cleaned text of one report. Extract exactly six
Key Performance Indicators and map them onto the JSON schema provided.

## KPI DEFINITIONS
1. GHG Intensity (E1, environment): Scope 1+2 emissions normalized by revenue (e.g. tCO2e/$M).
2. Renewable Energy Share (E2, environment): percentage of electricity from renewable sources.
3. TRIR (S1, social): Total Recordable Incident Rate.
4. Women in Leadership (S2, social): percentage of women in managerial/executive roles.
5. Supplier ESG Score (G1, governance): average supplier assessment score or coverage (e.g. EcoVadis, Sedex).
6. Supply Chain Traceability (G2, governance): share of raw materials traceable to source, or the stated traceability tier.

## CRITICAL RULES
- value MUST be a clean number or percentage (e.g. "550", "22.5"). No narrative text in value.
- unit is extracted separately (e.g. "tCO2e/$M", "%", "TRIR", "Score").
- trend: copy ONLY if explicitly stated in the text (e.g. "-5% vs prior year"). NEVER calculate it.
- When a ratio KPI is stated as separate raw figures (e.g. total emissions and revenue),
  put them in numerator and denominator and DO NOT divide them yourself.
- STRICT GROUNDING: extract ONLY data explicitly present in the text. Do not infer,
  estimate, or guess missing values. A metric without explicit supporting text is null.
- Respond with a single JSON object conforming to the schema. No prose around it.`

const recapPrompt = `You are an ESG data analyst. Write a SHORT, NEUTRAL executive summary
(4-5 sentences maximum) based ONLY on the structured data below.

GUIDELINES:
- Summarize which ESG areas (Environment, Social, Governance) have data coverage.
- Explicitly mention missing or incomplete metrics.
- Mention trends only where present in the data.
- Reference the data-quality metrics (CSR density, conciseness) where relevant.
- Do NOT add outside knowledge, interpretation, or filler. Do NOT praise the company.

INPUT DATA:
%s

QUALITY METRICS:
- CSR density: %.4f (signal-to-noise ratio)
- Conciseness: %.4f (structured output efficiency)`

// Agent performs structured KPI extraction through one model call per
// document. Constructed once per process and reused per call.
type Agent struct {
	client anthropic.Client
	cfg    config.AnthropicConfig
	schema map[string]any
	system []anthropic.SystemBlock
}

// New creates an Agent with explicit configuration. Credentials arrive
// here, never from ambient lookup at call time.
func New(client anthropic.Client, cfg config.AnthropicConfig) *Agent {
	return &Agent{
		client: client,
		cfg:    cfg,
		schema: buildReportSchema(),
		system: anthropic.BuildCachedSystemBlocks(systemPrompt),
	}
}

// Extract runs the single extraction call against the cleaned corpus
// text and returns the validated report. Null KPI fields are valid
// output; a malformed response is a *model.SchemaValidationError and a
// transport/auth failure is a *model.ModelUnavailableError.
func (a *Agent) Extract(ctx context.Context, corpusText string) (*model.ESGReport, *anthropic.TokenUsage, error) {
	schemaJSON, err := json.Marshal(a.schema)
	if err != nil {
		return nil, nil, &model.SchemaValidationError{Detail: "marshal schema", Err: err}
	}

	prompt := fmt.Sprintf("Output schema:\n%s\n\nReport content:\n\n%s", schemaJSON, corpusText)

	temperature := 0.0
	resp, err := a.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       a.cfg.Model,
		MaxTokens:   a.cfg.MaxTokens,
		System:      a.system,
		Temperature: &temperature,
		Messages: []anthropic.Message{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return nil, nil, &model.ModelUnavailableError{Err: err}
	}

	raw := []byte(cleanJSON(resp.Text()))
	if err := validateAgainstSchema(a.schema, raw); err != nil {
		return nil, nil, &model.SchemaValidationError{Detail: "model output rejected", Err: err}
	}

	var report model.ESGReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, nil, &model.SchemaValidationError{Detail: "decode report", Err: err}
	}

	recomputeDerived(&report)

	usage := resp.Usage
	usage.LogCost(a.cfg.Model, "extract")

	zap.L().Info("agent: extraction complete",
		zap.String("company", report.CompanyName),
		zap.String("fiscal_year", report.FiscalYear),
		zap.Int("kpis_populated", len(report.PopulatedKPIs())),
	)
	return &report, &usage, nil
}

// Recap generates a strictly data-grounded executive summary from the
// structured report. Advisory: failure is logged and returned, but the
// caller treats an empty recap as acceptable.
func (a *Agent) Recap(ctx context.Context, report *model.ESGReport, metrics model.QualityMetrics) (string, *anthropic.TokenUsage, error) {
	data, err := json.Marshal(report)
	if err != nil {
		return "", nil, err
	}

	resp, err := a.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     a.cfg.Model,
		MaxTokens: 1024,
		Messages: []anthropic.Message{
			{Role: "user", Content: fmt.Sprintf(recapPrompt, data, metrics.CSRDensity, metrics.ConcisenessProxy)},
		},
	})
	if err != nil {
		return "", nil, &model.ModelUnavailableError{Err: err}
	}

	usage := resp.Usage
	usage.LogCost(a.cfg.Model, "recap")
	return strings.TrimSpace(resp.Text()), &usage, nil
}

// recomputeDerived replaces model-computed ratio values with a local
// deterministic quotient whenever the raw components are present. A zero
// denominator leaves the extracted value untouched.
func recomputeDerived(report *model.ESGReport) {
	for _, kpi := range report.PopulatedKPIs() {
		if kpi.Numerator == nil || kpi.Denominator == nil || *kpi.Denominator == 0 {
			continue
		}
		q := *kpi.Numerator / *kpi.Denominator
		kpi.Value = model.KPIValue{Number: &q}
	}
}

// cleanJSON strips markdown code fences and surrounding prose, keeping
// the outermost JSON object.
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)

	// Strip markdown code fences.
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	// Find first { and last }.
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}

	return strings.TrimSpace(text)
}
