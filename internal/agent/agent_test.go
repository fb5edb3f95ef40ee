package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/ecoscan/internal/config"
	"github.com/sells-group/ecoscan/internal/model"
	"github.com/sells-group/ecoscan/pkg/anthropic"
)

type mockClient struct {
	mock.Mock
}

func (m *mockClient) CreateMessage(ctx context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*anthropic.MessageResponse), args.Error(1)
}

func response(text string) *anthropic.MessageResponse {
	return &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: text}},
		Usage:   anthropic.TokenUsage{InputTokens: 900, OutputTokens: 200},
	}
}

func testAgent(client anthropic.Client) *Agent {
	return New(client, config.AnthropicConfig{
		Model:     "claude-sonnet-4-5-20250929",
		MaxTokens: 4096,
	})
}

const fullResponse = `{
	"company_name": "Verdant Foods S.p.A.",
	"fiscal_year": "FY 2023",
	"environment": {
		"ghg_intensity": {"name": "GHG Intensity", "value": "550", "unit": "tCO2e/$M", "year": "2023", "standard_alignment": "GRI 305"},
		"renewable_energy": {"name": "Renewable Energy Share", "value": 62.5, "unit": "%", "year": "2023", "trend": "+4% vs FY 2022"}
	},
	"social": {
		"trir": null,
		"women_in_leadership": {"name": "Women in Leadership", "value": "38%", "unit": "%", "year": "2023"}
	},
	"governance": {
		"supplier_esg_score": null,
		"traceability": {"name": "Supply Chain Traceability", "value": "Tier 2", "unit": "tier", "year": "2023"}
	}
}`

func TestExtract_DecodesFullReport(t *testing.T) {
	client := &mockClient{}
	client.On("CreateMessage", mock.Anything, mock.Anything).
		Return(response(fullResponse), nil).Once()

	report, usage, err := testAgent(client).Extract(context.Background(), "cleaned report text")
	require.NoError(t, err)

	assert.Equal(t, "Verdant Foods S.p.A.", report.CompanyName)
	assert.Equal(t, "FY 2023", report.FiscalYear)

	require.NotNil(t, report.Environment.GHGIntensity)
	assert.Equal(t, 550.0, *report.Environment.GHGIntensity.Value.Number)
	assert.Equal(t, "GRI 305", report.Environment.GHGIntensity.Standard)
	assert.Equal(t, "+4% vs FY 2022", report.Environment.RenewableEnergy.Trend)

	assert.Nil(t, report.Social.TRIR)
	assert.Nil(t, report.Governance.SupplierESGScore)
	assert.Equal(t, "Tier 2", report.Governance.Traceability.Value.Category)

	require.NotNil(t, usage)
	assert.Equal(t, int64(900), usage.InputTokens)
	client.AssertExpectations(t)
}

func TestExtract_SingleKPIGrounding(t *testing.T) {
	// A document stating exactly one explicit KPI must yield exactly one
	// populated field; the other five stay null.
	const oneKPI = `{
		"company_name": "Acme",
		"fiscal_year": "2023",
		"environment": {"ghg_intensity": {"name": "GHG Intensity", "value": 550, "unit": "tCO2e"}, "renewable_energy": null},
		"social": {"trir": null, "women_in_leadership": null},
		"governance": {"supplier_esg_score": null, "traceability": null}
	}`
	client := &mockClient{}
	client.On("CreateMessage", mock.Anything, mock.Anything).
		Return(response(oneKPI), nil).Once()

	report, _, err := testAgent(client).Extract(context.Background(), "doc")
	require.NoError(t, err)
	assert.Len(t, report.PopulatedKPIs(), 1)
}

func TestExtract_StripsMarkdownFences(t *testing.T) {
	client := &mockClient{}
	client.On("CreateMessage", mock.Anything, mock.Anything).
		Return(response("```json\n"+fullResponse+"\n```"), nil).Once()

	report, _, err := testAgent(client).Extract(context.Background(), "doc")
	require.NoError(t, err)
	assert.Equal(t, "Verdant Foods S.p.A.", report.CompanyName)
}

func TestExtract_RecomputesDerivedRatio(t *testing.T) {
	// The model found raw components (12500 tCO2e over $25M revenue) and
	// reported a wrong quotient; the local recompute overrides it.
	const withComponents = `{
		"company_name": "Acme",
		"fiscal_year": "2023",
		"environment": {
			"ghg_intensity": {"name": "GHG Intensity", "value": 480, "unit": "tCO2e/$M", "numerator": 12500, "denominator": 25},
			"renewable_energy": null
		},
		"social": {"trir": null, "women_in_leadership": null},
		"governance": {"supplier_esg_score": null, "traceability": null}
	}`
	client := &mockClient{}
	client.On("CreateMessage", mock.Anything, mock.Anything).
		Return(response(withComponents), nil).Once()

	report, _, err := testAgent(client).Extract(context.Background(), "doc")
	require.NoError(t, err)
	assert.Equal(t, 500.0, *report.Environment.GHGIntensity.Value.Number)
}

func TestExtract_ZeroDenominatorKeepsExtractedValue(t *testing.T) {
	const zeroDenom = `{
		"company_name": "Acme",
		"fiscal_year": "2023",
		"environment": {
			"ghg_intensity": {"name": "GHG Intensity", "value": 480, "unit": "tCO2e/$M", "numerator": 12500, "denominator": 0},
			"renewable_energy": null
		},
		"social": {"trir": null, "women_in_leadership": null},
		"governance": {"supplier_esg_score": null, "traceability": null}
	}`
	client := &mockClient{}
	client.On("CreateMessage", mock.Anything, mock.Anything).
		Return(response(zeroDenom), nil).Once()

	report, _, err := testAgent(client).Extract(context.Background(), "doc")
	require.NoError(t, err)
	assert.Equal(t, 480.0, *report.Environment.GHGIntensity.Value.Number)
}

func TestExtract_MalformedResponse(t *testing.T) {
	client := &mockClient{}
	client.On("CreateMessage", mock.Anything, mock.Anything).
		Return(response("The report mentions several sustainability initiatives."), nil).Once()

	report, _, err := testAgent(client).Extract(context.Background(), "doc")

	var se *model.SchemaValidationError
	require.ErrorAs(t, err, &se)
	assert.Nil(t, report)
}

func TestExtract_FreeTextInKPISlotRejected(t *testing.T) {
	// A speculative narrative answer where a value belongs must fail
	// validation, not silently coerce.
	const speculative = `{
		"company_name": "Acme",
		"fiscal_year": "2023",
		"environment": {
			"ghg_intensity": {"name": "GHG Intensity", "value": "not disclosed but industry average suggests approximately 600 tCO2e per million", "unit": "tCO2e"},
			"renewable_energy": null
		},
		"social": {"trir": null, "women_in_leadership": null},
		"governance": {"supplier_esg_score": null, "traceability": null}
	}`
	client := &mockClient{}
	client.On("CreateMessage", mock.Anything, mock.Anything).
		Return(response(speculative), nil).Once()

	_, _, err := testAgent(client).Extract(context.Background(), "doc")

	var se *model.SchemaValidationError
	require.ErrorAs(t, err, &se)
}

func TestExtract_ModelUnavailable(t *testing.T) {
	client := &mockClient{}
	client.On("CreateMessage", mock.Anything, mock.Anything).
		Return(nil, assert.AnError).Once()

	_, _, err := testAgent(client).Extract(context.Background(), "doc")

	var me *model.ModelUnavailableError
	require.ErrorAs(t, err, &me)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestExtract_SendsSingleCall(t *testing.T) {
	client := &mockClient{}
	client.On("CreateMessage", mock.Anything, mock.Anything).
		Return(response(fullResponse), nil).Once()

	_, _, err := testAgent(client).Extract(context.Background(), "doc")
	require.NoError(t, err)

	client.AssertNumberOfCalls(t, "CreateMessage", 1)
}

func TestRecap(t *testing.T) {
	client := &mockClient{}
	client.On("CreateMessage", mock.Anything, mock.Anything).
		Return(response("Environmental coverage is partial; social and governance data are missing."), nil).Once()

	recap, usage, err := testAgent(client).Recap(context.Background(), &model.ESGReport{}, model.QualityMetrics{CSRDensity: 0.4})
	require.NoError(t, err)
	assert.Contains(t, recap, "coverage is partial")
	require.NotNil(t, usage)
	assert.Equal(t, int64(900), usage.InputTokens)
	assert.Equal(t, int64(200), usage.OutputTokens)
}
