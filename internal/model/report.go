package model

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// maxCategoryLen bounds a categorical KPI value. Anything longer is
// narrative text the model was told not to produce.
const maxCategoryLen = 40

// KPIValue is the tagged-variant decoding of a KPI measurement: either a
// number, or a short categorical label (qualitative KPIs such as supply
// chain traceability tiers). Free-running prose is rejected at decode.
type KPIValue struct {
	Number   *float64
	Category string
}

// IsNumeric reports whether the value carries a number.
func (v KPIValue) IsNumeric() bool { return v.Number != nil }

// String renders the value for display and token accounting.
func (v KPIValue) String() string {
	if v.Number != nil {
		return strconv.FormatFloat(*v.Number, 'f', -1, 64)
	}
	return v.Category
}

// UnmarshalJSON accepts a JSON number, a strict numeric string, or a
// short categorical label. null yields the zero value.
func (v *KPIValue) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*v = KPIValue{}
		return nil
	}

	// Bare number.
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		v.Number = &n
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("kpi value: expected number, numeric string, or label, got %s", s)
	}
	str = strings.TrimSpace(str)

	// Numeric string ("550", "22.5", "85%", "22,5", "12,500").
	if n, ok := parseNumericString(str); ok {
		v.Number = &n
		return nil
	}

	// Short categorical label. Sentence-length text is rejected.
	if str == "" {
		*v = KPIValue{}
		return nil
	}
	if len(str) > maxCategoryLen || strings.Count(str, " ") > 3 {
		return fmt.Errorf("kpi value: free text %q rejected, expected number or short label", str)
	}
	v.Category = str
	return nil
}

var (
	decimalCommaPattern = regexp.MustCompile(`^\d+,\d{1,2}$`)
	groupedCommaPattern = regexp.MustCompile(`^\d{1,3}(,\d{3})+(\.\d+)?$`)
)

// parseNumericString interprets a model-supplied numeric string. A comma
// is a decimal separator only in the short European form ("22,5"); in
// the grouped form ("12,500", "1,234,567.8") commas are thousands
// separators and are stripped. Any other comma use is not numeric and
// falls through to the categorical path.
func parseNumericString(s string) (float64, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	switch {
	case decimalCommaPattern.MatchString(s):
		s = strings.Replace(s, ",", ".", 1)
	case groupedCommaPattern.MatchString(s):
		s = strings.ReplaceAll(s, ",", "")
	}
	n, err := strconv.ParseFloat(s, 64)
	return n, err == nil
}

// MarshalJSON emits the number when present, otherwise the label or null.
func (v KPIValue) MarshalJSON() ([]byte, error) {
	if v.Number != nil {
		return json.Marshal(*v.Number)
	}
	if v.Category != "" {
		return json.Marshal(v.Category)
	}
	return []byte("null"), nil
}

// KPI is a single extracted ESG indicator. A nil *KPI in a pillar means
// the report contained no explicit supporting text for that metric.
type KPI struct {
	Name  string   `json:"name"`
	Value KPIValue `json:"value"`
	Unit  string   `json:"unit"`
	Year  string   `json:"year,omitempty"`
	// Trend is copied verbatim from the report when explicitly stated,
	// never computed.
	Trend    string `json:"trend,omitempty"`
	Standard string `json:"standard_alignment,omitempty"`
	// Numerator/Denominator are the raw components the model found when a
	// ratio KPI is stated as separate figures. When present, Value is
	// recomputed locally from them.
	Numerator   *float64 `json:"numerator,omitempty"`
	Denominator *float64 `json:"denominator,omitempty"`
}

// EnvironmentalPillar holds the E-pillar KPIs.
type EnvironmentalPillar struct {
	GHGIntensity    *KPI `json:"ghg_intensity"`
	RenewableEnergy *KPI `json:"renewable_energy"`
}

// SocialPillar holds the S-pillar KPIs.
type SocialPillar struct {
	TRIR              *KPI `json:"trir"`
	WomenInLeadership *KPI `json:"women_in_leadership"`
}

// GovernancePillar holds the G-pillar KPIs.
type GovernancePillar struct {
	SupplierESGScore *KPI `json:"supplier_esg_score"`
	Traceability     *KPI `json:"traceability"`
}

// ESGReport is the structured extraction result for one document.
// Every KPI field is independently nullable; a populated field must be
// grounded in explicit report text.
type ESGReport struct {
	CompanyName string              `json:"company_name"`
	FiscalYear  string              `json:"fiscal_year"`
	Environment EnvironmentalPillar `json:"environment"`
	Social      SocialPillar        `json:"social"`
	Governance  GovernancePillar    `json:"governance"`
	Recap       string              `json:"recap,omitempty"`
}

// KPIs returns the six KPI slots in a fixed order. Nil entries are
// included so callers can count coverage.
func (r *ESGReport) KPIs() []*KPI {
	return []*KPI{
		r.Environment.GHGIntensity,
		r.Environment.RenewableEnergy,
		r.Social.TRIR,
		r.Social.WomenInLeadership,
		r.Governance.SupplierESGScore,
		r.Governance.Traceability,
	}
}

// PopulatedKPIs returns only the non-nil KPIs.
func (r *ESGReport) PopulatedKPIs() []*KPI {
	var out []*KPI
	for _, k := range r.KPIs() {
		if k != nil {
			out = append(out, k)
		}
	}
	return out
}
