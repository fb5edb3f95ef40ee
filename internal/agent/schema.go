package agent

import (
	"bytes"
	"encoding/json"

	"github.com/rotisserie/eris"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// buildReportSchema returns the JSON-Schema (draft 2020-12 subset) for
// the six-KPI extraction result as a generic map. It is embedded in the
// prompt as the output contract and used locally to validate the
// response before decoding. Every KPI slot is explicitly nullable; a
// null is a valid, expected answer for an ungrounded metric.
func buildReportSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"company_name": map[string]any{"type": "string"},
			"fiscal_year":  map[string]any{"type": "string"},
			"environment": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"ghg_intensity":    kpiProp(),
					"renewable_energy": kpiProp(),
				},
				"required": []string{"ghg_intensity", "renewable_energy"},
			},
			"social": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"trir":                kpiProp(),
					"women_in_leadership": kpiProp(),
				},
				"required": []string{"trir", "women_in_leadership"},
			},
			"governance": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"supplier_esg_score": kpiProp(),
					"traceability":       kpiProp(),
				},
				"required": []string{"supplier_esg_score", "traceability"},
			},
		},
		"required": []string{"company_name", "fiscal_year", "environment", "social", "governance"},
	}
}

// kpiProp is the schema for one nullable KPI slot. The value carries a
// number, a strict numeric string, or a short categorical label, never
// free-running prose.
func kpiProp() map[string]any {
	return map[string]any{
		"type": []string{"object", "null"},
		"additionalProperties": false,
		"properties": map[string]any{
			"name": map[string]any{"type": "string"},
			"value": map[string]any{
				"type":      []string{"number", "string"},
				"maxLength": 40,
			},
			"unit":               map[string]any{"type": "string"},
			"year":               map[string]any{"type": "string"},
			"trend":              map[string]any{"type": []string{"string", "null"}},
			"standard_alignment": map[string]any{"type": []string{"string", "null"}},
			"numerator":          map[string]any{"type": []string{"number", "null"}},
			"denominator":        map[string]any{"type": []string{"number", "null"}},
		},
		"required": []string{"name", "value", "unit"},
	}
}

// validateAgainstSchema validates raw JSON against the schema map.
func validateAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return eris.Wrap(err, "agent: marshal schema")
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return eris.Wrap(err, "agent: add schema resource")
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return eris.Wrap(err, "agent: compile schema")
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return eris.Wrap(err, "agent: response is not JSON")
	}
	if err := schema.Validate(v); err != nil {
		return eris.Wrap(err, "agent: response does not match schema")
	}
	return nil
}
