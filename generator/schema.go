package generator

import (
	"bytes"
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// ValuesSchema generates the JSON schema of the values.yaml file: a mapping
// from resource key to the extracted resource values. Helm validates the
// values against values.schema.json when rendering the chart.
func ValuesSchema() ([]byte, error) {
	s := jsonschema.Reflect(map[string]ResourceValues{})

	c, err := s.MarshalJSON()
	if err != nil {
		return nil, err
	}
	// indent the json
	var out bytes.Buffer
	if err := json.Indent(&out, c, "", "  "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}
