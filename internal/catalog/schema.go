// internal/catalog/schema.go
package catalog

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// operatingHoursSchema constrains the operating_hours JSONB document stored
// per business: lowercase weekday keys, each a day schedule whose open and
// close times are zero-padded "HH:MM" strings.
const operatingHoursSchema = `{
	"type": "object",
	"additionalProperties": false,
	"patternProperties": {
		"^(monday|tuesday|wednesday|thursday|friday|saturday|sunday)$": {
			"type": "object",
			"properties": {
				"isOpen":    {"type": "boolean"},
				"openTime":  {"type": "string", "pattern": "^([01][0-9]|2[0-3]):[0-5][0-9]$"},
				"closeTime": {"type": "string", "pattern": "^([01][0-9]|2[0-3]):[0-5][0-9]$"},
				"is24Hours": {"type": "boolean"}
			},
			"required": ["isOpen"],
			"additionalProperties": false
		}
	}
}`

// compiledHoursSchema is built once; the schema text is a constant.
var compiledHoursSchema = mustCompileSchema(operatingHoursSchema)

func mustCompileSchema(src string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("catalog: invalid operating-hours schema: %v", err))
	}
	return s
}

// validateHoursDocument checks a raw operating_hours JSONB payload against
// the schema. Returns a short reason on failure, empty string when valid.
func validateHoursDocument(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	result, err := compiledHoursSchema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Sprintf("unparseable hours document: %v", err)
	}
	if !result.Valid() {
		for _, desc := range result.Errors() {
			return desc.String()
		}
	}
	return ""
}
