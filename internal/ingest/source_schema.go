package ingest

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// selectorConfigSchema constrains the config blob stored with HTML
// sources. Every field is an optional non-empty string; unknown keys
// are rejected so selector typos surface at save time, not mid-ingest.
const selectorConfigSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "HTML source selector configuration",
  "type": "object",
  "properties": {
    "list_selector": {"type": "string", "minLength": 1},
    "title_selector": {"type": "string", "minLength": 1},
    "location_selector": {"type": "string", "minLength": 1},
    "company_selector": {"type": "string", "minLength": 1},
    "url_selector": {"type": "string", "minLength": 1},
    "description_selector": {"type": "string", "minLength": 1},
    "external_id_attr": {"type": "string", "minLength": 1}
  },
  "additionalProperties": false
}`

// ConfigValidationError lists the schema violations in a source config.
type ConfigValidationError struct {
	Errors []FieldError
}

// FieldError is a single violation at a specific config field.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ConfigValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("source config validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// ValidateSelectorConfig checks an HTML source config against the
// selector schema. A nil config is valid: every selector has a default.
func ValidateSelectorConfig(cfg map[string]any) error {
	if cfg == nil {
		return nil
	}

	schemaLoader := gojsonschema.NewStringLoader(selectorConfigSchema)
	documentLoader := gojsonschema.NewGoLoader(cfg)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("failed to validate source config: %w", err)
	}
	if result.Valid() {
		return nil
	}

	validationErr := &ConfigValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
