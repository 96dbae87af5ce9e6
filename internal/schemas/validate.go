// Package schemas validates model extraction payloads against embedded JSON
// Schema documents before they are unmarshalled. Malformed model output is
// rejected with field-path errors instead of producing a partial trait.
package schemas

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Embedded schema documents for the three model payloads. The CLI runs from
// arbitrary working directories, so schemas ship inside the binary rather
// than as files on disk.
const (
	// KeywordPayload is the keyword extraction response schema
	KeywordPayload = `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["keywords"],
		"properties": {
			"keywords": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["phrase"],
					"properties": {
						"phrase": {"type": "string", "minLength": 1},
						"score": {"type": "number", "minimum": 0, "maximum": 1}
					}
				}
			}
		}
	}`

	// EntityPayload is the entity tagging response schema
	EntityPayload = `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["entities"],
		"properties": {
			"entities": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["text", "label"],
					"properties": {
						"text": {"type": "string", "minLength": 1},
						"label": {"type": "string", "minLength": 1}
					}
				}
			}
		}
	}`

	// SentimentPayload is the sentiment classification response schema
	SentimentPayload = `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["label"],
		"properties": {
			"label": {"type": "string", "minLength": 1},
			"confidence": {"type": "number", "minimum": 0, "maximum": 1}
		}
	}`
)

// ValidationError represents a schema validation failure with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError represents errors loading or parsing a schema or document
type SchemaLoadError struct {
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema: %s", e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// ValidatePayload validates JSON content against one of the embedded schema
// documents. Returns nil when valid, *ValidationError when the document fails
// the schema, *SchemaLoadError when either side cannot be parsed.
func ValidatePayload(schemaContent, jsonContent string) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaContent)
	documentLoader := gojsonschema.NewStringLoader(jsonContent)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{Message: "schema validation failed during load", Cause: err}
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
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
