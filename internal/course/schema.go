package course

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

const courseSchemaJSON = `{
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "title": {"type": "string"},
    "welcome": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "heading": {"type": "string"},
        "message": {"type": "string"}
      }
    }
  }
}`

const moduleSchemaJSON = `{
  "type": "object",
  "additionalProperties": false,
  "required": ["id", "title", "lessons"],
  "properties": {
    "id": {"type": "string", "minLength": 1},
    "title": {"type": "string", "minLength": 1},
    "description": {"type": "string"},
    "lessons": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "required": ["id", "title", "content"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "title": {"type": "string", "minLength": 1},
          "content": {"type": "string"},
          "quiz": {
            "type": "array",
            "items": {
              "type": "object",
              "additionalProperties": false,
              "required": ["question", "options", "answer"],
              "properties": {
                "question": {"type": "string", "minLength": 1},
                "options": {"type": "array", "minItems": 2, "items": {"type": "string"}},
                "answer": {"type": "integer", "minimum": 0}
              }
            }
          },
          "exercises": {
            "type": "array",
            "items": {
              "type": "object",
              "additionalProperties": false,
              "required": ["scenario", "expected_command"],
              "properties": {
                "scenario": {"type": "string", "minLength": 1},
                "expected_command": {"type": "string"}
              }
            }
          }
        }
      }
    }
  }
}`

var (
	courseSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
		return gojsonschema.NewSchema(gojsonschema.NewStringLoader(courseSchemaJSON))
	})
	moduleSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
		return gojsonschema.NewSchema(gojsonschema.NewStringLoader(moduleSchemaJSON))
	})
)

// validateDoc checks a YAML document against a compiled schema.
func validateDoc(schema func() (*gojsonschema.Schema, error), data []byte) error {
	s, err := schema()
	if err != nil {
		return fmt.Errorf("compiling schema: %w", err)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing yaml: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}

	res, err := s.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("validating: %w", err)
	}
	if res.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("schema violations: %s", strings.Join(msgs, "; "))
}
