package question

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// SchemaError describes a template document that does not conform to
// TemplateSchema.
type SchemaError struct {
	ID  string // template id, when it could be read
	Err error
}

func (e *SchemaError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("template %q: %v", e.ID, e.Err)
	}
	return fmt.Sprintf("template: %v", e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

var (
	pointSchema = map[string]any{
		"type":     "object",
		"required": []any{"x", "y"},
		"properties": map[string]any{
			"x": map[string]any{"type": "number"},
			"y": map[string]any{"type": "number"},
		},
	}

	answerSchema = map[string]any{
		"type":     "object",
		"required": []any{"value"},
		"properties": map[string]any{
			"name":          map[string]any{"type": "string"},
			"value":         map[string]any{"type": "number"},
			"unit":          map[string]any{"type": "string"},
			"tolerance":     map[string]any{"type": "number", "minimum": 0},
			"toleranceType": map[string]any{"enum": []any{"absolute", "percent"}},
		},
	}
)

// TemplateSchema is the JSON schema every bank template must satisfy.
var TemplateSchema = map[string]any{
	"type":     "object",
	"required": []any{"id", "moduleId", "type", "statement"},
	"properties": map[string]any{
		"id":           map[string]any{"type": "string", "minLength": 1},
		"moduleId":     map[string]any{"type": "string", "minLength": 1},
		"courseId":     map[string]any{"type": "string"},
		"competencies": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"difficulty":   map[string]any{"enum": []any{"beginner", "intermediate", "advanced"}},
		"type": map[string]any{"enum": []any{
			"mcq", "numeric", "dcl", "equation", "multi-step",
			"wave-sketch", "wave-match", "parameter-identify",
		}},
		"statement": map[string]any{"type": "string", "minLength": 1},
		"givens": map[string]any{
			"type":                 "object",
			"additionalProperties": map[string]any{"type": []any{"number", "string"}},
		},
		"parameters": map[string]any{
			"type": "object",
			"additionalProperties": map[string]any{
				"type":     "object",
				"required": []any{"min", "max", "step"},
				"properties": map[string]any{
					"min":           map[string]any{"type": "number"},
					"max":           map[string]any{"type": "number"},
					"step":          map[string]any{"type": "number", "exclusiveMinimum": 0},
					"decimalPlaces": map[string]any{"type": "integer", "minimum": 0, "maximum": 10},
				},
			},
		},
		"answerFormula": map[string]any{
			"oneOf": []any{
				map[string]any{"type": "string"},
				map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				map[string]any{"type": "object", "additionalProperties": map[string]any{"type": "string"}},
			},
		},
		"answer": map[string]any{
			"oneOf": []any{answerSchema, map[string]any{"type": "array", "items": answerSchema}},
		},
		"options": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id", "text"},
				"properties": map[string]any{
					"id":        map[string]any{"type": "string"},
					"text":      map[string]any{"type": "string"},
					"isCorrect": map[string]any{"type": "boolean"},
					"feedback":  map[string]any{"type": "string"},
				},
			},
		},
		"commonMistakes": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"feedback"},
				"properties": map[string]any{
					"value":    map[string]any{"type": "number"},
					"range":    map[string]any{"type": "array", "items": map[string]any{"type": "number"}, "minItems": 2, "maxItems": 2},
					"pattern":  map[string]any{"type": "string"},
					"feedback": map[string]any{"type": "string"},
				},
			},
		},
		"schema": map[string]any{
			"type":     "object",
			"required": []any{"forces"},
			"properties": map[string]any{
				"forces": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type":     "object",
						"required": []any{"name", "applicationPoint", "angle"},
						"properties": map[string]any{
							"name":             map[string]any{"type": "string"},
							"applicationPoint": pointSchema,
							"angle":            map[string]any{"type": "number"},
						},
					},
				},
				"supports": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type":     "object",
						"required": []any{"type", "position"},
						"properties": map[string]any{
							"type":     map[string]any{"enum": []any{"pin", "roller", "fixed", "cable", "link"}},
							"position": pointSchema,
						},
					},
				},
			},
		},
		"requiredEquations": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
	},
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// templateSchema returns the compiled TemplateSchema, compiling it once.
func templateSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a decoded JSON value, so round-trip the Go map.
		defBytes, err := json.Marshal(TemplateSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal template schema: %w", err)
			return
		}
		var def any
		if err := json.Unmarshal(defBytes, &def); err != nil {
			compileErr = fmt.Errorf("parse template schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://question-template.json"
		if err := c.AddResource(url, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(url)
	})
	return compiledSchema, compileErr
}

// ValidateJSON checks one raw template document against TemplateSchema.
// It returns a *SchemaError on failure.
func ValidateJSON(raw json.RawMessage) error {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return &SchemaError{Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	id := ""
	if m, ok := doc.(map[string]any); ok {
		id, _ = m["id"].(string)
	}
	sch, err := templateSchema()
	if err != nil {
		return &SchemaError{ID: id, Err: err}
	}
	if err := sch.Validate(doc); err != nil {
		return &SchemaError{ID: id, Err: err}
	}
	return nil
}

// Decode validates raw against TemplateSchema, decodes it and runs Check.
func Decode(raw json.RawMessage) (*Template, error) {
	if err := ValidateJSON(raw); err != nil {
		return nil, err
	}
	var t Template
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, &SchemaError{Err: err}
	}
	if err := t.Check(); err != nil {
		return nil, err
	}
	return &t, nil
}
