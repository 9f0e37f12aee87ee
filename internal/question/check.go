package question

import (
	"fmt"
	"regexp"
)

// Check verifies the constraints the JSON schema cannot express.
func (t *Template) Check() error {
	fail := func(format string, args ...any) error {
		return &SchemaError{ID: t.ID, Err: fmt.Errorf(format, args...)}
	}
	for name, p := range t.Parameters {
		if p.Step <= 0 {
			return fail("parameter %q: step must be positive", name)
		}
		if p.Max < p.Min {
			return fail("parameter %q: max %v is below min %v", name, p.Max, p.Min)
		}
	}
	for i, m := range t.CommonMistakes {
		if m.Range != nil && len(m.Range) != 2 {
			return fail("common mistake %d: range needs exactly two bounds", i)
		}
		if m.Pattern != "" {
			if _, err := regexp.Compile(m.Pattern); err != nil {
				return fail("common mistake %d: %v", i, err)
			}
		}
	}
	switch t.Type {
	case TypeMCQ:
		correct := 0
		for _, o := range t.Options {
			if o.IsCorrect {
				correct++
			}
		}
		if correct == 0 {
			return fail("mcq has no correct option")
		}
	case TypeDCL:
		if t.Schema == nil || len(t.Schema.Forces)+len(t.Schema.Supports) == 0 {
			return fail("dcl question needs a schema with forces or supports")
		}
	case TypeEquation:
		if len(t.RequiredEquations) == 0 {
			return fail("equation question needs required equations")
		}
	case TypeNumeric:
		if len(t.Answer) == 0 && !t.HasFormula() {
			return fail("numeric question needs an answer or an answer formula")
		}
	}
	return nil
}
