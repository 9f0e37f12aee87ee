package validation

import (
	"math"

	"github.com/rokuro32/staticamaster/internal/question"
)

type multiStepStrategy struct {
	cfg      Config
	dcl      dclStrategy
	equation equationStrategy
	numeric  numericStrategy
}

// Validate runs each step the question and answer both provide and
// averages the weighted step scores over the number of steps run.
func (s multiStepStrategy) Validate(q *question.Instance, a *UserAnswer) Result {
	var (
		r     Result
		total float64
		steps int
	)

	if q.Schema != nil && len(a.Forces) > 0 {
		sub := s.dcl.check(q.Schema, a.Forces, a.Supports)
		r.DCLValidation = sub.DCLValidation
		r.Feedback = append(r.Feedback, tagged(sub.Feedback, "dcl")...)
		total += sub.Score * s.cfg.DCLWeight
		steps++
	}
	if len(q.RequiredEquations) > 0 && len(a.SelectedEquations) > 0 {
		sub := s.equation.check(q.RequiredEquations, a.SelectedEquations)
		r.EquationValidation = sub.EquationValidation
		r.Feedback = append(r.Feedback, tagged(sub.Feedback, "equations")...)
		total += sub.Score * s.cfg.EquationWeight
		steps++
	}
	if a.FinalAnswer != nil {
		if expected, ok := expectedAnswer(q); ok {
			sub := s.numeric.check(q, *a.FinalAnswer, a.Unit, expected)
			r.NumericValidation = sub.NumericValidation
			r.Feedback = append(r.Feedback, tagged(sub.Feedback, "calculation")...)
			total += sub.Score * s.cfg.CalculationWeight
			steps++
		}
	}

	if steps == 0 {
		return fail("steps", "Aucune étape n'a pu être évaluée.",
			"Complétez au moins une étape de la résolution.")
	}

	r.Score = math.Min(100, math.Round(total/float64(steps)))
	r.IsCorrect = r.Score >= s.cfg.MultiStepPassThreshold
	r.PartialCredit = !r.IsCorrect && r.Score > 0
	return r
}

// tagged prefixes each item's target with the step it came from.
func tagged(items []Feedback, step string) []Feedback {
	out := make([]Feedback, len(items))
	for i, f := range items {
		if f.Target == "" {
			f.Target = step
		} else {
			f.Target = step + "." + f.Target
		}
		out[i] = f
	}
	return out
}
