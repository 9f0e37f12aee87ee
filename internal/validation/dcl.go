package validation

import (
	"math"
	"strings"

	"github.com/rokuro32/staticamaster/internal/compare"
	"github.com/rokuro32/staticamaster/internal/question"
)

type dclStrategy struct {
	cfg Config
}

func (s dclStrategy) Validate(q *question.Instance, a *UserAnswer) Result {
	if q.Schema == nil {
		return fail("schema", "Cette question n'a pas de diagramme de référence.", "")
	}
	return s.check(q.Schema, a.Forces, a.Supports)
}

// check classifies every expected force independently. A placed force
// matches an expected one when it carries the same name, or when it sits
// within the position tolerance and points within the angle window. An
// expected force is in the wrong direction when something is placed at its
// point with an angle outside the window and no placement there points the
// right way. Matching is not one-to-one: one placement may satisfy several
// expected forces.
func (s dclStrategy) check(schema *question.DCLSchema, forces []question.Force, supports []question.Support) Result {
	dv := &DCLValidation{
		CorrectForces:  []string{},
		MissingForces:  []string{},
		ExtraForces:    []string{},
		WrongDirection: []string{},
	}

	used := make([]bool, len(forces))
	for _, want := range schema.Forces {
		var matched, aligned, misaligned bool
		for j, got := range forces {
			named := sameName(want.Name, got.Name)
			near := compare.Distance(want.ApplicationPoint, got.ApplicationPoint) <= s.cfg.DCLPositionTolerance
			pointed := compare.AnglesSimilar(want.Angle, got.Angle, s.cfg.DCLAngleTolerance)
			if named || (near && pointed) {
				matched, used[j] = true, true
			}
			if near {
				aligned = aligned || pointed
				misaligned = misaligned || !pointed
			}
		}
		wrong := misaligned && !aligned
		switch {
		case !matched:
			dv.MissingForces = append(dv.MissingForces, want.Name)
		case !wrong:
			dv.CorrectForces = append(dv.CorrectForces, want.Name)
		}
		if wrong {
			dv.WrongDirection = append(dv.WrongDirection, want.Name)
		}
	}
	for j, got := range forces {
		if !used[j] {
			dv.ExtraForces = append(dv.ExtraForces, forceLabel(got))
		}
	}

	dv.SupportsCorrect = s.supportsMatch(schema.Supports, supports)
	dv.TotalElements = len(schema.Forces) + len(schema.Supports)
	dv.CorrectElements = len(dv.CorrectForces)
	if dv.SupportsCorrect {
		dv.CorrectElements += len(schema.Supports)
	}

	r := Result{DCLValidation: dv}
	if dv.TotalElements > 0 {
		r.Score = math.Round(100 * float64(dv.CorrectElements) / float64(dv.TotalElements))
	} else {
		r.Score = 100
	}
	r.IsCorrect = r.Score == 100
	r.PartialCredit = !r.IsCorrect && r.Score > 0

	if len(dv.MissingForces) > 0 {
		r.add(FeedbackError, "forces", "Forces manquantes : "+strings.Join(dv.MissingForces, ", "),
			"Isolez le corps et recensez chaque action extérieure.")
	}
	if len(dv.WrongDirection) > 0 {
		r.add(FeedbackError, "forces", "Direction incorrecte : "+strings.Join(dv.WrongDirection, ", "),
			"Vérifiez le sens et l'angle de ces forces.")
	}
	if len(dv.ExtraForces) > 0 {
		r.add(FeedbackWarning, "forces", "Forces en trop : "+strings.Join(dv.ExtraForces, ", "), "")
	}
	if !dv.SupportsCorrect {
		r.add(FeedbackError, "supports", "Les appuis ne correspondent pas au schéma attendu.",
			"Vérifiez le type et la position de chaque appui.")
	}
	if len(r.Feedback) == 0 {
		r.add(FeedbackSuccess, "dcl", "Diagramme correct !", "")
	}
	return r
}

// supportsMatch reports whether every expected support has a distinct
// placed support of the same type at the expected position.
func (s dclStrategy) supportsMatch(want []question.Support, got []question.Support) bool {
	used := make([]bool, len(got))
	for _, w := range want {
		found := false
		for j, g := range got {
			if !used[j] && g.Type == w.Type &&
				compare.Distance(w.Position, g.Position) <= s.cfg.DCLPositionTolerance {
				used[j], found = true, true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// sameName compares force labels exactly: N and n are different forces.
func sameName(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	return a != "" && a == b
}

func forceLabel(f question.Force) string {
	if f.Name != "" {
		return f.Name
	}
	if f.ID != "" {
		return f.ID
	}
	return "?"
}
