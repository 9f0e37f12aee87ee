package validation

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"sync"

	"github.com/rokuro32/staticamaster/internal/compare"
	"github.com/rokuro32/staticamaster/internal/question"
)

type numericStrategy struct {
	cfg Config
}

func (s numericStrategy) Validate(q *question.Instance, a *UserAnswer) Result {
	if a.NumericValue == nil {
		return fail("value", "Aucune valeur numérique saisie.", "Entrez un nombre avant de valider.")
	}
	expected, ok := expectedAnswer(q)
	if !ok {
		return fail("answer", "Aucune réponse attendue n'est définie pour cette question.", "")
	}
	return s.check(q, *a.NumericValue, a.Unit, expected)
}

// expectedAnswer prefers the recomputed answer over the authored one.
func expectedAnswer(q *question.Instance) (question.Answer, bool) {
	if a, ok := q.InstantiatedAnswer.Primary(); ok {
		return a, true
	}
	return q.Answer.Primary()
}

func (s numericStrategy) check(q *question.Instance, value float64, unit string, expected question.Answer) Result {
	tol, kind := expected.Tolerance, expected.ToleranceType
	if tol == 0 {
		tol = s.cfg.DefaultTolerance
	}
	if !kind.Valid() {
		kind = s.cfg.DefaultToleranceType
	}

	nv := &NumericValidation{
		UserValue:       value,
		ExpectedValue:   expected.Value,
		Tolerance:       tol,
		ToleranceType:   kind,
		WithinTolerance: compare.ApproximatelyEqual(value, expected.Value, tol, kind),
		SignCorrect:     compare.SameSign(value, expected.Value),
		UnitCorrect:     expected.Unit == "" || compare.UnitsEquivalent(unit, expected.Unit),
	}
	pe := compare.PercentError(value, expected.Value)
	if !math.IsInf(pe, 0) {
		nv.PercentError = &pe
	}

	r := Result{NumericValidation: nv}

	if m, ok := s.matchMistake(q.CommonMistakes, value); ok {
		nv.MatchedMistake = true
		r.add(FeedbackHint, "value", m.Feedback, m.Suggestion)
	}

	r.IsCorrect = nv.WithinTolerance && (nv.UnitCorrect || !s.cfg.RequireCorrectUnits)
	switch {
	case r.IsCorrect:
		r.Score = 100
	case !s.cfg.EnablePartialCredit:
	case nv.WithinTolerance && !nv.UnitCorrect:
		r.Score = 80
	case nv.SignCorrect && pe < 50:
		r.Score = math.Round(50 - pe)
	}
	r.PartialCredit = !r.IsCorrect && r.Score > 0

	if r.IsCorrect {
		r.add(FeedbackSuccess, "value", "Bonne réponse !", "")
	}
	if !nv.SignCorrect {
		r.add(FeedbackError, "sign", "Le signe de votre réponse est incorrect.",
			"Vérifiez l'orientation de vos axes et le sens des forces.")
	}
	if !nv.WithinTolerance {
		r.add(FeedbackError, "value", toleranceMessage(pe, tol, kind),
			"Reprenez le calcul étape par étape.")
	}
	if !nv.UnitCorrect {
		msg := fmt.Sprintf("Unité attendue : %s", expected.Unit)
		if s.cfg.RequireCorrectUnits {
			r.add(FeedbackError, "unit", msg, "")
		} else if unit != "" {
			r.add(FeedbackWarning, "unit", msg, "")
		}
	}
	return r
}

// matchMistake returns the first authored mistake value matches: an exact
// value within the configured percent window, a closed range, or a regular
// expression over the formatted value.
func (s numericStrategy) matchMistake(mistakes []question.CommonMistake, value float64) (question.CommonMistake, bool) {
	text := strconv.FormatFloat(value, 'f', -1, 64)
	for _, m := range mistakes {
		switch {
		case m.Value != nil:
			if compare.ApproximatelyEqual(value, *m.Value, s.cfg.MistakeMatchTolerance, compare.Percent) {
				return m, true
			}
		case len(m.Range) == 2:
			if value >= m.Range[0] && value <= m.Range[1] {
				return m, true
			}
		case m.Pattern != "":
			re, err := mistakePattern(m.Pattern)
			if err == nil && re.MatchString(text) {
				return m, true
			}
		}
	}
	return question.CommonMistake{}, false
}

// mistakePatterns caches compiled common mistake patterns by source text.
var mistakePatterns sync.Map // map[string]*regexp.Regexp

func mistakePattern(pattern string) (*regexp.Regexp, error) {
	if cached, ok := mistakePatterns.Load(pattern); ok {
		return cached.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	actual, _ := mistakePatterns.LoadOrStore(pattern, re)
	return actual.(*regexp.Regexp), nil
}

func toleranceMessage(pe, tol float64, kind compare.ToleranceKind) string {
	if math.IsInf(pe, 0) {
		return "La valeur est en dehors de la tolérance acceptée."
	}
	if kind == compare.Percent {
		return fmt.Sprintf("Écart de %.1f %% (tolérance : %g %%).", pe, tol)
	}
	return fmt.Sprintf("Écart de %.1f %% (tolérance : ±%g).", pe, tol)
}
