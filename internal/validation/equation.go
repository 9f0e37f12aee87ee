package validation

import (
	"math"
	"strings"

	"github.com/rokuro32/staticamaster/internal/question"
)

type equationStrategy struct {
	cfg Config
}

func (s equationStrategy) Validate(q *question.Instance, a *UserAnswer) Result {
	if len(q.RequiredEquations) == 0 {
		return fail("equations", "Cette question ne définit aucune équation attendue.", "")
	}
	return s.check(q.RequiredEquations, a.SelectedEquations)
}

func (s equationStrategy) check(required, selected []string) Result {
	required, selected = dedupe(required), dedupe(selected)
	isRequired := toSet(required)
	isSelected := toSet(selected)

	ev := &EquationValidation{
		Required: required,
		Selected: selected,
		Missing:  []string{},
		Extra:    []string{},
	}
	for _, id := range required {
		if !isSelected[id] {
			ev.Missing = append(ev.Missing, id)
		}
	}
	for _, id := range selected {
		if !isRequired[id] {
			ev.Extra = append(ev.Extra, id)
		}
	}

	r := Result{EquationValidation: ev}
	found := len(required) - len(ev.Missing)
	score := math.Round(100*float64(found)/float64(len(required))) -
		s.cfg.EquationExtraPenalty*float64(len(ev.Extra))
	r.Score = math.Max(score, 0)
	r.IsCorrect = len(ev.Missing) == 0 && len(ev.Extra) == 0
	r.PartialCredit = !r.IsCorrect && r.Score > 0

	if r.IsCorrect {
		r.add(FeedbackSuccess, "equations", "Toutes les équations nécessaires sont sélectionnées.", "")
		return r
	}
	if len(ev.Missing) > 0 {
		r.add(FeedbackError, "equations", "Équations manquantes : "+strings.Join(ev.Missing, ", "),
			"Combien d'inconnues devez-vous déterminer ?")
	}
	if len(ev.Extra) > 0 {
		r.add(FeedbackWarning, "equations", "Équations superflues : "+strings.Join(ev.Extra, ", "), "")
	}
	return r
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := map[string]bool{}
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func toSet(ids []string) map[string]bool {
	m := make(map[string]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}
