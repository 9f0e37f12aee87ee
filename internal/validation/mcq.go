package validation

import "github.com/rokuro32/staticamaster/internal/question"

type mcqStrategy struct{}

func (mcqStrategy) Validate(q *question.Instance, a *UserAnswer) Result {
	if a.SelectedOption == "" {
		return fail("option", "Aucune option sélectionnée.", "Choisissez une réponse avant de valider.")
	}

	var selected, correct *question.Option
	for i := range q.Options {
		o := &q.Options[i]
		if o.ID == a.SelectedOption {
			selected = o
		}
		if o.IsCorrect && correct == nil {
			correct = o
		}
	}
	if selected == nil {
		return fail("option", "Option inconnue : "+a.SelectedOption, "")
	}

	var r Result
	if selected.IsCorrect {
		r.IsCorrect = true
		r.Score = 100
		r.add(FeedbackSuccess, "option", orDefault(selected.Feedback, "Bonne réponse !"), "")
		return r
	}
	r.add(FeedbackError, "option", orDefault(selected.Feedback, "Réponse incorrecte."), "")
	if correct != nil {
		r.add(FeedbackInfo, "option", "La bonne réponse était : "+correct.Text, "")
	}
	return r
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
