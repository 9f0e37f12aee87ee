// Package report renders questions, validation results and progress for
// the terminal.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/rokuro32/staticamaster/internal/question"
	"github.com/rokuro32/staticamaster/internal/quiz"
	"github.com/rokuro32/staticamaster/internal/store"
	"github.com/rokuro32/staticamaster/internal/validation"
)

const barWidth = 24

var feedbackIcons = map[validation.FeedbackType]struct {
	icon  string
	color lipgloss.Style
}{
	validation.FeedbackSuccess: {"✓", lipgloss.NewStyle().Foreground(Success)},
	validation.FeedbackError:   {"✗", lipgloss.NewStyle().Foreground(Error)},
	validation.FeedbackWarning: {"!", lipgloss.NewStyle().Foreground(Warning)},
	validation.FeedbackHint:    {"?", lipgloss.NewStyle().Foreground(Accent)},
	validation.FeedbackInfo:    {"i", lipgloss.NewStyle().Foreground(Info)},
}

// Question writes an instantiated question: header, statement, givens and,
// for multiple choice, the options.
func Question(w io.Writer, q *question.Instance) error {
	var b strings.Builder

	header := fmt.Sprintf("%s  %s", q.ID, q.Type)
	if q.Difficulty != "" {
		header += "  " + string(q.Difficulty)
	}
	b.WriteString(titleStyle.Render(header) + "\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("module %s  seed %d", q.ModuleID, q.Seed)) + "\n\n")
	b.WriteString(bodyStyle.Render(q.RenderedStatement) + "\n")

	if len(q.InstantiatedGivens) > 0 {
		names := make([]string, 0, len(q.InstantiatedGivens))
		for name := range q.InstantiatedGivens {
			names = append(names, name)
		}
		sort.Strings(names)
		b.WriteString("\n" + labelStyle.Render("Données") + "\n")
		for _, name := range names {
			fmt.Fprintf(&b, "  %s = %s\n", name, q.InstantiatedGivens[name])
		}
	}

	if len(q.Options) > 0 {
		b.WriteString("\n")
		for _, o := range q.Options {
			fmt.Fprintf(&b, "  %s) %s\n", o.ID, o.Text)
		}
	}
	if len(q.RequiredEquations) > 0 && q.Type == question.TypeEquation {
		b.WriteString("\n" + hintStyle.Render("Sélectionnez les équations nécessaires.") + "\n")
	}

	_, err := io.WriteString(w, cardStyle.Render(strings.TrimRight(b.String(), "\n"))+"\n")
	return err
}

// Quiz writes every question of q in order.
func Quiz(w io.Writer, q *quiz.Quiz) error {
	title := fmt.Sprintf("Quiz %s (%d questions, seed %d)", q.ModuleID, len(q.Questions), q.Seed)
	if _, err := io.WriteString(w, titleStyle.Render(title)+"\n"); err != nil {
		return err
	}
	for i, inst := range q.Questions {
		if _, err := fmt.Fprintf(w, "\n%s\n", labelStyle.Render(fmt.Sprintf("Question %d", i+1))); err != nil {
			return err
		}
		if err := Question(w, inst); err != nil {
			return err
		}
	}
	return nil
}

// Result writes a validation result: verdict, score bar and one line per
// feedback item.
func Result(w io.Writer, r *validation.Result) error {
	var b strings.Builder

	switch {
	case r.IsCorrect:
		b.WriteString(correctStyle.Render("Correct"))
	case r.PartialCredit:
		b.WriteString(lipgloss.NewStyle().Foreground(Warning).Bold(true).Render("Partiellement correct"))
	default:
		b.WriteString(incorrectStyle.Render("Incorrect"))
	}
	b.WriteString("  " + ScoreBar(r.Score, barWidth) + "\n")

	for _, f := range r.Feedback {
		style, ok := feedbackIcons[f.Type]
		if !ok {
			style = feedbackIcons[validation.FeedbackInfo]
		}
		line := style.color.Render(style.icon) + " " + f.Message
		if f.Target != "" {
			line += " " + labelStyle.Render("["+f.Target+"]")
		}
		b.WriteString(line + "\n")
		if f.Suggestion != "" {
			b.WriteString("  " + hintStyle.Render(f.Suggestion) + "\n")
		}
	}
	if len(r.CompetenciesAssessed) > 0 {
		b.WriteString(labelStyle.Render("Compétences : "+strings.Join(r.CompetenciesAssessed, ", ")) + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Progress writes one line per competency with its level and average.
func Progress(w io.Writer, userID string, progress []store.CompetencyProgress) error {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Progression de "+userID) + "\n")
	if len(progress) == 0 {
		b.WriteString(hintStyle.Render("Aucune tentative enregistrée.") + "\n")
	}

	width := 0
	for _, p := range progress {
		width = max(width, lipgloss.Width(p.Competency))
	}
	for _, p := range progress {
		name := p.Competency + strings.Repeat(" ", width-lipgloss.Width(p.Competency))
		fmt.Fprintf(&b, "%s  %s  %-10s %d/%d\n",
			bodyStyle.Render(name),
			ScoreBar(p.AverageScore(), barWidth),
			p.Level, p.Correct, p.Attempts,
		)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// ScoreBar renders score (0-100) as a bar of width cells followed by the
// rounded score.
func ScoreBar(score float64, width int) string {
	if width < 4 {
		width = 4
	}
	filled := int(float64(width) * score / 100)
	filled = min(max(filled, 0), width)

	return barFilled.Render(strings.Repeat(" ", filled)) +
		barEmpty.Render(strings.Repeat(" ", width-filled)) +
		labelStyle.Render(fmt.Sprintf(" %3.0f%%", score))
}
