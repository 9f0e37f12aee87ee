// Package validation scores learner submissions against instantiated
// questions. Every call returns a renderable Result; invalid or incomplete
// submissions score zero with an explanatory feedback item.
package validation

import (
	"go.uber.org/zap"

	"github.com/rokuro32/staticamaster/internal/question"
)

// Strategy scores one question type.
type Strategy interface {
	Validate(q *question.Instance, a *UserAnswer) Result
}

// Engine routes a submission to the strategy registered for its question
// type. It is safe for concurrent use.
type Engine struct {
	cfg        Config
	log        *zap.Logger
	strategies map[question.Type]Strategy
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for unsupported question types.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithStrategy registers s for t, replacing any built-in strategy.
func WithStrategy(t question.Type, s Strategy) Option {
	return func(e *Engine) { e.strategies[t] = s }
}

// New returns an Engine with the built-in strategies for cfg.
func New(cfg Config, opts ...Option) *Engine {
	mcq := mcqStrategy{}
	numeric := numericStrategy{cfg: cfg}
	dcl := dclStrategy{cfg: cfg}
	eq := equationStrategy{cfg: cfg}
	e := &Engine{
		cfg: cfg,
		log: zap.NewNop(),
		strategies: map[question.Type]Strategy{
			question.TypeMCQ:      mcq,
			question.TypeNumeric:  numeric,
			question.TypeDCL:      dcl,
			question.TypeEquation: eq,
			question.TypeMulti: multiStepStrategy{
				cfg:      cfg,
				dcl:      dcl,
				equation: eq,
				numeric:  numeric,
			},
		},
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Config returns the policy the engine was built with.
func (e *Engine) Config() Config { return e.cfg }

// Validate scores a against q.
func (e *Engine) Validate(q *question.Instance, a *UserAnswer) *Result {
	if a == nil {
		a = &UserAnswer{}
	}
	var r Result
	if s, ok := e.strategies[q.Type]; ok {
		r = s.Validate(q, a)
	} else {
		e.log.Debug("no validation strategy",
			zap.String("question_id", q.ID),
			zap.String("type", string(q.Type)),
		)
		r = fail("type", "Type de question non pris en charge : "+string(q.Type), "")
	}
	r.CompetenciesAssessed = append([]string(nil), q.Competencies...)
	if r.Feedback == nil {
		r.Feedback = []Feedback{}
	}
	return &r
}

// Validate scores a against q under cfg with a throwaway Engine.
func Validate(q *question.Instance, a *UserAnswer, cfg Config) *Result {
	return New(cfg).Validate(q, a)
}
