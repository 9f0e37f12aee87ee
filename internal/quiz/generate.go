// Package quiz assembles quizzes: a seeded selection of templates from the
// question bank, each instantiated with its own derived seed.
package quiz

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rokuro32/staticamaster/internal/question"
	"github.com/rokuro32/staticamaster/internal/random"
)

// DefaultCount is the quiz length used when a request does not set one.
const DefaultCount = 10

// ErrNoQuestions is returned when the bank has no template for a request.
var ErrNoQuestions = errors.New("no questions match the request")

// Source is the question repository a quiz draws templates from.
type Source interface {
	Select(moduleID, courseID string) []*question.Template
}

// Request describes the quiz to build. A nil Seed selects the daily seed of
// the module, so every learner gets the same quiz on a given day.
type Request struct {
	ModuleID string
	CourseID string
	Count    int
	Seed     *int64
}

// Quiz is an ordered list of instantiated questions.
type Quiz struct {
	ModuleID  string               `json:"moduleId"`
	CourseID  string               `json:"courseId,omitempty"`
	Seed      int64                `json:"seed"`
	Questions []*question.Instance `json:"questions"`
}

type options struct {
	log *zap.Logger
	now func() time.Time
}

// Option configures Generate.
type Option func(*options)

// WithLogger sets the logger passed to the instantiator.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithClock sets the clock used for the daily seed.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// Generate builds a quiz. Candidates are shuffled by a stream seeded with
// the base seed, the first Count are kept, and the i-th is instantiated
// with seed base+i.
func Generate(src Source, req Request, opts ...Option) (*Quiz, error) {
	o := options{log: zap.NewNop(), now: time.Now}
	for _, fn := range opts {
		fn(&o)
	}
	if req.ModuleID == "" {
		return nil, fmt.Errorf("quiz: module id is required")
	}
	count := req.Count
	if count <= 0 {
		count = DefaultCount
	}

	candidates := src.Select(req.ModuleID, req.CourseID)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("module %q course %q: %w", req.ModuleID, req.CourseID, ErrNoQuestions)
	}

	base := random.DailySeed(req.ModuleID, o.now())
	if req.Seed != nil {
		base = *req.Seed
	}

	picked := append([]*question.Template(nil), candidates...)
	rng := random.New(base)
	rng.Shuffle(len(picked), func(i, j int) { picked[i], picked[j] = picked[j], picked[i] })
	if len(picked) > count {
		picked = picked[:count]
	}

	in := question.NewInstantiator(question.WithLogger(o.log), question.WithClock(o.now))
	q := &Quiz{
		ModuleID:  req.ModuleID,
		CourseID:  req.CourseID,
		Seed:      base,
		Questions: make([]*question.Instance, len(picked)),
	}
	for i, t := range picked {
		q.Questions[i] = in.Instantiate(t, base+int64(i))
	}

	o.log.Debug("quiz generated",
		zap.String("module", req.ModuleID),
		zap.String("course", req.CourseID),
		zap.Int64("seed", base),
		zap.Int("questions", len(q.Questions)),
	)
	return q, nil
}
