package question

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/rokuro32/staticamaster/internal/formula"
	"github.com/rokuro32/staticamaster/internal/random"
)

// Instantiator resolves templates into instances. It holds no per-call
// state and is safe for concurrent use: every call builds its own stream.
type Instantiator struct {
	log *zap.Logger
	now func() time.Time
}

// InstantiatorOption configures an Instantiator.
type InstantiatorOption func(*Instantiator)

// WithLogger sets the logger used to report malformed formulas.
func WithLogger(l *zap.Logger) InstantiatorOption {
	return func(in *Instantiator) {
		if l != nil {
			in.log = l
		}
	}
}

// WithClock sets the clock used to derive daily seeds.
func WithClock(now func() time.Time) InstantiatorOption {
	return func(in *Instantiator) {
		if now != nil {
			in.now = now
		}
	}
}

// NewInstantiator returns an Instantiator with a no-op logger and the wall
// clock unless overridden.
func NewInstantiator(opts ...InstantiatorOption) *Instantiator {
	in := &Instantiator{log: zap.NewNop(), now: time.Now}
	for _, o := range opts {
		o(in)
	}
	return in
}

// DailySeed is the seed used when the caller supplies none: every learner
// loading t on the same day gets the same variant.
func (in *Instantiator) DailySeed(t *Template) int64 {
	return random.DailySeed(t.ID, in.now())
}

// Daily instantiates t with its daily seed.
func (in *Instantiator) Daily(t *Template) *Instance {
	return in.Instantiate(t, in.DailySeed(t))
}

// Instantiate resolves t for seed. The same (t, seed) pair always yields an
// identical instance. A template without parameters keeps its givens and
// answer as authored. When the answer formula cannot be evaluated the
// authored answer is kept and the failure is logged.
func (in *Instantiator) Instantiate(t *Template, seed int64) *Instance {
	inst := &Instance{
		Template:           *t,
		Seed:               seed,
		InstantiatedGivens: copyGivens(t.Givens),
		InstantiatedAnswer: append(Answers(nil), t.Answer...),
	}

	if len(t.Parameters) > 0 {
		rng := random.New(seed).Func()
		for _, name := range sortedParameterNames(t.Parameters) {
			p := t.Parameters[name]
			v := random.InRange(p.Min, p.Max, p.Step, rng)
			inst.InstantiatedGivens[name] = Number(random.RoundTo(v, p.DecimalPlaces))
		}

		if t.HasFormula() {
			if err := in.recompute(inst); err != nil {
				in.log.Warn("answer formula failed, keeping authored answer",
					zap.String("question_id", t.ID),
					zap.Int64("seed", seed),
					zap.Error(err),
				)
				inst.InstantiatedAnswer = append(Answers(nil), t.Answer...)
			}
		}
	}

	inst.RenderedStatement = Render(t.Statement, inst.InstantiatedGivens)
	return inst
}

// recompute evaluates the answer formula and writes the results into the
// instance's answers.
func (in *Instantiator) recompute(inst *Instance) error {
	set, err := formula.ParseSet(inst.AnswerFormula)
	if err != nil {
		return err
	}
	results, err := set.Evaluate(numericGivens(inst.InstantiatedGivens))
	if err != nil {
		return err
	}
	inst.InstantiatedAnswer = assignResults(set.Kind, inst.InstantiatedAnswer, results)
	return nil
}

// assignResults pairs formula results with answers: by name when the answer
// is named, otherwise by position. A lone answer takes the output named
// "answer", else the last output. Answers without a pairing keep their
// authored value. With no authored answers, one is created per result.
func assignResults(kind formula.Kind, answers Answers, results []formula.Result) Answers {
	if len(results) == 0 {
		return answers
	}
	if len(answers) == 0 {
		out := make(Answers, len(results))
		for i, r := range results {
			out[i] = Answer{Value: r.Value}
			if kind == formula.KindNamed {
				out[i].Name = r.Name
			}
		}
		return out
	}

	byName := make(map[string]float64, len(results))
	for _, r := range results {
		byName[r.Name] = r.Value
	}

	if len(answers) == 1 {
		a := answers[0]
		switch v, ok := byName[a.Name]; {
		case a.Name != "" && ok:
			a.Value = v
		case kind == formula.KindNamed:
			if v, ok := byName["answer"]; ok {
				a.Value = v
			} else {
				a.Value = results[len(results)-1].Value
			}
		default:
			a.Value = results[0].Value
		}
		return Answers{a}
	}

	for i := range answers {
		if answers[i].Name != "" {
			if v, ok := byName[answers[i].Name]; ok {
				answers[i].Value = v
				continue
			}
		}
		if i < len(results) {
			answers[i].Value = results[i].Value
		}
	}
	return answers
}

func sortedParameterNames(params map[string]Parameter) []string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func copyGivens(givens map[string]Value) map[string]Value {
	out := make(map[string]Value, len(givens))
	for k, v := range givens {
		out[k] = v
	}
	return out
}

var defaultInstantiator = NewInstantiator()

// Instantiate resolves t for seed with the default Instantiator.
func Instantiate(t *Template, seed int64) *Instance {
	return defaultInstantiator.Instantiate(t, seed)
}
