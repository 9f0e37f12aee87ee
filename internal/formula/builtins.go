package formula

import "math"

// builtin is a function callable from an expression.
type builtin struct {
	arity int
	fn    func(args []float64) float64
}

func unary(f func(float64) float64) builtin {
	return builtin{arity: 1, fn: func(a []float64) float64 { return f(a[0]) }}
}

func binary(f func(float64, float64) float64) builtin {
	return builtin{arity: 2, fn: func(a []float64) float64 { return f(a[0], a[1]) }}
}

// builtins is the closed function set of the formula language. Angles are
// radians; rad and deg convert.
var builtins = map[string]builtin{
	"sin":   unary(math.Sin),
	"cos":   unary(math.Cos),
	"tan":   unary(math.Tan),
	"asin":  unary(math.Asin),
	"acos":  unary(math.Acos),
	"atan":  unary(math.Atan),
	"atan2": binary(math.Atan2),
	"sqrt":  unary(math.Sqrt),
	"abs":   unary(math.Abs),
	"pow":   binary(math.Pow),
	"rad":   unary(func(x float64) float64 { return x * math.Pi / 180 }),
	"deg":   unary(func(x float64) float64 { return x * 180 / math.Pi }),
}

// constants are resolved after context variables, so a template may shadow
// them with its own givens.
var constants = map[string]float64{
	"PI": math.Pi,
}

// IsBuiltin reports whether name is a function or constant of the language.
func IsBuiltin(name string) bool {
	if _, ok := builtins[name]; ok {
		return true
	}
	_, ok := constants[name]
	return ok
}
