package formula

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyExpression is returned when an expression has no tokens.
var ErrEmptyExpression = errors.New("formula: empty expression")

// ErrNonFinite is returned when evaluation produces NaN or an infinity.
var ErrNonFinite = errors.New("formula: result is not a finite number")

// SyntaxError reports a malformed expression.
type SyntaxError struct {
	Pos int    // byte offset in the source
	Msg string // what went wrong
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("formula: syntax error at offset %d: %s", e.Pos, e.Msg)
}

// UnknownIdentError reports an identifier that is neither a variable in
// the evaluation context nor a built-in constant.
type UnknownIdentError struct {
	Name string
}

func (e *UnknownIdentError) Error() string {
	return fmt.Sprintf("formula: unknown identifier %q", e.Name)
}

// ArityError reports a function call with the wrong number of arguments.
type ArityError struct {
	Func string
	Want int
	Got  int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("formula: %s expects %d argument(s), got %d", e.Func, e.Want, e.Got)
}

// CycleError reports named formulas that depend on each other.
type CycleError struct {
	Names []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("formula: dependency cycle between %s", strings.Join(e.Names, ", "))
}
