package formula

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind describes the shape a formula was authored in.
type Kind int

const (
	KindSingle Kind = iota // one expression
	KindList               // array of independent expressions
	KindNamed              // object of named expressions that may reference each other
)

// Output is one named expression of a set. List outputs are named by their
// index ("0", "1", ...).
type Output struct {
	Name string
	Expr *Expr
}

// Result is the value computed for one output.
type Result struct {
	Name  string
	Value float64
}

// Set is an ordered collection of expressions, kept in authoring order.
type Set struct {
	Kind    Kind
	Outputs []Output
}

// ParseSet compiles a formula from its JSON encoding. The value may be a
// JSON string holding one expression, a JSON string whose text is itself an
// object or array, an array of expression strings, or an object mapping
// names to expressions. Object key order is preserved.
func ParseSet(raw json.RawMessage) (*Set, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, ErrEmptyExpression
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("decode formula string: %w", err)
		}
		return ParseSetString(s)
	case '[':
		return parseList(raw)
	case '{':
		return parseNamed(raw)
	default:
		return nil, fmt.Errorf("formula: unsupported JSON value %s", truncate(string(raw), 40))
	}
}

// ParseSetString compiles a formula authored as text. Text starting with
// '{' or '[' is decoded as JSON first.
func ParseSetString(s string) (*Set, error) {
	t := strings.TrimSpace(s)
	if strings.HasPrefix(t, "{") || strings.HasPrefix(t, "[") {
		return ParseSet(json.RawMessage(t))
	}
	e, err := Parse(t)
	if err != nil {
		return nil, err
	}
	return &Set{Kind: KindSingle, Outputs: []Output{{Name: "answer", Expr: e}}}, nil
}

func parseList(raw json.RawMessage) (*Set, error) {
	var srcs []string
	if err := json.Unmarshal(raw, &srcs); err != nil {
		return nil, fmt.Errorf("decode formula list: %w", err)
	}
	set := &Set{Kind: KindList}
	for i, src := range srcs {
		e, err := Parse(src)
		if err != nil {
			return nil, fmt.Errorf("formula[%d]: %w", i, err)
		}
		set.Outputs = append(set.Outputs, Output{Name: strconv.Itoa(i), Expr: e})
	}
	return set, nil
}

func parseNamed(raw json.RawMessage) (*Set, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decode formula object: %w", err)
	}
	set := &Set{Kind: KindNamed}
	seen := map[string]bool{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode formula object: %w", err)
		}
		name, _ := tok.(string)
		var src string
		if err := dec.Decode(&src); err != nil {
			return nil, fmt.Errorf("formula %q: expression must be a string: %w", name, err)
		}
		if seen[name] {
			return nil, fmt.Errorf("formula: duplicate output %q", name)
		}
		seen[name] = true
		e, err := Parse(src)
		if err != nil {
			return nil, fmt.Errorf("formula %q: %w", name, err)
		}
		set.Outputs = append(set.Outputs, Output{Name: name, Expr: e})
	}
	return set, nil
}

// Order returns output indices in evaluation order. For named sets an
// output is evaluated after every output whose name it references; ties keep
// authoring order. Other kinds evaluate in authoring order.
func (s *Set) Order() ([]int, error) {
	n := len(s.Outputs)
	order := make([]int, 0, n)
	if s.Kind != KindNamed {
		for i := range s.Outputs {
			order = append(order, i)
		}
		return order, nil
	}

	// Kahn's algorithm over name references.
	indegree := make([]int, n)
	dependents := make([][]int, n)
	for i, out := range s.Outputs {
		for j, dep := range s.Outputs {
			if i != j && out.Expr.References(dep.Name) {
				indegree[i]++
				dependents[j] = append(dependents[j], i)
			}
		}
	}
	done := make([]bool, n)
	for len(order) < n {
		next := -1
		for i := 0; i < n; i++ {
			if !done[i] && indegree[i] == 0 {
				next = i
				break
			}
		}
		if next < 0 {
			var names []string
			for i := 0; i < n; i++ {
				if !done[i] {
					names = append(names, s.Outputs[i].Name)
				}
			}
			return nil, &CycleError{Names: names}
		}
		done[next] = true
		order = append(order, next)
		for _, d := range dependents[next] {
			indegree[d]--
		}
	}
	return order, nil
}

// Evaluate computes every output against vars and returns the results in
// authoring order. Named outputs become visible to the outputs evaluated
// after them; vars itself is not modified.
func (s *Set) Evaluate(vars map[string]float64) ([]Result, error) {
	order, err := s.Order()
	if err != nil {
		return nil, err
	}
	scope := make(map[string]float64, len(vars)+len(s.Outputs))
	for k, v := range vars {
		scope[k] = v
	}
	results := make([]Result, len(s.Outputs))
	for _, i := range order {
		out := s.Outputs[i]
		v, err := out.Expr.Eval(scope)
		if err != nil {
			return nil, fmt.Errorf("evaluate %q: %w", out.Name, err)
		}
		if s.Kind == KindNamed {
			scope[out.Name] = v
		}
		results[i] = Result{Name: out.Name, Value: v}
	}
	return results, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
