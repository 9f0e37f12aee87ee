package formula

import (
	"math"
	"sort"
	"strings"
)

// Grammar:
//
//	expr    = term { ("+" | "-") term }
//	term    = unary { ("*" | "/") unary }
//	unary   = ("+" | "-") unary | primary
//	primary = number | ident | ident "(" [ expr { "," expr } ] ")" | "(" expr ")"

// Expr is a parsed, reusable expression.
type Expr struct {
	src  string
	root node
}

// Parse compiles src into an expression tree. Only the closed operator and
// function set of the language is accepted; nothing in src is executed.
func Parse(src string) (*Expr, error) {
	if strings.TrimSpace(src) == "" {
		return nil, ErrEmptyExpression
	}
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	root, err := p.expr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, &SyntaxError{Pos: t.pos, Msg: "unexpected " + describe(t)}
	}
	return &Expr{src: src, root: root}, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// package-level fixtures.
func MustParse(src string) *Expr {
	e, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return e
}

// String returns the source text.
func (e *Expr) String() string { return e.src }

// Eval evaluates the expression against vars.
func (e *Expr) Eval(vars map[string]float64) (float64, error) {
	v, err := e.root.eval(vars)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNonFinite
	}
	return v, nil
}

// Identifiers returns the sorted, de-duplicated free identifiers referenced
// by the expression. Built-in constants are included; function names are not.
func (e *Expr) Identifiers() []string {
	seen := map[string]bool{}
	e.root.visitIdents(func(name string) { seen[name] = true })
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// References reports whether the expression uses name as an identifier.
func (e *Expr) References(name string) bool {
	found := false
	e.root.visitIdents(func(n string) {
		if n == name {
			found = true
		}
	})
	return found
}

// Evaluate parses and evaluates src in one step.
func Evaluate(src string, vars map[string]float64) (float64, error) {
	e, err := Parse(src)
	if err != nil {
		return 0, err
	}
	return e.Eval(vars)
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) expect(k tokenKind) (token, error) {
	t := p.next()
	if t.kind != k {
		return t, &SyntaxError{Pos: t.pos, Msg: "expected " + k.String() + ", found " + describe(t)}
	}
	return t, nil
}

func (p *parser) expr() (node, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		k := p.peek().kind
		if k != tokPlus && k != tokMinus {
			return left, nil
		}
		p.next()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: k, left: left, right: right}
	}
}

func (p *parser) term() (node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		k := p.peek().kind
		if k != tokStar && k != tokSlash {
			return left, nil
		}
		p.next()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: k, left: left, right: right}
	}
}

func (p *parser) unary() (node, error) {
	k := p.peek().kind
	if k == tokPlus || k == tokMinus {
		p.next()
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		return unaryNode{op: k, x: x}, nil
	}
	return p.primary()
}

func (p *parser) primary() (node, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return numberNode{val: t.num}, nil
	case tokLParen:
		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return inner, nil
	case tokIdent:
		if p.peek().kind != tokLParen {
			return identNode{name: t.text}, nil
		}
		return p.call(t)
	default:
		return nil, &SyntaxError{Pos: t.pos, Msg: "unexpected " + describe(t)}
	}
}

func (p *parser) call(name token) (node, error) {
	fn, ok := builtins[name.text]
	if !ok {
		return nil, &SyntaxError{Pos: name.pos, Msg: "unknown function " + name.text}
	}
	p.next() // (
	var args []node
	if p.peek().kind != tokRParen {
		for {
			a, err := p.expr()
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			if p.peek().kind != tokComma {
				break
			}
			p.next()
		}
	}
	if _, err := p.expect(tokRParen); err != nil {
		return nil, err
	}
	if len(args) != fn.arity {
		return nil, &ArityError{Func: name.text, Want: fn.arity, Got: len(args)}
	}
	return callNode{name: name.text, fn: fn, args: args}, nil
}

func describe(t token) string {
	if t.kind == tokNumber || t.kind == tokIdent {
		return t.kind.String() + " " + t.text
	}
	return t.kind.String()
}
