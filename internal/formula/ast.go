package formula

// node is an element of a parsed expression tree.
type node interface {
	eval(vars map[string]float64) (float64, error)
	// visitIdents calls f for every free identifier under the node.
	visitIdents(f func(name string))
}

type numberNode struct {
	val float64
}

func (n numberNode) eval(map[string]float64) (float64, error) { return n.val, nil }
func (numberNode) visitIdents(func(string))                    {}

type identNode struct {
	name string
}

func (n identNode) eval(vars map[string]float64) (float64, error) {
	if v, ok := vars[n.name]; ok {
		return v, nil
	}
	if v, ok := constants[n.name]; ok {
		return v, nil
	}
	return 0, &UnknownIdentError{Name: n.name}
}

func (n identNode) visitIdents(f func(string)) { f(n.name) }

type unaryNode struct {
	op tokenKind
	x  node
}

func (n unaryNode) eval(vars map[string]float64) (float64, error) {
	v, err := n.x.eval(vars)
	if err != nil {
		return 0, err
	}
	if n.op == tokMinus {
		return -v, nil
	}
	return v, nil
}

func (n unaryNode) visitIdents(f func(string)) { n.x.visitIdents(f) }

type binaryNode struct {
	op          tokenKind
	left, right node
}

func (n binaryNode) eval(vars map[string]float64) (float64, error) {
	l, err := n.left.eval(vars)
	if err != nil {
		return 0, err
	}
	r, err := n.right.eval(vars)
	if err != nil {
		return 0, err
	}
	switch n.op {
	case tokPlus:
		return l + r, nil
	case tokMinus:
		return l - r, nil
	case tokStar:
		return l * r, nil
	default:
		return l / r, nil
	}
}

func (n binaryNode) visitIdents(f func(string)) {
	n.left.visitIdents(f)
	n.right.visitIdents(f)
}

type callNode struct {
	name string
	fn   builtin
	args []node
}

func (n callNode) eval(vars map[string]float64) (float64, error) {
	vals := make([]float64, len(n.args))
	for i, a := range n.args {
		v, err := a.eval(vars)
		if err != nil {
			return 0, err
		}
		vals[i] = v
	}
	return n.fn.fn(vals), nil
}

func (n callNode) visitIdents(f func(string)) {
	for _, a := range n.args {
		a.visitIdents(f)
	}
}
