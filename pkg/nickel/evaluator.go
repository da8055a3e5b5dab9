package nickel

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"time"
)

// Evaluator is a tree-walking interpreter holding all process-wide state
// for one interpretation run: the function table, the argument stack and
// the PRNG backing the 'rand' built-in. Every piece of mutable state lives
// on this struct rather than behind package-level globals, so more than
// one independent interpreter can exist in the same process (useful for
// tests run with t.Parallel()), matching spec.md §5's "process-wide state"
// framing as "one Evaluator per process" instead.
type Evaluator struct {
	functions *FunctionTable
	args      *ArgStack
	rng       *rand.Rand
	out       io.Writer
}

// NewEvaluator returns an Evaluator that prints to os.Stdout, with its
// PRNG seeded from wall-clock time (spec.md §4.5).
func NewEvaluator() *Evaluator {
	return NewEvaluatorWithOutput(os.Stdout)
}

// NewEvaluatorWithOutput returns an Evaluator identical to NewEvaluator but
// printing ('print'/'pfmt') to out instead of os.Stdout. Tests use this to
// capture the interpreter's sole output channel without touching the real
// process stdout.
func NewEvaluatorWithOutput(out io.Writer) *Evaluator {
	return &Evaluator{
		functions: NewFunctionTable(),
		args:      NewArgStack(),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		out:       out,
	}
}

// Interpret evaluates each child of a Program node in order, discarding
// each result, per spec.md §4.3.
func (e *Evaluator) Interpret(program Node) error {
	if program.Kind != Program {
		return fmt.Errorf("internal error: Interpret expects a Program node, got %s", program.Kind)
	}

	for _, child := range program.Children {
		if _, err := e.eval(child); err != nil {
			return err
		}
	}

	return nil
}

// eval walks a single Node and returns a newly-owned result (spec.md §4.3).
func (e *Evaluator) eval(n Node) (Node, error) {
	switch n.Kind {
	case Invalid:
		return Node{}, errors.New("internal error: attempted to evaluate an Invalid node")
	case Program:
		return Node{}, errors.New("internal error: attempted to evaluate a nested Program node")
	case List:
		return e.apply(n)
	case Int, String:
		return n.Clone(), nil
	case Name:
		if n.IsPositionalRef() {
			index, err := strconv.Atoi(n.Ident[1:])
			if err != nil {
				return Node{}, fmt.Errorf("positional reference %q has a non-integer index", n.Ident)
			}
			return e.args.Resolve(index)
		}
		return n.Clone(), nil
	default:
		return Node{}, fmt.Errorf("internal error: unknown node kind %s", n.Kind)
	}
}

// apply evaluates a List as an application (spec.md §4.5). Lists are
// always applications; there is no other List-evaluation rule.
func (e *Evaluator) apply(list Node) (Node, error) {
	if len(list.Children) == 0 {
		return Node{}, errors.New("cannot apply an empty list")
	}

	head, err := e.eval(list.Children[0])
	if err != nil {
		return Node{}, err
	}
	if head.Kind != Name {
		return Node{}, fmt.Errorf("expected a function name, got %s", head.Kind)
	}
	name := head.Ident

	// Special forms are dispatched before argument evaluation: their
	// arguments are not all unconditionally evaluated (spec.md §4.4).
	switch name {
	case "if":
		return e.evalIf(list.Children)
	case "define":
		return e.evalDefine(list.Children)
	}

	evaluated := make([]Node, len(list.Children))
	evaluated[0] = head
	for i := 1; i < len(list.Children); i++ {
		v, err := e.eval(list.Children[i])
		if err != nil {
			return Node{}, err
		}
		evaluated[i] = v
	}
	args := evaluated[1:]

	if builtin, ok := builtinTable[name]; ok {
		return builtin(e, name, args)
	}

	if body, ok := e.functions.Lookup(name); ok {
		return e.callUser(body, evaluated)
	}

	return Node{}, fmt.Errorf("unknown function '%s'", name)
}

// evalIf implements '[if COND TRUE-EXPR ELSE-EXPR?]'. Only the selected
// branch is ever evaluated (spec.md §4.4, §8 "if laziness").
func (e *Evaluator) evalIf(children []Node) (Node, error) {
	if len(children) < 3 {
		return Node{}, errors.New("'if' requires at least a condition and a true-expression")
	}

	cond, err := e.eval(children[1])
	if err != nil {
		return Node{}, err
	}
	if cond.Kind != Int {
		return Node{}, fmt.Errorf("'if' condition must be Int, got %s", cond.Kind)
	}

	if cond.Num != 0 {
		return e.eval(children[2])
	}
	if len(children) >= 4 {
		return e.eval(children[3])
	}
	return NewInt(0), nil
}

// evalDefine implements '[define NAME BODY-EXPR+]'.
func (e *Evaluator) evalDefine(children []Node) (Node, error) {
	if len(children) < 3 {
		return Node{}, errors.New("'define' requires a name and at least one body expression")
	}

	nameNode := children[1]
	if nameNode.Kind != Name {
		return Node{}, fmt.Errorf("'define' expects a Name for its first argument, got %s", nameNode.Kind)
	}

	e.functions.Define(nameNode.Ident, children[2:])
	return nameNode.Clone(), nil
}

// callUser runs a user function's body against a freshly-pushed argument
// frame (spec.md §4.5). The body is deep-copied before evaluation so that
// a 'define' executed mid-call (redefining this very function) cannot
// invalidate the sequence of expressions currently being walked.
func (e *Evaluator) callUser(body []Node, evaluated []Node) (Node, error) {
	frame := make(Frame, len(evaluated))
	for i, n := range evaluated {
		frame[i] = n.Clone()
	}
	e.args.Push(frame)
	defer e.args.Pop()

	ownBody := make([]Node, len(body))
	for i, expr := range body {
		ownBody[i] = expr.Clone()
	}

	var result Node
	for _, expr := range ownBody {
		v, err := e.eval(expr)
		if err != nil {
			return Node{}, err
		}
		result = v
	}

	return result, nil
}
