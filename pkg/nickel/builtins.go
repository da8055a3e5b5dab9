package nickel

import (
	"errors"
	"fmt"
)

// builtinFunc implements one built-in's Apply-time behaviour: name is the
// function's own name (for diagnostics), args are the already-evaluated
// argument Nodes (spec.md §4.5 step 3 — the function-name Node itself is
// not included here).
type builtinFunc func(e *Evaluator, name string, args []Node) (Node, error)

var builtinTable = map[string]builtinFunc{
	"+":  func(e *Evaluator, name string, args []Node) (Node, error) { return binaryInt(name, args, func(a, b int64) (int64, error) { return a + b, nil }) },
	"-":  func(e *Evaluator, name string, args []Node) (Node, error) { return binaryInt(name, args, func(a, b int64) (int64, error) { return a - b, nil }) },
	"*":  func(e *Evaluator, name string, args []Node) (Node, error) { return binaryInt(name, args, func(a, b int64) (int64, error) { return a * b, nil }) },
	"/":  func(e *Evaluator, name string, args []Node) (Node, error) { return binaryInt(name, args, divide) },
	"%":  func(e *Evaluator, name string, args []Node) (Node, error) { return binaryInt(name, args, modulo) },
	"==": func(e *Evaluator, name string, args []Node) (Node, error) { return binaryIntCompare(name, args, func(a, b int64) bool { return a == b }) },
	"!=": func(e *Evaluator, name string, args []Node) (Node, error) { return binaryIntCompare(name, args, func(a, b int64) bool { return a != b }) },
	"<":  func(e *Evaluator, name string, args []Node) (Node, error) { return binaryIntCompare(name, args, func(a, b int64) bool { return a < b }) },
	"<=": func(e *Evaluator, name string, args []Node) (Node, error) { return binaryIntCompare(name, args, func(a, b int64) bool { return a <= b }) },
	">":  func(e *Evaluator, name string, args []Node) (Node, error) { return binaryIntCompare(name, args, func(a, b int64) bool { return a > b }) },
	">=": func(e *Evaluator, name string, args []Node) (Node, error) { return binaryIntCompare(name, args, func(a, b int64) bool { return a >= b }) },

	"list":   builtinList,
	"len":    builtinLen,
	"append": builtinAppend,
	"car":    builtinCar,
	"cdr":    builtinCdr,
	"rand":   builtinRand,
	"print":  builtinPrint,
	"fmt":    builtinFmt,
	"pfmt":   builtinPfmt,
}

func checkArity(name string, args []Node, want int) error {
	if len(args) != want {
		return fmt.Errorf("'%s' expects %d argument(s), got %d", name, want, len(args))
	}
	return nil
}

func checkKind(name string, args []Node, index int, kind Kind) error {
	if args[index].Kind != kind {
		return fmt.Errorf("'%s': argument %d must be %s, got %s", name, index+1, kind, args[index].Kind)
	}
	return nil
}

func divide(a, b int64) (int64, error) {
	if b == 0 {
		return 0, errors.New("division by zero")
	}
	return a / b, nil
}

func modulo(a, b int64) (int64, error) {
	if b == 0 {
		return 0, errors.New("modulo by zero")
	}
	return a % b, nil
}

func binaryInt(name string, args []Node, op func(a, b int64) (int64, error)) (Node, error) {
	if err := checkArity(name, args, 2); err != nil {
		return Node{}, err
	}
	if err := checkKind(name, args, 0, Int); err != nil {
		return Node{}, err
	}
	if err := checkKind(name, args, 1, Int); err != nil {
		return Node{}, err
	}

	v, err := op(args[0].Num, args[1].Num)
	if err != nil {
		return Node{}, fmt.Errorf("'%s': %w", name, err)
	}
	return NewInt(v), nil
}

func binaryIntCompare(name string, args []Node, cmp func(a, b int64) bool) (Node, error) {
	if err := checkArity(name, args, 2); err != nil {
		return Node{}, err
	}
	if err := checkKind(name, args, 0, Int); err != nil {
		return Node{}, err
	}
	if err := checkKind(name, args, 1, Int); err != nil {
		return Node{}, err
	}

	if cmp(args[0].Num, args[1].Num) {
		return NewInt(1), nil
	}
	return NewInt(0), nil
}

func builtinList(e *Evaluator, name string, args []Node) (Node, error) {
	children := make([]Node, len(args))
	for i, a := range args {
		children[i] = a.Clone()
	}
	return NewList(children...), nil
}

func builtinLen(e *Evaluator, name string, args []Node) (Node, error) {
	if err := checkArity(name, args, 1); err != nil {
		return Node{}, err
	}
	if err := checkKind(name, args, 0, List); err != nil {
		return Node{}, err
	}
	return NewInt(int64(len(args[0].Children))), nil
}

func builtinAppend(e *Evaluator, name string, args []Node) (Node, error) {
	if err := checkArity(name, args, 2); err != nil {
		return Node{}, err
	}
	if err := checkKind(name, args, 0, List); err != nil {
		return Node{}, err
	}
	if err := checkKind(name, args, 1, List); err != nil {
		return Node{}, err
	}

	children := make([]Node, 0, len(args[0].Children)+len(args[1].Children))
	for _, c := range args[0].Children {
		children = append(children, c.Clone())
	}
	for _, c := range args[1].Children {
		children = append(children, c.Clone())
	}
	return NewList(children...), nil
}

func builtinCar(e *Evaluator, name string, args []Node) (Node, error) {
	if err := checkArity(name, args, 1); err != nil {
		return Node{}, err
	}
	if err := checkKind(name, args, 0, List); err != nil {
		return Node{}, err
	}
	if len(args[0].Children) == 0 {
		return Node{}, fmt.Errorf("'%s': empty list", name)
	}
	return args[0].Children[0].Clone(), nil
}

func builtinCdr(e *Evaluator, name string, args []Node) (Node, error) {
	if err := checkArity(name, args, 1); err != nil {
		return Node{}, err
	}
	if err := checkKind(name, args, 0, List); err != nil {
		return Node{}, err
	}

	if len(args[0].Children) == 0 {
		return NewList(), nil
	}

	rest := args[0].Children[1:]
	children := make([]Node, len(rest))
	for i, c := range rest {
		children[i] = c.Clone()
	}
	return NewList(children...), nil
}

func builtinRand(e *Evaluator, name string, args []Node) (Node, error) {
	if err := checkArity(name, args, 0); err != nil {
		return Node{}, err
	}
	return NewInt(e.rng.Int63()), nil
}

func builtinPrint(e *Evaluator, name string, args []Node) (Node, error) {
	if err := checkArity(name, args, 1); err != nil {
		return Node{}, err
	}
	fmt.Fprintln(e.out, args[0].String())
	return args[0].Clone(), nil
}

func builtinFmt(e *Evaluator, name string, args []Node) (Node, error) {
	result, err := formatWithArgs(name, args)
	if err != nil {
		return Node{}, err
	}
	return NewString([]byte(result)), nil
}

func builtinPfmt(e *Evaluator, name string, args []Node) (Node, error) {
	result, err := formatWithArgs(name, args)
	if err != nil {
		return Node{}, err
	}
	fmt.Fprint(e.out, result)
	return NewString([]byte(result)), nil
}

func formatWithArgs(name string, args []Node) (string, error) {
	if len(args) < 1 {
		return "", fmt.Errorf("'%s' expects at least 1 argument, got 0", name)
	}
	if err := checkKind(name, args, 0, String); err != nil {
		return "", err
	}
	return Format(args[0], args[1:])
}
