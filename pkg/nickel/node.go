// Package nickel implements the read-evaluate pipeline of the Nickel
// bracket-syntax instructional language: a recursive-descent parser, a
// tree-walking evaluator with user-definable functions and positional
// argument binding, and a printf-style format engine.
package nickel

import (
	"strconv"
	"strings"
)

// Kind tags the single shape a Node currently holds. A Node is a tagged
// union expressed as one struct rather than an interface-per-kind: values
// of this type are cloned and compared constantly (deep-copy is the whole
// aliasing discipline of the evaluator), and a flat struct keeps that cheap
// and uniform instead of needing a type switch on every clone.
type Kind uint8

const (
	// Invalid is a sentinel meaning "no node produced". It is never
	// observable to a Nickel program; it only shows up as the Parser's
	// end-of-input signal.
	Invalid Kind = iota
	// Program is the parser's root node: an ordered sequence of top-level
	// expressions, consumed once by the evaluator.
	Program
	// List is the sole compound value and the syntactic form for every
	// application.
	List
	// Int is the only numeric type; booleans are 0 / non-0 Ints.
	Int
	// String is an escape-processed byte sequence.
	String
	// Name is an identifier, or (if it starts with ':') a positional
	// argument reference.
	Name
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "Invalid"
	case Program:
		return "Program"
	case List:
		return "List"
	case Int:
		return "Int"
	case String:
		return "String"
	case Name:
		return "Name"
	default:
		return "Unknown"
	}
}

// Node is the universal tagged value: the only runtime representation of
// data, parsed or evaluated, in Nickel.
type Node struct {
	Kind Kind

	Children []Node // Program, List
	Num      int64  // Int
	Bytes    []byte // String (raw, escape-processed payload)
	Ident    string // Name (identifier or ':N' positional reference)
}

// NewInvalid returns the Invalid sentinel node.
func NewInvalid() Node { return Node{Kind: Invalid} }

// NewProgram returns a Program node wrapping the given top-level children.
func NewProgram(children ...Node) Node { return Node{Kind: Program, Children: children} }

// NewList returns a List node wrapping the given children.
func NewList(children ...Node) Node {
	if children == nil {
		children = []Node{}
	}
	return Node{Kind: List, Children: children}
}

// NewInt returns an Int node holding v.
func NewInt(v int64) Node { return Node{Kind: Int, Num: v} }

// NewString returns a String node holding the raw bytes b.
func NewString(b []byte) Node { return Node{Kind: String, Bytes: b} }

// NewName returns a Name node holding the identifier s.
func NewName(s string) Node { return Node{Kind: Name, Ident: s} }

// IsPositionalRef reports whether the Name node is a positional argument
// reference (spec.md §4.2: a Name starting with ':').
func (n Node) IsPositionalRef() bool {
	return n.Kind == Name && strings.HasPrefix(n.Ident, ":")
}

// Clone performs a deep, structural copy of n. Every owner of a Node in
// this package (the function table, the argument stack, the evaluator)
// hands out clones rather than shared references: that is what makes
// self-redefinition of a running function, and independent argument-stack
// frames, safe (spec.md §3, §4.4, §4.5). Go's garbage collector reclaims
// the original once it is unreachable, so there is no paired Destroy.
func (n Node) Clone() Node {
	clone := Node{Kind: n.Kind, Num: n.Num, Ident: n.Ident}

	if n.Bytes != nil {
		clone.Bytes = append([]byte(nil), n.Bytes...)
	}

	if n.Children != nil {
		clone.Children = make([]Node, len(n.Children))
		for i, child := range n.Children {
			clone.Children[i] = child.Clone()
		}
	}

	return clone
}

// String renders n back into human-readable text (the Printer of
// spec.md §2/§4.2). The Name rendering ('<name NAME>') is deliberately
// distinct from Nickel source syntax, so an evaluated Name is recognisable
// wherever it is printed.
func (n Node) String() string {
	switch n.Kind {
	case Invalid:
		return ""
	case Program:
		lines := make([]string, len(n.Children))
		for i, child := range n.Children {
			lines[i] = child.String()
		}
		return strings.Join(lines, "\n")
	case List:
		var b strings.Builder
		b.WriteString("[ ")
		for _, child := range n.Children {
			b.WriteString(child.String())
			b.WriteString(" ")
		}
		b.WriteString("]")
		return b.String()
	case Int:
		return strconv.FormatInt(n.Num, 10)
	case String:
		return string(n.Bytes)
	case Name:
		return "<name " + n.Ident + ">"
	default:
		return ""
	}
}
