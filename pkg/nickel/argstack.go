package nickel

import (
	"fmt"

	"github.com/nickel-lang/nickel/pkg/utils"
)

// Frame is the evaluated-arguments sequence of one currently-executing
// user-function application: element 0 is the function-name Node itself,
// element i (i>=1) is the i-th argument (spec.md §3, "Argument stack
// frame").
type Frame []Node

// ArgStack is the stack of Frames used to resolve positional argument
// references (':N') against the innermost currently-executing user
// function (spec.md §4.5). It is pushed on entry to a user-function
// application and popped on exit, regardless of success or failure.
type ArgStack struct {
	frames utils.Stack[Frame]
}

// NewArgStack returns an empty ArgStack.
func NewArgStack() *ArgStack { return &ArgStack{} }

// Push installs frame as the innermost active call's arguments.
func (as *ArgStack) Push(frame Frame) { as.frames.Push(frame) }

// Pop discards the innermost active call's arguments.
func (as *ArgStack) Pop() {
	// The evaluator only ever pops a frame it just pushed, via defer, so an
	// empty stack here would be an internal invariant violation rather
	// than a user-triggerable condition; the error is intentionally
	// discarded.
	_, _ = as.frames.Pop()
}

// Resolve looks up element index of the innermost frame, rejecting
// negative indices outright rather than reproducing the source's
// unsigned-compare bug (spec.md §9 Open Question: "An implementation
// should reject negative indices explicitly").
func (as *ArgStack) Resolve(index int) (Node, error) {
	if index < 0 {
		return Node{}, fmt.Errorf("positional reference ':%d' must not be negative", index)
	}

	frame, err := as.frames.Top()
	if err != nil {
		return Node{}, fmt.Errorf("positional reference ':%d' used outside of any function", index)
	}

	if index >= len(frame) {
		return Node{}, fmt.Errorf("positional reference ':%d' out of range (current frame has %d element(s))", index, len(frame))
	}

	return frame[index].Clone(), nil
}
