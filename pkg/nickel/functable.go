package nickel

import "github.com/nickel-lang/nickel/pkg/utils"

// FunctionTable maps a user function's name to the ordered sequence of
// body-expression Nodes installed by its most recent [define ...] form
// (spec.md §4.7). It owns the stored bodies; Lookup returns them by
// reference, and the caller (the evaluator, in Apply's user-function path)
// must Clone before evaluating, so that a redefinition mid-call cannot pull
// the rug out from under the body currently being walked.
type FunctionTable struct {
	entries utils.OrderedMap[string, []Node]
}

// NewFunctionTable returns an empty FunctionTable.
func NewFunctionTable() *FunctionTable {
	return &FunctionTable{entries: utils.NewOrderedMap[string, []Node]()}
}

// Define installs body as the current definition of name, replacing and
// discarding whatever was installed before. Deep copies of every body
// expression are stored, matching spec.md §4.4's redefinition contract.
func (ft *FunctionTable) Define(name string, body []Node) {
	stored := make([]Node, len(body))
	for i, expr := range body {
		stored[i] = expr.Clone()
	}
	ft.entries.Set(name, stored)
}

// Lookup returns the stored body sequence for name, if defined.
func (ft *FunctionTable) Lookup(name string) ([]Node, bool) {
	return ft.entries.Get(name)
}
