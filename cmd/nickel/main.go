package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/teris-io/cli"

	"github.com/nickel-lang/nickel/pkg/nickel"
)

var Description = strings.ReplaceAll(`
Nickel is a tiny bracket-syntax expression language. It reads a single
source file, parses it into a tree of tagged nodes and evaluates each
top-level expression in order, printing whatever the program asks it to
print along the way.
`, "\n", " ")

// The path argument is declared optional so that teris-io/cli does not
// emit its own usage/arity diagnostic on a missing argument: spec.md §6
// requires every CLI-level error, including a wrong argument count, to go
// through the single 'Nickel: error: ...' channel, so Handler validates
// the argument count itself before doing anything else.
var Nickel = cli.New(Description).
	WithArg(cli.NewArg("path", "The Nickel (.nkl) source file to run").
		AsOptional().WithType(cli.TypeString)).
	WithAction(Handler)

func Handler(args []string, options map[string]string) int {
	if len(args) != 1 {
		return reportf("expected exactly one argument PATH, got %d", len(args))
	}

	source, err := os.ReadFile(args[0])
	if err != nil {
		return reportf("unable to read '%s': %s", args[0], err)
	}

	program, err := nickel.NewParser(source).Parse()
	if err != nil {
		return reportf("%s", err)
	}

	if err := nickel.NewEvaluator().Interpret(program); err != nil {
		return reportf("%s", err)
	}

	return 0
}

// reportf writes the one-line 'Nickel: error: ...' diagnostic spec.md §6
// requires for any failure, and returns the non-zero exit status to use.
func reportf(format string, args ...any) int {
	fmt.Printf("Nickel: error: %s\n", fmt.Sprintf(format, args...))
	return 1
}

func main() { os.Exit(Nickel.Run(os.Args, os.Stdout)) }
