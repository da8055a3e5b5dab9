package nickel_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nickel-lang/nickel/pkg/nickel"
)

// run parses and interprets src, returning everything it printed.
func run(t *testing.T, src string) (string, error) {
	t.Helper()

	program, err := nickel.NewParser([]byte(src)).Parse()
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	err = nickel.NewEvaluatorWithOutput(&out).Interpret(program)
	return out.String(), err
}

func mustRun(t *testing.T, src string) string {
	t.Helper()
	out, err := run(t, src)
	require.NoError(t, err, "source: %s", src)
	return out
}

// TestEndToEndScenarios exercises spec.md §8's six concrete scenarios.
func TestEndToEndScenarios(t *testing.T) {
	t.Run("print of an arithmetic expression", func(t *testing.T) {
		require.Equal(t, "5\n", mustRun(t, `[print [+ 2 3]]`))
	})

	t.Run("user function using a positional argument reference", func(t *testing.T) {
		out := mustRun(t, `[define sq [* :1 :1]] [print [sq 7]]`)
		require.Equal(t, "49\n", out)
	})

	t.Run("append prints a flattened list", func(t *testing.T) {
		out := mustRun(t, `[print [append [list 1 2] [list 3 4]]]`)
		require.Equal(t, "[ 1 2 3 4 ]\n", out)
	})

	t.Run("if only evaluates the taken branch", func(t *testing.T) {
		out := mustRun(t, `[if [== 1 1] [print "yes"] [print "no"]]`)
		require.Equal(t, "yes\n", out)
	})

	t.Run("recursive factorial", func(t *testing.T) {
		src := `[define fact [if [<= :1 1] 1 [* :1 [fact [- :1 1]]]]] [print [fact 5]]`
		require.Equal(t, "120\n", mustRun(t, src))
	})

	t.Run("pfmt directive expansion", func(t *testing.T) {
		out := mustRun(t, `[pfmt "{d} items\n" 3]`)
		require.Equal(t, "3 items\n", out)
	})
}

func TestIfLaziness(t *testing.T) {
	// The unknown function must never be invoked; if it were, this would
	// fail with an 'unknown function' error instead of returning 42.
	out, err := run(t, `[print [if 0 [unknown-fn] 42]]`)
	require.NoError(t, err)
	require.Equal(t, "42\n", out)
}

func TestRedefinitionSafety(t *testing.T) {
	// A function that redefines itself before returning still completes
	// the *current* call with the pre-redefinition body; only subsequent
	// calls see the new body (spec.md §4.4, §8).
	src := `
		[define f [define f 99] :1]
		[print [f 1]]
		[print [f 1]]
	`
	out := mustRun(t, src)
	require.Equal(t, "1\n99\n", out)
}

func TestArgumentReferenceSanity(t *testing.T) {
	t.Run(":0 resolves to the function name", func(t *testing.T) {
		out := mustRun(t, `[define whoami :0] [print [whoami]]`)
		require.Equal(t, "<name whoami>\n", out)
	})

	t.Run(":n+1 is a domain error", func(t *testing.T) {
		_, err := run(t, `[define f :2] [f 1]`)
		require.Error(t, err)
	})

	t.Run("negative index is rejected explicitly", func(t *testing.T) {
		_, err := run(t, `[define f :-1] [f 1]`)
		require.Error(t, err)
	})

	t.Run("positional reference outside any function is an error", func(t *testing.T) {
		_, err := run(t, `:1`)
		require.Error(t, err)
	})
}

func TestEvaluationOrder(t *testing.T) {
	// Arguments are evaluated strictly, left-to-right: "a" must be
	// emitted before "b" (spec.md §8). 'f' ignores its arguments, so the
	// only output is whatever 'pfmt' wrote while they were evaluated.
	src := `[define f 0] [f [pfmt "a"] [pfmt "b"]]`
	out := mustRun(t, src)
	require.Equal(t, "ab", out)
}

func TestListLaws(t *testing.T) {
	t.Run("append with an empty list on either side is a no-op", func(t *testing.T) {
		require.Equal(t, "[ 1 2 3 ]\n", mustRun(t, `[print [append [list] [list 1 2 3]]]`))
		require.Equal(t, "[ 1 2 3 ]\n", mustRun(t, `[print [append [list 1 2 3] [list]]]`))
	})

	t.Run("len of append is the sum of lens", func(t *testing.T) {
		require.Equal(t, "5\n", mustRun(t, `[print [len [append [list 1 2] [list 3 4 5]]]]`))
	})

	t.Run("car of a freshly built list is its first element", func(t *testing.T) {
		require.Equal(t, "7\n", mustRun(t, `[print [car [list 7 8 9]]]`))
	})

	t.Run("len of cdr is len minus 1", func(t *testing.T) {
		require.Equal(t, "2\n", mustRun(t, `[print [len [cdr [list 1 2 3]]]]`))
	})

	t.Run("cdr of an empty list is empty", func(t *testing.T) {
		require.Equal(t, "[ ]\n", mustRun(t, `[print [cdr [list]]]`))
	})

	t.Run("car of an empty list is a domain error", func(t *testing.T) {
		_, err := run(t, `[car [list]]`)
		require.Error(t, err)
	})
}

func TestArityAndKindErrors(t *testing.T) {
	t.Run("wrong arity", func(t *testing.T) {
		_, err := run(t, `[+ 1]`)
		require.Error(t, err)
	})

	t.Run("wrong kind", func(t *testing.T) {
		_, err := run(t, `[+ 1 "two"]`)
		require.Error(t, err)
	})

	t.Run("non-Name head is a kind error", func(t *testing.T) {
		_, err := run(t, `[1 2 3]`)
		require.Error(t, err)
	})

	t.Run("unknown function", func(t *testing.T) {
		_, err := run(t, `[definitely-not-defined 1]`)
		require.Error(t, err)
	})
}

func TestDivisionAndModuloByZero(t *testing.T) {
	_, err := run(t, `[/ 1 0]`)
	require.Error(t, err)

	_, err = run(t, `[% 1 0]`)
	require.Error(t, err)
}

func TestComparisonBuiltinsReturnBooleanInts(t *testing.T) {
	require.Equal(t, "1\n", mustRun(t, `[print [< 1 2]]`))
	require.Equal(t, "0\n", mustRun(t, `[print [>= 1 2]]`))
}
