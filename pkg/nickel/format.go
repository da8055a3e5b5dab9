package nickel

import (
	"fmt"
	"strings"
)

// Format implements the 'fmt'/'pfmt' directive engine (spec.md §4.6).
// formatNode is the already-evaluated format String; directiveArgs are the
// remaining evaluated arguments, consumed left-to-right as directives are
// expanded.
//
// The engine delegates each directive to the host's printf-style
// formatter (fmt.Sprintf) rather than reimplementing %d/%x/%s/width-field
// semantics, matching spec.md §9's recommendation; this is also why no
// third-party formatting package is wired in (see SPEC_FULL.md).
func Format(formatNode Node, directiveArgs []Node) (string, error) {
	format := formatNode.Bytes

	var out strings.Builder
	argIdx := 0
	i := 0

	for i < len(format) {
		c := format[i]

		// A '{' immediately preceded by '\' is emitted literally; the
		// preceding backslash is the official escape mechanism and is
		// removed from the output (spec.md §9).
		if c == '\\' && i+1 < len(format) && format[i+1] == '{' {
			out.WriteByte('{')
			i += 2
			continue
		}

		if c == '{' {
			end := i + 1
			for end < len(format) && format[end] != '}' {
				end++
			}

			if end >= len(format) {
				// Unterminated '{' reaching end-of-format: the remaining
				// format is discarded (spec.md §4.6).
				break
			}

			body := string(format[i+1 : end])
			i = end + 1

			expanded, consumed, err := expandDirective(body, directiveArgs, argIdx)
			if err != nil {
				return "", err
			}
			out.WriteString(expanded)
			argIdx += consumed
			continue
		}

		out.WriteByte(c)
		i++
	}

	return out.String(), nil
}

// expandDirective expands one '{...}' directive body against
// directiveArgs starting at argIdx, returning the expansion and the number
// of arguments it consumed (1, or 2 when the body contains '*').
func expandDirective(body string, directiveArgs []Node, argIdx int) (string, int, error) {
	consumed := 0
	var width int64
	hasWidth := strings.Contains(body, "*")

	if hasWidth {
		if argIdx >= len(directiveArgs) {
			return "", 0, fmt.Errorf("fmt: missing width argument for directive '{%s}'", body)
		}
		widthNode := directiveArgs[argIdx]
		if widthNode.Kind != Int {
			return "", 0, fmt.Errorf("fmt: width argument for directive '{%s}' must be Int, got %s", body, widthNode.Kind)
		}
		width = widthNode.Num
		argIdx++
		consumed++
	}

	if argIdx >= len(directiveArgs) {
		return "", 0, fmt.Errorf("fmt: missing argument for directive '{%s}'", body)
	}
	valueNode := directiveArgs[argIdx]
	consumed++

	var conversion byte
	if len(body) > 0 {
		conversion = body[len(body)-1]
	}
	endsInAlpha := (conversion >= 'a' && conversion <= 'z') || (conversion >= 'A' && conversion <= 'Z')

	var directive string
	var value any

	if !endsInAlpha {
		// The directive doesn't end in an alphabetic conversion
		// character: treat it as string-valued, stringifying via the
		// Node printer and expanding with a trailing 's' conversion
		// (spec.md §4.6).
		directive = "%" + body + "s"
		value = valueNode.String()
	} else {
		directive = "%" + body
		switch valueNode.Kind {
		case Int:
			value = valueNode.Num
		case String:
			value = string(valueNode.Bytes)
		default:
			value = valueNode.String()
		}
	}

	var expanded string
	if hasWidth {
		// fmt's '*' width operand is type-asserted to plain int; passing
		// the int64 straight through silently mis-renders as '%!(BADWIDTH)'.
		expanded = fmt.Sprintf(directive, int(width), value)
	} else {
		expanded = fmt.Sprintf(directive, value)
	}

	return expanded, consumed, nil
}
