// Package formula evaluates calculator formulas: bounded arithmetic
// expressions with {variableName} placeholders. Placeholders are substituted
// with numeric inputs, then the expression is parsed by a restricted
// recursive-descent parser. No general-purpose interpreter is involved, so
// the grammar itself is the safety boundary.
package formula

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValidationError reports a missing or malformed variable input.
type ValidationError struct {
	Variable string
	Msg      string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// EvaluationError reports a formula that could not be parsed or produced a
// non-finite result.
type EvaluationError struct {
	Msg string
}

func (e *EvaluationError) Error() string {
	return e.Msg
}

// Evaluate substitutes values into the template and evaluates the resulting
// arithmetic expression. Every placeholder in the template must have a value;
// the result is guaranteed finite.
func Evaluate(template string, values map[string]float64) (float64, error) {
	expr, err := substitute(template, values)
	if err != nil {
		return 0, err
	}

	p := newParser(expr)
	result, err := p.parse()
	if err != nil {
		return 0, err
	}

	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0, &EvaluationError{Msg: "formula result is not a finite number"}
	}
	return result, nil
}

// substitute replaces every {name} placeholder with its stringified value.
// It fails if the template references a variable absent from values.
func substitute(template string, values map[string]float64) (string, error) {
	var b strings.Builder
	rest := template
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		close := strings.IndexByte(rest[open:], '}')
		if close < 0 {
			return "", &EvaluationError{Msg: "unterminated placeholder in formula"}
		}
		name := rest[open+1 : open+close]
		value, ok := values[name]
		if !ok {
			return "", &ValidationError{
				Variable: name,
				Msg:      fmt.Sprintf("missing value for variable %q", name),
			}
		}
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return "", &ValidationError{
				Variable: name,
				Msg:      fmt.Sprintf("value for variable %q is not a finite number", name),
			}
		}
		b.WriteString(rest[:open])
		b.WriteString(strconv.FormatFloat(value, 'f', -1, 64))
		rest = rest[open+close+1:]
	}
}
