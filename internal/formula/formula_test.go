package formula_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VerdeSupply/storefront_api/internal/formula"
)

func TestEvaluate(t *testing.T) {
	t.Parallel()

	t.Run("cubic yards formula", func(t *testing.T) {
		t.Parallel()

		result, err := formula.Evaluate("{length} * {width} * 0.0833", map[string]float64{
			"length": 10,
			"width":  5,
		})
		require.NoError(t, err)
		assert.InDelta(t, 4.165, result, 1e-9)
	})

	t.Run("operator precedence", func(t *testing.T) {
		t.Parallel()

		result, err := formula.Evaluate("{a} + {b} * {c}", map[string]float64{"a": 2, "b": 3, "c": 4})
		require.NoError(t, err)
		assert.InDelta(t, 14, result, 1e-9)
	})

	t.Run("parentheses and unary minus", func(t *testing.T) {
		t.Parallel()

		result, err := formula.Evaluate("-({a} - {b}) / 2", map[string]float64{"a": 4, "b": 10})
		require.NoError(t, err)
		assert.InDelta(t, 3, result, 1e-9)
	})

	t.Run("repeated placeholder", func(t *testing.T) {
		t.Parallel()

		result, err := formula.Evaluate("{side} * {side}", map[string]float64{"side": 7})
		require.NoError(t, err)
		assert.InDelta(t, 49, result, 1e-9)
	})

	t.Run("missing variable", func(t *testing.T) {
		t.Parallel()

		_, err := formula.Evaluate("{length} * {width}", map[string]float64{"length": 10})
		var verr *formula.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "width", verr.Variable)
	})

	t.Run("non-finite input", func(t *testing.T) {
		t.Parallel()

		_, err := formula.Evaluate("{x} + 1", map[string]float64{"x": math.Inf(1)})
		var verr *formula.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "x", verr.Variable)
	})

	t.Run("division by zero", func(t *testing.T) {
		t.Parallel()

		_, err := formula.Evaluate("{a} / {b}", map[string]float64{"a": 1, "b": 0})
		var eerr *formula.EvaluationError
		require.ErrorAs(t, err, &eerr)
		assert.Contains(t, eerr.Msg, "division by zero")
	})

	t.Run("overflow to infinity rejected", func(t *testing.T) {
		t.Parallel()

		_, err := formula.Evaluate("{x} * {x}", map[string]float64{"x": math.MaxFloat64})
		var eerr *formula.EvaluationError
		require.ErrorAs(t, err, &eerr)
	})

	t.Run("rejects code-like input", func(t *testing.T) {
		t.Parallel()

		// Anything outside the arithmetic grammar is a parse error, not
		// something handed to an interpreter.
		for _, tpl := range []string{
			"__import__('os')",
			"{a}; drop table",
			"len({a})",
			"{a} ** {b}",
			"2 > 1",
		} {
			_, err := formula.Evaluate(tpl, map[string]float64{"a": 1, "b": 2})
			assert.Error(t, err, "template %q", tpl)
		}
	})

	t.Run("unterminated placeholder", func(t *testing.T) {
		t.Parallel()

		_, err := formula.Evaluate("{length * 2", map[string]float64{"length": 3})
		var eerr *formula.EvaluationError
		require.ErrorAs(t, err, &eerr)
	})

	t.Run("malformed numbers", func(t *testing.T) {
		t.Parallel()

		for _, tpl := range []string{"1.2.3", ". + 1", "(1 + 2"} {
			_, err := formula.Evaluate(tpl, nil)
			assert.Error(t, err, "template %q", tpl)
		}
	})

	t.Run("plain arithmetic without placeholders", func(t *testing.T) {
		t.Parallel()

		result, err := formula.Evaluate("(8 + 2) * 1.5 - 3 / 2", nil)
		require.NoError(t, err)
		assert.InDelta(t, 13.5, result, 1e-9)
	})
}
