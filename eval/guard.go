package eval

import (
	"strconv"
	"strings"

	exprlang "github.com/expr-lang/expr"

	"github.com/titpetric/scssgo/value"
)

// EvalBoolean evaluates a guard/condition expression (an `@if`/`@else if`
// condition) to a bool. It is wired to github.com/expr-lang/expr rather than
// the hand-rolled recursive-descent grammar used by Eval: guards only ever
// need a boolean/undefined-sentinel result, and expr's native comparison
// operators on a flat numeric variable environment are a closer match than
// building a throwaway arithmetic result just to call Truthy on it.
//
// Adapted from the teacher's evaluator/evaluator.go Eval/preprocessExpression,
// generalized from LESS's CSS-unit stripping to spec.md's full unit table
// and to the "0"/"false"/"undefined"/unbound-variable falsiness rule.
func (e *Evaluator) EvalBoolean(condition string, ctx Context) (bool, error) {
	vars := map[string]interface{}{}
	for _, name := range extractVarNames(condition) {
		v, ok := ctx.Lookup(name)
		if !ok {
			vars[name] = nil
			continue
		}
		vars[name] = toExprValue(v)
	}

	processed := stripUnits(condition)
	processed = strings.ReplaceAll(processed, "$", "var_")
	vars2 := map[string]interface{}{}
	for k, v := range vars {
		vars2["var_"+k] = v
	}

	program, err := exprlang.Compile(processed, exprlang.Env(vars2), exprlang.AllowUndefinedVariables())
	if err != nil {
		// Parse errors in guard expressions: CSS passthrough policy does
		// not apply to control flow, so treat as falsy per spec.md §7.
		return false, nil
	}
	result, err := exprlang.Run(program, vars2)
	if err != nil {
		return false, nil
	}
	return isTruthyExprResult(result), nil
}

func toExprValue(v value.Value) interface{} {
	switch v.Kind {
	case value.KindNumber:
		return v.Num
	case value.KindBoolean:
		return v.Bool
	case value.KindString, value.KindQuotedString:
		if v.IsUndefined() {
			return nil
		}
		if v.Str == "true" {
			return true
		}
		if v.Str == "false" {
			return false
		}
		if f, err := strconv.ParseFloat(v.Str, 64); err == nil {
			return f
		}
		return v.Str
	default:
		return v.String()
	}
}

func isTruthyExprResult(r interface{}) bool {
	switch v := r.(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return v != 0
	case int:
		return v != 0
	case string:
		return v != "" && v != "0" && v != "false" && v != value.Undefined
	default:
		return true
	}
}

// extractVarNames finds every "$name" reference in a condition string.
func extractVarNames(s string) []string {
	var names []string
	i := 0
	for i < len(s) {
		if s[i] == '$' {
			j := i + 1
			for j < len(s) && isVarChar(s[j]) {
				j++
			}
			if j > i+1 {
				names = append(names, s[i+1:j])
			}
			i = j
			continue
		}
		i++
	}
	return names
}

func isVarChar(c byte) bool {
	return c == '-' || c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

var unitSuffixes = []string{
	"vmin", "vmax", "rem", "deg", "grad", "khz",
	"em", "ex", "px", "cm", "mm", "in", "pt", "pc", "ms", "hz", "s", "%",
}

// stripUnits removes CSS unit suffixes from numeric literals so expr's
// numeric comparisons see plain magnitudes, e.g. "14px > 12px" -> "14 > 12".
func stripUnits(s string) string {
	result := s
	for _, u := range unitSuffixes {
		idx := 0
		for {
			pos := strings.Index(result[idx:], u)
			if pos == -1 {
				break
			}
			pos += idx
			if pos > 0 && result[pos-1] >= '0' && result[pos-1] <= '9' {
				after := pos + len(u)
				if after >= len(result) || !isVarChar(result[after]) {
					result = result[:pos] + result[after:]
					continue
				}
			}
			idx = pos + 1
		}
	}
	return result
}
