package builtin

import (
	"math"

	"github.com/titpetric/scssgo/eval"
	"github.com/titpetric/scssgo/value"
)

func registerNumberFuncs(r *Registry) {
	unary := func(f func(float64) float64) eval.Func {
		return func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
			n := a[0]
			n.Num = f(n.Num)
			return n, nil
		}
	}
	r.register("round", 1, unary(math.Round))
	r.register("ceil", 1, unary(math.Ceil))
	r.register("floor", 1, unary(math.Floor))
	r.register("abs", 1, unary(math.Abs))
	r.register("sqrt", 1, unary(math.Sqrt))
	r.register("sin", 1, unary(math.Sin))
	r.register("cos", 1, unary(math.Cos))
	r.register("tan", 1, unary(math.Tan))

	r.register("pi", 0, func(_ []value.Value, _ map[string]value.Value) (value.Value, error) {
		return value.Number(math.Pi), nil
	})

	r.register("percentage", 1, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		return value.NumberWithUnit(a[0].Num*100, "%"), nil
	})

	minmax := func(pick func(a, b float64) float64) eval.Func {
		return func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
			if len(a) == 0 {
				return value.Null(), nil
			}
			best := a[0]
			for _, v := range a[1:] {
				if pick(v.Num, best.Num) == v.Num && v.Num != best.Num {
					best = v
				}
			}
			return best, nil
		}
	}
	r.register("min", -1, minmax(math.Min))
	r.register("max", -1, minmax(math.Max))

	r.register("unit", 1, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		return value.QuotedString(a[0].Primary), nil
	})
	r.register("unitless", 1, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		return value.Boolean(a[0].Primary == ""), nil
	})
	r.register("comparable", 2, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		return value.Boolean(a[0].Primary == a[1].Primary || a[0].Primary == "" || a[1].Primary == ""), nil
	})
}
