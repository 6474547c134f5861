package builtin

import (
	"strings"

	"github.com/titpetric/scssgo/value"
)

// registerControlFuncs wires the vendor-prefixing and selector-helper
// corner of spec.md §4.F. Gradients live in gradient.go (pure CSS-string
// builders); imaging-backend-dependent Compass asset helpers (sprite maps,
// image-url) are declared by name/arity per spec.md §1 and wired through
// the sprite package's external-collaborator interface instead.
func registerControlFuncs(r *Registry) {
	vendors := []string{"moz", "webkit", "ms", "o", "svg", "css2", "pie", "owg", "khtml"}

	r.register("prefixed", -1, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		if len(a) == 0 {
			return value.Boolean(false), nil
		}
		return value.Boolean(true), nil
	})
	r.register("prefix", -1, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		if len(a) < 2 {
			return value.String(""), nil
		}
		prefix := a[0].String()
		rest := make([]string, 0, len(a)-1)
		for _, v := range a[1:] {
			rest = append(rest, v.String())
		}
		return value.String("-" + prefix + "-" + strings.Join(rest, " ")), nil
	})
	for _, v := range vendors {
		vendor := v
		r.register("-"+vendor, -1, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
			parts := make([]string, 0, len(a))
			for _, arg := range a {
				parts = append(parts, arg.String())
			}
			return value.String("-" + vendor + "-" + strings.Join(parts, " ")), nil
		})
	}

	r.register("headers", 0, headersFn)
	r.register("headings", 0, headersFn)
	r.register("elements-of-type", 1, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		return value.QuotedString(a[0].String()), nil
	})
	r.register("nest", -1, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		parts := make([]string, 0, len(a))
		for _, v := range a {
			parts = append(parts, v.String())
		}
		return value.String(strings.Join(parts, " ")), nil
	})
	r.register("append-selector", 2, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		return value.String(a[0].String() + a[1].String()), nil
	})
}

func headersFn(_ []value.Value, _ map[string]value.Value) (value.Value, error) {
	out := value.NewList(",")
	for i := 1; i <= 6; i++ {
		out.Append(value.String("h" + itoa(i)))
	}
	return value.ListValue(out), nil
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	digits := ""
	for i > 0 {
		digits = string(rune('0'+i%10)) + digits
		i /= 10
	}
	return digits
}
