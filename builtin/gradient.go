package builtin

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/titpetric/scssgo/value"
)

// registerGradientFuncs wires spec.md §4.F's Gradients category: pure
// CSS-string builders, not imaging-backend-dependent (unlike the sprite
// helpers in sprite.go), grounded on
// original_source/scss/functions/__init__.py's _linear_gradient/
// _radial_gradient/_color_stops/_grad_color_stops/_grad_end_position/
// _grad_point/_linear_svg_gradient/_radial_svg_gradient, simplified to emit
// modern CSS gradient syntax directly rather than the legacy webkit-gradient/
// PIE fallback chain the original also produced.
func registerGradientFuncs(r *Registry) {
	r.register("grad-point", -1, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		return value.QuotedString(gradPoint(a)), nil
	})
	r.register("color-stops", -1, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		return value.String(joinStops(colorStops(a))), nil
	})
	r.register("grad-color-stops", -1, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		stops := colorStops(a)
		parts := make([]string, len(stops))
		for i, s := range stops {
			parts[i] = fmt.Sprintf("color-stop(%s, %s)", trimPct(s.pct), s.color)
		}
		return value.String(strings.Join(parts, ", ")), nil
	})
	r.register("grad-end-position", -1, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		stops := colorStops(a)
		if len(stops) == 0 {
			return value.Number(0), nil
		}
		return value.NumberWithUnit(stops[len(stops)-1].pct, "%"), nil
	})
	r.register("linear-gradient", -1, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		dir, stops := splitDirection(a, "top")
		return value.String(buildGradient("linear-gradient", dir, stops)), nil
	})
	r.register("radial-gradient", -1, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		dir, stops := splitDirection(a, "center")
		return value.String(buildGradient("radial-gradient", dir, stops)), nil
	})
	r.register("linear-svg-gradient", -1, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		dir, stops := splitDirection(a, "top")
		return value.String(svgGradientURL("linearGradient", dir, stops)), nil
	})
	r.register("radial-svg-gradient", -1, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		dir, stops := splitDirection(a, "center")
		return value.String(svgGradientURL("radialGradient", dir, stops)), nil
	})
}

type colorStop struct {
	pct   float64
	color string
}

// colorStops builds evenly-spaced stops from a bare color list, or honors
// explicit (number, color) pairs when given -- _color_stops's two calling
// conventions.
func colorStops(args []value.Value) []colorStop {
	var stops []colorStop
	explicit := false
	for i := 0; i < len(args); i++ {
		if args[i].Kind == value.KindNumber && i+1 < len(args) {
			stops = append(stops, colorStop{pct: stopPercent(args[i]), color: args[i+1].String()})
			i++
			explicit = true
			continue
		}
		stops = append(stops, colorStop{pct: -1, color: args[i].String()})
	}
	if explicit {
		return stops
	}
	n := len(stops)
	for i := range stops {
		if n == 1 {
			stops[i].pct = 0
			continue
		}
		stops[i].pct = float64(i) / float64(n-1) * 100
	}
	return stops
}

func stopPercent(v value.Value) float64 {
	if v.Num <= 1 {
		return v.Num * 100
	}
	return v.Num
}

func joinStops(stops []colorStop) string {
	parts := make([]string, len(stops))
	for i, s := range stops {
		parts[i] = s.color + " " + trimPct(s.pct) + "%"
	}
	return strings.Join(parts, ", ")
}

func trimPct(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// splitDirection peels a leading position/angle keyword argument (anything
// that isn't a Color) off the front of args, defaulting to def when none is
// given, and returns the remaining color-stop arguments.
func splitDirection(args []value.Value, def string) (string, []colorStop) {
	if len(args) > 0 && args[0].Kind != value.KindColor {
		return gradPoint(args[:1]), colorStops(args[1:])
	}
	return def, colorStops(args)
}

// gradPoint implements grad-point: maps 1-2 positional keyword/percentage
// args to a CSS position string, defaulting to "center".
func gradPoint(args []value.Value) string {
	if len(args) == 0 {
		return "center"
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return strings.Join(parts, " ")
}

func buildGradient(fn, dir string, stops []colorStop) string {
	return fn + "(" + dir + ", " + joinStops(stops) + ")"
}

// svgGradientURL synthesizes an inline SVG gradient data URI, the
// low-fidelity stand-in for _linear_svg_gradient/_radial_svg_gradient's
// legacy IE9 fallback.
func svgGradientURL(tag, dir string, stops []colorStop) string {
	var b strings.Builder
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg"><` + tag + ` id="g" gradientTransform="` + dir + `">`)
	for _, s := range stops {
		b.WriteString(fmt.Sprintf(`<stop offset="%s%%" stop-color="%s"/>`, trimPct(s.pct), s.color))
	}
	b.WriteString(`</` + tag + `></svg>`)
	return `url("data:image/svg+xml,` + b.String() + `")`
}
