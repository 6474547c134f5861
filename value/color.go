package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Form is the "preferred form" tag of a Color: a hint for stringification
// that is independent of the stored channel values (spec.md §3).
type Form int

const (
	FormHex Form = iota
	FormRGB
	FormRGBA
	FormHSL
	FormHSLA
	FormNamed
)

// Color is four clamped channels plus a preferred stringification form.
// R, G, B live in [0, 255]; A lives in [0, 1]. Per-channel clamping is
// applied after every operation (spec.md §3's invariant).
type Color struct {
	R, G, B float64
	A       float64
	Form    Form
	Name    string // set when Form == FormNamed
	RawHex  string // preserves shorthand (#333 vs #333333) when parsed from hex
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampChannel(v float64) float64 { return clamp(v, 0, 255) }
func clampAlpha(v float64) float64   { return clamp(v, 0, 1) }

// NewRGB constructs an opaque Color from 0-255 channels.
func NewRGB(r, g, b float64) *Color {
	return &Color{R: clampChannel(r), G: clampChannel(g), B: clampChannel(b), A: 1, Form: FormRGB}
}

// NewRGBA constructs a Color with alpha.
func NewRGBA(r, g, b, a float64) *Color {
	return &Color{R: clampChannel(r), G: clampChannel(g), B: clampChannel(b), A: clampAlpha(a), Form: FormRGBA}
}

// NewHSL constructs a Color from HSL (H in degrees, S/L in [0,100]).
func NewHSL(h, s, l float64) *Color {
	r, g, b := hslToRGB(h, s, l)
	return &Color{R: r, G: g, B: b, A: 1, Form: FormHSL}
}

// NewHSLA constructs a Color from HSL with alpha.
func NewHSLA(h, s, l, a float64) *Color {
	c := NewHSL(h, s, l)
	c.A = clampAlpha(a)
	c.Form = FormHSLA
	return c
}

// ParseColor parses a color literal: 3/6-digit hex (with optional 4/8-digit
// alpha), rgb()/rgba()/hsl()/hsla() constructors, or a name looked up in
// the embedded named-color table (spec.md §4.A).
func ParseColor(s string) (*Color, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "#"):
		return parseHex(s)
	case strings.HasPrefix(s, "rgba("):
		return parseFunc(s, "rgba(", 4, func(v []float64) *Color {
			return NewRGBA(v[0], v[1], v[2], v[3])
		})
	case strings.HasPrefix(s, "rgb("):
		return parseFunc(s, "rgb(", 3, func(v []float64) *Color {
			return NewRGB(v[0], v[1], v[2])
		})
	case strings.HasPrefix(s, "hsla("):
		return parseFunc(s, "hsla(", 4, func(v []float64) *Color {
			return NewHSLA(v[0], v[1], v[2], v[3])
		})
	case strings.HasPrefix(s, "hsl("):
		return parseFunc(s, "hsl(", 3, func(v []float64) *Color {
			return NewHSL(v[0], v[1], v[2])
		})
	}
	if hex, ok := NamedColors[strings.ToLower(s)]; ok {
		c, err := parseHex(hex)
		if err != nil {
			return nil, err
		}
		c.Form = FormNamed
		c.Name = strings.ToLower(s)
		return c, nil
	}
	return nil, fmt.Errorf("invalid color: %s", s)
}

func parseHex(s string) (*Color, error) {
	raw := s
	s = strings.TrimPrefix(s, "#")
	hexPair := func(p string) (float64, error) {
		v, err := strconv.ParseUint(p, 16, 16)
		return float64(v), err
	}
	switch len(s) {
	case 3:
		r, _ := hexPair(string(s[0]) + string(s[0]))
		g, _ := hexPair(string(s[1]) + string(s[1]))
		b, _ := hexPair(string(s[2]) + string(s[2]))
		return &Color{R: r, G: g, B: b, A: 1, Form: FormHex, RawHex: raw}, nil
	case 4:
		r, _ := hexPair(string(s[0]) + string(s[0]))
		g, _ := hexPair(string(s[1]) + string(s[1]))
		b, _ := hexPair(string(s[2]) + string(s[2]))
		a, _ := hexPair(string(s[3]) + string(s[3]))
		return &Color{R: r, G: g, B: b, A: a / 255.0, Form: FormHex, RawHex: raw}, nil
	case 6:
		r, err := hexPair(s[0:2])
		if err != nil {
			return nil, fmt.Errorf("invalid hex color: %s", raw)
		}
		g, err := hexPair(s[2:4])
		if err != nil {
			return nil, fmt.Errorf("invalid hex color: %s", raw)
		}
		b, err := hexPair(s[4:6])
		if err != nil {
			return nil, fmt.Errorf("invalid hex color: %s", raw)
		}
		return &Color{R: r, G: g, B: b, A: 1, Form: FormHex, RawHex: raw}, nil
	case 8:
		r, _ := hexPair(s[0:2])
		g, _ := hexPair(s[2:4])
		b, _ := hexPair(s[4:6])
		a, _ := hexPair(s[6:8])
		return &Color{R: r, G: g, B: b, A: a / 255.0, Form: FormHex, RawHex: raw}, nil
	}
	return nil, fmt.Errorf("invalid hex color: %s", raw)
}

func parseFunc(s, prefix string, argc int, build func([]float64) *Color) (*Color, error) {
	content := strings.TrimSuffix(strings.TrimPrefix(s, prefix), ")")
	parts := strings.Split(content, ",")
	if len(parts) != argc {
		return nil, fmt.Errorf("%s expects %d arguments, got %d", prefix, argc, len(parts))
	}
	vals := make([]float64, argc)
	for i, p := range parts {
		p = strings.TrimSpace(p)
		p = strings.TrimSuffix(p, "%")
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid channel %q in %s", parts[i], s)
		}
		vals[i] = f
	}
	return build(vals), nil
}

// ToHSL returns the color's hue/saturation/lightness, round-tripping
// through RGB when the color was not constructed in HSL form.
func (c *Color) ToHSL() (h, s, l float64) {
	return rgbToHSL(c.R, c.G, c.B)
}

// String renders the color according to its preferred Form.
func (c *Color) String() string {
	switch c.Form {
	case FormHSLA:
		h, s, l := c.ToHSL()
		return fmt.Sprintf("hsla(%s, %s%%, %s%%, %s)", trimFloat(h), trimFloat(s), trimFloat(l), trimFloat(c.A))
	case FormHSL:
		h, s, l := c.ToHSL()
		return fmt.Sprintf("hsl(%s, %s%%, %s%%)", trimFloat(h), trimFloat(s), trimFloat(l))
	case FormRGBA:
		return fmt.Sprintf("rgba(%d, %d, %d, %s)", int(c.R), int(c.G), int(c.B), trimFloat(c.A))
	case FormNamed:
		return c.Name
	}
	if c.A < 1 {
		return fmt.Sprintf("rgba(%d, %d, %d, %s)", int(c.R), int(c.G), int(c.B), trimFloat(c.A))
	}
	if c.RawHex != "" {
		return c.RawHex
	}
	return fmt.Sprintf("#%02x%02x%02x", int(c.R), int(c.G), int(c.B))
}

// Add/Subtract implement per-channel Color arithmetic used by expressions
// like `$a + $b` on Color operands; alpha is taken from the left operand.
func (c *Color) Add(o *Color) *Color {
	return &Color{R: clampChannel(c.R + o.R), G: clampChannel(c.G + o.G), B: clampChannel(c.B + o.B), A: c.A, Form: c.Form}
}

func (c *Color) Subtract(o *Color) *Color {
	return &Color{R: clampChannel(c.R - o.R), G: clampChannel(c.G - o.G), B: clampChannel(c.B - o.B), A: c.A, Form: c.Form}
}

// hslAdjust applies f to the H/S/L triple and rebuilds RGB, the shared core
// of Lighten/Darken/Saturate/Desaturate/Spin/AdjustHue.
func (c *Color) hslAdjust(f func(h, s, l float64) (float64, float64, float64)) *Color {
	h, s, l := c.ToHSL()
	h2, s2, l2 := f(h, s, l)
	out := NewHSL(h2, s2, l2)
	out.A = c.A
	out.Form = c.Form
	return out
}

func (c *Color) Lighten(amount float64) *Color {
	return c.hslAdjust(func(h, s, l float64) (float64, float64, float64) { return h, s, math.Min(100, l+amount) })
}

func (c *Color) Darken(amount float64) *Color {
	return c.hslAdjust(func(h, s, l float64) (float64, float64, float64) { return h, s, math.Max(0, l-amount) })
}

func (c *Color) Saturate(amount float64) *Color {
	return c.hslAdjust(func(h, s, l float64) (float64, float64, float64) { return h, math.Min(100, s+amount), l })
}

func (c *Color) Desaturate(amount float64) *Color {
	return c.hslAdjust(func(h, s, l float64) (float64, float64, float64) { return h, math.Max(0, s-amount), l })
}

func (c *Color) Spin(degrees float64) *Color {
	return c.hslAdjust(func(h, s, l float64) (float64, float64, float64) {
		h += degrees
		for h < 0 {
			h += 360
		}
		for h >= 360 {
			h -= 360
		}
		return h, s, l
	})
}

// Greyscale desaturates completely (saturation -> 0).
func (c *Color) Greyscale() *Color {
	return c.hslAdjust(func(h, s, l float64) (float64, float64, float64) { return h, 0, l })
}

// Invert complements every RGB channel.
func (c *Color) Invert() *Color {
	return &Color{R: 255 - c.R, G: 255 - c.G, B: 255 - c.B, A: c.A, Form: c.Form}
}

// Mix blends c with o by weight (0..1 of c), the weighted average of RGBA
// channels, matching Sass's alpha-aware mix algorithm.
func (c *Color) Mix(o *Color, weight float64) *Color {
	weight = clamp(weight, 0, 1)
	// Sass's mix also factors in the relative alpha of the two colors so
	// that mixing a transparent color shifts the result's alpha too.
	w := weight*2 - 1
	da := c.A - o.A
	var w1 float64
	if w*da == -1 {
		w1 = w
	} else {
		w1 = (w + da) / (1 + w*da)
	}
	w1 = (w1 + 1) / 2
	w2 := 1 - w1
	return &Color{
		R:    clampChannel(c.R*w1 + o.R*w2),
		G:    clampChannel(c.G*w1 + o.G*w2),
		B:    clampChannel(c.B*w1 + o.B*w2),
		A:    clampAlpha(c.A*weight + o.A*(1-weight)),
		Form: c.Form,
	}
}

// Fade sets an absolute alpha (the `fade`/`rgba(color, a)` helper).
func (c *Color) Fade(alpha float64) *Color {
	out := *c
	out.A = clampAlpha(alpha)
	if out.Form == FormHSL {
		out.Form = FormHSLA
	} else if out.Form != FormHSLA {
		out.Form = FormRGBA
	}
	return &out
}

// blend implements the Compass/Sass photoshop-style blend modes, folded in
// from the teacher's functions/colors.go blend-mode math.
func blend(c1, c2 *Color, f func(a, b float64) float64) *Color {
	return &Color{
		R:    clampChannel(f(c1.R, c2.R)),
		G:    clampChannel(f(c1.G, c2.G)),
		B:    clampChannel(f(c1.B, c2.B)),
		A:    c1.A,
		Form: c1.Form,
	}
}

func Multiply(a, b *Color) *Color { return blend(a, b, func(x, y float64) float64 { return x * y / 255 }) }
func Screen(a, b *Color) *Color {
	return blend(a, b, func(x, y float64) float64 { return 255 - (255-x)*(255-y)/255 })
}
func Overlay(a, b *Color) *Color {
	return blend(a, b, func(x, y float64) float64 {
		if x <= 127.5 {
			return 2 * x * y / 255
		}
		return 255 - 2*(255-x)*(255-y)/255
	})
}
func HardLight(a, b *Color) *Color { return Overlay(b, a) }
func SoftLight(a, b *Color) *Color {
	return blend(a, b, func(x, y float64) float64 {
		xn, yn := x/255, y/255
		var r float64
		if yn <= 0.5 {
			r = xn - (1-2*yn)*xn*(1-xn)
		} else {
			var d float64
			if xn <= 0.25 {
				d = ((16*xn-12)*xn + 4) * xn
			} else {
				d = math.Sqrt(xn)
			}
			r = xn + (2*yn-1)*(d-xn)
		}
		return r * 255
	})
}
func Difference(a, b *Color) *Color { return blend(a, b, func(x, y float64) float64 { return math.Abs(x - y) }) }
func Exclusion(a, b *Color) *Color {
	return blend(a, b, func(x, y float64) float64 { return x + y - 2*x*y/255 })
}
func Average(a, b *Color) *Color    { return blend(a, b, func(x, y float64) float64 { return (x + y) / 2 }) }
func Negation(a, b *Color) *Color {
	return blend(a, b, func(x, y float64) float64 { return 255 - math.Abs(255-x-y) })
}

// ColorAdjustment holds the optional named channel deltas/targets shared by
// AdjustColor/ScaleColor/ChangeColor (spec.md §4.F, grounded on
// original_source/scss/functions/sass.py's `_adjust_color`/`_scale_color`/
// `_change_color`): hue in degrees, saturation/lightness in percentage
// points (0-100), red/green/blue in channel units (0-255), alpha in [0,1].
// Each channel carries its own Set flag since zero is a valid delta.
type ColorAdjustment struct {
	Hue, Saturation, Lightness     float64
	Red, Green, Blue, Alpha        float64
	SetHue, SetSaturation, SetLightness bool
	SetRed, SetGreen, SetBlue, SetAlpha bool
}

func (c *Color) hslChannels(adj ColorAdjustment) bool {
	return adj.SetHue || adj.SetSaturation || adj.SetLightness
}

// AdjustColor implements adjust-color: every given channel is adjusted by
// an absolute delta relative to its current value.
func (c *Color) AdjustColor(adj ColorAdjustment) *Color {
	out := *c
	if c.hslChannels(adj) {
		h, s, l := out.ToHSL()
		if adj.SetHue {
			h += adj.Hue
		}
		if adj.SetSaturation {
			s = clamp(s+adj.Saturation, 0, 100)
		}
		if adj.SetLightness {
			l = clamp(l+adj.Lightness, 0, 100)
		}
		next := NewHSL(h, s, l)
		out.R, out.G, out.B = next.R, next.G, next.B
	}
	if adj.SetRed {
		out.R = clampChannel(out.R + adj.Red)
	}
	if adj.SetGreen {
		out.G = clampChannel(out.G + adj.Green)
	}
	if adj.SetBlue {
		out.B = clampChannel(out.B + adj.Blue)
	}
	if adj.SetAlpha {
		out.A = clampAlpha(out.A + adj.Alpha)
	}
	return &out
}

// scaleToward moves base a percentage of the way towards max (pct >= 0) or
// towards 0 (pct < 0), Sass's scale-color semantics.
func scaleToward(base, pct, max float64) float64 {
	if pct >= 0 {
		return base + (max-base)*pct/100
	}
	return base + base*pct/100
}

// ScaleColor implements scale-color: every given channel is scaled a
// percentage of the way towards its maximum (or towards zero for a
// negative percentage) rather than shifted by an absolute delta.
func (c *Color) ScaleColor(adj ColorAdjustment) *Color {
	out := *c
	if adj.SetSaturation || adj.SetLightness {
		h, s, l := out.ToHSL()
		if adj.SetSaturation {
			s = clamp(scaleToward(s, adj.Saturation, 100), 0, 100)
		}
		if adj.SetLightness {
			l = clamp(scaleToward(l, adj.Lightness, 100), 0, 100)
		}
		next := NewHSL(h, s, l)
		out.R, out.G, out.B = next.R, next.G, next.B
	}
	if adj.SetRed {
		out.R = clampChannel(scaleToward(out.R, adj.Red, 255))
	}
	if adj.SetGreen {
		out.G = clampChannel(scaleToward(out.G, adj.Green, 255))
	}
	if adj.SetBlue {
		out.B = clampChannel(scaleToward(out.B, adj.Blue, 255))
	}
	if adj.SetAlpha {
		out.A = clampAlpha(scaleToward(out.A, adj.Alpha, 1))
	}
	return &out
}

// ChangeColor implements change-color: every given channel is replaced
// outright rather than adjusted relative to its current value.
func (c *Color) ChangeColor(adj ColorAdjustment) *Color {
	out := *c
	if c.hslChannels(adj) {
		h, s, l := out.ToHSL()
		if adj.SetHue {
			h = adj.Hue
		}
		if adj.SetSaturation {
			s = adj.Saturation
		}
		if adj.SetLightness {
			l = adj.Lightness
		}
		next := NewHSL(h, s, l)
		out.R, out.G, out.B = next.R, next.G, next.B
	}
	if adj.SetRed {
		out.R = clampChannel(adj.Red)
	}
	if adj.SetGreen {
		out.G = clampChannel(adj.Green)
	}
	if adj.SetBlue {
		out.B = clampChannel(adj.Blue)
	}
	if adj.SetAlpha {
		out.A = clampAlpha(adj.Alpha)
	}
	return &out
}

// Luma is the perceptual luminance, used by `luma`/`luminance`/contrast
// helpers.
func (c *Color) Luma() float64 {
	return (0.2126*c.R + 0.7152*c.G + 0.0722*c.B) / 255
}

// rgbToHSL converts 0-255 RGB channels to H (0-360) / S,L (0-100), with the
// singular-point guard spec.md §3 requires: saturation or lightness exactly
// at their boundary is nudged by 1e-6 before the round trip so that
// lighten/darken chains near pure black/white/grey do not divide by zero.
func rgbToHSL(r, g, b float64) (float64, float64, float64) {
	rf, gf, bf := r/255, g/255, b/255
	maxC := math.Max(rf, math.Max(gf, bf))
	minC := math.Min(rf, math.Min(gf, bf))
	l := (maxC + minC) / 2

	if maxC == minC {
		return 0, 0, l * 100
	}

	d := maxC - minC
	var s float64
	if l > 0.5 {
		s = d / (2 - maxC - minC)
	} else {
		s = d / (maxC + minC)
	}
	if s >= 1.0 {
		s = 0.999999
	}

	var h float64
	switch maxC {
	case rf:
		h = math.Mod((gf-bf)/d, 6)
	case gf:
		h = (bf-rf)/d + 2
	default:
		h = (rf-gf)/d + 4
	}
	h *= 60
	if h < 0 {
		h += 360
	}
	if l >= 1.0 {
		l = 0.999999
	}
	return h, s * 100, l * 100
}

// hslToRGB is the inverse of rgbToHSL, applying the same singular-point
// guard on S/L before conversion.
func hslToRGB(h, s, l float64) (float64, float64, float64) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	s = clamp(s/100, 0, 1)
	l = clamp(l/100, 0, 1)
	if s >= 1.0 {
		s = 0.999999
	}
	if l >= 1.0 {
		l = 0.999999
	}

	var c float64
	if l < 0.5 {
		c = 2 * l * s
	} else {
		c = (2 - 2*l) * s
	}
	hPrime := h / 60
	x := c * (1 - math.Abs(math.Mod(hPrime, 2)-1))

	var r, g, b float64
	switch {
	case hPrime < 1:
		r, g, b = c, x, 0
	case hPrime < 2:
		r, g, b = x, c, 0
	case hPrime < 3:
		r, g, b = 0, c, x
	case hPrime < 4:
		r, g, b = 0, x, c
	case hPrime < 5:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	m := l - c/2
	return clampChannel((r + m) * 255), clampChannel((g + m) * 255), clampChannel((b + m) * 255)
}
