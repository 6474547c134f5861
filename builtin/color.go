package builtin

import (
	"fmt"

	"github.com/titpetric/scssgo/eval"
	"github.com/titpetric/scssgo/value"
)

func registerColorFuncs(r *Registry) {
	r.register("rgb", 3, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		return value.ColorValue(value.NewRGB(a[0].Num, a[1].Num, a[2].Num)), nil
	})
	r.register("rgba", 4, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		return value.ColorValue(value.NewRGBA(a[0].Num, a[1].Num, a[2].Num, a[3].Num)), nil
	})
	// rgba(color, alpha) overload
	r.register("rgba", 2, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		c, err := argColor(a, 0)
		if err != nil {
			return value.Value{}, err
		}
		return value.ColorValue(c.Fade(a[1].Num)), nil
	})
	r.register("hsl", 3, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		return value.ColorValue(value.NewHSL(a[0].Num, a[1].Num, a[2].Num)), nil
	})
	r.register("hsla", 4, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		return value.ColorValue(value.NewHSLA(a[0].Num, a[1].Num, a[2].Num, a[3].Num)), nil
	})

	channel := func(get func(*value.Color) float64, unit string) eval.Func {
		return func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
			c, err := argColor(a, 0)
			if err != nil {
				return value.Value{}, err
			}
			return value.NumberWithUnit(get(c), unit), nil
		}
	}
	r.register("red", 1, channel(func(c *value.Color) float64 { return c.R }, ""))
	r.register("green", 1, channel(func(c *value.Color) float64 { return c.G }, ""))
	r.register("blue", 1, channel(func(c *value.Color) float64 { return c.B }, ""))
	r.register("alpha", 1, channel(func(c *value.Color) float64 { return c.A }, ""))
	r.register("opacity", 1, channel(func(c *value.Color) float64 { return c.A }, ""))
	r.register("hue", 1, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		c, err := argColor(a, 0)
		if err != nil {
			return value.Value{}, err
		}
		h, _, _ := c.ToHSL()
		return value.NumberWithUnit(h, "deg"), nil
	})
	r.register("saturation", 1, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		c, err := argColor(a, 0)
		if err != nil {
			return value.Value{}, err
		}
		_, s, _ := c.ToHSL()
		return value.NumberWithUnit(s, "%"), nil
	})
	r.register("lightness", 1, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		c, err := argColor(a, 0)
		if err != nil {
			return value.Value{}, err
		}
		_, _, l := c.ToHSL()
		return value.NumberWithUnit(l, "%"), nil
	})
	r.register("luma", 1, channelFn(func(c *value.Color) float64 { return c.Luma() * 100 }, "%"))
	r.register("luminance", 1, channelFn(func(c *value.Color) float64 { return c.Luma() * 100 }, "%"))

	adjust := func(f func(*value.Color, float64) *value.Color) eval.Func {
		return func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
			c, err := argColor(a, 0)
			if err != nil {
				return value.Value{}, err
			}
			return value.ColorValue(f(c, argNumber(a, 1, 0))), nil
		}
	}
	r.register("lighten", 2, adjust((*value.Color).Lighten))
	r.register("darken", 2, adjust((*value.Color).Darken))
	r.register("saturate", 2, adjust((*value.Color).Saturate))
	r.register("desaturate", 2, adjust((*value.Color).Desaturate))
	r.register("adjust-hue", 2, adjust((*value.Color).Spin))
	r.register("spin", 2, adjust((*value.Color).Spin))
	r.register("opacify", 2, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		c, err := argColor(a, 0)
		if err != nil {
			return value.Value{}, err
		}
		return value.ColorValue(c.Fade(c.A + argNumber(a, 1, 0))), nil
	})
	r.register("fade-in", 2, r.table["opacify:2"])
	r.register("transparentize", 2, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		c, err := argColor(a, 0)
		if err != nil {
			return value.Value{}, err
		}
		return value.ColorValue(c.Fade(c.A - argNumber(a, 1, 0))), nil
	})
	r.register("fade-out", 2, r.table["transparentize:2"])
	r.register("fade", 2, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		c, err := argColor(a, 0)
		if err != nil {
			return value.Value{}, err
		}
		alpha := argNumber(a, 1, 100)
		if alpha > 1 {
			alpha /= 100
		}
		return value.ColorValue(c.Fade(alpha)), nil
	})

	r.register("grayscale", 1, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		c, err := argColor(a, 0)
		if err != nil {
			return value.Value{}, err
		}
		return value.ColorValue(c.Greyscale()), nil
	})
	r.register("greyscale", 1, r.table["grayscale:1"])
	r.register("complement", 1, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		c, err := argColor(a, 0)
		if err != nil {
			return value.Value{}, err
		}
		return value.ColorValue(c.Spin(180)), nil
	})
	r.register("invert", 1, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		c, err := argColor(a, 0)
		if err != nil {
			return value.Value{}, err
		}
		return value.ColorValue(c.Invert()), nil
	})

	r.register("mix", 2, mixFn(0.5))
	r.register("mix", 3, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		c1, err := argColor(a, 0)
		if err != nil {
			return value.Value{}, err
		}
		c2, err := argColor(a, 1)
		if err != nil {
			return value.Value{}, err
		}
		w := argNumber(a, 2, 50)
		if w > 1 {
			w /= 100
		}
		return value.ColorValue(c1.Mix(c2, w)), nil
	})

	blendFn := func(f func(a, b *value.Color) *value.Color) eval.Func {
		return func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
			c1, err := argColor(a, 0)
			if err != nil {
				return value.Value{}, err
			}
			c2, err := argColor(a, 1)
			if err != nil {
				return value.Value{}, err
			}
			return value.ColorValue(f(c1, c2)), nil
		}
	}
	r.register("multiply", 2, blendFn(value.Multiply))
	r.register("screen", 2, blendFn(value.Screen))
	r.register("overlay", 2, blendFn(value.Overlay))
	r.register("softlight", 2, blendFn(value.SoftLight))
	r.register("hardlight", 2, blendFn(value.HardLight))
	r.register("difference", 2, blendFn(value.Difference))
	r.register("exclusion", 2, blendFn(value.Exclusion))
	r.register("average", 2, blendFn(value.Average))
	r.register("negation", 2, blendFn(value.Negation))

	// adjust-color/scale-color/change-color (spec.md §4.F), grounded on
	// original_source/scss/functions/sass.py:456-458's "name:n" registration
	// of _adjust_color/_scale_color/_change_color: named hue/saturation/
	// lightness/red/green/blue/alpha arguments, arbitrary subset.
	r.register("adjust-color", -1, func(a []value.Value, named map[string]value.Value) (value.Value, error) {
		c, err := argColor(a, 0)
		if err != nil {
			return value.Value{}, err
		}
		return value.ColorValue(c.AdjustColor(ascAdjustment(named))), nil
	})
	r.register("scale-color", -1, func(a []value.Value, named map[string]value.Value) (value.Value, error) {
		c, err := argColor(a, 0)
		if err != nil {
			return value.Value{}, err
		}
		return value.ColorValue(c.ScaleColor(ascAdjustment(named))), nil
	})
	r.register("change-color", -1, func(a []value.Value, named map[string]value.Value) (value.Value, error) {
		c, err := argColor(a, 0)
		if err != nil {
			return value.Value{}, err
		}
		return value.ColorValue(c.ChangeColor(ascAdjustment(named))), nil
	})

	r.register("ie-hex-str", 1, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		c, err := argColor(a, 0)
		if err != nil {
			return value.Value{}, err
		}
		return value.String(fmt.Sprintf("#%02X%02X%02X%02X", int(c.A*255), int(c.R), int(c.G), int(c.B))), nil
	})
}

func channelFn(get func(*value.Color) float64, unit string) eval.Func {
	return func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		c, err := argColor(a, 0)
		if err != nil {
			return value.Value{}, err
		}
		return value.NumberWithUnit(get(c), unit), nil
	}
}

// ascAdjustment collects adjust-color/scale-color/change-color's named
// arguments into a value.ColorAdjustment; any channel not passed is left
// unset.
func ascAdjustment(named map[string]value.Value) value.ColorAdjustment {
	var adj value.ColorAdjustment
	if v, ok := named["hue"]; ok {
		adj.Hue, adj.SetHue = v.Num, true
	}
	if v, ok := named["saturation"]; ok {
		adj.Saturation, adj.SetSaturation = v.Num, true
	}
	if v, ok := named["lightness"]; ok {
		adj.Lightness, adj.SetLightness = v.Num, true
	}
	if v, ok := named["red"]; ok {
		adj.Red, adj.SetRed = v.Num, true
	}
	if v, ok := named["green"]; ok {
		adj.Green, adj.SetGreen = v.Num, true
	}
	if v, ok := named["blue"]; ok {
		adj.Blue, adj.SetBlue = v.Num, true
	}
	if v, ok := named["alpha"]; ok {
		adj.Alpha, adj.SetAlpha = v.Num, true
	}
	return adj
}

func mixFn(defaultWeight float64) eval.Func {
	return func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		c1, err := argColor(a, 0)
		if err != nil {
			return value.Value{}, err
		}
		c2, err := argColor(a, 1)
		if err != nil {
			return value.Value{}, err
		}
		return value.ColorValue(c1.Mix(c2, defaultWeight)), nil
	}
}
