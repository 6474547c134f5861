package builtin

import (
	"github.com/titpetric/scssgo/sprite"
	"github.com/titpetric/scssgo/value"
)

// registerSpriteFuncs wires the Compass-style asset helpers (spec.md §1's
// declared-but-unspecified image-url/sprite-map/font-url bindings) through
// the sprite.Helper collaborator interface.
func registerSpriteFuncs(r *Registry, helper sprite.Helper) {
	r.register("image-url", 1, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		return value.String(helper.ImageURL(a[0].Unquote().String())), nil
	})
	r.register("font-url", 1, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		return value.String(helper.ImageURL(a[0].Unquote().String())), nil
	})
	r.register("sprite-map", 1, func(a []value.Value, _ map[string]value.Value) (value.Value, error) {
		ref, err := helper.SpriteMap(a[0].Unquote().String())
		if err != nil {
			return value.Null(), err
		}
		return value.String(ref), nil
	})
}
