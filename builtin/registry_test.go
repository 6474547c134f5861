package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/titpetric/scssgo/value"
)

func TestMixDispatch(t *testing.T) {
	r := Default()
	fn, ok := r.Lookup("mix:2", "mix:n")
	assert.True(t, ok)

	red, _ := value.ParseColor("#f00")
	blue, _ := value.ParseColor("#00f")
	result, err := fn([]value.Value{value.ColorValue(red), value.ColorValue(blue)}, nil)
	assert.NoError(t, err)
	assert.Equal(t, "#7f007f", result.String())
}

func TestPassthroughFunctions(t *testing.T) {
	assert.True(t, IsPassthrough("calc"))
	assert.True(t, IsPassthrough("-webkit-transform"))
	assert.False(t, IsPassthrough("lighten"))
}

func TestNthLastKeyword(t *testing.T) {
	r := Default()
	fn, _ := r.Lookup("nth:2", "nth:n")
	l := value.NewList(",")
	l.Append(value.Number(1))
	l.Append(value.Number(2))
	l.Append(value.Number(3))
	result, err := fn([]value.Value{value.ListValue(l), value.String("last")}, nil)
	assert.NoError(t, err)
	assert.Equal(t, 3.0, result.Num)
}
