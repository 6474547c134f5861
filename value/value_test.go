package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnitClosure(t *testing.T) {
	a := NumberWithUnit(10, "px")
	b := NumberWithUnit(4, "px")
	result := a.Add(b).Subtract(b)
	assert.InDelta(t, 10, result.Num, 1e-6)
	assert.Equal(t, "px", result.Primary)
}

func TestUnitConversion(t *testing.T) {
	a := NumberWithUnit(1, "cm")
	b := NumberWithUnit(10, "mm")
	result := a.Add(b)
	assert.InDelta(t, 2, result.Num, 1e-6)
	assert.Equal(t, "cm", result.Primary)
}

func TestDivideByZero(t *testing.T) {
	a := NumberWithUnit(1, "px")
	b := Number(0)
	assert.True(t, a.Divide(b).IsUndefined())
}

func TestTruthy(t *testing.T) {
	assert.False(t, String("undefined").Truthy())
	assert.False(t, String("0").Truthy())
	assert.False(t, String("false").Truthy())
	assert.False(t, String("$x").Truthy())
	assert.True(t, Number(0).Truthy())
	assert.True(t, String("red").Truthy())
}

func TestParseLiteral(t *testing.T) {
	v := ParseLiteral("3px")
	assert.Equal(t, KindNumber, v.Kind)
	assert.Equal(t, "px", v.Primary)

	q := ParseLiteral(`"hello"`)
	assert.Equal(t, KindQuotedString, q.Kind)
	assert.Equal(t, "hello", q.Str)
}
