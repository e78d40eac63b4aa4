package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	assert.Equal(t, Vec3{0, 0, 1}, x.Cross(y))
}

func TestVec3Arithmetic(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}

	assert.Equal(t, Vec3{5, 7, 9}, a.Add(b))
	assert.Equal(t, Vec3{-3, -3, -3}, a.Sub(b))
	assert.Equal(t, Vec3{-1, -2, -3}, a.Neg())
	assert.Equal(t, Vec3{2, 4, 6}, a.Scale(2))
	assert.Equal(t, float32(32), a.Dot(b))
}

func TestVec3Length(t *testing.T) {
	v := Vec3{3, 4, 0}
	assert.Equal(t, float32(5), v.Length())
	assert.InDelta(t, 1, v.Normalize().Length(), 1e-6)
	assert.Equal(t, Vec3{}, Vec3{}.Normalize())
	assert.Equal(t, float32(5), Vec3{}.Distance(v))
}

func TestVec3ArrayRoundTrip(t *testing.T) {
	v := Vec3{1, -2, 3}
	assert.Equal(t, [3]float32{1, -2, 3}, v.Array())
	assert.Equal(t, v, Vec3FromArray(v.Array()))
}
