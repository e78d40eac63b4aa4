package math

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

const tol = 1e-5

func assertPoint(t *testing.T, want, got [3]float32) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], tol, "component %d: got %v, want %v", i, got, want)
	}
}

func TestIdentity(t *testing.T) {
	m := Identity()
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			want := float32(0)
			if row == col {
				want = 1
			}
			assert.Equal(t, want, m.At(row, col), "element (%d,%d)", row, col)
		}
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	assert.Equal(t, m, m.Mul(Identity()))
	assert.Equal(t, m, Identity().Mul(m))
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation lives in column 4 (indices 12, 13, 14)
	assert.Equal(t, float32(5), m[12])
	assert.Equal(t, float32(10), m[13])
	assert.Equal(t, float32(15), m[14])
	assert.Equal(t, m, TranslateVec3(Vec3{5, 10, 15}))
}

func TestScaleUniform(t *testing.T) {
	m := ScaleUniform(2)
	assert.Equal(t, Scale(2, 2, 2), m)
	assertPoint(t, [3]float32{2, 4, 6}, m.TransformPoint([3]float32{1, 2, 3}))
}

func TestRotations(t *testing.T) {
	quarter := float32(math32.Pi / 2)
	tests := []struct {
		name string
		m    Mat4
		in   [3]float32
		want [3]float32
	}{
		{"x maps y to z", RotateX(quarter), [3]float32{0, 1, 0}, [3]float32{0, 0, 1}},
		{"y maps z to x", RotateY(quarter), [3]float32{0, 0, 1}, [3]float32{1, 0, 0}},
		{"y maps x to -z", RotateY(quarter), [3]float32{1, 0, 0}, [3]float32{0, 0, -1}},
		{"z maps x to y", RotateZ(quarter), [3]float32{1, 0, 0}, [3]float32{0, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertPoint(t, tt.want, tt.m.TransformPoint(tt.in))
		})
	}
}

func TestRadians(t *testing.T) {
	assert.InDelta(t, math32.Pi, Radians(180), tol)
	assert.InDelta(t, math32.Pi/2, Radians(90), tol)
}

func TestTranspose(t *testing.T) {
	m := Translate(1, 2, 3)
	tr := m.Transpose()
	assert.Equal(t, float32(1), tr.At(3, 0))
	assert.Equal(t, float32(2), tr.At(3, 1))
	assert.Equal(t, float32(3), tr.At(3, 2))
	assert.Equal(t, m, tr.Transpose())
}

func TestInverse(t *testing.T) {
	m := Translate(3, -2, 7).Mul(RotateY(0.7)).Mul(RotateX(-0.3)).Mul(ScaleUniform(2.5))
	assert.True(t, m.Mul(m.Inverse()).ApproxEqual(Identity(), tol))
	assert.True(t, m.Inverse().Mul(m).ApproxEqual(Identity(), tol))
}

func TestInverseSingular(t *testing.T) {
	inv := ScaleUniform(0).Inverse()

	finite := true
	for _, v := range inv {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			finite = false
		}
	}
	assert.False(t, finite, "singular inverse should not silently produce finite values")
}

func TestTransformDirectionIgnoresTranslation(t *testing.T) {
	m := Translate(10, 20, 30)
	assert.Equal(t, [3]float32{1, 2, 3}, m.TransformDirection([3]float32{1, 2, 3}))
}

func TestPerspective(t *testing.T) {
	m := Perspective(math32.Pi/4, 1, 0.1, 100)

	assert.NotZero(t, m[0])
	assert.NotZero(t, m[5])
	assert.Equal(t, float32(0), m[15])
	assert.Equal(t, float32(-1), m[11])
}

func TestMat3Embedding(t *testing.T) {
	m3 := Mat3FromRows([3][3]float32{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 9},
	})
	m4 := m3.Mat4()

	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			assert.Equal(t, m3.At(row, col), m4.At(row, col))
		}
	}
	assert.Equal(t, float32(1), m4.At(3, 3))
	assert.Equal(t, float32(0), m4.At(0, 3))
	assert.Equal(t, m3, m4.Upper3())
	assert.Equal(t, float32(4), m3.Transpose().At(0, 1))
	assert.Equal(t, Identity3().Mat4(), Identity())
}
