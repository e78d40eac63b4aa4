// Package transform places objects in the world: position, rotation and
// uniform scale composed into model, normal and view matrices.
package transform

import (
	"errors"
	"fmt"

	"github.com/Faultbox/scenegl/pkg/math"
)

// ErrInvalidArgument is returned by setters given a value of the wrong shape.
var ErrInvalidArgument = errors.New("invalid argument")

// Rotation is either Euler or RotationMatrix.
type Rotation interface {
	isRotation()
}

// Euler holds rotation angles in degrees about the X, Y and Z axes.
// The model matrix applies them as Rz * Ry * Rx.
type Euler struct {
	X, Y, Z float32
}

func (Euler) isRotation() {}

// RotationMatrix is an orthonormal 3x3 rotation.
type RotationMatrix math.Mat3

func (RotationMatrix) isRotation() {}

// Matrix3 builds a RotationMatrix from row-major rows.
func Matrix3(rows [3][3]float32) RotationMatrix {
	return RotationMatrix(math.Mat3FromRows(rows))
}

// Transform is the position, rotation and scale of an object or viewpoint.
// Matrices are recomputed from the current fields on every call.
type Transform struct {
	Position math.Vec3
	Rotation Rotation
	Scale    float32
}

// New returns a transform at the origin with no rotation and unit scale.
func New() Transform {
	return Transform{
		Rotation: Euler{},
		Scale:    1,
	}
}

// SetPosition replaces the position. v must have exactly three components.
func (t *Transform) SetPosition(v []float64) error {
	if len(v) != 3 {
		return fmt.Errorf("%w: position needs 3 (x,y,z) components, got %d", ErrInvalidArgument, len(v))
	}
	t.Position = math.Vec3{X: float32(v[0]), Y: float32(v[1]), Z: float32(v[2])}
	return nil
}

// SetRotationEuler replaces the rotation with Euler angles in degrees.
func (t *Transform) SetRotationEuler(v []float64) error {
	if len(v) != 3 {
		return fmt.Errorf("%w: euler rotation needs 3 (x,y,z) angles, got %d", ErrInvalidArgument, len(v))
	}
	t.Rotation = Euler{X: float32(v[0]), Y: float32(v[1]), Z: float32(v[2])}
	return nil
}

// SetRotationMatrix replaces the rotation with a 3x3 matrix given as rows.
func (t *Transform) SetRotationMatrix(rows [][]float64) error {
	if len(rows) != 3 {
		return fmt.Errorf("%w: rotation matrix needs 3 rows, got %d", ErrInvalidArgument, len(rows))
	}
	var r [3][3]float32
	for i, row := range rows {
		if len(row) != 3 {
			return fmt.Errorf("%w: rotation matrix row %d has %d columns, want 3", ErrInvalidArgument, i, len(row))
		}
		for j, v := range row {
			r[i][j] = float32(v)
		}
	}
	t.Rotation = Matrix3(r)
	return nil
}

// SetRotation replaces the rotation with either representation.
func (t *Transform) SetRotation(r Rotation) error {
	switch r.(type) {
	case Euler, RotationMatrix:
		t.Rotation = r
		return nil
	case nil:
		return fmt.Errorf("%w: nil rotation", ErrInvalidArgument)
	default:
		return fmt.Errorf("%w: unsupported rotation %T", ErrInvalidArgument, r)
	}
}

// SetScale replaces the uniform scale factor.
func (t *Transform) SetScale(s float32) {
	t.Scale = s
}

// rotationMatrix returns R for the model matrix.
func (t *Transform) rotationMatrix() math.Mat4 {
	switch r := t.Rotation.(type) {
	case Euler:
		return math.RotateZ(math.Radians(r.Z)).
			Mul(math.RotateY(math.Radians(r.Y))).
			Mul(math.RotateX(math.Radians(r.X)))
	case RotationMatrix:
		return math.Mat3(r).Mat4()
	default:
		return math.Identity()
	}
}

// inverseRotationMatrix returns R^-1. Both representations are orthonormal,
// so the inverse is the reversed, negated Euler chain or the transpose.
func (t *Transform) inverseRotationMatrix() math.Mat4 {
	switch r := t.Rotation.(type) {
	case Euler:
		return math.RotateX(math.Radians(-r.X)).
			Mul(math.RotateY(math.Radians(-r.Y))).
			Mul(math.RotateZ(math.Radians(-r.Z)))
	case RotationMatrix:
		return math.Mat3(r).Transpose().Mat4()
	default:
		return math.Identity()
	}
}

// ModelMatrix returns T(position) * R * S(scale), mapping local space to world space.
func (t *Transform) ModelMatrix() math.Mat4 {
	return math.TranslateVec3(t.Position).
		Mul(t.rotationMatrix()).
		Mul(math.ScaleUniform(t.Scale))
}

// NormalMatrix returns the inverse of the transposed model matrix.
// A zero scale makes the model matrix singular and the result NaN/Inf.
func (t *Transform) NormalMatrix() math.Mat4 {
	return t.ModelMatrix().Transpose().Inverse()
}

// ViewMatrix returns R^-1 * T(-position), mapping world space into this
// transform's local space. Scale is not part of the view.
func (t *Transform) ViewMatrix() math.Mat4 {
	return t.inverseRotationMatrix().Mul(math.TranslateVec3(t.Position.Neg()))
}
