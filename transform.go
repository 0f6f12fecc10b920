package picking

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Reports false if the matrix is singular (determinant ≈ 0).
func invertAffine(m [6]float64) ([6]float64, bool) {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform, false
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}, true
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// WorldTransform is an entity's world-space placement. Only the (x, y) of
// Translation takes part in hit testing; z is reported as hit depth.
// A zero Rotation is treated as the identity.
type WorldTransform struct {
	Translation mgl64.Vec3
	Rotation    mgl64.Quat
}

// At returns a WorldTransform at (x, y, z) with no rotation.
func At(x, y, z float64) WorldTransform {
	return WorldTransform{Translation: mgl64.Vec3{x, y, z}, Rotation: mgl64.QuatIdent()}
}

// Rotated returns a copy of t rotated by angle radians around the Z axis.
func (t WorldTransform) Rotated(angle float64) WorldTransform {
	t.Rotation = mgl64.QuatRotate(angle, mgl64.Vec3{0, 0, 1}).Mul(t.orientation())
	return t
}

// Origin returns the (x, y) of the translation.
func (t WorldTransform) Origin() mgl64.Vec2 {
	return mgl64.Vec2{t.Translation.X(), t.Translation.Y()}
}

// Depth returns the z of the translation.
func (t WorldTransform) Depth() float64 {
	return t.Translation.Z()
}

func (t WorldTransform) orientation() mgl64.Quat {
	if t.Rotation.W == 0 && t.Rotation.V == (mgl64.Vec3{}) {
		return mgl64.QuatIdent()
	}
	return t.Rotation
}

// TransformLocal maps a local-space 2D point into world space, applying the
// rotation and then the translation.
func (t WorldTransform) TransformLocal(p mgl64.Vec2) mgl64.Vec2 {
	r := t.orientation().Rotate(mgl64.Vec3{p.X(), p.Y(), 0})
	return mgl64.Vec2{r.X() + t.Translation.X(), r.Y() + t.Translation.Y()}
}
