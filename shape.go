package picking

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Shape is a world-space hit-test volume placed by a WorldTransform.
// A point hits the shape when Distance is strictly less than Threshold.
type Shape interface {
	// Distance returns how far p lies from the shape placed by tr.
	Distance(p mgl64.Vec2, tr WorldTransform) float64
	// Threshold is the exclusive distance bound for a hit.
	Threshold() float64
}

// Hits reports whether p hits s placed by tr, and the distance used for ranking.
// NaN distances never hit.
func Hits(s Shape, p mgl64.Vec2, tr WorldTransform) (float64, bool) {
	d := s.Distance(p, tr)
	return d, d < s.Threshold()
}

// Circle is a circular hit area centered on the transform's translation.
type Circle struct {
	Radius float64
}

// Distance returns the Euclidean distance from p to the circle's center.
func (c Circle) Distance(p mgl64.Vec2, tr WorldTransform) float64 {
	return p.Sub(tr.Origin()).Len()
}

// Threshold returns the radius. Points on the circumference miss.
func (c Circle) Threshold() float64 {
	return c.Radius
}

// Segment is a line segment hit area with endpoints in local coordinates.
// Points closer than Tolerance to the segment hit.
type Segment struct {
	A, B      mgl64.Vec2
	Tolerance float64
}

// Distance returns the distance from p to the closest point on the segment.
func (s Segment) Distance(p mgl64.Vec2, tr WorldTransform) float64 {
	a := tr.TransformLocal(s.A)
	b := tr.TransformLocal(s.B)
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq == 0 {
		return p.Sub(a).Len()
	}
	t := p.Sub(a).Dot(ab) / lenSq
	t = math.Max(0, math.Min(1, t))
	return p.Sub(a.Add(ab.Mul(t))).Len()
}

// Threshold returns the tolerance.
func (s Segment) Threshold() float64 {
	return s.Tolerance
}
