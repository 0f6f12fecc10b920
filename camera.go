package picking

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// CameraView is the read-only snapshot of one camera for a tick.
type CameraView struct {
	// Entity is the camera's entity, reported back in every HitRecord.
	Entity EntityID
	// Active cameras take part in picking; inactive cameras are ignored.
	Active bool
	// Target is the surface the camera draws into.
	Target RenderTarget
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect
	// X and Y are the world-space position the camera centers on.
	X, Y float64
	// Zoom is the scale factor (1.0 = no zoom, >1 = zoom in, <1 = zoom out).
	Zoom float64
	// Rotation is the camera rotation in radians (clockwise).
	Rotation float64
	// Order ranks this camera among cameras and backends. It is passed
	// through unchanged as the HitBatch order.
	Order int
}

// NewCameraView returns an active camera with zoom 1 drawing into the
// primary window through the given viewport.
func NewCameraView(entity EntityID, viewport Rect) CameraView {
	return CameraView{
		Entity:   entity,
		Active:   true,
		Target:   PrimaryWindowTarget,
		Viewport: viewport,
		Zoom:     1.0,
	}
}

// degenerate reports whether the camera cannot map between screen and world.
func (c *CameraView) degenerate() bool {
	vp := c.Viewport
	if !finite(vp.X) || !finite(vp.Y) || !finite(vp.Width) || !finite(vp.Height) {
		return true
	}
	if vp.Width <= 0 || vp.Height <= 0 {
		return true
	}
	return c.Zoom == 0 || !finite(c.Zoom) || !finite(c.X) || !finite(c.Y) || !finite(c.Rotation)
}

// viewMatrix returns the world-to-screen affine matrix.
//
// viewMatrix = Translate(cx, cy) * Scale(zoom) * Rotate(-rotation) * Translate(-X, -Y)
// where cx, cy = viewport center.
func (c *CameraView) viewMatrix() [6]float64 {
	cx := c.Viewport.X + c.Viewport.Width/2
	cy := c.Viewport.Y + c.Viewport.Height/2
	sin, cos := math.Sincos(-c.Rotation)
	z := c.Zoom

	m := [6]float64{1, 0, 0, 1, -c.X, -c.Y}
	m = multiplyAffine([6]float64{cos, sin, -sin, cos, 0, 0}, m)
	m = multiplyAffine([6]float64{z, 0, 0, z, 0, 0}, m)
	return multiplyAffine([6]float64{1, 0, 0, 1, cx, cy}, m)
}

// WorldToScreen converts world coordinates to screen coordinates.
// Reports false for a degenerate camera.
func (c *CameraView) WorldToScreen(world mgl64.Vec2) (mgl64.Vec2, bool) {
	if c.degenerate() {
		return mgl64.Vec2{}, false
	}
	sx, sy := transformPoint(c.viewMatrix(), world.X(), world.Y())
	return mgl64.Vec2{sx, sy}, true
}

// ScreenToWorld converts a screen position (pixels, origin top-left of the
// target surface) to world coordinates. Reports false when the viewport is
// empty, the zoom is zero, or the mapping is not invertible.
func (c *CameraView) ScreenToWorld(screen mgl64.Vec2) (mgl64.Vec2, bool) {
	if c.degenerate() {
		return mgl64.Vec2{}, false
	}
	inv, ok := invertAffine(c.viewMatrix())
	if !ok {
		return mgl64.Vec2{}, false
	}
	wx, wy := transformPoint(inv, screen.X(), screen.Y())
	if !finite(wx) || !finite(wy) {
		return mgl64.Vec2{}, false
	}
	return mgl64.Vec2{wx, wy}, true
}

// VisibleBounds returns the axis-aligned bounding rect of the camera's visible
// area in world space. Reports false for a degenerate camera.
func (c *CameraView) VisibleBounds() (Rect, bool) {
	vx := c.Viewport.X
	vy := c.Viewport.Y
	vr := vx + c.Viewport.Width
	vb := vy + c.Viewport.Height

	var pts [4]mgl64.Vec2
	for i, s := range [4]mgl64.Vec2{{vx, vy}, {vr, vy}, {vr, vb}, {vx, vb}} {
		w, ok := c.ScreenToWorld(s)
		if !ok {
			return Rect{}, false
		}
		pts[i] = w
	}

	minX := math.Min(math.Min(pts[0].X(), pts[1].X()), math.Min(pts[2].X(), pts[3].X()))
	minY := math.Min(math.Min(pts[0].Y(), pts[1].Y()), math.Min(pts[2].Y(), pts[3].Y()))
	maxX := math.Max(math.Max(pts[0].X(), pts[1].X()), math.Max(pts[2].X(), pts[3].X()))
	maxY := math.Max(math.Max(pts[0].Y(), pts[1].Y()), math.Max(pts[2].Y(), pts[3].Y()))

	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}, true
}

// CameraSource provides the camera snapshot for one tick, in iteration order.
type CameraSource interface {
	Cameras() []CameraView
}
