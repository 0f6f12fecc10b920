package picking

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func testCamera() CameraView {
	return NewCameraView(1, Rect{X: 0, Y: 0, Width: 800, Height: 600})
}

func TestCameraDefaults(t *testing.T) {
	cam := testCamera()
	if cam.Zoom != 1.0 {
		t.Errorf("Zoom = %f, want 1.0", cam.Zoom)
	}
	if !cam.Active {
		t.Error("Active = false, want true")
	}
	if cam.Target != PrimaryWindowTarget {
		t.Errorf("Target = %v, want primary window", cam.Target)
	}
}

func TestCameraIdentityViewMatrix(t *testing.T) {
	cam := testCamera()
	// At (0,0), zoom 1, no rotation the view matrix translates to the
	// viewport center (400, 300).
	sx, sy := transformPoint(cam.viewMatrix(), 0, 0)
	if !approxEqual(sx, 400, epsilon) || !approxEqual(sy, 300, epsilon) {
		t.Errorf("WorldToScreen(0,0) = (%f,%f), want (400,300)", sx, sy)
	}
}

func TestCameraTranslation(t *testing.T) {
	cam := testCamera()
	cam.X = 100
	cam.Y = 50
	s, ok := cam.WorldToScreen(mgl64.Vec2{100, 50})
	if !ok {
		t.Fatal("WorldToScreen failed")
	}
	if !approxEqual(s.X(), 400, epsilon) || !approxEqual(s.Y(), 300, epsilon) {
		t.Errorf("WorldToScreen(100,50) with cam at (100,50) = %v, want (400,300)", s)
	}
}

func TestCameraZoom(t *testing.T) {
	cam := testCamera()
	cam.Zoom = 2.0

	// At zoom 2, one world unit spans two pixels.
	s1, _ := cam.WorldToScreen(mgl64.Vec2{1, 0})
	s0, _ := cam.WorldToScreen(mgl64.Vec2{0, 0})
	if !approxEqual(s1.X()-s0.X(), 2.0, epsilon) {
		t.Errorf("screen distance at zoom 2 = %f, want 2", s1.X()-s0.X())
	}

	// And a screen offset of 100px is 50 world units.
	w, ok := cam.ScreenToWorld(mgl64.Vec2{500, 300})
	if !ok {
		t.Fatal("ScreenToWorld failed")
	}
	assertNear(t, "world.x", w.X(), 50)
	assertNear(t, "world.y", w.Y(), 0)
}

func TestCameraRotation(t *testing.T) {
	cam := testCamera()
	cam.Rotation = math.Pi / 2

	// Rotating the camera 90° clockwise turns world +X into screen -Y.
	s, _ := cam.WorldToScreen(mgl64.Vec2{10, 0})
	if !approxEqual(s.X(), 400, 1e-6) || !approxEqual(s.Y(), 290, 1e-6) {
		t.Errorf("WorldToScreen(10,0) = %v, want (400,290)", s)
	}
}

func TestCameraViewportOffset(t *testing.T) {
	// Right half of a 1600x600 window.
	cam := NewCameraView(1, Rect{X: 800, Y: 0, Width: 800, Height: 600})
	w, ok := cam.ScreenToWorld(mgl64.Vec2{1200, 300})
	if !ok {
		t.Fatal("ScreenToWorld failed")
	}
	assertNear(t, "world.x", w.X(), 0)
	assertNear(t, "world.y", w.Y(), 0)
}

func TestCameraRoundTrip(t *testing.T) {
	cam := testCamera()
	cam.X = -37.5
	cam.Y = 12
	cam.Zoom = 1.75
	cam.Rotation = 0.4

	points := []mgl64.Vec2{{0, 0}, {123, -45}, {-300, 800}, {1e4, 1e4}}
	for _, p := range points {
		s, ok := cam.WorldToScreen(p)
		if !ok {
			t.Fatalf("WorldToScreen(%v) failed", p)
		}
		w, ok := cam.ScreenToWorld(s)
		if !ok {
			t.Fatalf("ScreenToWorld(%v) failed", s)
		}
		if !approxEqual(w.X(), p.X(), 1e-6) || !approxEqual(w.Y(), p.Y(), 1e-6) {
			t.Errorf("round trip %v -> %v -> %v", p, s, w)
		}
	}
}

func TestCameraDegenerate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *CameraView)
	}{
		{"zero width", func(c *CameraView) { c.Viewport.Width = 0 }},
		{"zero height", func(c *CameraView) { c.Viewport.Height = 0 }},
		{"negative width", func(c *CameraView) { c.Viewport.Width = -10 }},
		{"zero zoom", func(c *CameraView) { c.Zoom = 0 }},
		{"nan zoom", func(c *CameraView) { c.Zoom = math.NaN() }},
		{"inf position", func(c *CameraView) { c.X = math.Inf(1) }},
		{"nan viewport", func(c *CameraView) { c.Viewport.X = math.NaN() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := testCamera()
			tt.mutate(&cam)
			if _, ok := cam.ScreenToWorld(mgl64.Vec2{400, 300}); ok {
				t.Error("ScreenToWorld succeeded on degenerate camera")
			}
			if _, ok := cam.WorldToScreen(mgl64.Vec2{0, 0}); ok {
				t.Error("WorldToScreen succeeded on degenerate camera")
			}
			if _, ok := cam.VisibleBounds(); ok {
				t.Error("VisibleBounds succeeded on degenerate camera")
			}
		})
	}
}

func TestCameraNonFiniteScreenPoint(t *testing.T) {
	cam := testCamera()
	if _, ok := cam.ScreenToWorld(mgl64.Vec2{math.NaN(), 0}); ok {
		t.Error("ScreenToWorld accepted NaN screen point")
	}
}

func TestCameraVisibleBounds(t *testing.T) {
	cam := testCamera()
	cam.X = 100
	cam.Y = 100
	cam.Zoom = 2
	b, ok := cam.VisibleBounds()
	if !ok {
		t.Fatal("VisibleBounds failed")
	}
	assertNear(t, "x", b.X, -100)
	assertNear(t, "y", b.Y, -50)
	assertNear(t, "w", b.Width, 400)
	assertNear(t, "h", b.Height, 300)
}
