// Package ebitenpick feeds Ebitengine mouse and touch input into the picking
// backend.
//
// An [Input] owns a single window surface. Call [Input.Update] once per frame
// from the game's Update method, before running the backend; it then serves as
// both the backend's picking.PointerSource and its picking.PrimarySurface.
package ebitenpick

import (
	picking "github.com/phanxgames/willow-picking"

	"github.com/hajimehoshi/ebiten/v2"
)

// Touch is one active touch in a polled frame.
type Touch struct {
	ID   ebiten.TouchID
	X, Y int
}

// Frame is the raw input state for one tick.
type Frame struct {
	CursorX, CursorY int
	// Touches lists the touches currently held down.
	Touches []Touch
}

// Input tracks the mouse pointer and every active touch on one window.
type Input struct {
	surface picking.SurfaceID
	width   int
	height  int

	pointers *picking.PointerMap
	touches  map[ebiten.TouchID]bool
	seen     map[ebiten.TouchID]bool

	injectQueue []syntheticPointerEvent

	touchBuf []ebiten.TouchID
	frame    Frame
}

// NewInput creates an Input for the window surface with the given id. The
// window is reported as the primary surface.
func NewInput(windowID uint64) *Input {
	return &Input{
		surface:  picking.WindowSurface(windowID),
		pointers: picking.NewPointerMap(),
		touches:  make(map[ebiten.TouchID]bool),
		seen:     make(map[ebiten.TouchID]bool),
	}
}

// Surface returns the window surface pointers are reported on.
func (in *Input) Surface() picking.SurfaceID { return in.surface }

// SetBounds sets the logical screen size. The mouse pointer has no location
// while the cursor lies outside it. Call this from the game's Layout method.
// A zero size disables the check.
func (in *Input) SetBounds(width, height int) {
	in.width, in.height = width, height
}

// Update polls Ebitengine for the current cursor and touch state. When
// injected events are pending, one is consumed instead and real input is
// ignored for this frame.
func (in *Input) Update() {
	if in.processInjected() {
		return
	}
	in.frame.CursorX, in.frame.CursorY = ebiten.CursorPosition()
	in.touchBuf = ebiten.AppendTouchIDs(in.touchBuf[:0])
	in.frame.Touches = in.frame.Touches[:0]
	for _, id := range in.touchBuf {
		x, y := ebiten.TouchPosition(id)
		in.frame.Touches = append(in.frame.Touches, Touch{ID: id, X: x, Y: y})
	}
	in.Apply(in.frame)
}

// Apply updates pointer locations from a polled frame. Touches absent from
// the frame are removed.
func (in *Input) Apply(f Frame) {
	if in.inside(f.CursorX, f.CursorY) {
		in.pointers.Move(picking.MousePointer, in.surface, float64(f.CursorX), float64(f.CursorY))
	} else {
		in.pointers.Leave(picking.MousePointer)
	}

	clear(in.seen)
	for _, t := range f.Touches {
		in.seen[t.ID] = true
		in.touches[t.ID] = true
		in.pointers.Move(touchPointer(t.ID), in.surface, float64(t.X), float64(t.Y))
	}
	for id := range in.touches {
		if !in.seen[id] {
			delete(in.touches, id)
			in.pointers.Remove(touchPointer(id))
		}
	}
}

func (in *Input) inside(x, y int) bool {
	if in.width <= 0 || in.height <= 0 {
		return true
	}
	return x >= 0 && y >= 0 && x < in.width && y < in.height
}

func touchPointer(id ebiten.TouchID) picking.PointerID {
	return picking.TouchPointer(uint64(id))
}

// PointerLocations implements picking.PointerSource.
func (in *Input) PointerLocations() []picking.PointerLocation {
	return in.pointers.PointerLocations()
}

// PrimarySurface implements picking.PrimarySurface.
func (in *Input) PrimarySurface() (picking.SurfaceID, bool) {
	return in.surface, true
}
