package ecs

import (
	picking "github.com/phanxgames/willow-picking"

	"github.com/yohamta/donburi"
)

// SpawnCircle creates a circle entity. Pickable adds the Pickable tag.
func SpawnCircle(w donburi.World, tr picking.WorldTransform, radius float64, pickable bool) donburi.Entity {
	e := w.Create(Transform, Circle)
	entry := w.Entry(e)
	Transform.SetValue(entry, tr)
	Circle.SetValue(entry, picking.Circle{Radius: radius})
	if pickable {
		entry.AddComponent(Pickable)
	}
	return e
}

// SpawnSegment creates a segment entity. Pickable adds the Pickable tag.
func SpawnSegment(w donburi.World, tr picking.WorldTransform, seg picking.Segment, pickable bool) donburi.Entity {
	e := w.Create(Transform, Segment)
	entry := w.Entry(e)
	Transform.SetValue(entry, tr)
	Segment.SetValue(entry, seg)
	if pickable {
		entry.AddComponent(Pickable)
	}
	return e
}

// SpawnCamera creates a camera entity.
func SpawnCamera(w donburi.World, view picking.CameraView) donburi.Entity {
	e := w.Create(Camera)
	Camera.SetValue(w.Entry(e), view)
	return e
}

// SpawnWindow creates a window entity for surface, tagged as the primary
// window when primary is true.
func SpawnWindow(w donburi.World, surface picking.SurfaceID, primary bool) donburi.Entity {
	var e donburi.Entity
	if primary {
		e = w.Create(WindowInfo, PrimaryWindow)
	} else {
		e = w.Create(WindowInfo)
	}
	WindowInfo.SetValue(w.Entry(e), Window{Surface: surface})
	return e
}

// SpawnPointer creates a pointer entity with no location.
func SpawnPointer(w donburi.World, id picking.PointerID) donburi.Entity {
	e := w.Create(Pointer)
	Pointer.SetValue(w.Entry(e), picking.PointerLocation{ID: id})
	return e
}

// MovePointer sets a pointer entity's location. A nil loc means the pointer
// left every surface.
func MovePointer(w donburi.World, e donburi.Entity, loc *picking.Location) {
	p := Pointer.Get(w.Entry(e))
	if loc == nil {
		p.Location = nil
		return
	}
	cp := *loc
	p.Location = &cp
}
