package picking

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// PointerKind distinguishes the input device family behind a PointerID.
type PointerKind uint8

const (
	PointerMouse  PointerKind = iota // the system mouse cursor
	PointerTouch                     // a touch contact, identified by Touch
	PointerCustom                    // a synthetic or pen pointer, identified by Custom
)

// PointerID identifies one concurrent input pointer. It is assigned by the
// input layer and stays stable for the lifetime of the physical contact.
// PointerID is comparable and can be used as a map key.
type PointerID struct {
	Kind   PointerKind
	Touch  uint64
	Custom uuid.UUID
}

// MousePointer is the id of the system mouse.
var MousePointer = PointerID{Kind: PointerMouse}

// TouchPointer returns the id of the touch contact with the given device id.
func TouchPointer(id uint64) PointerID {
	return PointerID{Kind: PointerTouch, Touch: id}
}

// CustomPointer returns the id of a custom pointer.
func CustomPointer(id uuid.UUID) PointerID {
	return PointerID{Kind: PointerCustom, Custom: id}
}

// NewCustomPointer returns a custom pointer id backed by a fresh random UUID.
func NewCustomPointer() PointerID {
	return CustomPointer(uuid.New())
}

func (p PointerID) String() string {
	switch p.Kind {
	case PointerMouse:
		return "mouse"
	case PointerTouch:
		return fmt.Sprintf("touch:%d", p.Touch)
	case PointerCustom:
		return "custom:" + p.Custom.String()
	default:
		return "unknown"
	}
}

// Location is a screen-space position on a concrete surface.
type Location struct {
	Target   SurfaceID
	Position mgl64.Vec2
}

// PointerLocation associates a pointer with its location this tick.
// A nil Location means the pointer is not over any tracked surface.
type PointerLocation struct {
	ID       PointerID
	Location *Location
}

// PointerSource provides the pointer snapshot for one tick.
type PointerSource interface {
	PointerLocations() []PointerLocation
}

// PointerMap is an in-memory PointerSource. Pointers are reported in the
// order they were first set.
type PointerMap struct {
	order []PointerID
	locs  map[PointerID]*Location
	buf   []PointerLocation
}

// NewPointerMap creates an empty PointerMap.
func NewPointerMap() *PointerMap {
	return &PointerMap{locs: make(map[PointerID]*Location)}
}

// Move places the pointer at a screen position on the given surface.
func (m *PointerMap) Move(id PointerID, target SurfaceID, x, y float64) {
	m.track(id)
	m.locs[id] = &Location{Target: target, Position: mgl64.Vec2{x, y}}
}

// Leave keeps the pointer tracked but without a location (e.g. it left the window).
func (m *PointerMap) Leave(id PointerID) {
	m.track(id)
	m.locs[id] = nil
}

// Remove stops tracking the pointer.
func (m *PointerMap) Remove(id PointerID) {
	if _, ok := m.locs[id]; !ok {
		return
	}
	delete(m.locs, id)
	for i, p := range m.order {
		if p == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			return
		}
	}
}

func (m *PointerMap) track(id PointerID) {
	if _, ok := m.locs[id]; !ok {
		m.order = append(m.order, id)
	}
}

// PointerLocations implements PointerSource. The returned slice is reused by
// the next call and MUST NOT be retained.
func (m *PointerMap) PointerLocations() []PointerLocation {
	m.buf = m.buf[:0]
	for _, id := range m.order {
		var loc *Location
		if l := m.locs[id]; l != nil {
			cp := *l
			loc = &cp
		}
		m.buf = append(m.buf, PointerLocation{ID: id, Location: loc})
	}
	return m.buf
}
