package ecs

import (
	picking "github.com/phanxgames/willow-picking"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// PickableMarker is the component data of the Pickable tag.
type PickableMarker struct{}

// PrimaryWindowMarker is the component data of the PrimaryWindow tag.
type PrimaryWindowMarker struct{}

// Window identifies the surface a window entity stands for.
type Window struct {
	Surface picking.SurfaceID
}

// Components read by the store.
var (
	Transform     = donburi.NewComponentType[picking.WorldTransform]()
	Circle        = donburi.NewComponentType[picking.Circle]()
	Segment       = donburi.NewComponentType[picking.Segment]()
	Pickable      = donburi.NewComponentType[PickableMarker]()
	Camera        = donburi.NewComponentType[picking.CameraView]()
	WindowInfo    = donburi.NewComponentType[Window]()
	PrimaryWindow = donburi.NewComponentType[PrimaryWindowMarker]()
	Pointer       = donburi.NewComponentType[picking.PointerLocation]()
)

// HitEventType is the Donburi event type for hit batches.
// Subscribe to this in your ECS systems to receive picking results.
var HitEventType = events.NewEventType[picking.HitBatch]()

// Store reads pointers, cameras, the primary window and shape geometry from a
// Donburi world. It implements picking.PointerSource, picking.CameraSource,
// picking.PrimarySurface and picking.GeometrySource.
//
// Geometry iterates in Donburi query order, which is stable for a given
// world state.
type Store struct {
	world donburi.World

	geometry *donburi.Query
	cameras  *donburi.Query
	pointers *donburi.Query
	primary  *donburi.Query

	camBuf []picking.CameraView
	ptrBuf []picking.PointerLocation
}

// NewStore creates a Store over world.
func NewStore(world donburi.World) *Store {
	return &Store{
		world: world,
		geometry: donburi.NewQuery(filter.And(
			filter.Contains(Transform),
			filter.Or(filter.Contains(Circle), filter.Contains(Segment)),
		)),
		cameras:  donburi.NewQuery(filter.Contains(Camera)),
		pointers: donburi.NewQuery(filter.Contains(Pointer)),
		primary:  donburi.NewQuery(filter.Contains(WindowInfo, PrimaryWindow)),
	}
}

// NewBackend creates a picking.Backend reading every collaborator from world.
func NewBackend(world donburi.World, opts ...picking.Option) *picking.Backend {
	s := NewStore(world)
	return picking.NewBackend(s, s, s, s, opts...)
}

// EachGeometry implements picking.GeometrySource.
func (s *Store) EachGeometry(fn func(picking.Geometry)) {
	s.geometry.Each(s.world, func(e *donburi.Entry) {
		g := picking.Geometry{
			Entity:    picking.EntityID(e.Entity()),
			Transform: *Transform.Get(e),
			Pickable:  e.HasComponent(Pickable),
		}
		if e.HasComponent(Circle) {
			g.Shape = *Circle.Get(e)
		} else {
			g.Shape = *Segment.Get(e)
		}
		fn(g)
	})
}

// Cameras implements picking.CameraSource. A camera with a zero Entity is
// reported with its Donburi entity id. The returned slice is reused by the
// next call.
func (s *Store) Cameras() []picking.CameraView {
	s.camBuf = s.camBuf[:0]
	s.cameras.Each(s.world, func(e *donburi.Entry) {
		c := *Camera.Get(e)
		if c.Entity == 0 {
			c.Entity = picking.EntityID(e.Entity())
		}
		s.camBuf = append(s.camBuf, c)
	})
	return s.camBuf
}

// PointerLocations implements picking.PointerSource. The returned slice is
// reused by the next call.
func (s *Store) PointerLocations() []picking.PointerLocation {
	s.ptrBuf = s.ptrBuf[:0]
	s.pointers.Each(s.world, func(e *donburi.Entry) {
		s.ptrBuf = append(s.ptrBuf, *Pointer.Get(e))
	})
	return s.ptrBuf
}

// PrimarySurface implements picking.PrimarySurface. When several windows
// carry the PrimaryWindow tag the first in query order wins.
func (s *Store) PrimarySurface() (picking.SurfaceID, bool) {
	e, ok := s.primary.First(s.world)
	if !ok {
		return picking.SurfaceID{}, false
	}
	return WindowInfo.Get(e).Surface, true
}

type eventSink struct {
	world donburi.World
}

// NewEventSink creates a HitSink backed by a Donburi world.
// Hit batches are published to HitEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewEventSink(world donburi.World) picking.HitSink {
	return &eventSink{world: world}
}

func (s *eventSink) EmitHits(batch picking.HitBatch) {
	HitEventType.Publish(s.world, batch)
}
