package picking

// Geometry is one pickable entity as seen by the intersection tester.
type Geometry struct {
	Entity    EntityID
	Transform WorldTransform
	Shape     Shape
	// Pickable reports whether the entity carries the Pickable marker.
	Pickable bool
}

// GeometrySource yields the geometry snapshot for one tick. Iteration order
// must be stable for a given store state; it breaks distance ties.
type GeometrySource interface {
	EachGeometry(fn func(Geometry))
}

// World is an in-memory entity table keyed by EntityID. It stores geometry,
// cameras and the primary window, and implements GeometrySource,
// CameraSource and PrimarySurface. Entities iterate in spawn order.
type World struct {
	entities   []EntityID
	transforms map[EntityID]WorldTransform
	shapes     map[EntityID]Shape
	pickable   map[EntityID]bool

	cameras []CameraView

	primary    SurfaceID
	hasPrimary bool

	nextID EntityID
}

// NewWorld creates an empty World.
func NewWorld() *World {
	return &World{
		transforms: make(map[EntityID]WorldTransform),
		shapes:     make(map[EntityID]Shape),
		pickable:   make(map[EntityID]bool),
	}
}

func (w *World) newEntity() EntityID {
	w.nextID++
	return w.nextID
}

// Spawn adds an entity with the given transform and shape and returns its id.
func (w *World) Spawn(tr WorldTransform, shape Shape) EntityID {
	id := w.newEntity()
	w.entities = append(w.entities, id)
	w.transforms[id] = tr
	w.shapes[id] = shape
	return id
}

// SpawnPickable is Spawn followed by SetPickable(id, true).
func (w *World) SpawnPickable(tr WorldTransform, shape Shape) EntityID {
	id := w.Spawn(tr, shape)
	w.pickable[id] = true
	return id
}

// Despawn removes an entity. Unknown ids are ignored.
func (w *World) Despawn(id EntityID) {
	if _, ok := w.shapes[id]; !ok {
		return
	}
	delete(w.transforms, id)
	delete(w.shapes, id)
	delete(w.pickable, id)
	for i, e := range w.entities {
		if e == id {
			w.entities = append(w.entities[:i], w.entities[i+1:]...)
			return
		}
	}
}

// SetTransform replaces an entity's transform. Unknown ids are ignored.
func (w *World) SetTransform(id EntityID, tr WorldTransform) {
	if _, ok := w.shapes[id]; ok {
		w.transforms[id] = tr
	}
}

// Transform returns an entity's transform.
func (w *World) Transform(id EntityID) (WorldTransform, bool) {
	tr, ok := w.transforms[id]
	return tr, ok
}

// SetShape replaces an entity's shape. Unknown ids are ignored.
func (w *World) SetShape(id EntityID, shape Shape) {
	if _, ok := w.shapes[id]; ok {
		w.shapes[id] = shape
	}
}

// SetPickable adds or removes the Pickable marker.
func (w *World) SetPickable(id EntityID, pickable bool) {
	if _, ok := w.shapes[id]; !ok {
		return
	}
	if pickable {
		w.pickable[id] = true
	} else {
		delete(w.pickable, id)
	}
}

// Len returns the number of geometry entities.
func (w *World) Len() int {
	return len(w.entities)
}

// EachGeometry implements GeometrySource.
func (w *World) EachGeometry(fn func(Geometry)) {
	for _, id := range w.entities {
		fn(Geometry{
			Entity:    id,
			Transform: w.transforms[id],
			Shape:     w.shapes[id],
			Pickable:  w.pickable[id],
		})
	}
}

// AddCamera adds a camera. A zero Entity is replaced by a fresh id.
// Returns the camera's entity id.
func (w *World) AddCamera(cam CameraView) EntityID {
	if cam.Entity == 0 {
		cam.Entity = w.newEntity()
	} else if cam.Entity > w.nextID {
		w.nextID = cam.Entity
	}
	w.cameras = append(w.cameras, cam)
	return cam.Entity
}

// Camera returns a pointer to the stored camera for in-place updates, or nil.
func (w *World) Camera(id EntityID) *CameraView {
	for i := range w.cameras {
		if w.cameras[i].Entity == id {
			return &w.cameras[i]
		}
	}
	return nil
}

// RemoveCamera removes a camera.
func (w *World) RemoveCamera(id EntityID) {
	for i := range w.cameras {
		if w.cameras[i].Entity == id {
			w.cameras = append(w.cameras[:i], w.cameras[i+1:]...)
			return
		}
	}
}

// Cameras implements CameraSource. The returned slice MUST NOT be mutated.
func (w *World) Cameras() []CameraView {
	return w.cameras
}

// SetPrimaryWindow registers the surface the primary-window alias resolves to.
func (w *World) SetPrimaryWindow(s SurfaceID) {
	w.primary = s
	w.hasPrimary = true
}

// ClearPrimaryWindow unregisters the primary window.
func (w *World) ClearPrimaryWindow() {
	w.primary = SurfaceID{}
	w.hasPrimary = false
}

// PrimarySurface implements PrimarySurface.
func (w *World) PrimarySurface() (SurfaceID, bool) {
	return w.primary, w.hasPrimary
}
