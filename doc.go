// Package picking is a pointer hit-testing backend for 2D shape geometry.
//
// Each tick a [Backend] reads a snapshot of pointer locations, cameras and
// geometry, and for every pointer:
//
//  1. selects the first active camera drawing to the surface the pointer is
//     over, resolving the primary-window alias through a [PrimarySurface];
//  2. maps the pointer's screen position to world space with the camera's
//     inverse view matrix ([CameraView.ScreenToWorld]);
//  3. tests every [Shape] ([Circle] or [Segment]) and keeps those whose
//     distance is strictly below the shape's threshold;
//  4. sorts the hits nearest first (ties keep geometry order) and emits one
//     [HitBatch] carrying the camera's order to a [HitSink].
//
// Pointers without a location, without a matching camera, or whose camera
// cannot project are skipped for the tick. A pointer over nothing still gets a
// batch, with no hits.
//
// # Quick start
//
//	world := picking.NewWorld()
//	world.SetPrimaryWindow(picking.WindowSurface(1))
//	world.AddCamera(picking.NewCameraView(0, picking.Rect{Width: 800, Height: 600}))
//	world.Spawn(picking.At(0, 0, 0), picking.Circle{Radius: 50})
//
//	pointers := picking.NewPointerMap()
//	pointers.Move(picking.MousePointer, picking.WindowSurface(1), 400, 300)
//
//	var hits picking.HitQueue
//	backend := picking.NewBackend(pointers, world, world, world)
//	backend.Run(&hits)
//
// Hosts that run several per-frame systems can use [Schedule] to keep the
// backend after input and camera updates and before hit consumers.
//
// ECS integration via a [Donburi] adapter lives in willow-picking/ecs, and
// an [Ebitengine] pointer source in willow-picking/ebitenpick.
//
// [Donburi]: https://github.com/yohamta/donburi
// [Ebitengine]: https://ebitengine.org
package picking
