// Package ecs provides ECS adapters for willow-picking.
//
// [NewStore] reads pointers, cameras, windows and shape geometry from a
// [Donburi] world through component queries, and [NewEventSink] publishes
// hit batches into the same world as typed events. Subscribe to
// [HitEventType] in your ECS systems to receive them.
//
// Usage:
//
//	backend := ecs.NewBackend(world)
//	sink := ecs.NewEventSink(world)
//	backend.Run(sink)
//	ecs.HitEventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
