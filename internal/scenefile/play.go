package scenefile

import picking "github.com/phanxgames/willow-picking"

// FrameResult is the outcome of picking one frame.
type FrameResult struct {
	Index   int
	Batches []picking.HitBatch
	Stats   picking.TickStats
}

// Play applies the scene's frames in order to a single pointer map and runs
// one picking pass after each. Pointer locations persist across frames until
// moved, left or removed.
func (s *Scene) Play(fn func(FrameResult), opts ...picking.Option) {
	pointers := picking.NewPointerMap()
	backend := picking.NewBackend(pointers, s.World, s.World, s.World, opts...)
	var q picking.HitQueue
	for i, f := range s.Frames {
		f.apply(pointers)
		backend.Run(&q)
		fn(FrameResult{Index: i, Batches: q.Drain(), Stats: backend.Stats()})
	}
}

func (f Frame) apply(pointers *picking.PointerMap) {
	for _, m := range f.Moves {
		if m.Surface == nil {
			pointers.Leave(m.Pointer)
			continue
		}
		pointers.Move(m.Pointer, *m.Surface, m.X, m.Y)
	}
	for _, id := range f.Remove {
		pointers.Remove(id)
	}
}
