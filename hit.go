package picking

import "github.com/go-gl/mathgl/mgl64"

// HitRecord describes one entity under a pointer. Records are immutable once
// emitted.
type HitRecord struct {
	Entity EntityID
	// Camera is the entity of the camera the pointer was resolved through.
	Camera EntityID
	// Depth is the z of the entity's transform, for compositing by consumers.
	// It plays no part in hit/miss decisions.
	Depth float64
	// Position and Normal are optional world-space hit data; nil when the
	// shape does not produce them.
	Position *mgl64.Vec3
	Normal   *mgl64.Vec3
}

// HitBatch is the ranked result for one pointer for one tick. Hits are ordered
// nearest first; an empty Hits means the pointer is over nothing.
type HitBatch struct {
	Pointer PointerID
	Hits    []HitRecord
	// Order is the resolved camera's order, used by consumers to merge
	// batches from several backends.
	Order float32
}

// HitSink receives hit batches. EmitHits is called synchronously from
// Backend.Run and must not retain the batch's Hits beyond its own use unless
// it owns them; the backend never mutates a batch after emitting it.
type HitSink interface {
	EmitHits(batch HitBatch)
}

// SinkFunc adapts a function to a HitSink.
type SinkFunc func(batch HitBatch)

// EmitHits calls f(batch).
func (f SinkFunc) EmitHits(batch HitBatch) {
	f(batch)
}

// HitQueue is a HitSink that buffers batches until drained.
type HitQueue struct {
	batches []HitBatch
}

// EmitHits appends batch to the queue.
func (q *HitQueue) EmitHits(batch HitBatch) {
	q.batches = append(q.batches, batch)
}

// Len returns the number of queued batches.
func (q *HitQueue) Len() int {
	return len(q.batches)
}

// Drain returns all queued batches in emission order and empties the queue.
func (q *HitQueue) Drain() []HitBatch {
	out := q.batches
	q.batches = nil
	return out
}
