package picking

import (
	"cmp"
	"slices"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Backend is a picking backend for shape geometry. Each call to Run reads one
// snapshot of pointers, cameras and geometry and emits one HitBatch per
// pointer whose camera could be resolved.
//
// Run must be called after pointer positions and camera transforms are
// updated for the tick and before anything consumes hit batches; Schedule
// encodes that ordering.
type Backend struct {
	pointers PointerSource
	cameras  CameraSource
	primary  PrimarySurface
	geometry GeometrySource

	policy      PickablePolicy
	parallelism int
	logger      *zap.Logger
	debug       bool

	// Scratch buffers reused across ticks. No results carry over.
	camBuf  []targetCamera
	geomBuf []Geometry
	pickBuf []pick

	stats TickStats
}

// Option configures a Backend.
type Option func(*Backend)

// WithPickablePolicy selects how the Pickable marker gates participation.
func WithPickablePolicy(p PickablePolicy) Option {
	return func(b *Backend) { b.policy = p }
}

// WithParallelism processes up to n pointers concurrently. Batches are still
// emitted in pointer order. Values below 2 keep processing sequential.
func WithParallelism(n int) Option {
	return func(b *Backend) { b.parallelism = n }
}

// WithLogger sets the logger used in debug mode.
func WithLogger(l *zap.Logger) Option {
	return func(b *Backend) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithDebug enables per-tick and per-skip debug logging.
func WithDebug(enabled bool) Option {
	return func(b *Backend) { b.debug = enabled }
}

// NewBackend creates a Backend reading from the given collaborators.
// primary may be nil, in which case cameras targeting the primary window
// never resolve.
func NewBackend(pointers PointerSource, cameras CameraSource, primary PrimarySurface, geometry GeometrySource, opts ...Option) *Backend {
	b := &Backend{
		pointers:    pointers,
		cameras:     cameras,
		primary:     primary,
		geometry:    geometry,
		parallelism: 1,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// pick is a hit with its ranking distance. The distance never leaves the backend.
type pick struct {
	rec  HitRecord
	dist float64
}

type pointerResult struct {
	batch  HitBatch
	reason skipReason
}

// Run performs one picking pass and emits the batches to sink. It never
// fails: pointers that cannot be resolved or projected are skipped.
func (b *Backend) Run(sink HitSink) {
	start := time.Now()
	stats := TickStats{}

	locs := b.pointers.PointerLocations()
	b.camBuf = normalizeCameras(b.camBuf, b.cameras.Cameras(), b.primary)
	b.snapshotGeometry()

	stats.Pointers = len(locs)
	emit := func(pl PointerLocation, r pointerResult) {
		if r.reason != skipNone {
			stats.skip(r.reason)
			if b.debug {
				b.logger.Debug("pointer skipped",
					zap.Stringer("pointer", pl.ID),
					zap.Stringer("reason", r.reason))
			}
			return
		}
		stats.Batches++
		stats.Hits += len(r.batch.Hits)
		sink.EmitHits(r.batch)
	}

	if b.parallelism > 1 && len(locs) > 1 {
		results := make([]pointerResult, len(locs))
		var g errgroup.Group
		g.SetLimit(b.parallelism)
		for i := range locs {
			g.Go(func() error {
				batch, reason, _ := b.pickPointer(locs[i], nil)
				results[i] = pointerResult{batch: batch, reason: reason}
				return nil
			})
		}
		_ = g.Wait()
		for i := range locs {
			emit(locs[i], results[i])
		}
	} else {
		for i := range locs {
			var r pointerResult
			r.batch, r.reason, b.pickBuf = b.pickPointer(locs[i], b.pickBuf)
			emit(locs[i], r)
		}
	}

	stats.Duration = time.Since(start)
	b.stats = stats
	if b.debug {
		b.debugLog(stats)
	}
}

// Stats returns the counters of the most recent Run.
func (b *Backend) Stats() TickStats {
	return b.stats
}

// snapshotGeometry copies the tick's candidate geometry, applying the
// Pickable policy.
func (b *Backend) snapshotGeometry() {
	b.geomBuf = b.geomBuf[:0]
	b.geometry.EachGeometry(func(g Geometry) {
		if g.Shape == nil {
			return
		}
		if b.policy == PickableRequired && !g.Pickable {
			return
		}
		b.geomBuf = append(b.geomBuf, g)
	})
}

// pickPointer runs resolve, project, intersect and rank for one pointer.
// scratch is reused for the unsorted picks and returned for the next call.
func (b *Backend) pickPointer(pl PointerLocation, scratch []pick) (HitBatch, skipReason, []pick) {
	if pl.Location == nil {
		return HitBatch{}, skipNoLocation, scratch
	}
	cam, reason := resolveCamera(b.camBuf, pl.Location.Target)
	if cam == nil {
		return HitBatch{}, reason, scratch
	}
	world, ok := cam.ScreenToWorld(pl.Location.Position)
	if !ok {
		return HitBatch{}, skipProjection, scratch
	}

	scratch = intersect(scratch[:0], b.geomBuf, world, cam.Entity)
	rankPicks(scratch)

	hits := make([]HitRecord, len(scratch))
	for i := range scratch {
		hits[i] = scratch[i].rec
	}
	return HitBatch{
		Pointer: pl.ID,
		Hits:    hits,
		Order:   float32(cam.Order),
	}, skipNone, scratch
}

// intersect appends a pick for every geometry p hits, in geometry order.
func intersect(buf []pick, geoms []Geometry, p mgl64.Vec2, camera EntityID) []pick {
	for i := range geoms {
		g := &geoms[i]
		d, hit := Hits(g.Shape, p, g.Transform)
		if !hit {
			continue
		}
		buf = append(buf, pick{
			dist: d,
			rec: HitRecord{
				Entity: g.Entity,
				Camera: camera,
				Depth:  g.Transform.Depth(),
			},
		})
	}
	return buf
}

// rankPicks sorts nearest first. Equal distances keep geometry order.
func rankPicks(picks []pick) {
	slices.SortStableFunc(picks, func(a, b pick) int {
		return cmp.Compare(a.dist, b.dist)
	})
}
