package picking

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var mainWindow = WindowSurface(1)

// newTestWorld returns a world with a primary window and one camera whose
// viewport center (400, 300) maps to world (0, 0).
func newTestWorld() (*World, EntityID) {
	w := NewWorld()
	w.SetPrimaryWindow(mainWindow)
	cam := w.AddCamera(NewCameraView(0, Rect{Width: 800, Height: 600}))
	return w, cam
}

// atWorld places the pointer at the screen position that projects to world (x, y).
func atWorld(m *PointerMap, id PointerID, x, y float64) {
	m.Move(id, mainWindow, 400+x, 300+y)
}

func runOnce(t *testing.T, w *World, ptrs *PointerMap, opts ...Option) []HitBatch {
	t.Helper()
	var q HitQueue
	NewBackend(ptrs, w, w, w, opts...).Run(&q)
	return q.Drain()
}

func TestBackendScenarioPointerOnCenter(t *testing.T) {
	w, cam := newTestWorld()
	circle := w.Spawn(At(0, 0, 0), Circle{Radius: 50})
	ptrs := NewPointerMap()
	atWorld(ptrs, MousePointer, 0, 0)

	batches := runOnce(t, w, ptrs)
	if len(batches) != 1 {
		t.Fatalf("got %d batches, want 1", len(batches))
	}
	b := batches[0]
	if b.Pointer != MousePointer {
		t.Errorf("Pointer = %v, want mouse", b.Pointer)
	}
	if len(b.Hits) != 1 {
		t.Fatalf("got %d hits, want 1", len(b.Hits))
	}
	h := b.Hits[0]
	if h.Entity != circle || h.Camera != cam {
		t.Errorf("hit = %+v, want entity %d camera %d", h, circle, cam)
	}
	if h.Position != nil || h.Normal != nil {
		t.Error("circle hits carry no position or normal")
	}
}

func TestBackendScenarioPointerOutside(t *testing.T) {
	w, _ := newTestWorld()
	w.Spawn(At(0, 0, 0), Circle{Radius: 50})
	ptrs := NewPointerMap()
	atWorld(ptrs, MousePointer, 51, 0)

	batches := runOnce(t, w, ptrs)
	if len(batches) != 1 {
		t.Fatalf("got %d batches, want 1", len(batches))
	}
	if batches[0].Hits == nil || len(batches[0].Hits) != 0 {
		t.Errorf("Hits = %v, want empty non-nil slice", batches[0].Hits)
	}
}

func TestBackendScenarioTieKeepsInputOrder(t *testing.T) {
	w, _ := newTestWorld()
	a := w.Spawn(At(0, 0, 0), Circle{Radius: 50})
	b := w.Spawn(At(10, 0, 0), Circle{Radius: 50})
	ptrs := NewPointerMap()
	atWorld(ptrs, MousePointer, 5, 0)

	batches := runOnce(t, w, ptrs)
	if len(batches) != 1 || len(batches[0].Hits) != 2 {
		t.Fatalf("batches = %+v, want one batch with two hits", batches)
	}
	if batches[0].Hits[0].Entity != a || batches[0].Hits[1].Entity != b {
		t.Errorf("order = [%d %d], want [%d %d]", batches[0].Hits[0].Entity, batches[0].Hits[1].Entity, a, b)
	}
}

func TestBackendScenarioInactiveCamera(t *testing.T) {
	w, cam := newTestWorld()
	w.Spawn(At(0, 0, 0), Circle{Radius: 50})
	w.Camera(cam).Active = false
	ptrs := NewPointerMap()
	atWorld(ptrs, MousePointer, 0, 0)

	if batches := runOnce(t, w, ptrs); len(batches) != 0 {
		t.Errorf("got %d batches for inactive camera, want 0", len(batches))
	}
}

func TestBackendSortsNearestFirst(t *testing.T) {
	w, _ := newTestWorld()
	far := w.Spawn(At(30, 0, 0), Circle{Radius: 50})
	near := w.Spawn(At(2, 0, 0), Circle{Radius: 50})
	mid := w.Spawn(At(0, 10, 0), Circle{Radius: 50})
	ptrs := NewPointerMap()
	atWorld(ptrs, MousePointer, 0, 0)

	hits := runOnce(t, w, ptrs)[0].Hits
	want := []EntityID{near, mid, far}
	if len(hits) != len(want) {
		t.Fatalf("got %d hits, want %d", len(hits), len(want))
	}
	for i, id := range want {
		if hits[i].Entity != id {
			t.Errorf("hits[%d] = %d, want %d", i, hits[i].Entity, id)
		}
	}
}

func TestBackendDepthPassesThrough(t *testing.T) {
	w, _ := newTestWorld()
	// The original scene's "behind" circle still registers a hit.
	w.Spawn(At(0, 50, -0.1), Circle{Radius: 50})
	ptrs := NewPointerMap()
	atWorld(ptrs, MousePointer, 0, 40)

	hits := runOnce(t, w, ptrs)[0].Hits
	if len(hits) != 1 {
		t.Fatalf("got %d hits, want 1", len(hits))
	}
	assertNear(t, "depth", hits[0].Depth, -0.1)
}

func TestBackendOrderFromCamera(t *testing.T) {
	w, cam := newTestWorld()
	w.Camera(cam).Order = -3
	ptrs := NewPointerMap()
	atWorld(ptrs, MousePointer, 0, 0)

	batches := runOnce(t, w, ptrs)
	if len(batches) != 1 || batches[0].Order != -3 {
		t.Errorf("batches = %+v, want order -3", batches)
	}
}

func TestBackendSkips(t *testing.T) {
	tests := []struct {
		name  string
		setup func(w *World, cam EntityID, ptrs *PointerMap)
		check func(t *testing.T, s TickStats)
	}{
		{
			name:  "pointer without location",
			setup: func(w *World, cam EntityID, ptrs *PointerMap) { ptrs.Leave(MousePointer) },
			check: func(t *testing.T, s TickStats) {
				if s.SkippedNoLocation != 1 {
					t.Errorf("SkippedNoLocation = %d, want 1", s.SkippedNoLocation)
				}
			},
		},
		{
			name: "no primary window",
			setup: func(w *World, cam EntityID, ptrs *PointerMap) {
				w.ClearPrimaryWindow()
				atWorld(ptrs, MousePointer, 0, 0)
			},
			check: func(t *testing.T, s TickStats) {
				if s.SkippedNoPrimary != 1 {
					t.Errorf("SkippedNoPrimary = %d, want 1", s.SkippedNoPrimary)
				}
			},
		},
		{
			name: "pointer over another window",
			setup: func(w *World, cam EntityID, ptrs *PointerMap) {
				ptrs.Move(MousePointer, WindowSurface(2), 400, 300)
			},
			check: func(t *testing.T, s TickStats) {
				if s.SkippedNoCamera != 1 {
					t.Errorf("SkippedNoCamera = %d, want 1", s.SkippedNoCamera)
				}
			},
		},
		{
			name: "degenerate viewport",
			setup: func(w *World, cam EntityID, ptrs *PointerMap) {
				w.Camera(cam).Viewport = Rect{}
				atWorld(ptrs, MousePointer, 0, 0)
			},
			check: func(t *testing.T, s TickStats) {
				if s.SkippedProjection != 1 {
					t.Errorf("SkippedProjection = %d, want 1", s.SkippedProjection)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, cam := newTestWorld()
			w.Spawn(At(0, 0, 0), Circle{Radius: 50})
			ptrs := NewPointerMap()
			tt.setup(w, cam, ptrs)

			var q HitQueue
			b := NewBackend(ptrs, w, w, w)
			b.Run(&q)
			if q.Len() != 0 {
				t.Errorf("got %d batches, want 0", q.Len())
			}
			s := b.Stats()
			if s.Pointers != 1 || s.Batches != 0 || s.Skipped() != 1 {
				t.Errorf("stats = %+v", s)
			}
			tt.check(t, s)
		})
	}
}

func TestBackendSkippedPointerDoesNotAffectOthers(t *testing.T) {
	w, _ := newTestWorld()
	w.Spawn(At(0, 0, 0), Circle{Radius: 50})
	ptrs := NewPointerMap()
	ptrs.Leave(MousePointer)
	atWorld(ptrs, TouchPointer(1), 0, 0)
	ptrs.Move(TouchPointer(2), WindowSurface(9), 0, 0)
	atWorld(ptrs, TouchPointer(3), 200, 0)

	batches := runOnce(t, w, ptrs)
	if len(batches) != 2 {
		t.Fatalf("got %d batches, want 2", len(batches))
	}
	if batches[0].Pointer != TouchPointer(1) || len(batches[0].Hits) != 1 {
		t.Errorf("batch 0 = %+v", batches[0])
	}
	if batches[1].Pointer != TouchPointer(3) || len(batches[1].Hits) != 0 {
		t.Errorf("batch 1 = %+v", batches[1])
	}
}

func TestBackendCameraPerSurface(t *testing.T) {
	w := NewWorld()
	w.SetPrimaryWindow(mainWindow)
	left := w.AddCamera(NewCameraView(0, Rect{Width: 400, Height: 400}))
	img := NewCameraView(0, Rect{Width: 200, Height: 200})
	img.Target = ImageTarget(4)
	img.X = 1000
	img.Order = 1
	right := w.AddCamera(img)

	a := w.Spawn(At(0, 0, 0), Circle{Radius: 10})
	b := w.Spawn(At(1000, 0, 0), Circle{Radius: 10})

	ptrs := NewPointerMap()
	ptrs.Move(MousePointer, mainWindow, 200, 200)
	ptrs.Move(TouchPointer(1), ImageSurface(4), 100, 100)

	batches := runOnce(t, w, ptrs)
	if len(batches) != 2 {
		t.Fatalf("got %d batches, want 2", len(batches))
	}
	if h := batches[0].Hits; len(h) != 1 || h[0].Entity != a || h[0].Camera != left {
		t.Errorf("window batch = %+v", batches[0])
	}
	if h := batches[1].Hits; len(h) != 1 || h[0].Entity != b || h[0].Camera != right {
		t.Errorf("image batch = %+v", batches[1])
	}
	if batches[1].Order != 1 {
		t.Errorf("image batch order = %v, want 1", batches[1].Order)
	}
}

func TestBackendPickablePolicy(t *testing.T) {
	w, _ := newTestWorld()
	plain := w.Spawn(At(0, 0, 0), Circle{Radius: 50})
	marked := w.SpawnPickable(At(1, 0, 0), Circle{Radius: 50})
	ptrs := NewPointerMap()
	atWorld(ptrs, MousePointer, 0, 0)

	ignored := runOnce(t, w, ptrs)[0].Hits
	if len(ignored) != 2 || ignored[0].Entity != plain {
		t.Errorf("ignored policy hits = %+v, want both entities", ignored)
	}

	required := runOnce(t, w, ptrs, WithPickablePolicy(PickableRequired))[0].Hits
	if len(required) != 1 || required[0].Entity != marked {
		t.Errorf("required policy hits = %+v, want only %d", required, marked)
	}
}

func TestBackendSegmentGeometry(t *testing.T) {
	w, _ := newTestWorld()
	circle := w.Spawn(At(0, 0, 0), Circle{Radius: 50})
	line := w.Spawn(At(0, 0, 1), Segment{B: mgl64.Vec2{100, 0}, Tolerance: 4})
	ptrs := NewPointerMap()
	atWorld(ptrs, MousePointer, 20, 1)

	hits := runOnce(t, w, ptrs)[0].Hits
	if len(hits) != 2 {
		t.Fatalf("got %d hits, want 2", len(hits))
	}
	if hits[0].Entity != line || hits[1].Entity != circle {
		t.Errorf("order = [%d %d], want segment (distance 1) before circle (distance ~20)", hits[0].Entity, hits[1].Entity)
	}
}

func TestBackendParallelMatchesSequential(t *testing.T) {
	w, _ := newTestWorld()
	for i := 0; i < 20; i++ {
		w.Spawn(At(float64(i*7-70), float64(i%5*9-20), float64(i)), Circle{Radius: 30})
	}
	ptrs := NewPointerMap()
	for i := uint64(0); i < 12; i++ {
		atWorld(ptrs, TouchPointer(i), float64(i*11)-60, float64(i%3)*10)
	}
	ptrs.Leave(TouchPointer(99))

	seq := runOnce(t, w, ptrs)
	par := runOnce(t, w, ptrs, WithParallelism(4))
	if len(seq) != len(par) {
		t.Fatalf("sequential %d batches, parallel %d", len(seq), len(par))
	}
	for i := range seq {
		if seq[i].Pointer != par[i].Pointer || len(seq[i].Hits) != len(par[i].Hits) {
			t.Fatalf("batch %d differs: %+v vs %+v", i, seq[i], par[i])
		}
		for j := range seq[i].Hits {
			if seq[i].Hits[j] != par[i].Hits[j] {
				t.Errorf("batch %d hit %d: %+v vs %+v", i, j, seq[i].Hits[j], par[i].Hits[j])
			}
		}
	}
}

func TestBackendNoStateAcrossRuns(t *testing.T) {
	w, _ := newTestWorld()
	id := w.Spawn(At(0, 0, 0), Circle{Radius: 50})
	ptrs := NewPointerMap()
	atWorld(ptrs, MousePointer, 0, 0)

	var q HitQueue
	b := NewBackend(ptrs, w, w, w)
	b.Run(&q)
	first := q.Drain()

	w.Despawn(id)
	b.Run(&q)
	second := q.Drain()

	if len(first[0].Hits) != 1 {
		t.Fatalf("first run hits = %d, want 1", len(first[0].Hits))
	}
	if len(second[0].Hits) != 0 {
		t.Errorf("second run hits = %d, want 0", len(second[0].Hits))
	}
	// The first batch must be untouched by the second run.
	if first[0].Hits[0].Entity != id {
		t.Error("earlier batch was mutated by a later run")
	}
}

func TestBackendDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(&buf),
		zapcore.DebugLevel,
	)
	w, _ := newTestWorld()
	ptrs := NewPointerMap()
	ptrs.Leave(MousePointer)

	var q HitQueue
	NewBackend(ptrs, w, w, w, WithLogger(zap.New(core)), WithDebug(true)).Run(&q)

	out := buf.String()
	if !strings.Contains(out, "pointer skipped") || !strings.Contains(out, "no location") {
		t.Errorf("missing skip log: %s", out)
	}
	if !strings.Contains(out, "pick tick") {
		t.Errorf("missing tick log: %s", out)
	}
}

func TestBackendQuietWithoutDebug(t *testing.T) {
	var buf bytes.Buffer
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(&buf),
		zapcore.DebugLevel,
	)
	w, _ := newTestWorld()
	ptrs := NewPointerMap()
	ptrs.Leave(MousePointer)

	var q HitQueue
	NewBackend(ptrs, w, w, w, WithLogger(zap.New(core))).Run(&q)
	if buf.Len() != 0 {
		t.Errorf("unexpected log output: %s", buf.String())
	}
}

func TestSinkFunc(t *testing.T) {
	w, _ := newTestWorld()
	ptrs := NewPointerMap()
	atWorld(ptrs, MousePointer, 0, 0)

	var got []HitBatch
	NewBackend(ptrs, w, w, w).Run(SinkFunc(func(b HitBatch) { got = append(got, b) }))
	if len(got) != 1 {
		t.Errorf("SinkFunc received %d batches, want 1", len(got))
	}
}
