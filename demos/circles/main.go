// circles shows two overlapping discs and a rail under a panning camera.
// Shapes under the cursor (or any touch) are highlighted, nearest first.
package main

import (
	"fmt"
	"image/color"
	"log"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	picking "github.com/phanxgames/willow-picking"
	"github.com/phanxgames/willow-picking/ebitenpick"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

const (
	screenW = 1280
	screenH = 720
	panSecs = 4
	panDist = 120
)

var (
	idleColor    = color.RGBA{R: 0x4a, G: 0x55, B: 0x68, A: 0xff}
	nearestColor = color.RGBA{R: 0xf6, G: 0xad, B: 0x55, A: 0xff}
	hitColor     = color.RGBA{R: 0x63, G: 0xb3, B: 0xed, A: 0xff}
)

type game struct {
	world    *picking.World
	camera   picking.EntityID
	input    *ebitenpick.Input
	backend  *picking.Backend
	queue    picking.HitQueue
	schedule picking.Schedule
	pan      *gween.Tween
	panSign  float64

	// rank of each entity in the latest batches: 0 nearest, 1 other hit.
	hovered map[picking.EntityID]int
}

func newGame(cfg picking.Config, logger *zap.Logger) (*game, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}

	g := &game{
		world:   picking.NewWorld(),
		input:   ebitenpick.NewInput(1),
		pan:     gween.New(-panDist, panDist, panSecs, ease.InOutSine),
		panSign: 1,
		hovered: make(map[picking.EntityID]int),
	}
	g.world.SetPrimaryWindow(g.input.Surface())
	g.camera = g.world.AddCamera(picking.NewCameraView(0, picking.Rect{Width: screenW, Height: screenH}))

	g.world.Spawn(picking.At(0, 0, 0), picking.Circle{Radius: 50})
	g.world.Spawn(picking.At(0, 50, -0.1), picking.Circle{Radius: 50})
	g.world.Spawn(picking.At(0, -160, 0).Rotated(0.3), picking.Segment{
		A: mgl64.Vec2{-150, 0}, B: mgl64.Vec2{150, 0}, Tolerance: 8,
	})

	opts = append(opts, picking.WithLogger(logger))
	g.backend = picking.NewBackend(g.input, g.world, g.input, g.world, opts...)

	g.schedule.Add(picking.StageInput, g.input.Update)
	g.schedule.Add(picking.StageCamera, g.updateCamera)
	g.schedule.AddBackend(g.backend, &g.queue)
	g.schedule.Add(picking.StageConsume, g.consumeHits)
	return g, nil
}

func (g *game) updateCamera() {
	x, done := g.pan.Update(1 / float32(ebiten.TPS()))
	if done {
		g.panSign = -g.panSign
		if g.panSign > 0 {
			g.pan = gween.New(-panDist, panDist, panSecs, ease.InOutSine)
		} else {
			g.pan = gween.New(panDist, -panDist, panSecs, ease.InOutSine)
		}
	}
	if cam := g.world.Camera(g.camera); cam != nil {
		cam.X = float64(x)
	}
}

func (g *game) consumeHits() {
	clear(g.hovered)
	for _, b := range g.queue.Drain() {
		for i, h := range b.Hits {
			rank := 1
			if i == 0 {
				rank = 0
			}
			if prev, ok := g.hovered[h.Entity]; !ok || rank < prev {
				g.hovered[h.Entity] = rank
			}
		}
	}
}

func (g *game) Update() error {
	g.schedule.Tick()
	return nil
}

func (g *game) colorOf(id picking.EntityID) color.Color {
	rank, ok := g.hovered[id]
	switch {
	case !ok:
		return idleColor
	case rank == 0:
		return nearestColor
	default:
		return hitColor
	}
}

func (g *game) Draw(screen *ebiten.Image) {
	cam := g.world.Camera(g.camera)
	if cam == nil {
		return
	}

	// Draw far to near so the nearer disc is on top.
	var shapes []picking.Geometry
	g.world.EachGeometry(func(geo picking.Geometry) { shapes = append(shapes, geo) })
	for pass := 0; pass < 2; pass++ {
		for _, geo := range shapes {
			if (geo.Transform.Depth() < 0) != (pass == 0) {
				continue
			}
			g.drawShape(screen, cam, geo)
		}
	}

	st := g.backend.Stats()
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"TPS: %.0f  pointers: %d  batches: %d  hits: %d  skipped: %d",
		ebiten.ActualTPS(), st.Pointers, st.Batches, st.Hits, st.Skipped()))
}

func (g *game) drawShape(screen *ebiten.Image, cam *picking.CameraView, geo picking.Geometry) {
	clr := g.colorOf(geo.Entity)
	switch s := geo.Shape.(type) {
	case picking.Circle:
		c, ok := cam.WorldToScreen(geo.Transform.Origin())
		if !ok {
			return
		}
		vector.DrawFilledCircle(screen, float32(c.X()), float32(c.Y()), float32(s.Radius*cam.Zoom), clr, true)
	case picking.Segment:
		a, okA := cam.WorldToScreen(geo.Transform.TransformLocal(s.A))
		b, okB := cam.WorldToScreen(geo.Transform.TransformLocal(s.B))
		if !okA || !okB {
			return
		}
		vector.StrokeLine(screen, float32(a.X()), float32(a.Y()), float32(b.X()), float32(b.Y()),
			float32(2*s.Tolerance*cam.Zoom), clr, true)
	}
}

func (g *game) Layout(_, _ int) (int, int) {
	g.input.SetBounds(screenW, screenH)
	return screenW, screenH
}

func main() {
	cfg, err := picking.LoadConfig(os.Getenv("PICKING_CONFIG"))
	if err != nil {
		log.Fatal(err)
	}
	logger := zap.NewNop()
	if cfg.Debug {
		if logger, err = zap.NewDevelopment(); err != nil {
			log.Fatal(err)
		}
	}
	defer func() { _ = logger.Sync() }()

	g, err := newGame(cfg, logger)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetWindowTitle("willow-picking: circles")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
