// Package scenefile loads picking scenes and per-frame pointer scripts from
// YAML.
//
// A scene file describes windows, cameras and shape entities, followed by a
// list of frames. Each frame moves or removes pointers and is then picked
// once:
//
//	primaryWindow: 1
//	cameras:
//	  - viewport: {width: 800, height: 600}
//	entities:
//	  - name: disc
//	    at: [0, 0, 0]
//	    circle: {radius: 50}
//	frames:
//	  - moves:
//	      - pointer: mouse
//	        surface: window:1
//	        x: 400
//	        y: 300
package scenefile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	picking "github.com/phanxgames/willow-picking"
	"gopkg.in/yaml.v3"
)

type viewportDoc struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type cameraDoc struct {
	ID       uint64      `yaml:"id"`
	Active   *bool       `yaml:"active"`
	Target   string      `yaml:"target"`
	Viewport viewportDoc `yaml:"viewport"`
	X        float64     `yaml:"x"`
	Y        float64     `yaml:"y"`
	Zoom     *float64    `yaml:"zoom"`
	Rotation float64     `yaml:"rotation"`
	Order    int         `yaml:"order"`
}

type circleDoc struct {
	Radius float64 `yaml:"radius"`
}

type segmentDoc struct {
	A         [2]float64 `yaml:"a"`
	B         [2]float64 `yaml:"b"`
	Tolerance float64    `yaml:"tolerance"`
}

type entityDoc struct {
	Name     string      `yaml:"name"`
	At       [3]float64  `yaml:"at"`
	Rotation float64     `yaml:"rotation"`
	Pickable bool        `yaml:"pickable"`
	Circle   *circleDoc  `yaml:"circle"`
	Segment  *segmentDoc `yaml:"segment"`
}

type moveDoc struct {
	Pointer string  `yaml:"pointer"`
	Surface string  `yaml:"surface"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
}

type frameDoc struct {
	Moves  []moveDoc `yaml:"moves"`
	Leave  []string  `yaml:"leave"`
	Remove []string  `yaml:"remove"`
}

type sceneDoc struct {
	PrimaryWindow *uint64     `yaml:"primaryWindow"`
	Cameras       []cameraDoc `yaml:"cameras"`
	Entities      []entityDoc `yaml:"entities"`
	Frames        []frameDoc  `yaml:"frames"`
}

// Move places a pointer on a surface. A nil Surface takes the pointer off
// every surface.
type Move struct {
	Pointer picking.PointerID
	Surface *picking.SurfaceID
	X, Y    float64
}

// Frame is the pointer activity applied before one picking pass.
type Frame struct {
	Moves  []Move
	Remove []picking.PointerID
}

// Scene is a loaded scene file.
type Scene struct {
	World  *picking.World
	Frames []Frame

	names map[picking.EntityID]string
}

// Name returns the name given to an entity in the scene file, or its
// numeric id when it has none.
func (s *Scene) Name(id picking.EntityID) string {
	if n, ok := s.names[id]; ok {
		return n
	}
	return strconv.FormatUint(uint64(id), 10)
}

// LoadFile reads and parses the scene file at path.
func LoadFile(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML scene. Unknown fields are rejected.
func Parse(data []byte) (*Scene, error) {
	var doc sceneDoc
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	if len(doc.Frames) == 0 {
		return nil, fmt.Errorf("parse scene: no frames")
	}

	s := &Scene{
		World: picking.NewWorld(),
		names: make(map[picking.EntityID]string),
	}
	if doc.PrimaryWindow != nil {
		s.World.SetPrimaryWindow(picking.WindowSurface(*doc.PrimaryWindow))
	}
	for i, c := range doc.Cameras {
		cam, err := c.view()
		if err != nil {
			return nil, fmt.Errorf("parse scene: camera %d: %w", i, err)
		}
		s.World.AddCamera(cam)
	}
	for i, e := range doc.Entities {
		if err := s.spawn(e); err != nil {
			return nil, fmt.Errorf("parse scene: entity %d: %w", i, err)
		}
	}
	for i, f := range doc.Frames {
		frame, err := f.frame()
		if err != nil {
			return nil, fmt.Errorf("parse scene: frame %d: %w", i, err)
		}
		s.Frames = append(s.Frames, frame)
	}
	return s, nil
}

func (c cameraDoc) view() (picking.CameraView, error) {
	vp := picking.Rect{X: c.Viewport.X, Y: c.Viewport.Y, Width: c.Viewport.Width, Height: c.Viewport.Height}
	cam := picking.NewCameraView(picking.EntityID(c.ID), vp)
	if c.Active != nil {
		cam.Active = *c.Active
	}
	target, err := ParseTarget(c.Target)
	if err != nil {
		return cam, err
	}
	cam.Target = target
	cam.X, cam.Y = c.X, c.Y
	if c.Zoom != nil {
		cam.Zoom = *c.Zoom
	}
	cam.Rotation = c.Rotation
	cam.Order = c.Order
	return cam, nil
}

func (s *Scene) spawn(e entityDoc) error {
	var shape picking.Shape
	switch {
	case e.Circle != nil && e.Segment != nil:
		return fmt.Errorf("both circle and segment given")
	case e.Circle != nil:
		shape = picking.Circle{Radius: e.Circle.Radius}
	case e.Segment != nil:
		shape = picking.Segment{
			A:         mgl64.Vec2(e.Segment.A),
			B:         mgl64.Vec2(e.Segment.B),
			Tolerance: e.Segment.Tolerance,
		}
	default:
		return fmt.Errorf("no shape")
	}
	tr := picking.At(e.At[0], e.At[1], e.At[2]).Rotated(e.Rotation)
	var id picking.EntityID
	if e.Pickable {
		id = s.World.SpawnPickable(tr, shape)
	} else {
		id = s.World.Spawn(tr, shape)
	}
	if e.Name != "" {
		s.names[id] = e.Name
	}
	return nil
}

func (f frameDoc) frame() (Frame, error) {
	var out Frame
	for _, m := range f.Moves {
		id, err := ParsePointer(m.Pointer)
		if err != nil {
			return out, err
		}
		surface, err := ParseSurface(m.Surface)
		if err != nil {
			return out, err
		}
		out.Moves = append(out.Moves, Move{Pointer: id, Surface: &surface, X: m.X, Y: m.Y})
	}
	for _, name := range f.Leave {
		id, err := ParsePointer(name)
		if err != nil {
			return out, err
		}
		out.Moves = append(out.Moves, Move{Pointer: id})
	}
	for _, name := range f.Remove {
		id, err := ParsePointer(name)
		if err != nil {
			return out, err
		}
		out.Remove = append(out.Remove, id)
	}
	return out, nil
}

// ParsePointer parses "mouse", "touch:N" or "custom:UUID".
func ParsePointer(s string) (picking.PointerID, error) {
	kind, arg, _ := strings.Cut(strings.TrimSpace(s), ":")
	switch kind {
	case "mouse":
		return picking.MousePointer, nil
	case "touch":
		n, err := strconv.ParseUint(arg, 10, 64)
		if err != nil {
			return picking.PointerID{}, fmt.Errorf("bad touch pointer %q: %w", s, err)
		}
		return picking.TouchPointer(n), nil
	case "custom":
		u, err := uuid.Parse(arg)
		if err != nil {
			return picking.PointerID{}, fmt.Errorf("bad custom pointer %q: %w", s, err)
		}
		return picking.CustomPointer(u), nil
	}
	return picking.PointerID{}, fmt.Errorf("unknown pointer %q", s)
}

// ParseSurface parses "window:N" or "image:N".
func ParseSurface(s string) (picking.SurfaceID, error) {
	kind, arg, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return picking.SurfaceID{}, fmt.Errorf("unknown surface %q", s)
	}
	n, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return picking.SurfaceID{}, fmt.Errorf("bad surface %q: %w", s, err)
	}
	switch kind {
	case "window":
		return picking.WindowSurface(n), nil
	case "image":
		return picking.ImageSurface(n), nil
	}
	return picking.SurfaceID{}, fmt.Errorf("unknown surface %q", s)
}

// ParseTarget parses a camera target: "" or "primary" for the primary
// window, otherwise a surface as accepted by ParseSurface.
func ParseTarget(s string) (picking.RenderTarget, error) {
	switch strings.TrimSpace(s) {
	case "", "primary":
		return picking.PrimaryWindowTarget, nil
	}
	surface, err := ParseSurface(s)
	if err != nil {
		return picking.RenderTarget{}, err
	}
	if surface.Kind == picking.SurfaceImage {
		return picking.ImageTarget(surface.ID), nil
	}
	return picking.WindowTarget(surface.ID), nil
}
