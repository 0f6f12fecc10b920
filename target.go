package picking

import (
	"errors"
	"fmt"
)

// ErrNoPrimarySurface is returned when a camera targets the primary window
// but no primary window is registered.
var ErrNoPrimarySurface = errors.New("picking: no primary surface")

// SurfaceKind distinguishes windows from off-screen images.
type SurfaceKind uint8

const (
	SurfaceWindow SurfaceKind = iota // an OS window
	SurfaceImage                     // an off-screen render target
)

// SurfaceID is a concrete surface a camera draws into and a pointer can be over.
type SurfaceID struct {
	Kind SurfaceKind
	ID   uint64
}

// WindowSurface returns the SurfaceID of the window with the given id.
func WindowSurface(id uint64) SurfaceID {
	return SurfaceID{Kind: SurfaceWindow, ID: id}
}

// ImageSurface returns the SurfaceID of the off-screen image with the given id.
func ImageSurface(id uint64) SurfaceID {
	return SurfaceID{Kind: SurfaceImage, ID: id}
}

func (s SurfaceID) String() string {
	if s.Kind == SurfaceImage {
		return fmt.Sprintf("image:%d", s.ID)
	}
	return fmt.Sprintf("window:%d", s.ID)
}

// TargetKind selects what a RenderTarget refers to.
type TargetKind uint8

const (
	TargetPrimaryWindow TargetKind = iota // symbolic alias, resolved per tick
	TargetWindow                          // a specific window
	TargetImage                           // a specific off-screen image
)

// RenderTarget is a camera's render destination, possibly symbolic.
// The zero value targets the primary window.
type RenderTarget struct {
	Kind TargetKind
	ID   uint64
}

// PrimaryWindowTarget is the symbolic primary-window target.
var PrimaryWindowTarget = RenderTarget{Kind: TargetPrimaryWindow}

// WindowTarget targets a specific window.
func WindowTarget(id uint64) RenderTarget {
	return RenderTarget{Kind: TargetWindow, ID: id}
}

// ImageTarget targets a specific off-screen image.
func ImageTarget(id uint64) RenderTarget {
	return RenderTarget{Kind: TargetImage, ID: id}
}

// PrimarySurface resolves the primary window alias to a concrete surface.
// It reports false when no primary window is registered.
type PrimarySurface interface {
	PrimarySurface() (SurfaceID, bool)
}

// Normalize resolves t to a concrete surface. Resolving TargetPrimaryWindow
// fails with ErrNoPrimarySurface when primary is nil or reports none.
func (t RenderTarget) Normalize(primary PrimarySurface) (SurfaceID, error) {
	switch t.Kind {
	case TargetWindow:
		return WindowSurface(t.ID), nil
	case TargetImage:
		return ImageSurface(t.ID), nil
	case TargetPrimaryWindow:
		if primary == nil {
			return SurfaceID{}, ErrNoPrimarySurface
		}
		if s, ok := primary.PrimarySurface(); ok {
			return s, nil
		}
		return SurfaceID{}, ErrNoPrimarySurface
	default:
		return SurfaceID{}, fmt.Errorf("picking: unknown target kind %d", t.Kind)
	}
}
