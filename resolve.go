package picking

import "errors"

// skipReason records why a pointer contributed no batch this tick.
type skipReason uint8

const (
	skipNone       skipReason = iota
	skipNoLocation            // pointer is not over any surface
	skipNoPrimary             // pointer's candidate cameras target a missing primary window
	skipNoCamera              // no active camera draws to the pointer's surface
	skipProjection            // camera could not map the pointer to world space
)

func (r skipReason) String() string {
	switch r {
	case skipNoLocation:
		return "no location"
	case skipNoPrimary:
		return "no primary surface"
	case skipNoCamera:
		return "no active camera"
	case skipProjection:
		return "degenerate projection"
	default:
		return "none"
	}
}

// targetCamera is an active camera with its render target resolved for the tick.
type targetCamera struct {
	view    CameraView
	surface SurfaceID
	err     error
}

// normalizeCameras resolves the targets of all active cameras once per tick,
// preserving iteration order. Inactive cameras are dropped.
func normalizeCameras(buf []targetCamera, cameras []CameraView, primary PrimarySurface) []targetCamera {
	buf = buf[:0]
	for i := range cameras {
		if !cameras[i].Active {
			continue
		}
		s, err := cameras[i].Target.Normalize(primary)
		buf = append(buf, targetCamera{view: cameras[i], surface: s, err: err})
	}
	return buf
}

// resolveCamera picks the first camera drawing to target. When several
// cameras match, iteration order decides; cameras are never combined.
func resolveCamera(cameras []targetCamera, target SurfaceID) (*CameraView, skipReason) {
	reason := skipNoCamera
	for i := range cameras {
		c := &cameras[i]
		if c.err != nil {
			if errors.Is(c.err, ErrNoPrimarySurface) {
				reason = skipNoPrimary
			}
			continue
		}
		if c.surface == target {
			return &c.view, skipNone
		}
	}
	return nil, reason
}
