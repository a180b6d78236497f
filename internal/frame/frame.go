package frame

import "math"

// Surface is a 2D pixel surface in the fixed landscape-relative-to-the-lens
// orientation. Callers rotate their own surfaces into this space and rotate
// results back; the projector never inspects device orientation.
// The zero value is the defined failure sentinel.
type Surface struct {
	Width  float64
	Height float64
}

// IsZero reports whether the surface is the failure sentinel.
func (s Surface) IsZero() bool {
	return s.Width == 0 && s.Height == 0
}

// Aspect returns width/height. Zero height yields +Inf, which downstream
// checks treat as non-finite.
func (s Surface) Aspect() float64 {
	return s.Width / s.Height
}

// Rotated swaps the axes, converting between a caller's portrait space and
// the native landscape space.
func (s Surface) Rotated() Surface {
	return Surface{Width: s.Height, Height: s.Width}
}

// Geometry describes a lens/format combination and the viewing device.
type Geometry struct {
	FocalLengthMM      float64
	FilmWidthMM        float64
	FilmAspectRatio    float64
	DesiredAspectRatio float64 // 0 = use film default
	DeviceHFOVDegrees  float64 // horizontal field of view of the live device
}

// Projected is the pixel-space result of projecting a film frame onto a surface.
type Projected struct {
	Full    Surface // the full film frame in surface pixels
	Cropped Surface // Full cut down to the desired aspect ratio
}

// Project computes how large the film frame would appear on a surface that is
// itself displaying the device's native field of view. A non-finite or
// non-positive projection returns the zero-size sentinel; callers must check
// for it before use.
func Project(g Geometry, s Surface) Projected {
	if g.FocalLengthMM <= 0 || g.DeviceHFOVDegrees <= 0 {
		return Projected{}
	}

	filmHFOV := 2 * math.Atan(g.FilmWidthMM/(2*g.FocalLengthMM))
	deviceHFOV := g.DeviceHFOVDegrees * math.Pi / 180

	fullWidth := s.Width * (math.Tan(filmHFOV/2) / math.Tan(deviceHFOV/2))
	fullHeight := fullWidth / g.FilmAspectRatio

	if !finitePositive(fullWidth) || !finitePositive(fullHeight) {
		return Projected{}
	}

	full := Surface{Width: fullWidth, Height: fullHeight}
	return Projected{Full: full, Cropped: cropToAspect(full, g.targetAspect())}
}

func (g Geometry) targetAspect() float64 {
	if g.DesiredAspectRatio > 0 {
		return g.DesiredAspectRatio
	}
	return g.FilmAspectRatio
}

// cropToAspect fits the target aspect ratio inside full: the wider dimension
// gives, so the result matches target exactly and fits full on at least one axis.
func cropToAspect(full Surface, target float64) Surface {
	if full.Aspect() > target {
		return Surface{Width: full.Height * target, Height: full.Height}
	}
	return Surface{Width: full.Width, Height: full.Width / target}
}

// OverflowScale returns the factor that fits frame inside surface: the
// smaller of the per-axis ratios when frame exceeds surface on either axis,
// 1 otherwise. Zero-size frames map to 1.
func OverflowScale(frame, surface Surface) float64 {
	if frame.Width <= 0 || frame.Height <= 0 {
		return 1
	}
	if frame.Width <= surface.Width && frame.Height <= surface.Height {
		return 1
	}
	return math.Min(surface.Width/frame.Width, surface.Height/frame.Height)
}

func finitePositive(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}
