package ggview

import "math"

// FitEpsilon is how close the zoom must be to the fit zoom for
// ToggleFitOr100 to treat the view as already fitted.
const FitEpsilon = 0.01

// Viewport is the view transform for the current image: a pan offset in
// display pixels, a zoom factor, and a clockwise rotation in quarter turns.
// It is a plain value; every operation returns the new state and the caller
// decides what to do with it, which keeps the transform math testable on
// its own.
type Viewport struct {
	// Offset shifts the image center away from the display center,
	// in display pixels.
	Offset Vec2

	// Zoom is the display-pixels-per-image-pixel factor. 1 is 100%.
	Zoom float64

	// Steps is the clockwise rotation in quarter turns, always in [0, 3].
	Steps int
}

// HomeViewport returns the viewport for a freshly loaded image: centered,
// unrotated, at 100% until a fit zoom is applied.
func HomeViewport() Viewport {
	return Viewport{Zoom: 1}
}

// Placement is one tile's quad on the display. Quarter-turn rotation keeps
// every quad an axis-aligned rectangle; Steps tells the renderer how to
// orient the texture pixels inside it.
type Placement struct {
	// Center is the quad center in display pixels.
	Center Vec2

	// W, H are the quad extent in display pixels, already swapped for odd
	// rotations.
	W, H float64

	// Steps is the clockwise pixel orientation in quarter turns.
	Steps int
}

// EffectiveSize returns the image dimensions as seen on screen: width and
// height trade places when the rotation is an odd number of quarter turns.
func EffectiveSize(w, h float64, steps int) (float64, float64) {
	if floorMod(steps, 2) == 1 {
		return h, w
	}
	return w, h
}

// FitZoom returns the zoom that fits a w x h image rotated by steps into a
// dispW x dispH display: the smaller of the two axis ratios. Degenerate
// display or image sizes yield 1.
func FitZoom(dispW, dispH, w, h float64, steps int) float64 {
	effW, effH := EffectiveSize(w, h, steps)
	if dispW <= 0 || dispH <= 0 || effW <= 0 || effH <= 0 {
		return 1
	}
	return math.Min(dispW/effW, dispH/effH)
}

// Pan returns the viewport shifted by delta display pixels.
func (v Viewport) Pan(delta Vec2) Viewport {
	v.Offset = v.Offset.Add(delta)
	return v
}

// ZoomAt returns the viewport zoomed by factor about the given cursor
// position, so the image point under the cursor stays put. dispCenter is
// the display center. Non-positive factors leave the viewport unchanged.
// Zoom is not clamped; very large and very small factors are the user's
// prerogative.
func (v Viewport) ZoomAt(cursor, dispCenter Vec2, factor float64) Viewport {
	if factor <= 0 {
		return v
	}
	center := dispCenter.Add(v.Offset)
	v.Offset = v.Offset.Sub(cursor.Sub(center).Mul(factor - 1))
	v.Zoom *= factor
	return v
}

// Rotate returns the viewport rotated by dir quarter turns (positive is
// clockwise). Offset and zoom carry over; the image keeps its anchor point
// and spins in place.
func (v Viewport) Rotate(dir int) Viewport {
	v.Steps = floorMod(v.Steps+dir, 4)
	return v
}

// ToggleFitOr100 switches between fit-to-display and 100% zoom. When the
// current zoom is within FitEpsilon of fit the result is 100%, otherwise
// fit. The offset resets either way, re-centering the image.
func (v Viewport) ToggleFitOr100(fit float64) Viewport {
	if math.Abs(v.Zoom-fit) < FitEpsilon {
		v.Zoom = 1
	} else {
		v.Zoom = fit
	}
	v.Offset = Vec2{}
	return v
}

// WithZoom returns the viewport at the given zoom with the offset reset.
// Used when adopting a fit zoom for a fresh image.
func (v Viewport) WithZoom(zoom float64) Viewport {
	v.Zoom = zoom
	v.Offset = Vec2{}
	return v
}

// TilePlacement maps one tile of a w x h image onto the display. The
// rotation happens in two stages: the vector from image center to tile
// center turns by Steps quarter turns and scales by Zoom to position the
// quad, then the quad itself takes the same orientation, which for quarter
// turns reduces to swapping its extent and orienting the pixels.
func (v Viewport) TilePlacement(t Tile, w, h float64, dispCenter Vec2) Placement {
	anchor := dispCenter.Add(v.Offset)

	tileCenter := V2(
		float64(t.X)+float64(t.W)/2-w/2,
		float64(t.Y)+float64(t.H)/2-h/2,
	)
	center := anchor.Add(tileCenter.RotSteps(v.Steps).Mul(v.Zoom))

	qw, qh := EffectiveSize(float64(t.W)*v.Zoom, float64(t.H)*v.Zoom, v.Steps)
	return Placement{Center: center, W: qw, H: qh, Steps: v.Steps}
}
