package optics

import (
	"math"

	"github.com/mzolin/go-optics-csg/pkg/core"
)

// FrameExtents are the radial distances, measured from the curvature axis,
// of the nearest and furthest points of a mirror's frame. They size the
// curved cap of a decentered mirror.
type FrameExtents struct {
	Inner float64
	Outer float64
}

// RoundFrameExtents returns the radial extents of a round frame of the
// given diameter whose center is decentered from the curvature axis
func RoundFrameExtents(diameter, horizontalDecenter, verticalDecenter float64) FrameExtents {
	offset := math.Hypot(horizontalDecenter, verticalDecenter)
	half := diameter * 0.5
	return FrameExtents{
		Inner: math.Max(0, offset-half),
		Outer: offset + half,
	}
}

// RectFrameExtents returns the radial extents of a rectangular frame of
// the given width and height whose center is decentered from the
// curvature axis
func RectFrameExtents(width, height, horizontalDecenter, verticalDecenter float64) FrameExtents {
	halfW := width * 0.5
	halfH := height * 0.5

	// Furthest frame point is always a corner
	outer := 0.0
	for _, sx := range []float64{-1, 1} {
		for _, sy := range []float64{-1, 1} {
			d := math.Hypot(horizontalDecenter+sx*halfW, verticalDecenter+sy*halfH)
			outer = math.Max(outer, d)
		}
	}

	// Nearest point of the rectangle to the axis; zero when the axis
	// falls inside the frame
	dx := math.Max(0, math.Abs(horizontalDecenter)-halfW)
	dy := math.Max(0, math.Abs(verticalDecenter)-halfH)
	return FrameExtents{Inner: math.Hypot(dx, dy), Outer: outer}
}

// CheckMirrorCurvature verifies the curvature radius is large enough for
// the curved cap to cover the furthest frame point
func CheckMirrorCurvature(curvatureRadius float64, extents FrameExtents) error {
	if curvatureRadius <= 0 {
		return core.NewValidationError("curvatureRadius", curvatureRadius, "must be positive")
	}
	if curvatureRadius < extents.Outer {
		return core.NewValidationError("curvatureRadius", curvatureRadius, "does not cover the furthest frame point")
	}
	return nil
}
