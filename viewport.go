package xyplot

import (
	"fmt"

	"gonum.org/v1/plot/vg"
)

// Viewport is a rectangular area on a canvas. Coordinates passed to
// X, Y and Point are pixels measured from the top left corner of the
// viewport; one pixel is one vg.Length point.
type Viewport struct {
	X0, Y0        vg.Length // lower left corner on the canvas
	Width, Height vg.Length
	Canvas        vg.Canvas
}

// SubViewport returns the width × height area whose top left corner is
// at (left, top) pixels inside vp.
func SubViewport(vp Viewport, left, top, width, height float64) Viewport {
	return Viewport{
		X0:     vp.X0 + vg.Length(left),
		Y0:     vp.Y0 + vp.Height - vg.Length(top+height),
		Width:  vg.Length(width),
		Height: vg.Length(height),
		Canvas: vp.Canvas,
	}
}

func (vp Viewport) String() string {
	return fmt.Sprintf("Viewport{%.1f,%.1f %.1fx%.1f}", vp.X0, vp.Y0, vp.Width, vp.Height)
}

// X converts the horizontal pixel position x to canvas coordinates.
func (vp Viewport) X(x float64) vg.Length { return vp.X0 + vg.Length(x) }

// Y converts the vertical pixel position y (growing downward) to canvas
// coordinates (growing upward).
func (vp Viewport) Y(y float64) vg.Length { return vp.Y0 + vp.Height - vg.Length(y) }

func (vp Viewport) Point(x, y float64) vg.Point { return vg.Point{X: vp.X(x), Y: vp.Y(y)} }
