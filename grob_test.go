package xyplot

import (
	"image/color"
	"math"
	"testing"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/recorder"
)

// countActions returns the number of stroke, fill and text actions.
func countActions(c *recorder.Canvas) (strokes, fills, texts int) {
	for _, a := range c.Actions {
		switch a.(type) {
		case *recorder.Stroke:
			strokes++
		case *recorder.Fill:
			fills++
		case *recorder.FillString:
			texts++
		}
	}
	return strokes, fills, texts
}

func testViewport(c vg.Canvas) Viewport {
	return Viewport{X0: 0, Y0: 0, Width: 400, Height: 300, Canvas: c}
}

func TestViewportCoordinates(t *testing.T) {
	all := testViewport(nil)
	inner := SubViewport(all, 40, 10, 350, 250)

	if got := inner.X(0); got != 40 {
		t.Errorf("inner.X(0) = %v, want 40", got)
	}
	// Top of the inner viewport is 10 pixel below the top of all.
	if got := inner.Y(0); got != 290 {
		t.Errorf("inner.Y(0) = %v, want 290", got)
	}
	if got := inner.Y(250); got != 40 {
		t.Errorf("inner.Y(250) = %v, want 40", got)
	}
	if got := inner.String(); got != "Viewport{40.0,40.0 350.0x250.0}" {
		t.Errorf("String() = %q", got)
	}
}

func TestGrobs(t *testing.T) {
	red := BuiltinColors["red"]
	tests := []struct {
		grob                  Grob
		strokes, fills, texts int
	}{
		{GrobPoint{X: 10, Y: 10, Size: 3, Color: red, Fill: red}, 1, 1, 0},
		{GrobPoint{X: 10, Y: 10, Size: 3, Shape: StarPoint, Color: red}, 1, 0, 0},
		{GrobPoint{X: math.NaN(), Y: 10, Size: 3, Color: red}, 0, 0, 0},
		{GrobLine{X0: 0, Y0: 0, X1: 10, Y1: 10, Color: red}, 1, 0, 0},
		{GrobLine{X0: 0, Y0: 0, X1: 10, Y1: 10, Color: red, LineType: BlankLine}, 0, 0, 0},
		{GrobPath{Points: []PixelPoint{{0, 0}, {1, 1}, {math.NaN(), 2}, {3, 3}, {4, 4}}, Color: red}, 1, 0, 0},
		{GrobPath{Points: []PixelPoint{{0, 0}}, Color: red}, 0, 0, 0},
		{GrobRect{XMin: 0, YMin: 0, XMax: 5, YMax: 5, Fill: red}, 0, 1, 0},
		{GrobRect{XMin: 0, YMin: 0, XMax: 5, YMax: 5, Fill: red, Color: red, Size: 1}, 1, 1, 0},
		{GrobPolygon{Points: []PixelPoint{{0, 0}, {1, 1}}, Fill: red}, 0, 0, 0},
		{GrobText{X: 5, Y: 5, Text: "Hello"}, 0, 0, 1},
		{GrobText{X: 5, Y: 5, Text: ""}, 0, 0, 0},
	}
	for i, tc := range tests {
		c := &recorder.Canvas{}
		tc.grob.Draw(testViewport(c))
		s, f, x := countActions(c)
		if s != tc.strokes || f != tc.fills || x != tc.texts {
			t.Errorf("%d %s: got %d strokes, %d fills, %d texts; want %d, %d, %d",
				i, tc.grob, s, f, x, tc.strokes, tc.fills, tc.texts)
		}
	}
}

func TestGrobTextString(t *testing.T) {
	c := &recorder.Canvas{}
	GrobText{X: 5, Y: 5, Text: "Label", Color: color.Black}.Draw(testViewport(c))
	found := false
	for _, a := range c.Actions {
		if fs, ok := a.(*recorder.FillString); ok && fs.String == "Label" {
			found = true
		}
	}
	if !found {
		t.Errorf("text not drawn: %v", c.Actions)
	}
}

func TestCubicCurve(t *testing.T) {
	p0, p3 := PixelPoint{0, 0}, PixelPoint{10, 10}
	pts := CubicCurve(p0, PixelPoint{5, 0}, PixelPoint{5, 10}, p3, 4)
	if len(pts) != 5 {
		t.Fatalf("got %d points, want 5", len(pts))
	}
	if pts[0] != p0 || pts[4] != p3 {
		t.Errorf("end points %v %v", pts[0], pts[4])
	}
	if mid := pts[2]; math.Abs(mid.X-5) > 1e-9 || math.Abs(mid.Y-5) > 1e-9 {
		t.Errorf("mid point %v, want (5,5)", mid)
	}
}
