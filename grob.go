package xyplot

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot/vg"
)

// Grob is a graphical object positioned in viewport pixels.
type Grob interface {
	Draw(vp Viewport)
	String() string
}

// PixelPoint is a position in viewport pixels.
type PixelPoint struct{ X, Y float64 }

func finite(xs ...float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// -------------------------------------------------------------------------
// Grob Point

type GrobPoint struct {
	X, Y    float64
	Size    float64 // radius
	Shape   PointShape
	Color   color.Color // outline
	Fill    color.Color // nil draws no fill
	Opacity float64
}

func (point GrobPoint) Draw(vp Viewport) {
	if !finite(point.X, point.Y, point.Size) || point.Size <= 0 {
		return
	}
	c := vp.Canvas
	pt := vp.Point(point.X, point.Y)
	r := vg.Length(point.Size)

	var p vg.Path
	switch point.Shape {
	case SquarePoint:
		p.Move(vg.Point{X: pt.X - r, Y: pt.Y - r})
		p.Line(vg.Point{X: pt.X + r, Y: pt.Y - r})
		p.Line(vg.Point{X: pt.X + r, Y: pt.Y + r})
		p.Line(vg.Point{X: pt.X - r, Y: pt.Y + r})
	case DiamondPoint:
		p.Move(vg.Point{X: pt.X, Y: pt.Y - r})
		p.Line(vg.Point{X: pt.X + r, Y: pt.Y})
		p.Line(vg.Point{X: pt.X, Y: pt.Y + r})
		p.Line(vg.Point{X: pt.X - r, Y: pt.Y})
	case StarPoint:
		for i := 0; i < 10; i++ {
			rr := r
			if i%2 == 1 {
				rr = r / 2
			}
			a := math.Pi/2 + float64(i)*math.Pi/5
			q := vg.Point{X: pt.X + rr*vg.Length(math.Cos(a)), Y: pt.Y + rr*vg.Length(math.Sin(a))}
			if i == 0 {
				p.Move(q)
			} else {
				p.Line(q)
			}
		}
	default:
		p.Move(vg.Point{X: pt.X + r, Y: pt.Y})
		p.Arc(pt, r, 0, 2*math.Pi)
	}
	p.Close()

	if point.Fill != nil {
		c.SetColor(SetAlpha(point.Fill, opacity(point.Opacity)))
		c.Fill(p)
	}
	if point.Color != nil {
		c.SetLineWidth(1)
		c.SetLineDash(nil, 0)
		c.SetColor(SetAlpha(point.Color, opacity(point.Opacity)))
		c.Stroke(p)
	}
}

func (point GrobPoint) String() string {
	return fmt.Sprintf("Point(%.1f,%.1f r=%.1f)", point.X, point.Y, point.Size)
}

// opacity treats 0 as unset.
func opacity(o float64) float64 {
	if o <= 0 {
		return 1
	}
	return o
}

// -------------------------------------------------------------------------
// Grob Line

type GrobLine struct {
	X0, Y0, X1, Y1 float64
	Size           float64
	LineType       LineType
	Color          color.Color
	Opacity        float64
}

func (line GrobLine) Draw(vp Viewport) {
	if !finite(line.X0, line.Y0, line.X1, line.Y1) {
		return
	}
	GrobPath{
		Points:   []PixelPoint{{line.X0, line.Y0}, {line.X1, line.Y1}},
		Size:     line.Size,
		LineType: line.LineType,
		Color:    line.Color,
		Opacity:  line.Opacity,
	}.Draw(vp)
}

func (line GrobLine) String() string {
	return fmt.Sprintf("Line(%.1f,%.1f -> %.1f,%.1f)", line.X0, line.Y0, line.X1, line.Y1)
}

// -------------------------------------------------------------------------
// Grob Path

// GrobPath is a polyline. Non-finite points split it into several parts.
type GrobPath struct {
	Points   []PixelPoint
	Size     float64
	LineType LineType
	Color    color.Color
	Opacity  float64
}

func (path GrobPath) Draw(vp Viewport) {
	if path.LineType == BlankLine || path.Color == nil || len(path.Points) < 2 {
		return
	}
	w := path.Size
	if w <= 0 {
		w = 1
	}
	c := vp.Canvas
	c.SetLineWidth(vg.Length(w))
	c.SetLineDash(path.LineType.Dashes(w), 0)
	c.SetColor(SetAlpha(path.Color, opacity(path.Opacity)))

	var p vg.Path
	n, open := 0, false
	for _, q := range path.Points {
		if !finite(q.X, q.Y) {
			open = false
			continue
		}
		if open {
			p.Line(vp.Point(q.X, q.Y))
		} else {
			p.Move(vp.Point(q.X, q.Y))
			open = true
		}
		n++
	}
	if n > 1 {
		c.Stroke(p)
	}
}

func (path GrobPath) String() string {
	return fmt.Sprintf("Path(%d points)", len(path.Points))
}

// -------------------------------------------------------------------------
// Grob Polygon

// GrobPolygon is a filled closed area, optionally outlined.
type GrobPolygon struct {
	Points  []PixelPoint
	Fill    color.Color
	Color   color.Color
	Size    float64
	Opacity float64
}

func (poly GrobPolygon) Draw(vp Viewport) {
	var p vg.Path
	n := 0
	for _, q := range poly.Points {
		if !finite(q.X, q.Y) {
			continue
		}
		if n == 0 {
			p.Move(vp.Point(q.X, q.Y))
		} else {
			p.Line(vp.Point(q.X, q.Y))
		}
		n++
	}
	if n < 3 {
		return
	}
	p.Close()
	c := vp.Canvas
	if poly.Fill != nil {
		c.SetColor(SetAlpha(poly.Fill, opacity(poly.Opacity)))
		c.Fill(p)
	}
	if poly.Color != nil && poly.Size > 0 {
		c.SetLineWidth(vg.Length(poly.Size))
		c.SetLineDash(nil, 0)
		c.SetColor(SetAlpha(poly.Color, opacity(poly.Opacity)))
		c.Stroke(p)
	}
}

func (poly GrobPolygon) String() string {
	return fmt.Sprintf("Polygon(%d points)", len(poly.Points))
}

// -------------------------------------------------------------------------
// Grob Rect

type GrobRect struct {
	XMin, YMin, XMax, YMax float64
	Fill                   color.Color
	Color                  color.Color
	Size                   float64
	Opacity                float64
}

func (rect GrobRect) Draw(vp Viewport) {
	if !finite(rect.XMin, rect.YMin, rect.XMax, rect.YMax) {
		return
	}
	GrobPolygon{
		Points: []PixelPoint{
			{rect.XMin, rect.YMin}, {rect.XMax, rect.YMin},
			{rect.XMax, rect.YMax}, {rect.XMin, rect.YMax},
		},
		Fill:    rect.Fill,
		Color:   rect.Color,
		Size:    rect.Size,
		Opacity: rect.Opacity,
	}.Draw(vp)
}

func (rect GrobRect) String() string {
	return fmt.Sprintf("Rect(%.1f,%.1f - %.1f,%.1f)", rect.XMin, rect.YMin, rect.XMax, rect.YMax)
}

// -------------------------------------------------------------------------
// Grob Text

// GrobText is a single line of text. HAlign and VAlign shift the text
// by fractions of its width and height: 0 places the left and bottom
// edge at (X, Y), -0.5 centers and -1 uses the right and top edge.
type GrobText struct {
	X, Y           float64
	Text           string
	Font           string
	Size           float64
	Color          color.Color
	Angle          float64 // degrees, counterclockwise
	HAlign, VAlign float64
	Opacity        float64
}

func (text GrobText) Draw(vp Viewport) {
	if text.Text == "" || !finite(text.X, text.Y) {
		return
	}
	name := text.Font
	if name == "" {
		name = DefaultTheme.FontName
	}
	size := text.Size
	if size <= 0 {
		size = DefaultTheme.FontSize
	}
	font, err := vg.MakeFont(name, vg.Length(size))
	if err != nil {
		return
	}
	col := text.Color
	if col == nil {
		col = color.Black
	}
	c := vp.Canvas
	c.Push()
	defer c.Pop()
	c.Translate(vp.Point(text.X, text.Y))
	if text.Angle != 0 {
		c.Rotate(text.Angle * math.Pi / 180)
	}
	c.SetColor(SetAlpha(col, opacity(text.Opacity)))
	dx := vg.Length(text.HAlign) * font.Width(text.Text)
	dy := vg.Length(text.VAlign) * font.Size
	c.FillString(font, vg.Point{X: dx, Y: dy}, text.Text)
}

func (text GrobText) String() string {
	return fmt.Sprintf("Text(%.1f,%.1f %q)", text.X, text.Y, text.Text)
}

// CubicCurve samples the cubic Bézier curve from p0 to p3 with control
// points p1 and p2 at n+1 points.
func CubicCurve(p0, p1, p2, p3 PixelPoint, n int) []PixelPoint {
	if n < 1 {
		n = 1
	}
	out := make([]PixelPoint, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		u := 1 - t
		a, b, c, d := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
		out[i] = PixelPoint{
			X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
			Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
		}
	}
	return out
}
