package sankey

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/vdobler/xyplot"
)

const (
	linkOpacity = 0.7
	curvature   = 0.5
	curveSteps  = 32
)

// LinkPath returns the center line of link l: a cubic curve leaving
// the source and entering the target horizontally.
func (d *Diagram) LinkPath(l Link) []xyplot.PixelPoint {
	src, dst := d.Nodes[l.Source], d.Nodes[l.Target]
	x0, x1 := src.X+src.DX, dst.X
	x2 := x0 + (x1-x0)*curvature
	x3 := x0 + (x1-x0)*(1-curvature)
	y0 := src.Y + l.SY + l.DY/2
	y1 := dst.Y + l.TY + l.DY/2
	return xyplot.CubicCurve(
		xyplot.PixelPoint{X: x0, Y: y0}, xyplot.PixelPoint{X: x2, Y: y0},
		xyplot.PixelPoint{X: x3, Y: y1}, xyplot.PixelPoint{X: x1, Y: y1},
		curveSteps)
}

func opacityOr(o, def float64) float64 {
	if o > 0 {
		return o
	}
	return def
}

// Grobs renders the laid out diagram in diagram coordinates: links
// first, nodes on top.
func (d *Diagram) Grobs(theme *xyplot.Theme) []xyplot.Grob {
	theme = theme.WithDefaults()
	var grobs []xyplot.Grob
	for _, l := range d.Links {
		col := l.Color
		if col == "" {
			col = theme.SeriesColor(1)
		}
		grobs = append(grobs, xyplot.GrobPath{
			Points:  d.LinkPath(l),
			Size:    math.Max(1, l.DY),
			Color:   xyplot.String2Color(col),
			Opacity: opacityOr(l.Opacity, linkOpacity),
		})
	}
	for _, n := range d.Nodes {
		col := n.Color
		if col == "" {
			col = theme.SeriesColor(0)
		}
		grobs = append(grobs, xyplot.GrobRect{
			XMin: n.X, YMin: n.Y, XMax: n.X + n.DX, YMax: n.Y + n.DY,
			Fill:    xyplot.String2Color(col),
			Opacity: opacityOr(n.Opacity, 1),
		})
	}
	if d.Labels {
		for _, n := range d.Nodes {
			t := xyplot.GrobText{
				X: n.X + n.DX + 6, Y: n.Y + n.DY/2, Text: n.Name,
				Font: theme.FontName, Size: theme.FontSize,
				Color: xyplot.String2Color(theme.TextColor), VAlign: -0.35,
			}
			if n.X > d.Width/2 {
				t.X, t.HAlign = n.X-6, -1
			}
			grobs = append(grobs, t)
		}
	}
	return grobs
}

// Size returns the size of the rendered image: the diagram plus margin.
func (d *Diagram) Size() (width, height float64) {
	return d.Width + d.margin(), d.Height + d.margin()
}

// Draw lays out d and draws it onto vp, which should have the size
// returned by Size.
func (d *Diagram) Draw(vp xyplot.Viewport, theme *xyplot.Theme) error {
	if err := d.Layout(); err != nil {
		return err
	}
	m := d.margin()
	inner := xyplot.SubViewport(vp, m/2, m/2, d.Width, d.Height)
	for _, g := range d.Grobs(theme) {
		g.Draw(inner)
	}
	return nil
}

// WriteSVG lays out d and writes it as SVG to w.
func (d *Diagram) WriteSVG(w io.Writer, theme *xyplot.Theme) error {
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("sankey: bad size %gx%g", d.Width, d.Height)
	}
	width, height := d.Size()
	c := vgsvg.New(vg.Length(width), vg.Length(height))
	vp := xyplot.Viewport{Width: vg.Length(width), Height: vg.Length(height), Canvas: c}
	if err := d.Draw(vp, theme); err != nil {
		return err
	}
	_, err := c.WriteTo(w)
	return err
}
