package xyplot

import (
	"image/color"
	"math"
)

// Geom turns the prepared points of a layer into grobs in pixels of
// the plotting area.
type Geom interface {
	Name() string
	Render(p *XYPlot, layer *Layer) []Grob
}

// GeomFor returns the renderer of series kind k.
func GeomFor(k SeriesKind) Geom {
	switch k {
	case MarkSeries:
		return GeomMark{}
	case LineMarkSeries:
		return GeomLineMark{}
	case VerticalBarSeries:
		return GeomBar{Horizontal: false}
	case HorizontalBarSeries:
		return GeomBar{Horizontal: true}
	case AreaSeries:
		return GeomArea{}
	case VerticalRectSeries:
		return GeomRect{Horizontal: false}
	case HorizontalRectSeries:
		return GeomRect{Horizontal: true}
	}
	return GeomLine{}
}

// style collects the resolved drawing style of a layer.
type style struct {
	stroke, fill color.Color
	opacity      float64
	width        float64
	linetype     LineType
	size         float64
}

func (layer *Layer) style(theme *Theme) style {
	s := layer.Series
	stroke := s.Color
	if stroke == "" {
		stroke = theme.SeriesColor(layer.Index)
	}
	fill := s.Fill
	if fill == "" {
		fill = stroke
	}
	st := style{
		stroke:   String2Color(stroke),
		fill:     String2Color(fill),
		opacity:  opacity(s.Opacity),
		width:    s.StrokeWidth,
		linetype: String2LineType(s.LineStyle),
		size:     s.Size,
	}
	if st.width <= 0 {
		st.width = theme.LineWidth
	}
	if st.size <= 0 {
		st.size = theme.MarkSize
	}
	return st
}

// pointColor returns the per point color override or def.
func pointColor(p Point, def color.Color) color.Color {
	if p.Color == "" {
		return def
	}
	return String2Color(p.Color)
}

func pointOpacity(p Point, def float64) float64 {
	if p.Opacity > 0 {
		return p.Opacity
	}
	return def
}

// baseline maps the base value v of attr, defaulting to zero. Scales
// which cannot show zero (log) use the start of their range.
func baseline(sc *Scale, v Value) float64 {
	if v.IsValid() {
		return sc.Map(v)
	}
	px := sc.MapFloat(0)
	if math.IsNaN(px) {
		return sc.RangeMin
	}
	return px
}

// -------------------------------------------------------------------------
// Geom Line

type GeomLine struct{}

var _ Geom = GeomLine{}

func (GeomLine) Name() string { return "GeomLine" }

func (GeomLine) Render(p *XYPlot, layer *Layer) []Grob {
	st := layer.style(p.theme())
	xs, ys := p.Scales[AttrX], p.Scales[AttrY]
	points := make([]PixelPoint, len(layer.Data))
	for i, pt := range layer.Data {
		points[i] = PixelPoint{xs.Map(pt.X), ys.Map(pt.Y)}
	}
	return []Grob{GrobPath{
		Points:   points,
		Size:     st.width,
		LineType: st.linetype,
		Color:    st.stroke,
		Opacity:  st.opacity,
	}}
}

// -------------------------------------------------------------------------
// Geom Mark

type GeomMark struct{}

func (GeomMark) Name() string { return "GeomMark" }

func (GeomMark) Render(p *XYPlot, layer *Layer) []Grob {
	st := layer.style(p.theme())
	xs, ys := p.Scales[AttrX], p.Scales[AttrY]
	grobs := make([]Grob, 0, len(layer.Data))
	for _, pt := range layer.Data {
		x, y := xs.Map(pt.X), ys.Map(pt.Y)
		if !finite(x, y) {
			continue
		}
		size := st.size
		if pt.Size > 0 {
			size = pt.Size
		}
		grobs = append(grobs, GrobPoint{
			X: x, Y: y, Size: size,
			Color:   pointColor(pt, st.stroke),
			Fill:    pointColor(pt, st.fill),
			Opacity: pointOpacity(pt, st.opacity),
		})
	}
	return grobs
}

// -------------------------------------------------------------------------
// Geom LineMark

type GeomLineMark struct{}

func (GeomLineMark) Name() string { return "GeomLineMark" }

func (GeomLineMark) Render(p *XYPlot, layer *Layer) []Grob {
	return append(GeomLine{}.Render(p, layer), GeomMark{}.Render(p, layer)...)
}

// -------------------------------------------------------------------------
// Geom Area

// GeomArea fills between the base line (y0 or zero) and y.
type GeomArea struct{}

func (GeomArea) Name() string { return "GeomArea" }

func (GeomArea) Render(p *XYPlot, layer *Layer) []Grob {
	th := p.theme()
	st := layer.style(th)
	xs, ys := p.Scales[AttrX], p.Scales[AttrY]
	var top, bottom []PixelPoint
	for _, pt := range layer.Data {
		x, y := xs.Map(pt.X), ys.Map(pt.Y)
		y0 := baseline(ys, pt.Y0)
		if !finite(x, y, y0) {
			continue
		}
		top = append(top, PixelPoint{x, y})
		bottom = append(bottom, PixelPoint{x, y0})
	}
	for i, j := 0, len(bottom)-1; i < j; i, j = i+1, j-1 {
		bottom[i], bottom[j] = bottom[j], bottom[i]
	}
	return []Grob{GrobPolygon{
		Points:  append(top, bottom...),
		Fill:    st.fill,
		Color:   st.stroke,
		Size:    math.Min(st.width, 1),
		Opacity: st.opacity * th.AreaOpacity,
	}}
}

// -------------------------------------------------------------------------
// Geom Bar

// GeomBar draws bars centered on their base value. Bars of different
// clusters at the same base value are placed side by side within
// BarWidth of the available distance.
type GeomBar struct {
	Horizontal bool
}

func (b GeomBar) Name() string {
	if b.Horizontal {
		return "GeomHorizontalBar"
	}
	return "GeomVerticalBar"
}

func (b GeomBar) Render(p *XYPlot, layer *Layer) []Grob {
	th := p.theme()
	st := layer.style(th)
	lineAttr, valueAttr := AttrX, AttrY
	if b.Horizontal {
		lineAttr, valueAttr = AttrY, AttrX
	}
	ls, vs := p.Scales[lineAttr], p.Scales[valueAttr]

	distance := ls.Distance()
	if distance == 0 {
		// Unknown spacing, e.g. a single bar: use a tenth of the range.
		distance = math.Abs(ls.RangeMax-ls.RangeMin) / 10
	}
	itemSize := distance / 2 * th.BarWidth
	total := layer.Cluster.Total
	if total < 1 {
		total = 1
	}
	width := itemSize * 2 / float64(total)

	grobs := make([]Grob, 0, len(layer.Data))
	for _, pt := range layer.Data {
		center := ls.Map(pt.Get(lineAttr))
		v := vs.Map(pt.Get(valueAttr))
		v0 := baseline(vs, pt.Get(valueAttr.Base()))
		if !finite(center, v, v0) {
			continue
		}
		lo := center - itemSize + width*float64(layer.Cluster.Index)
		r := GrobRect{
			Fill:    pointColor(pt, st.fill),
			Color:   pointColor(pt, st.stroke),
			Opacity: pointOpacity(pt, st.opacity),
		}
		if b.Horizontal {
			r.XMin, r.XMax = math.Min(v, v0), math.Max(v, v0)
			r.YMin, r.YMax = lo, lo+width
		} else {
			r.XMin, r.XMax = lo, lo+width
			r.YMin, r.YMax = math.Min(v, v0), math.Max(v, v0)
		}
		grobs = append(grobs, r)
	}
	return grobs
}

// -------------------------------------------------------------------------
// Geom Rect

// GeomRect draws rectangles spanning x0..x and y0..y. The base of the
// value attribute (y0 for vertical, x0 for horizontal) defaults to zero;
// points without the other base are skipped.
type GeomRect struct {
	Horizontal bool
}

func (r GeomRect) Name() string {
	if r.Horizontal {
		return "GeomHorizontalRect"
	}
	return "GeomVerticalRect"
}

func (r GeomRect) Render(p *XYPlot, layer *Layer) []Grob {
	st := layer.style(p.theme())
	xs, ys := p.Scales[AttrX], p.Scales[AttrY]
	grobs := make([]Grob, 0, len(layer.Data))
	for _, pt := range layer.Data {
		var x0, y0 float64
		if r.Horizontal {
			x0, y0 = baseline(xs, pt.X0), ys.Map(pt.Y0)
		} else {
			x0, y0 = xs.Map(pt.X0), baseline(ys, pt.Y0)
		}
		x, y := xs.Map(pt.X), ys.Map(pt.Y)
		if !finite(x0, y0, x, y) {
			continue
		}
		grobs = append(grobs, GrobRect{
			XMin: math.Min(x0, x), XMax: math.Max(x0, x),
			YMin: math.Min(y0, y), YMax: math.Max(y0, y),
			Fill:    pointColor(pt, st.fill),
			Color:   pointColor(pt, st.stroke),
			Opacity: pointOpacity(pt, st.opacity),
		})
	}
	return grobs
}
