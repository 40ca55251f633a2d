package xyplot

import (
	"fmt"
	"io"
	"strings"

	"github.com/felixgeelhaar/bolt/v3"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/vdobler/xyplot/internal/logging"
)

// XYPlot is a chart with an x and a y scale showing any number of
// series together with axes, grid lines, a legend and a crosshair.
//
// The exported fields describe the chart. Prepare fills Scales and
// Layers; Draw and WriteSVG call Prepare if needed.
type XYPlot struct {
	Width, Height float64
	Margin        *Margin // nil means DefaultMargin

	// XType and YType select the scales. A linear scale over purely
	// categorical data becomes ordinal, over purely temporal data time.
	XType, YType ScaleType

	// XDomain and YDomain override the computed domains.
	XDomain, YDomain []Value

	// StackBy stacks all (or all Stack marked) series along AttrX or
	// AttrY. The empty Attr disables stacking.
	StackBy Attr

	Series []*Series

	// Axes nil draws a default x and y axis; an empty slice none.
	Axes      []*Axis
	Grid      []*GridLines
	Legend    *DiscreteColorLegend
	LegendAt  *PixelPoint // top left corner; default is the top right of the plotting area
	Crosshair *Crosshair

	Theme  *Theme
	Logger *bolt.Logger // nil uses the package default

	Scales map[Attr]*Scale
	Layers []*Layer

	th *Theme
}

// Layer is one series of a plot during rendering.
type Layer struct {
	Plot    *XYPlot
	Series  *Series
	Index   int     // index of Series in Plot.Series
	Data    []Point // stacked copy of Series.Data
	Cluster ClusterInfo
	Geom    Geom
	Grobs   []Grob
}

// Warnf logs a warning about the plot.
func (p *XYPlot) Warnf(f string, args ...interface{}) {
	p.warn(strings.TrimSuffix(fmt.Sprintf(f, args...), "\n"))
}

func (p *XYPlot) warn(msg string, fields ...logging.Field) {
	logger := p.Logger
	if logger == nil {
		logger = logging.Get()
	}
	ev := logging.NewEvent(logger.Warn()).Add(logging.Component("plot"))
	for _, f := range fields {
		ev.Add(f)
	}
	ev.Msg(msg)
}

func (p *XYPlot) theme() *Theme {
	if p.th == nil {
		p.th = p.Theme.WithDefaults()
	}
	return p.th
}

func (p *XYPlot) margin() Margin {
	if p.Margin == nil {
		return DefaultMargin
	}
	return *p.Margin
}

// InnerSize returns the size of the plotting area.
func (p *XYPlot) InnerSize() (w, h float64) {
	return InnerSize(p.Width, p.Height, p.margin())
}

// Prepare runs the rendering pipeline up to grobs: it sets up one layer
// per enabled series, stacks and clusters the data, trains and builds
// the x and y scales and renders the series.
func (p *XYPlot) Prepare() error {
	p.th = nil
	p.Layers = nil
	p.Scales = nil

	p.PrepareData()
	p.StackData()
	if err := p.TrainScales(); err != nil {
		return err
	}
	p.RenderGeoms()
	return nil
}

// PrepareData creates the layers. Disabled and nil series get none.
func (p *XYPlot) PrepareData() {
	for i, s := range p.Series {
		if !s.Enabled() {
			continue
		}
		if s.Kind < LineSeries || s.Kind > HorizontalRectSeries {
			p.warn("unknown series kind", logging.Series(s.Title), logging.Count("kind", int(s.Kind)))
			continue
		}
		p.Layers = append(p.Layers, &Layer{
			Plot:    p,
			Series:  s,
			Index:   i,
			Data:    append([]Point(nil), s.Data...),
			Cluster: ClusterInfo{Index: 0, Total: 1},
			Geom:    GeomFor(s.Kind),
		})
	}
}

// StackData applies StackBy and computes the bar clusters.
func (p *XYPlot) StackData() {
	stacking := p.StackBy == AttrX || p.StackBy == AttrY
	if p.StackBy != "" && !stacking {
		p.Warnf("cannot stack by %q", p.StackBy)
	}
	clusters := Clusters(p.Series, stacking)
	var stacked [][]Point
	if stacking {
		stacked = Stack(p.Series, p.StackBy)
	}
	for _, layer := range p.Layers {
		layer.Cluster = clusters[layer.Index]
		if stacked != nil {
			layer.Data = stacked[layer.Index]
		}
	}
}

// layerSeries returns the series of the layers with their stacked data.
func (p *XYPlot) layerSeries() []*Series {
	series := make([]*Series, len(p.Layers))
	for i, layer := range p.Layers {
		s := *layer.Series
		s.Data = layer.Data
		series[i] = &s
	}
	return series
}

// TrainScales computes the domains and builds the x and y scales for
// the plotting area. The y range is inverted as pixels grow downward.
// Scales is only replaced if both scales can be built.
func (p *XYPlot) TrainScales() error {
	w, h := p.InnerSize()
	series := p.layerSeries()
	scales := make(map[Attr]*Scale)
	for _, a := range []struct {
		attr     Attr
		typ      ScaleType
		explicit []Value
		r0, r1   float64
	}{
		{AttrX, p.XType, p.XDomain, 0, w},
		{AttrY, p.YType, p.YDomain, h, 0},
	} {
		t := inferType(a.attr, a.typ, series)
		if t == LogScale {
			p.warnNonPositive(a.attr, series)
		}
		d, ok := ExplicitDomain(t, a.explicit)
		if !ok {
			d = ComputeDomain(a.attr, t, series)
		} else if !t.IsDiscrete() {
			d.Step = BarStep(a.attr, t, series)
		}
		sc, err := NewScale(t, d, a.r0, a.r1)
		if err != nil {
			return fmt.Errorf("%s scale: %w", a.attr, err)
		}
		scales[a.attr] = sc
	}
	p.Scales = scales
	return nil
}

// inferType replaces a linear scale by an ordinal or time scale if all
// values of attr are categorical or temporal.
func inferType(attr Attr, t ScaleType, series []*Series) ScaleType {
	if t != LinearScale {
		return t
	}
	kinds := make(map[Kind]bool)
	for _, s := range series {
		for _, pt := range s.Data {
			if v := pt.Get(attr); v.IsValid() {
				kinds[v.Kind()] = true
			}
		}
	}
	if len(kinds) != 1 {
		return t
	}
	switch {
	case kinds[Categorical]:
		return OrdinalScale
	case kinds[Temporal]:
		return TimeScale
	}
	return t
}

func (p *XYPlot) warnNonPositive(attr Attr, series []*Series) {
	for _, s := range series {
		n := 0
		for _, pt := range s.Data {
			if v := pt.Get(attr); v.IsValid() && v.Kind() != Categorical && v.Float() <= 0 {
				n++
			}
		}
		if n > 0 {
			p.warn("dropping non-positive values on log scale",
				logging.Series(s.Title), logging.Scale(string(attr), LogScale.String()), logging.Count("dropped", n))
		}
	}
}

// RenderGeoms renders every layer to grobs.
func (p *XYPlot) RenderGeoms() {
	for _, layer := range p.Layers {
		if layer.Geom == nil {
			continue
		}
		layer.Grobs = layer.Geom.Render(p, layer)
	}
}

// axes returns the axes to draw.
func (p *XYPlot) axes() []*Axis {
	if p.Axes == nil {
		return []*Axis{XAxis(""), YAxis("")}
	}
	return p.Axes
}

// Draw prepares p if necessary and draws it onto vp.
func (p *XYPlot) Draw(vp Viewport) error {
	if p.Scales == nil {
		if err := p.Prepare(); err != nil {
			return err
		}
	}
	th := p.theme()
	m := p.margin()
	w, h := p.InnerSize()
	inner := SubViewport(vp, m.Left, m.Top, w, h)

	for _, g := range p.Grid {
		if sc := p.Scales[g.Attr]; sc != nil {
			drawAll(inner, g.Grobs(sc, w, h, th))
		}
	}
	for _, layer := range p.Layers {
		drawAll(inner, layer.Grobs)
	}
	for _, a := range p.axes() {
		if a == nil {
			continue
		}
		r := a.resolved(w, h, m)
		sc := p.Scales[r.Attr]
		if sc == nil {
			p.warn("axis for unknown attribute", logging.Str("attr", string(r.Attr)))
			continue
		}
		pl := r.Placement
		drawAll(SubViewport(vp, pl.Left, pl.Top, pl.Width, pl.Height), r.Grobs(sc, th))
	}
	if p.Crosshair != nil {
		drawAll(inner, p.Crosshair.Grobs(p.Scales[AttrX], w, h, th))
	}
	if p.Legend != nil {
		at := PixelPoint{}
		if p.LegendAt != nil {
			at = *p.LegendAt
		} else {
			lw, _ := p.Legend.Size()
			at = PixelPoint{X: m.Left + w - lw, Y: m.Top}
		}
		drawAll(vp, p.Legend.Grobs(at.X, at.Y, th))
	}
	return nil
}

func drawAll(vp Viewport, grobs []Grob) {
	for _, g := range grobs {
		g.Draw(vp)
	}
}

// WriteSVG draws p as an SVG image of Width × Height points to w.
func (p *XYPlot) WriteSVG(w io.Writer) error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: plot size %gx%g", ErrBadData, p.Width, p.Height)
	}
	c := vgsvg.New(vg.Length(p.Width), vg.Length(p.Height))
	vp := Viewport{Width: vg.Length(p.Width), Height: vg.Length(p.Height), Canvas: c}
	if err := p.Draw(vp); err != nil {
		return err
	}
	_, err := c.WriteTo(w)
	return err
}

// CrosshairAt returns a crosshair showing, for every layer, the point
// nearest to the horizontal pixel position px of the plotting area.
func (p *XYPlot) CrosshairAt(px float64) *Crosshair {
	if p.Scales == nil {
		if err := p.Prepare(); err != nil {
			p.warn("cannot place crosshair", logging.ErrorField(err))
			return &Crosshair{}
		}
	}
	xs := p.Scales[AttrX]
	x := xs.Invert(px)
	ch := &Crosshair{}
	if !x.IsValid() {
		return ch
	}
	for _, layer := range p.Layers {
		if x.Kind() == Categorical {
			for _, pt := range layer.Data {
				if pt.X == x {
					ch.Values = append(ch.Values, pt)
					break
				}
			}
			continue
		}
		if i, ok := NearestX(layer.Data, x.Float()); ok {
			ch.Values = append(ch.Values, layer.Data[i])
		}
	}
	return ch
}
