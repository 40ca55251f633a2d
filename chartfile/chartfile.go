// Package chartfile reads chart descriptions from YAML (or JSON) files
// and turns them into xyplot charts or Sankey diagrams.
package chartfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vdobler/xyplot"
	"github.com/vdobler/xyplot/sankey"
)

var (
	ErrNotFound      = errors.New("chartfile: file not found")
	ErrInvalidFormat = errors.New("chartfile: invalid chart description")
)

// File is the on-disk form of a chart.
type File struct {
	Type   string   `yaml:"type"` // "xy" (default) or "sankey"
	Width  float64  `yaml:"width"`
	Height float64  `yaml:"height"`
	Margin *Margin  `yaml:"margin"`
	Theme  *Theme   `yaml:"theme"`
	X      AxisSpec `yaml:"x"`
	Y      AxisSpec `yaml:"y"`

	StackBy   string         `yaml:"stackBy"`
	Series    []SeriesSpec   `yaml:"series"`
	Legend    *LegendSpec    `yaml:"legend"`
	Crosshair *CrosshairSpec `yaml:"crosshair"`

	Sankey *SankeySpec `yaml:"sankey"`
}

type Margin struct {
	Left   float64 `yaml:"left"`
	Right  float64 `yaml:"right"`
	Top    float64 `yaml:"top"`
	Bottom float64 `yaml:"bottom"`
}

type Theme struct {
	Colors   []string `yaml:"colors"`
	Gradient []string `yaml:"gradient"`
	Font     string   `yaml:"font"`
	FontSize float64  `yaml:"fontSize"`
}

// AxisSpec describes the scale, axis and grid of one dimension.
type AxisSpec struct {
	Type       string        `yaml:"type"`
	Domain     []interface{} `yaml:"domain"`
	Title      string        `yaml:"title"`
	Position   string        `yaml:"position"`
	Hide       bool          `yaml:"hide"`
	Ticks      int           `yaml:"ticks"`
	TickValues []interface{} `yaml:"tickValues"`
	TickAngle  float64       `yaml:"tickAngle"`
	Grid       bool          `yaml:"grid"`
}

type SeriesSpec struct {
	Title       string        `yaml:"title"`
	Kind        string        `yaml:"kind"`
	Cluster     string        `yaml:"cluster"`
	Stack       bool          `yaml:"stack"`
	Disabled    bool          `yaml:"disabled"`
	Color       string        `yaml:"color"`
	Fill        string        `yaml:"fill"`
	Opacity     float64       `yaml:"opacity"`
	StrokeWidth float64       `yaml:"strokeWidth"`
	LineStyle   string        `yaml:"lineStyle"`
	Size        float64       `yaml:"size"`
	Data        []interface{} `yaml:"data"`
}

type LegendSpec struct {
	Orientation string   `yaml:"orientation"`
	Width       float64  `yaml:"width"`
	X           *float64 `yaml:"x"`
	Y           *float64 `yaml:"y"`
}

// CrosshairSpec places a crosshair at the data value X.
type CrosshairSpec struct {
	X interface{} `yaml:"x"`
}

type SankeySpec struct {
	Nodes       []NodeSpec `yaml:"nodes"`
	Links       []LinkSpec `yaml:"links"`
	NodeWidth   float64    `yaml:"nodeWidth"`
	NodePadding float64    `yaml:"nodePadding"`
	Iterations  int        `yaml:"iterations"`
	Align       string     `yaml:"align"`
	Margin      float64    `yaml:"margin"`
	Labels      bool       `yaml:"labels"`
}

type NodeSpec struct {
	Name    string  `yaml:"name"`
	Color   string  `yaml:"color"`
	Opacity float64 `yaml:"opacity"`
}

type LinkSpec struct {
	Source  int     `yaml:"source"`
	Target  int     `yaml:"target"`
	Value   float64 `yaml:"value"`
	Color   string  `yaml:"color"`
	Opacity float64 `yaml:"opacity"`
}

// Chart is a loaded chart: exactly one of Plot and Sankey is set.
type Chart struct {
	Plot   *xyplot.XYPlot
	Sankey *sankey.Diagram
	Theme  *xyplot.Theme

	crosshairX *xyplot.Value
}

// LoadFile reads the chart description in path.
func LoadFile(path string) (*Chart, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to open chart file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load reads a chart description from r.
func Load(r io.Reader) (*Chart, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read chart: %w", err)
	}
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return file.Chart()
}

// Chart converts the description into a chart.
func (f *File) Chart() (*Chart, error) {
	if f.Width <= 0 || f.Height <= 0 {
		return nil, fmt.Errorf("%w: width and height must be positive", ErrInvalidFormat)
	}
	theme := f.theme()
	switch strings.ToLower(f.Type) {
	case "", "xy", "xyplot":
		p, x, err := f.plot(theme)
		if err != nil {
			return nil, err
		}
		return &Chart{Plot: p, Theme: theme, crosshairX: x}, nil
	case "sankey":
		d, err := f.sankey()
		if err != nil {
			return nil, err
		}
		return &Chart{Sankey: d, Theme: theme}, nil
	}
	return nil, fmt.Errorf("%w: unknown chart type %q", ErrInvalidFormat, f.Type)
}

func (f *File) theme() *xyplot.Theme {
	if f.Theme == nil {
		return nil
	}
	return &xyplot.Theme{
		DiscreteColors:   f.Theme.Colors,
		ContinuousColors: f.Theme.Gradient,
		FontName:         f.Theme.Font,
		FontSize:         f.Theme.FontSize,
	}
}

// value converts a decoded YAML scalar. On time scales strings must be
// in RFC 3339 or date format.
func value(x interface{}, t xyplot.ScaleType) (xyplot.Value, error) {
	if s, ok := x.(string); ok && t.IsTime() {
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
			if tm, err := time.Parse(layout, s); err == nil {
				return xyplot.Time(tm), nil
			}
		}
		return xyplot.Value{}, fmt.Errorf("bad time %q", s)
	}
	return xyplot.ValueOf(x)
}

func values(xs []interface{}, t xyplot.ScaleType) ([]xyplot.Value, error) {
	if xs == nil {
		return nil, nil
	}
	out := make([]xyplot.Value, len(xs))
	for i, x := range xs {
		v, err := value(x, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (a AxisSpec) axis(attr xyplot.Attr, t xyplot.ScaleType) (*xyplot.Axis, error) {
	pos, err := xyplot.ParsePosition(a.Position)
	if err != nil {
		return nil, err
	}
	tv, err := values(a.TickValues, t)
	if err != nil {
		return nil, err
	}
	return &xyplot.Axis{
		Attr:           attr,
		Position:       pos,
		Title:          a.Title,
		TickTotal:      a.Ticks,
		TickValues:     tv,
		TickLabelAngle: a.TickAngle,
	}, nil
}

func (f *File) plot(theme *xyplot.Theme) (*xyplot.XYPlot, *xyplot.Value, error) {
	p := &xyplot.XYPlot{Width: f.Width, Height: f.Height, Theme: theme, Axes: []*xyplot.Axis{}}
	if f.Margin != nil {
		p.Margin = &xyplot.Margin{Left: f.Margin.Left, Right: f.Margin.Right, Top: f.Margin.Top, Bottom: f.Margin.Bottom}
	}
	if f.StackBy != "" {
		p.StackBy = xyplot.Attr(strings.ToLower(f.StackBy))
	}

	for _, dim := range []struct {
		attr   xyplot.Attr
		spec   AxisSpec
		typ    *xyplot.ScaleType
		domain *[]xyplot.Value
	}{
		{xyplot.AttrX, f.X, &p.XType, &p.XDomain},
		{xyplot.AttrY, f.Y, &p.YType, &p.YDomain},
	} {
		t, err := xyplot.ParseScaleType(dim.spec.Type)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s: %v", ErrInvalidFormat, dim.attr, err)
		}
		*dim.typ = t
		if *dim.domain, err = values(dim.spec.Domain, t); err != nil {
			return nil, nil, fmt.Errorf("%w: %s domain: %v", ErrInvalidFormat, dim.attr, err)
		}
		if !dim.spec.Hide {
			a, err := dim.spec.axis(dim.attr, t)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: %s axis: %v", ErrInvalidFormat, dim.attr, err)
			}
			p.Axes = append(p.Axes, a)
		}
		if dim.spec.Grid {
			p.Grid = append(p.Grid, &xyplot.GridLines{Attr: dim.attr, TickTotal: dim.spec.Ticks})
		}
	}

	for i, ss := range f.Series {
		s, err := ss.series(p.XType, p.YType)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: series %d: %v", ErrInvalidFormat, i, err)
		}
		p.Series = append(p.Series, s)
	}

	if f.Legend != nil {
		l := xyplot.LegendFromSeries(p.Series)
		o, err := xyplot.ParseOrientation(f.Legend.Orientation)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: legend: %v", ErrInvalidFormat, err)
		}
		l.Orientation, l.Width = o, f.Legend.Width
		p.Legend = l
		if f.Legend.X != nil && f.Legend.Y != nil {
			p.LegendAt = &xyplot.PixelPoint{X: *f.Legend.X, Y: *f.Legend.Y}
		}
	}

	var cx *xyplot.Value
	if f.Crosshair != nil && f.Crosshair.X != nil {
		v, err := value(f.Crosshair.X, p.XType)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: crosshair: %v", ErrInvalidFormat, err)
		}
		cx = &v
	}
	return p, cx, nil
}

func (ss SeriesSpec) series(xt, yt xyplot.ScaleType) (*xyplot.Series, error) {
	kind := xyplot.LineSeries
	if ss.Kind != "" {
		k, err := xyplot.ParseSeriesKind(ss.Kind)
		if err != nil {
			return nil, err
		}
		kind = k
	}
	s, err := xyplot.NewSeries(kind, ss.Title, ss.Data)
	if err != nil {
		return nil, err
	}
	// Time scales accept date strings.
	for i := range s.Data {
		pt := &s.Data[i]
		for _, a := range []struct {
			attr xyplot.Attr
			t    xyplot.ScaleType
		}{{xyplot.AttrX, xt}, {xyplot.AttrX0, xt}, {xyplot.AttrY, yt}, {xyplot.AttrY0, yt}} {
			v := pt.Get(a.attr)
			if !a.t.IsTime() || v.Kind() != xyplot.Categorical {
				continue
			}
			tv, err := value(v.String(), a.t)
			if err != nil {
				return nil, &xyplot.DataError{Series: ss.Title, Index: i, Err: err}
			}
			pt.Set(a.attr, tv)
		}
	}
	s.Cluster, s.Stack, s.Disabled = ss.Cluster, ss.Stack, ss.Disabled
	s.Color, s.Fill, s.Opacity = ss.Color, ss.Fill, ss.Opacity
	s.StrokeWidth, s.LineStyle, s.Size = ss.StrokeWidth, ss.LineStyle, ss.Size
	return s, nil
}

func (f *File) sankey() (*sankey.Diagram, error) {
	sk := f.Sankey
	if sk == nil {
		return nil, fmt.Errorf("%w: sankey chart without sankey section", ErrInvalidFormat)
	}
	align, err := sankey.ParseAlign(sk.Align)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	d := &sankey.Diagram{
		Width: f.Width, Height: f.Height,
		NodeWidth: sk.NodeWidth, NodePadding: sk.NodePadding,
		Iterations: sk.Iterations, Align: align,
		Margin: sk.Margin, Labels: sk.Labels,
	}
	for _, n := range sk.Nodes {
		d.Nodes = append(d.Nodes, sankey.Node{Name: n.Name, Color: n.Color, Opacity: n.Opacity})
	}
	for _, l := range sk.Links {
		d.Links = append(d.Links, sankey.Link{
			Source: l.Source, Target: l.Target, Value: l.Value,
			Color: l.Color, Opacity: l.Opacity,
		})
	}
	return d, nil
}

// WriteSVG renders the chart as SVG.
func (c *Chart) WriteSVG(w io.Writer) error {
	if c.Sankey != nil {
		return c.Sankey.WriteSVG(w, c.Theme)
	}
	p := c.Plot
	if err := p.Prepare(); err != nil {
		return err
	}
	if c.crosshairX != nil {
		p.Crosshair = p.CrosshairAt(p.Scales[xyplot.AttrX].Map(*c.crosshairX))
	}
	return p.WriteSVG(w)
}
