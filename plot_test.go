package xyplot

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/felixgeelhaar/bolt/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func stackedBars() *XYPlot {
	return &XYPlot{
		Width:   300,
		Height:  300,
		StackBy: AttrY,
		Series: []*Series{
			{Title: "Apples", Kind: VerticalBarSeries, Data: []Point{
				{X: Cat("a"), Y: Num(10)}, {X: Cat("b"), Y: Num(5)},
			}},
			{Title: "Pears", Kind: VerticalBarSeries, Data: []Point{
				{X: Cat("a"), Y: Num(2)}, {X: Cat("b"), Y: Num(15)},
			}},
			nil,
			{Title: "Hidden", Kind: LineSeries, Disabled: true, Data: []Point{XY(0, 1000)}},
		},
	}
}

func TestIndividualSteps(t *testing.T) {
	p := stackedBars()
	p.Scales = make(map[Attr]*Scale)

	p.PrepareData()
	if len(p.Layers) != 2 {
		t.Fatalf("Got %d layers, want 2", len(p.Layers))
	}
	if p.Layers[1].Index != 1 || p.Layers[1].Geom.Name() != "GeomVerticalBar" {
		t.Errorf("Layer 1 = %+v", p.Layers[1])
	}

	p.StackData()
	if got := p.Layers[1].Data[0]; got.Y0 != Num(10) || got.Y != Num(12) {
		t.Errorf("Stacked point = %+v", got)
	}
	if got := p.Series[1].Data[0]; got.Y != Num(2) || got.Y0.IsValid() {
		t.Errorf("Input modified: %+v", got)
	}
	for i, layer := range p.Layers {
		if layer.Cluster != (ClusterInfo{Index: 0, Total: 1}) {
			t.Errorf("Layer %d cluster %+v", i, layer.Cluster)
		}
	}

	if err := p.TrainScales(); err != nil {
		t.Fatalf("TrainScales: %v", err)
	}
	sx, sy := p.Scales[AttrX], p.Scales[AttrY]
	if sx.Type != OrdinalScale {
		t.Errorf("x scale type %s, want ordinal", sx.Type)
	}
	if cats := sx.Categories(); len(cats) != 2 || cats[0] != "a" || cats[1] != "b" {
		t.Errorf("x categories %v", cats)
	}
	// The hidden series must not stretch the y domain.
	if sy.Domain.Min != 0 || sy.Domain.Max != 20 {
		t.Errorf("y domain [%g,%g], want [0,20]", sy.Domain.Min, sy.Domain.Max)
	}
	if !near(sy.Map(Num(10)), 125) || !near(sy.Map(Num(0)), 250) {
		t.Errorf("y scale %s", sy)
	}

	p.RenderGeoms()
	for _, layer := range p.Layers {
		for _, grob := range layer.Grobs {
			t.Logf("Layer %d: %s", layer.Index, grob)
		}
	}
	if len(p.Layers[0].Grobs) != 2 {
		t.Fatalf("Got %d grobs", len(p.Layers[0].Grobs))
	}
	r0 := p.Layers[0].Grobs[0].(GrobRect)
	if !near(r0.XMin, 9.375) || !near(r0.XMax, 115.625) || !near(r0.YMin, 125) || !near(r0.YMax, 250) {
		t.Errorf("Bar a of layer 0: %s", r0)
	}
	r1 := p.Layers[1].Grobs[0].(GrobRect)
	if !near(r1.YMin, 100) || !near(r1.YMax, 125) {
		t.Errorf("Bar a of layer 1: %s", r1)
	}
}

func TestPrepareClustersUnstackedBars(t *testing.T) {
	p := stackedBars()
	p.StackBy = ""
	require.NoError(t, p.Prepare())

	assert.Equal(t, ClusterInfo{Index: 0, Total: 2}, p.Layers[0].Cluster)
	assert.Equal(t, ClusterInfo{Index: 1, Total: 2}, p.Layers[1].Cluster)

	a0 := p.Layers[0].Grobs[0].(GrobRect)
	a1 := p.Layers[1].Grobs[0].(GrobRect)
	assert.InDelta(t, a0.XMax, a1.XMin, 1e-9, "clusters are side by side")
	assert.InDelta(t, 53.125, a0.XMax-a0.XMin, 1e-9)
}

func TestPrepareNilData(t *testing.T) {
	p := &XYPlot{
		Width: 400, Height: 300,
		XType:  TimeScale,
		Series: []*Series{{Title: "empty", Kind: LineSeries, Data: nil}},
	}
	require.NoError(t, p.Prepare())
	require.Len(t, p.Layers, 1)
	assert.Equal(t, 0.0, p.Scales[AttrX].Map(Millis(0)))
}

func TestLogScaleWarning(t *testing.T) {
	buf := &bytes.Buffer{}
	p := &XYPlot{
		Width: 400, Height: 300,
		YType:  LogScale,
		Logger: bolt.New(bolt.NewJSONHandler(buf)).SetLevel(bolt.WARN),
		Series: []*Series{{Title: "growth", Kind: LineSeries, Data: []Point{XY(0, 0), XY(1, 10), XY(2, 100)}}},
	}
	require.NoError(t, p.Prepare())
	assert.Equal(t, 10.0, p.Scales[AttrY].Domain.Min)
	assert.Equal(t, 100.0, p.Scales[AttrY].Domain.Max)
	assert.Contains(t, buf.String(), "non-positive")
	assert.Contains(t, buf.String(), `"component":"plot"`)
	assert.Contains(t, buf.String(), `"series":"growth"`)
	assert.Contains(t, buf.String(), `"scale":"log"`)
	assert.Contains(t, buf.String(), `"dropped":1`)
}

func TestUnknownSeriesKindWarning(t *testing.T) {
	buf := &bytes.Buffer{}
	p := &XYPlot{
		Width: 200, Height: 200,
		Logger: bolt.New(bolt.NewJSONHandler(buf)).SetLevel(bolt.WARN),
		Series: []*Series{{Title: "odd", Kind: SeriesKind(99), Data: []Point{XY(1, 1)}}},
	}
	require.NoError(t, p.Prepare())
	assert.Empty(t, p.Layers)
	assert.Contains(t, buf.String(), `"series":"odd"`)
	assert.Contains(t, buf.String(), `"kind":99`)
}

func TestPlotExplicitDomain(t *testing.T) {
	p := &XYPlot{
		Width: 400, Height: 300,
		XDomain: []Value{Num(-10), Num(10)},
		Series:  []*Series{{Kind: MarkSeries, Data: []Point{XY(0, 0), XY(1, 1)}}},
	}
	require.NoError(t, p.Prepare())
	sx := p.Scales[AttrX]
	assert.Equal(t, -10.0, sx.Domain.Min)
	assert.InDelta(t, 175, sx.Map(Num(0)), 1e-9)
}

func threeBars(domain []Value) *XYPlot {
	return &XYPlot{
		Width: 400, Height: 300,
		XDomain: domain,
		Series: []*Series{{Kind: VerticalBarSeries, Data: []Point{
			XY(1, 4), XY(2, 7), XY(3, 5),
		}}},
	}
}

func barWidth(t *testing.T, p *XYPlot) float64 {
	t.Helper()
	require.NoError(t, p.Prepare())
	require.Len(t, p.Layers, 1)
	require.NotEmpty(t, p.Layers[0].Grobs)
	r := p.Layers[0].Grobs[0].(GrobRect)
	return r.XMax - r.XMin
}

func TestExplicitDomainBarWidth(t *testing.T) {
	computed := barWidth(t, threeBars(nil))
	explicit := barWidth(t, threeBars([]Value{Num(0.5), Num(3.5)}))
	if !near(computed, explicit) {
		t.Errorf("bar width %g with explicit domain, %g without", explicit, computed)
	}
	// Inner width 350 over 3 units, 0.85 of one unit per bar.
	assert.InDelta(t, 350.0/3*DefaultTheme.BarWidth, explicit, 1e-9)

	wide := barWidth(t, threeBars([]Value{Num(0), Num(7)}))
	assert.InDelta(t, 350.0/7*DefaultTheme.BarWidth, wide, 1e-9)
}

func TestPrepareFailureIsRetried(t *testing.T) {
	buf := &bytes.Buffer{}
	p := &XYPlot{
		Width: 300, Height: 200,
		YType:     LogScale,
		YDomain:   []Value{Num(-1), Num(10)},
		Logger:    bolt.New(bolt.NewJSONHandler(buf)).SetLevel(bolt.WARN),
		Crosshair: &Crosshair{Values: []Point{XY(1, 1)}},
		Series:    []*Series{{Kind: LineSeries, Data: []Point{XY(1, 1), XY(2, 5)}}},
	}
	for i := 0; i < 2; i++ {
		err := p.WriteSVG(&bytes.Buffer{})
		if !errors.Is(err, ErrBadData) {
			t.Errorf("attempt %d: err = %v, want ErrBadData", i, err)
		}
		if p.Scales != nil {
			t.Errorf("attempt %d: scales left behind: %v", i, p.Scales)
		}
	}
	assert.NotContains(t, buf.String(), "unknown attribute")
	assert.Empty(t, p.CrosshairAt(10).Values)

	p.YDomain = []Value{Num(1), Num(10)}
	require.NoError(t, p.WriteSVG(&bytes.Buffer{}))
	assert.NotNil(t, p.Scales[AttrY])
}

func TestWriteSVG(t *testing.T) {
	t0 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	var data []Point
	for i := 0; i < 20; i++ {
		data = append(data, Point{X: Time(t0.Add(time.Duration(i) * time.Hour)), Y: Num(math.Sin(float64(i)))})
	}
	series := []*Series{
		{Title: "sin", Kind: LineMarkSeries, Data: data},
		{Title: "area", Kind: AreaSeries, Data: data, Opacity: 0.3},
	}
	p := &XYPlot{
		Width: 500, Height: 300,
		XType:     TimeUTCScale,
		Series:    series,
		Axes:      []*Axis{XAxis("time"), YAxis("value")},
		Grid:      []*GridLines{{Attr: AttrX}, {Attr: AttrY}},
		Legend:    LegendFromSeries(series),
		Crosshair: &Crosshair{Values: []Point{data[3]}},
	}
	buf := &bytes.Buffer{}
	require.NoError(t, p.WriteSVG(buf))
	out := buf.String()
	assert.True(t, strings.Contains(out, "<svg"), "no svg element")
	assert.True(t, strings.Contains(out, "</svg>"), "svg not closed")
}

func TestWriteSVGNoSize(t *testing.T) {
	err := (&XYPlot{}).WriteSVG(&bytes.Buffer{})
	assert.True(t, errors.Is(err, ErrBadData))
}

func TestCrosshairAt(t *testing.T) {
	p := &XYPlot{
		Width: 300, Height: 300,
		Series: []*Series{
			{Kind: LineSeries, Data: []Point{XY(0, 1), XY(1, 2), XY(2, 3)}},
			{Kind: LineSeries, Data: []Point{XY(0, 5), XY(2, 6)}},
		},
	}
	ch := p.CrosshairAt(130)
	require.Len(t, ch.Values, 2)
	assert.Equal(t, XY(1, 2), ch.Values[0])
	assert.Equal(t, XY(2, 6), ch.Values[1])

	title, ok := ch.Title()
	require.True(t, ok)
	assert.Equal(t, CrosshairItem{Title: "x", Value: "1"}, title)
	assert.Equal(t, []CrosshairItem{{"y", "2"}, {"y", "6"}}, ch.Items())
}
