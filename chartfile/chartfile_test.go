package chartfile

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vdobler/xyplot"
	"github.com/vdobler/xyplot/sankey"
)

func TestLoadBars(t *testing.T) {
	c, err := LoadFile(filepath.Join("testdata", "bars.yaml"))
	require.NoError(t, err)
	require.NotNil(t, c.Plot)
	assert.Nil(t, c.Sankey)

	p := c.Plot
	assert.Equal(t, xyplot.AttrY, p.StackBy)
	require.Len(t, p.Series, 2)
	assert.Equal(t, xyplot.VerticalBarSeries, p.Series[1].Kind)
	assert.Equal(t, "#EF5D28", p.Series[1].Color)
	assert.Equal(t, xyplot.Cat("a"), p.Series[0].Data[0].X)
	assert.Equal(t, xyplot.Num(10), p.Series[0].Data[0].Y)
	require.Len(t, p.Axes, 2)
	assert.Equal(t, "Count", p.Axes[1].Title)
	require.Len(t, p.Grid, 1)
	require.NotNil(t, p.Legend)
	assert.Equal(t, xyplot.Horizontal, p.Legend.Orientation)

	buf := &bytes.Buffer{}
	require.NoError(t, c.WriteSVG(buf))
	assert.Contains(t, buf.String(), "<svg")
	assert.Equal(t, xyplot.OrdinalScale, p.Scales[xyplot.AttrX].Type)
}

func TestLoadSankey(t *testing.T) {
	c, err := LoadFile(filepath.Join("testdata", "energy.yaml"))
	require.NoError(t, err)
	require.NotNil(t, c.Sankey)
	d := c.Sankey
	assert.Equal(t, sankey.Center, d.Align)
	assert.True(t, d.Labels)
	require.Len(t, d.Nodes, 3)
	assert.Equal(t, "steelblue", d.Nodes[2].Color)
	assert.Equal(t, 0.3, d.Links[1].Opacity)

	buf := &bytes.Buffer{}
	require.NoError(t, c.WriteSVG(buf))
	assert.Contains(t, buf.String(), "<svg")
}

func TestTimeValues(t *testing.T) {
	src := `
width: 500
height: 200
x:
  type: time-utc
  domain: ["2024-01-01", "2024-01-03"]
crosshair:
  x: "2024-01-02T00:00:00Z"
series:
  - kind: line-mark
    data:
      - {x: "2024-01-01", y: 1}
      - {x: "2024-01-02T12:00:00Z", y: 3}
`
	c, err := Load(strings.NewReader(src))
	require.NoError(t, err)
	p := c.Plot
	assert.Equal(t, xyplot.TimeUTCScale, p.XType)
	require.Len(t, p.XDomain, 2)
	assert.True(t, p.XDomain[1].Time().Equal(time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, xyplot.Temporal, p.Series[0].Data[1].X.Kind())

	require.NoError(t, c.WriteSVG(&bytes.Buffer{}))
	require.NotNil(t, p.Crosshair)
	assert.Len(t, p.Crosshair.Values, 1)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax", "width: [1"},
		{"no size", "series: []"},
		{"chart type", "type: pie\nwidth: 1\nheight: 1"},
		{"scale type", "width: 1\nheight: 1\nx: {type: polar}"},
		{"series kind", "width: 1\nheight: 1\nseries: [{kind: pie}]"},
		{"bad time", "width: 1\nheight: 1\nx: {type: time}\nseries: [{data: [{x: yesterday, y: 1}]}]"},
		{"sankey section", "type: sankey\nwidth: 1\nheight: 1"},
		{"sankey align", "type: sankey\nwidth: 1\nheight: 1\nsankey: {align: middle}"},
	}
	for _, tc := range tests {
		_, err := Load(strings.NewReader(tc.src))
		if !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("%s: got %v, want ErrInvalidFormat", tc.name, err)
		}
	}

	_, err := LoadFile(filepath.Join("testdata", "missing.yaml"))
	assert.True(t, errors.Is(err, ErrNotFound))
}
