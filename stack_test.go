package xyplot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bars(title string, ys ...float64) *Series {
	s := &Series{Title: title, Kind: VerticalBarSeries}
	for i, y := range ys {
		s.Data = append(s.Data, XY(float64(i), y))
	}
	return s
}

func TestStackPositive(t *testing.T) {
	a, b, c := bars("a", 1, 2), bars("b", 3, 4), bars("c", 5, 6)
	out := Stack([]*Series{a, b, c}, AttrY)
	require.Len(t, out, 3)

	tests := []struct {
		series, point int
		y0, y         float64
	}{
		{0, 0, 0, 1}, {1, 0, 1, 4}, {2, 0, 4, 9},
		{0, 1, 0, 2}, {1, 1, 2, 6}, {2, 1, 6, 12},
	}
	for _, tc := range tests {
		p := out[tc.series][tc.point]
		if p.Y0.Float() != tc.y0 || p.Y.Float() != tc.y {
			t.Errorf("series %d point %d: got [%v,%v], want [%g,%g]",
				tc.series, tc.point, p.Y0, p.Y, tc.y0, tc.y)
		}
	}
	// Inputs are untouched.
	assert.Equal(t, XY(0, 3), b.Data[0])
}

func TestStackDiverging(t *testing.T) {
	a, b, c := bars("a", 2), bars("b", -3), bars("c", 4)
	out := Stack([]*Series{a, b, c}, AttrY)
	assert.Equal(t, [2]float64{0, 2}, [2]float64{out[0][0].Y0.Float(), out[0][0].Y.Float()})
	assert.Equal(t, [2]float64{0, -3}, [2]float64{out[1][0].Y0.Float(), out[1][0].Y.Float()})
	assert.Equal(t, [2]float64{2, 6}, [2]float64{out[2][0].Y0.Float(), out[2][0].Y.Float()})
}

func TestStackOnlyMarkedSeries(t *testing.T) {
	a, b, c := bars("a", 1), bars("b", 2), bars("c", 3)
	a.Stack, c.Stack = true, true
	out := Stack([]*Series{a, b, c}, AttrY)
	assert.False(t, out[1][0].Y0.IsValid(), "unmarked series passes through")
	assert.Equal(t, 2.0, out[1][0].Y.Float())
	assert.Equal(t, 1.0, out[2][0].Y0.Float())
	assert.Equal(t, 4.0, out[2][0].Y.Float())
}

func TestStackClustersAndMissing(t *testing.T) {
	a, b := bars("a", 1, 1), bars("b", 2, 2)
	b.Cluster = "other"
	c := &Series{Kind: VerticalBarSeries, Data: []Point{{X: Num(0)}, XY(1, 5)}}
	out := Stack([]*Series{a, b, c, nil}, AttrY)
	assert.Equal(t, 0.0, out[1][0].Y0.Float(), "own cluster starts at zero")
	assert.False(t, out[2][0].Y.IsValid())
	assert.Equal(t, 1.0, out[2][1].Y0.Float())
	assert.Nil(t, out[3])
}

func TestStackHorizontal(t *testing.T) {
	a := &Series{Kind: HorizontalBarSeries, Data: []Point{{X: Num(2), Y: Cat("q1")}}}
	b := &Series{Kind: HorizontalBarSeries, Data: []Point{{X: Num(5), Y: Cat("q1")}}}
	out := Stack([]*Series{a, b}, AttrX)
	assert.Equal(t, 2.0, out[1][0].X0.Float())
	assert.Equal(t, 7.0, out[1][0].X.Float())
}

func TestStackNormalized(t *testing.T) {
	a, b := bars("a", 1, -1), bars("b", 3, -3)
	out := StackNormalized([]*Series{a, b}, AttrY)
	assert.InDelta(t, 0.25, out[0][0].Y.Float(), 1e-12)
	assert.InDelta(t, 0.25, out[1][0].Y0.Float(), 1e-12)
	assert.InDelta(t, 1, out[1][0].Y.Float(), 1e-12)
	assert.InDelta(t, -0.25, out[0][1].Y.Float(), 1e-12)
	assert.InDelta(t, -1, out[1][1].Y.Float(), 1e-12)
}

func TestClusters(t *testing.T) {
	a, b, c := bars("a", 1), bars("b", 1), bars("c", 1)
	a.Cluster, b.Cluster, c.Cluster = "2015", "2016", "2015"
	line := &Series{Kind: LineSeries}
	h := &Series{Kind: HorizontalBarSeries}

	got := Clusters([]*Series{a, line, b, c, h}, true)
	assert.Equal(t, []ClusterInfo{{0, 2}, {0, 1}, {1, 2}, {0, 2}, {0, 1}}, got)

	got = Clusters([]*Series{a, line, b, c, h}, false)
	assert.Equal(t, []ClusterInfo{{0, 3}, {0, 1}, {1, 3}, {2, 3}, {0, 1}}, got)
}
