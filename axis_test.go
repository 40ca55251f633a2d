package xyplot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAxisDefaults(t *testing.T) {
	r := XAxis("time").resolved(250, 250, DefaultMargin)
	assert.Equal(t, Bottom, r.Position)
	assert.Equal(t, 6.0, r.TickSize)
	assert.Equal(t, 6.0, r.TickSizeInner)
	assert.Equal(t, 8.0, r.TickPadding)
	assert.Equal(t, 5, r.TickTotal)
	require.NotNil(t, r.Placement)
	assert.Equal(t, 260.0, r.Placement.Top)

	r = YAxis("").resolved(250, 250, DefaultMargin)
	assert.Equal(t, Left, r.Position)
	assert.Equal(t, 40.0, r.Placement.Width)

	// User values win.
	user := &Axis{Attr: AttrY, Position: Right, TickSize: 3, TickPadding: 2, TickTotal: 7,
		Placement: &Placement{Top: 1, Left: 2, Width: 3, Height: 4}}
	r = user.resolved(250, 250, DefaultMargin)
	assert.Equal(t, 3.0, r.TickSizeOuter)
	assert.Equal(t, 2.0, r.TickPadding)
	assert.Equal(t, 7, r.TickTotal)
	assert.Equal(t, Placement{Top: 1, Left: 2, Width: 3, Height: 4, TickTotal: 5}, *r.Placement)
	assert.Equal(t, 0, user.Placement.TickTotal, "input not modified")
}

func TestAxisGrobs(t *testing.T) {
	sc, err := NewScale(LinearScale, Domain{Min: 0, Max: 100}, 0, 250)
	require.NoError(t, err)
	a := XAxis("Distance")
	a.TickValues = []Value{Num(0), Num(50), Num(100)}
	r := a.resolved(250, 250, DefaultMargin)
	grobs := r.Grobs(sc, &DefaultTheme)

	// line, three ticks with labels, title
	require.Len(t, grobs, 8)
	line := grobs[0].(GrobLine)
	assert.Equal(t, GrobLine{X0: 0, Y0: 0, X1: 250, Y1: 0, Size: 1, Color: line.Color}, line)

	tick := grobs[3].(GrobLine)
	assert.Equal(t, 125.0, tick.X0)
	assert.Equal(t, -6.0, tick.Y0)
	assert.Equal(t, 6.0, tick.Y1)
	label := grobs[4].(GrobText)
	assert.Equal(t, "50", label.Text)
	assert.Equal(t, 14.0, label.Y)
	assert.Equal(t, -0.5, label.HAlign)

	title := grobs[7].(GrobText)
	assert.Equal(t, "Distance", title.Text)

	r.HideLine = true
	assert.Len(t, r.Grobs(sc, &DefaultTheme), 7)
}

func TestGridLines(t *testing.T) {
	sc, _ := NewScale(LinearScale, Domain{Min: 0, Max: 10}, 200, 0)
	g := &GridLines{Attr: AttrY, TickValues: []Value{Num(0), Num(5), Num(10)}}
	grobs := g.Grobs(sc, 300, 200, &DefaultTheme)
	require.Len(t, grobs, 3)
	mid := grobs[1].(GrobLine)
	assert.Equal(t, 100.0, mid.Y0)
	assert.Equal(t, 100.0, mid.Y1)
	assert.Equal(t, 300.0, mid.X1)
}
