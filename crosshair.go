package xyplot

import (
	"math"
)

// NearestX returns the index of the point whose x is closest to x.
// Points with invalid x are ignored; ties go to the first point.
func NearestX(points []Point, x float64) (int, bool) {
	best, dist := -1, math.Inf(1)
	for i, p := range points {
		if !p.X.IsValid() || p.X.Kind() == Categorical {
			continue
		}
		if d := math.Abs(p.X.Float() - x); d < dist {
			best, dist = i, d
		}
	}
	return best, best >= 0
}

// NearestXY returns the index of the point closest to the pixel
// position (px, py) under the scales xs and ys.
func NearestXY(points []Point, xs, ys *Scale, px, py float64) (int, bool) {
	best, dist := -1, math.Inf(1)
	for i, p := range points {
		x, y := xs.Map(p.X), ys.Map(p.Y)
		if !finite(x, y) {
			continue
		}
		if d := math.Hypot(x-px, y-py); d < dist {
			best, dist = i, d
		}
	}
	return best, best >= 0
}

// CrosshairItem is one line of a crosshair box.
type CrosshairItem struct {
	Title string
	Value string
}

// Crosshair marks the points Values, typically one per series at the
// same x, with a vertical line and a box listing the values.
type Crosshair struct {
	Values      []Point
	TitleFormat func([]Point) (CrosshairItem, bool)
	ItemsFormat func([]Point) []CrosshairItem
}

// Title returns the box title, by default "x: <x of the first value>".
func (c *Crosshair) Title() (CrosshairItem, bool) {
	if c.TitleFormat != nil {
		return c.TitleFormat(c.Values)
	}
	for _, v := range c.Values {
		if v.X.IsValid() {
			return CrosshairItem{Title: "x", Value: v.X.Key()}, true
		}
	}
	return CrosshairItem{}, false
}

// Items returns the box lines, by default "y: <y>" for every value.
func (c *Crosshair) Items() []CrosshairItem {
	if c.ItemsFormat != nil {
		return c.ItemsFormat(c.Values)
	}
	var items []CrosshairItem
	for _, v := range c.Values {
		if v.Y.IsValid() {
			items = append(items, CrosshairItem{Title: "y", Value: v.Y.Key()})
		}
	}
	return items
}

// Grobs renders the crosshair in pixels of the plotting area. Nothing
// is drawn without values or without an x scale.
func (c *Crosshair) Grobs(xs *Scale, innerWidth, innerHeight float64, theme *Theme) []Grob {
	if xs == nil {
		return nil
	}
	x := math.NaN()
	for _, v := range c.Values {
		if px := xs.Map(v.X); finite(px) {
			x = px
			break
		}
	}
	if math.IsNaN(x) {
		return nil
	}
	grobs := []Grob{GrobLine{X0: x, Y0: 0, X1: x, Y1: innerHeight, Size: 1, Color: String2Color("#47d3d9")}}

	var lines []string
	if t, ok := c.Title(); ok {
		lines = append(lines, t.Title+": "+t.Value)
	}
	for _, it := range c.Items() {
		lines = append(lines, it.Title+": "+it.Value)
	}
	if len(lines) == 0 {
		return grobs
	}
	lh := theme.FontSize + 4
	boxW, boxH := 120.0, lh*float64(len(lines))+8
	bx := x + 10
	if bx+boxW > innerWidth {
		bx = x - 10 - boxW
	}
	grobs = append(grobs, GrobRect{XMin: bx, YMin: 0, XMax: bx + boxW, YMax: boxH, Fill: String2Color("#3a3a48"), Opacity: 0.9})
	for i, s := range lines {
		grobs = append(grobs, GrobText{
			X: bx + 6, Y: 4 + lh*float64(i), Text: s, VAlign: -1,
			Font: theme.FontName, Size: theme.FontSize, Color: BuiltinColors["white"],
		})
	}
	return grobs
}
