package xyplot

import (
	"slices"
)

// Axis describes an axis of an XYPlot. Zero fields take their defaults
// when the plot is prepared.
type Axis struct {
	Attr     Attr // AttrX or AttrY
	Position Position
	Title    string

	TickSize       float64 // default 6
	TickSizeInner  float64 // defaults to TickSize
	TickSizeOuter  float64 // defaults to TickSize
	TickPadding    float64 // default 8
	TickTotal      int     // defaults to the placement's TickTotal
	TickValues     []Value
	TickFormat     func(Value) string
	TickLabelAngle float64

	HideLine bool

	// Placement overrides the computed placement if non-nil.
	Placement *Placement
}

// XAxis returns a bottom axis for x.
func XAxis(title string) *Axis { return &Axis{Attr: AttrX, Title: title} }

// YAxis returns a left axis for y.
func YAxis(title string) *Axis { return &Axis{Attr: AttrY, Title: title} }

// resolved returns a copy of a with all defaults filled in.
func (a *Axis) resolved(innerWidth, innerHeight float64, m Margin) Axis {
	r := *a
	if r.Attr == "" {
		r.Attr = AttrX
	}
	if r.Position == DefaultPosition {
		r.Position = Bottom
		if r.Attr == AttrY {
			r.Position = Left
		}
	}
	if r.TickSize == 0 {
		r.TickSize = 6
	}
	if r.TickSizeInner == 0 {
		r.TickSizeInner = r.TickSize
	}
	if r.TickSizeOuter == 0 {
		r.TickSizeOuter = r.TickSize
	}
	if r.TickPadding == 0 {
		r.TickPadding = 8
	}
	pl := AxisPlacement(r.Position, innerWidth, innerHeight, m)
	if r.Placement != nil {
		pl = *r.Placement
		if pl.TickTotal == 0 {
			pl.TickTotal = AxisPlacement(r.Position, innerWidth, innerHeight, m).TickTotal
		}
	}
	if r.TickTotal == 0 {
		r.TickTotal = pl.TickTotal
	}
	r.Placement = &pl
	return r
}

// ticks returns the ticks of the axis on scale sc.
func (a *Axis) ticks(sc *Scale) []Tick {
	s := *sc
	if a.TickFormat != nil {
		s.Format = a.TickFormat
	}
	if a.TickValues != nil {
		return slices.Collect(s.TicksFor(a.TickValues))
	}
	return slices.Collect(s.Ticks(a.TickTotal))
}

// Grobs renders the resolved axis in pixels of its placement box.
func (a *Axis) Grobs(sc *Scale, theme *Theme) []Grob {
	pl := a.Placement
	lineColor := String2Color(theme.AxisColor)
	textColor := String2Color(theme.TextColor)
	var grobs []Grob

	// The axis line runs along the edge of the box facing the plot.
	var lx0, ly0, lx1, ly1 float64
	switch a.Position {
	case Top:
		lx0, ly0, lx1, ly1 = 0, pl.Height, pl.Width, pl.Height
	case Left:
		lx0, ly0, lx1, ly1 = pl.Width, 0, pl.Width, pl.Height
	case Right:
		lx0, ly0, lx1, ly1 = 0, 0, 0, pl.Height
	default:
		lx0, ly0, lx1, ly1 = 0, 0, pl.Width, 0
	}
	if !a.HideLine {
		grobs = append(grobs, GrobLine{X0: lx0, Y0: ly0, X1: lx1, Y1: ly1, Size: 1, Color: lineColor})
	}

	for _, tk := range a.ticks(sc) {
		if !finite(tk.Pos) {
			continue
		}
		tick := GrobLine{Size: 1, Color: lineColor}
		label := GrobText{
			Text:  tk.Label,
			Font:  theme.FontName,
			Size:  theme.FontSize,
			Color: textColor,
			Angle: a.TickLabelAngle,
		}
		out := a.TickSizeOuter + a.TickPadding
		switch a.Position {
		case Top:
			tick.X0, tick.Y0 = tk.Pos, ly0+a.TickSizeInner
			tick.X1, tick.Y1 = tk.Pos, ly0-a.TickSizeOuter
			label.X, label.Y = tk.Pos, ly0-out
			label.HAlign, label.VAlign = -0.5, 0
		case Left:
			tick.X0, tick.Y0 = lx0+a.TickSizeInner, tk.Pos
			tick.X1, tick.Y1 = lx0-a.TickSizeOuter, tk.Pos
			label.X, label.Y = lx0-out, tk.Pos
			label.HAlign, label.VAlign = -1, -0.35
		case Right:
			tick.X0, tick.Y0 = lx0-a.TickSizeInner, tk.Pos
			tick.X1, tick.Y1 = lx0+a.TickSizeOuter, tk.Pos
			label.X, label.Y = lx0+out, tk.Pos
			label.HAlign, label.VAlign = 0, -0.35
		default:
			tick.X0, tick.Y0 = tk.Pos, ly0-a.TickSizeInner
			tick.X1, tick.Y1 = tk.Pos, ly0+a.TickSizeOuter
			label.X, label.Y = tk.Pos, ly0+out
			label.HAlign, label.VAlign = -0.5, -1
		}
		grobs = append(grobs, tick, label)
	}

	if a.Title != "" {
		title := GrobText{Text: a.Title, Font: theme.FontName, Size: theme.FontSize, Color: textColor}
		switch a.Position {
		case Top:
			title.X, title.Y, title.HAlign, title.VAlign = pl.Width, 0, -1, -1
		case Left:
			title.X, title.Y, title.Angle = 0, 0, -90
			title.HAlign, title.VAlign = -1, -1
		case Right:
			title.X, title.Y, title.Angle = pl.Width, 0, -90
			title.HAlign, title.VAlign = -1, 0
		default:
			title.X, title.Y, title.HAlign, title.VAlign = pl.Width, pl.Height, -1, 0
		}
		grobs = append(grobs, title)
	}
	return grobs
}

// GridLines draws lines across the plotting area at the ticks of the
// scale of Attr: vertical lines for x, horizontal lines for y.
type GridLines struct {
	Attr       Attr
	TickTotal  int
	TickValues []Value
}

func (g *GridLines) Grobs(sc *Scale, innerWidth, innerHeight float64, theme *Theme) []Grob {
	total := g.TickTotal
	if total == 0 {
		size := innerWidth
		if g.Attr == AttrY {
			size = innerHeight
		}
		total = TicksTotalFromSize(size)
	}
	a := Axis{TickTotal: total, TickValues: g.TickValues}
	col := String2Color(theme.GridColor)
	var grobs []Grob
	for _, tk := range a.ticks(sc) {
		if !finite(tk.Pos) {
			continue
		}
		if g.Attr == AttrY {
			grobs = append(grobs, GrobLine{X0: 0, Y0: tk.Pos, X1: innerWidth, Y1: tk.Pos, Size: 1, Color: col})
		} else {
			grobs = append(grobs, GrobLine{X0: tk.Pos, Y0: 0, X1: tk.Pos, Y1: innerHeight, Size: 1, Color: col})
		}
	}
	return grobs
}
