package xyplot

import (
	"fmt"
	"math"
	"strings"
)

// Orientation of a discrete legend.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(s) {
	case "", "vertical":
		return Vertical, nil
	case "horizontal":
		return Horizontal, nil
	}
	return Vertical, fmt.Errorf("unknown legend orientation %q", s)
}

// LegendItem is one entry of a discrete legend.
type LegendItem struct {
	Title    string
	Color    string // defaults to the theme palette by index
	Disabled bool
}

// DiscreteColorLegend lists items with a color swatch each.
type DiscreteColorLegend struct {
	Items       []LegendItem
	Orientation Orientation
	Width       float64 // default 150
	ItemHeight  float64 // default 20
	ItemWidth   float64 // horizontal item width, default Width/len(Items)
}

// LegendFromSeries creates a legend with one item per series, using the
// same colors as the series. A nil series yields an empty disabled item
// so item and series indices stay aligned.
func LegendFromSeries(series []*Series) *DiscreteColorLegend {
	l := &DiscreteColorLegend{Items: make([]LegendItem, len(series))}
	for i, s := range series {
		if s == nil {
			l.Items[i].Disabled = true
			continue
		}
		l.Items[i] = LegendItem{Title: s.Title, Color: s.Color, Disabled: s.Disabled}
	}
	return l
}

// Toggle flips the disabled state of item i and reports the new state.
func (l *DiscreteColorLegend) Toggle(i int) bool {
	if i < 0 || i >= len(l.Items) {
		return false
	}
	l.Items[i].Disabled = !l.Items[i].Disabled
	return l.Items[i].Disabled
}

// Apply copies the disabled state of the items onto the series with
// the same index.
func (l *DiscreteColorLegend) Apply(series []*Series) {
	for i, s := range series {
		if s != nil && i < len(l.Items) {
			s.Disabled = l.Items[i].Disabled
		}
	}
}

func (l *DiscreteColorLegend) dims() (width, itemWidth, itemHeight float64) {
	width, itemHeight = l.Width, l.ItemHeight
	if width <= 0 {
		width = 150
	}
	if itemHeight <= 0 {
		itemHeight = 20
	}
	itemWidth = l.ItemWidth
	if itemWidth <= 0 {
		itemWidth = width
		if l.Orientation == Horizontal && len(l.Items) > 0 {
			itemWidth = width / float64(len(l.Items))
		}
	}
	return width, itemWidth, itemHeight
}

// Size is the pixel size of the legend.
func (l *DiscreteColorLegend) Size() (width, height float64) {
	w, _, ih := l.dims()
	if l.Orientation == Horizontal {
		return w, ih
	}
	return w, ih * float64(len(l.Items))
}

// ItemAt returns the index of the item at pixel (x, y) relative to the
// legend's top left corner.
func (l *DiscreteColorLegend) ItemAt(x, y float64) (int, bool) {
	_, iw, ih := l.dims()
	w, h := l.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return -1, false
	}
	i := int(math.Floor(y / ih))
	if l.Orientation == Horizontal {
		i = int(math.Floor(x / iw))
	}
	if i >= len(l.Items) {
		return -1, false
	}
	return i, true
}

// Grobs renders the legend with its top left corner at (x0, y0).
func (l *DiscreteColorLegend) Grobs(x0, y0 float64, theme *Theme) []Grob {
	_, iw, ih := l.dims()
	var grobs []Grob
	for i, it := range l.Items {
		x, y := x0, y0+float64(i)*ih
		if l.Orientation == Horizontal {
			x, y = x0+float64(i)*iw, y0
		}
		col := it.Color
		if col == "" {
			col = theme.SeriesColor(i)
		}
		op := 1.0
		if it.Disabled {
			op = theme.DisabledOpacity
		}
		mid := y + ih/2
		grobs = append(grobs,
			GrobLine{X0: x + 2, Y0: mid, X1: x + 16, Y1: mid, Size: 3, Color: String2Color(col), Opacity: op},
			GrobText{
				X: x + 22, Y: mid, Text: it.Title,
				Font: theme.FontName, Size: theme.FontSize,
				Color: String2Color(theme.TextColor), VAlign: -0.35, Opacity: op,
			})
	}
	return grobs
}

// ContinuousColorLegend shows the continuous color range of a chart.
type ContinuousColorLegend struct {
	StartTitle, MidTitle, EndTitle string
	StartColor, MidColor, EndColor string // default to the theme gradient
	Width, Height                  float64
}

// Grobs renders the legend with its top left corner at (x0, y0): a
// gradient bar above the titles.
func (l ContinuousColorLegend) Grobs(x0, y0 float64, theme *Theme) []Grob {
	w, h := l.Width, l.Height
	if w <= 0 {
		w = 200
	}
	if h <= 0 {
		h = 4
	}
	th := *theme
	if l.StartColor != "" && l.EndColor != "" {
		th.ContinuousColors = []string{l.StartColor, l.EndColor}
		if l.MidColor != "" {
			th.ContinuousColors = []string{l.StartColor, l.MidColor, l.EndColor}
		}
	}
	grad := th.Gradient()
	const steps = 64
	var grobs []Grob
	for i := 0; i < steps; i++ {
		c := grad.Map((float64(i) + 0.5) / steps)
		grobs = append(grobs, GrobRect{
			XMin: x0 + w*float64(i)/steps, XMax: x0 + w*float64(i+1)/steps,
			YMin: y0, YMax: y0 + h,
			Fill: c,
		})
	}
	text := String2Color(theme.TextColor)
	for _, t := range []struct {
		s      string
		x, hal float64
	}{
		{l.StartTitle, x0, 0}, {l.MidTitle, x0 + w/2, -0.5}, {l.EndTitle, x0 + w, -1},
	} {
		grobs = append(grobs, GrobText{
			X: t.x, Y: y0 + h + 4, Text: t.s, HAlign: t.hal, VAlign: -1,
			Font: theme.FontName, Size: theme.FontSize, Color: text,
		})
	}
	return grobs
}
