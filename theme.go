package xyplot

import (
	"image/color"
	"math"

	"github.com/aclements/go-gg/palette"
)

// Theme collects the default styles of a chart.
type Theme struct {
	DiscreteColors   []string // series colors by index
	ContinuousColors []string // gradient stops, "viridis" selects palette.Viridis

	FontName  string
	FontSize  float64
	TextColor string

	AxisColor string
	GridColor string

	LineWidth   float64
	MarkSize    float64 // radius
	BarWidth    float64 // fraction of the band
	AreaOpacity float64

	DisabledOpacity float64 // legend items of disabled series
}

var DefaultTheme = Theme{
	DiscreteColors:   []string{"#12939A", "#79C7E3", "#1A3177", "#FF9833", "#EF5D28"},
	ContinuousColors: []string{"#EF5D28", "#FF9833"},

	FontName:  "Helvetica",
	FontSize:  11,
	TextColor: "#6b6b76",

	AxisColor: "#e6e6e9",
	GridColor: "#e6e6e9",

	LineWidth:   2,
	MarkSize:    5,
	BarWidth:    0.85,
	AreaOpacity: 1,

	DisabledOpacity: 0.2,
}

// SeriesColor returns the palette color for the i'th series.
func (t *Theme) SeriesColor(i int) string {
	if len(t.DiscreteColors) == 0 {
		return "black"
	}
	if i < 0 {
		i = -i
	}
	return t.DiscreteColors[i%len(t.DiscreteColors)]
}

// Gradient returns the continuous palette of t.
func (t *Theme) Gradient() palette.Continuous {
	if len(t.ContinuousColors) == 1 && t.ContinuousColors[0] == "viridis" {
		return palette.Viridis
	}
	var g gradient
	for _, s := range t.ContinuousColors {
		r, gg, b, a := String2Color(s).RGBA()
		g = append(g, color.RGBA{uint8(r >> 8), uint8(gg >> 8), uint8(b >> 8), uint8(a >> 8)})
	}
	if len(g) == 0 {
		return palette.Viridis
	}
	if len(g) == 1 {
		g = append(g, g[0])
	}
	return g
}

// gradient interpolates linearly between evenly spaced colors.
type gradient []color.RGBA

func (g gradient) Map(x float64) color.Color {
	if math.IsNaN(x) || x <= 0 {
		return g[0]
	}
	if x >= 1 {
		return g[len(g)-1]
	}
	ip, fr := math.Modf(x * float64(len(g)-1))
	a, b := g[int(ip)], g[int(ip)+1]
	mix := func(p, q uint8) uint8 {
		return uint8(math.Round(float64(p) + fr*(float64(q)-float64(p))))
	}
	return color.RGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), mix(a.A, b.A)}
}

// WithDefaults returns a copy of t with zero fields taken from
// DefaultTheme. A nil t yields a copy of DefaultTheme.
func (t *Theme) WithDefaults() *Theme {
	if t == nil {
		d := DefaultTheme
		return &d
	}
	c := *t
	d := DefaultTheme
	if len(c.DiscreteColors) == 0 {
		c.DiscreteColors = d.DiscreteColors
	}
	if len(c.ContinuousColors) == 0 {
		c.ContinuousColors = d.ContinuousColors
	}
	if c.FontName == "" {
		c.FontName = d.FontName
	}
	if c.FontSize == 0 {
		c.FontSize = d.FontSize
	}
	if c.TextColor == "" {
		c.TextColor = d.TextColor
	}
	if c.AxisColor == "" {
		c.AxisColor = d.AxisColor
	}
	if c.GridColor == "" {
		c.GridColor = d.GridColor
	}
	if c.LineWidth == 0 {
		c.LineWidth = d.LineWidth
	}
	if c.MarkSize == 0 {
		c.MarkSize = d.MarkSize
	}
	if c.BarWidth == 0 {
		c.BarWidth = d.BarWidth
	}
	if c.AreaOpacity == 0 {
		c.AreaOpacity = d.AreaOpacity
	}
	if c.DisabledOpacity == 0 {
		c.DisabledOpacity = d.DisabledOpacity
	}
	return &c
}
