// Package xyplot draws declarative x/y charts: line, mark, bar, area
// and rect series with axes, grid lines, legends and a crosshair.
//
//
// Data
//
// A Series holds Points. Each coordinate is a Value: a number, a time
// (stored as milliseconds since the epoch) or a category. PointsFrom
// loads slices of structs or of maps:
//      type Measurement struct {
//          Age    int
//          Weight float64 `xyplot:"y"`
//      }
//      func (m Measurement) X() int { return m.Age }
// Methods without parameters provide calculated values.
//
//
// Scales and Ticks
//
// ComputeDomain trains the domain of a scale on all enabled series;
// NewScale maps it onto a pixel range. Linear, log, time, ordinal,
// category and literal scales are available. Scale.Ticks generates
// readable ticks lazily.
//
//
// Stacking
//
// Stack accumulates series sharing a base value so that bars and areas
// don't overlap; Clusters places bar series side by side.
//
//
// Rendering
//
// XYPlot.Prepare trains the scales and turns every series into grobs
// which Draw puts onto a gonum vg canvas. WriteSVG writes SVG.
package xyplot
