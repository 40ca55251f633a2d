package xyplot

import (
	"fmt"
	"strings"
)

// Margin is the space between the chart border and the plotting area.
type Margin struct {
	Left, Right, Top, Bottom float64
}

var DefaultMargin = Margin{Left: 40, Right: 10, Top: 10, Bottom: 40}

// UniformMargin returns a margin of m on every side.
func UniformMargin(m float64) Margin { return Margin{m, m, m, m} }

// InnerSize returns the size of the plotting area of a width × height
// chart. Negative sizes are clamped to 0.
func InnerSize(width, height float64, m Margin) (w, h float64) {
	w = width - m.Left - m.Right
	h = height - m.Top - m.Bottom
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return w, h
}

// Position is the side of the plotting area an axis is attached to.
type Position int

const (
	DefaultPosition Position = iota // bottom for x, left for y
	Bottom
	Top
	Left
	Right
)

func (p Position) String() string {
	switch p {
	case Bottom:
		return "bottom"
	case Top:
		return "top"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "default"
}

func ParsePosition(s string) (Position, error) {
	switch strings.ToLower(s) {
	case "", "default":
		return DefaultPosition, nil
	case "bottom":
		return Bottom, nil
	case "top":
		return Top, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return DefaultPosition, fmt.Errorf("unknown axis position %q", s)
}

// IsVertical reports whether an axis at p runs top to bottom.
func (p Position) IsVertical() bool { return p == Left || p == Right }

// Placement is the box an axis is drawn into, in chart pixels, and the
// number of ticks it gets by default.
type Placement struct {
	Top, Left, Width, Height float64
	TickTotal                int
}

// AxisPlacement returns the default placement of an axis at pos for a
// plotting area of innerWidth × innerHeight surrounded by m.
func AxisPlacement(pos Position, innerWidth, innerHeight float64, m Margin) Placement {
	switch pos {
	case Top:
		return Placement{
			Top: 0, Left: m.Left,
			Width: innerWidth, Height: m.Top,
			TickTotal: TicksTotalFromSize(innerWidth),
		}
	case Left:
		return Placement{
			Top: m.Top, Left: 0,
			Width: m.Left, Height: innerHeight,
			TickTotal: TicksTotalFromSize(innerHeight),
		}
	case Right:
		return Placement{
			Top: m.Top, Left: m.Left + innerWidth,
			Width: m.Right, Height: innerHeight,
			TickTotal: TicksTotalFromSize(innerHeight),
		}
	}
	return Placement{
		Top: innerHeight + m.Top, Left: m.Left,
		Width: innerWidth, Height: m.Bottom,
		TickTotal: TicksTotalFromSize(innerWidth),
	}
}
