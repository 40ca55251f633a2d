package xyplot

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gonum.org/v1/plot/vg"
)

// String2Float parses s as a float clamped to [low, high]. A trailing
// "%" divides by 100. Unparsable input yields def.
func String2Float(s string, low, high, def float64) float64 {
	factor := 1.0
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "%") {
		s = s[:len(s)-1]
		factor = 100
	}
	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	value /= factor

	if value < low {
		return low
	} else if value > high {
		return high
	}
	return value
}

// SetAlpha returns c with opacity a in [0,1], multiplied onto any
// alpha c already has.
func SetAlpha(c color.Color, a float64) color.Color {
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(float64(n.A)*a + 0.5)
	return n
}

// -------------------------------------------------------------------------
// Points

type PointShape int

const (
	CirclePoint PointShape = iota
	SquarePoint
	DiamondPoint
	StarPoint
)

func String2PointShape(s string) PointShape {
	switch strings.ToLower(s) {
	case "square":
		return SquarePoint
	case "diamond":
		return DiamondPoint
	case "star":
		return StarPoint
	}
	return CirclePoint
}

// -------------------------------------------------------------------------
// Lines

type LineType int

const (
	SolidLine LineType = iota
	BlankLine
	DashedLine
	DottedLine
	DotDashLine
	LongdashLine
)

func String2LineType(s string) LineType {
	switch strings.ToLower(s) {
	case "blank", "none":
		return BlankLine
	case "dashed":
		return DashedLine
	case "dotted":
		return DottedLine
	case "dotdash":
		return DotDashLine
	case "longdash":
		return LongdashLine
	}
	return SolidLine
}

// Dashes returns the dash pattern of lt for a line of the given width.
func (lt LineType) Dashes(width float64) []vg.Length {
	w := vg.Length(width)
	if w < 1 {
		w = 1
	}
	switch lt {
	case DashedLine:
		return []vg.Length{4 * w, 2 * w}
	case DottedLine:
		return []vg.Length{w, 2 * w}
	case DotDashLine:
		return []vg.Length{w, 2 * w, 4 * w, 2 * w}
	case LongdashLine:
		return []vg.Length{8 * w, 2 * w}
	}
	return nil
}

// -------------------------------------------------------------------------
// Colors

var BuiltinColors = map[string]color.RGBA{
	"red":         {0xff, 0x00, 0x00, 0xff},
	"green":       {0x00, 0x80, 0x00, 0xff},
	"blue":        {0x00, 0x00, 0xff, 0xff},
	"cyan":        {0x00, 0xff, 0xff, 0xff},
	"magenta":     {0xff, 0x00, 0xff, 0xff},
	"yellow":      {0xff, 0xff, 0x00, 0xff},
	"orange":      {0xff, 0xa5, 0x00, 0xff},
	"purple":      {0x80, 0x00, 0x80, 0xff},
	"steelblue":   {0x46, 0x82, 0xb4, 0xff},
	"white":       {0xff, 0xff, 0xff, 0xff},
	"gray20":      {0x33, 0x33, 0x33, 0xff},
	"gray40":      {0x66, 0x66, 0x66, 0xff},
	"gray":        {0x80, 0x80, 0x80, 0xff},
	"grey":        {0x80, 0x80, 0x80, 0xff},
	"gray60":      {0x99, 0x99, 0x99, 0xff},
	"gray80":      {0xcc, 0xcc, 0xcc, 0xff},
	"black":       {0x00, 0x00, 0x00, 0xff},
	"transparent": {0x00, 0x00, 0x00, 0x00},
}

// ParseColor parses "#rgb", "#rrggbb", "#rrggbbaa", "rgb(r,g,b)",
// "rgba(r,g,b,a)" and the names in BuiltinColors.
func ParseColor(s string) (color.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if col, ok := BuiltinColors[s]; ok {
		return col, nil
	}
	if strings.HasPrefix(s, "#") {
		h := s[1:]
		if len(h) == 3 {
			h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
		}
		if len(h) != 6 && len(h) != 8 {
			return nil, fmt.Errorf("bad color %q", s)
		}
		if len(h) == 6 {
			h += "ff"
		}
		n, err := strconv.ParseUint(h, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("bad color %q: %w", s, err)
		}
		return color.NRGBA{uint8(n >> 24), uint8(n >> 16), uint8(n >> 8), uint8(n)}, nil
	}
	if strings.HasPrefix(s, "rgb") && strings.HasSuffix(s, ")") {
		open := strings.IndexByte(s, '(')
		parts := strings.Split(s[open+1:len(s)-1], ",")
		if len(parts) != 3 && len(parts) != 4 {
			return nil, fmt.Errorf("bad color %q", s)
		}
		var c [3]uint8
		for i := 0; i < 3; i++ {
			c[i] = uint8(String2Float(parts[i], 0, 255, 0))
		}
		a := 1.0
		if len(parts) == 4 {
			a = String2Float(parts[3], 0, 1, 1)
		}
		return color.NRGBA{c[0], c[1], c[2], uint8(a*255 + 0.5)}, nil
	}
	return nil, fmt.Errorf("unknown color %q", s)
}

// String2Color is ParseColor with a fallback for bad input.
func String2Color(s string) color.Color {
	c, err := ParseColor(s)
	if err != nil {
		return color.RGBA{0xaa, 0x66, 0x77, 0xff}
	}
	return c
}
