package xyplot

import (
	"fmt"
	"image/color"
	"math"
	"strings"
	"time"

	"github.com/aclements/go-gg/palette"
	"github.com/aclements/go-moremath/scale"
)

// ScaleType selects how a Scale maps data values to pixels.
type ScaleType int

const (
	LinearScale ScaleType = iota
	LogScale
	TimeScale
	TimeUTCScale
	OrdinalScale
	CategoryScale
	LiteralScale
)

var scaleTypeNames = []string{"linear", "log", "time", "time-utc", "ordinal", "category", "literal"}

func (t ScaleType) String() string {
	if t < 0 || int(t) >= len(scaleTypeNames) {
		return fmt.Sprintf("ScaleType(%d)", int(t))
	}
	return scaleTypeNames[t]
}

// ParseScaleType parses names like "linear", "time-utc" or "timeUtc".
// The empty string is linear.
func ParseScaleType(s string) (ScaleType, error) {
	if s == "" {
		return LinearScale, nil
	}
	n := strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(s))
	for i, name := range scaleTypeNames {
		if strings.ReplaceAll(name, "-", "") == n {
			return ScaleType(i), nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownScale, s)
}

// IsDiscrete reports whether t works on categories.
func (t ScaleType) IsDiscrete() bool { return t == OrdinalScale || t == CategoryScale }

// IsTime reports whether t works on temporal values.
func (t ScaleType) IsTime() bool { return t == TimeScale || t == TimeUTCScale }

// Scale maps values from its Domain onto the pixel interval
// [RangeMin, RangeMax]. RangeMin may be larger than RangeMax, e.g.
// for y axes where pixels grow downward.
//
// A Scale is immutable after construction and may be shared.
type Scale struct {
	Type     ScaleType
	Domain   Domain
	RangeMin float64
	RangeMax float64

	// Format formats tick labels. Nil selects a default per type.
	Format func(Value) string

	// Location for time labels; nil means time.Local for TimeScale
	// and UTC for TimeUTCScale.
	Location *time.Location

	cats *CategoryPool
	lin  scale.Linear
}

// NewScale constructs a scale of type t over domain d mapping to [r0, r1].
func NewScale(t ScaleType, d Domain, r0, r1 float64) (*Scale, error) {
	if t < LinearScale || t > LiteralScale {
		return nil, fmt.Errorf("%w %d", ErrUnknownScale, int(t))
	}
	s := &Scale{Type: t, Domain: d, RangeMin: r0, RangeMax: r1}
	if t.IsDiscrete() {
		s.cats = NewCategoryPool(d.Categories...)
		return s, nil
	}
	if d.IsDiscrete() {
		return nil, fmt.Errorf("%s scale over categorical domain: %w", t, ErrBadData)
	}
	s.Domain.widen(t)
	if t == LogScale {
		if s.Domain.Min <= 0 {
			return nil, fmt.Errorf("%w: log scale domain [%g,%g] must be positive",
				ErrBadData, s.Domain.Min, s.Domain.Max)
		}
		s.lin = scale.Linear{Min: math.Log10(s.Domain.Min), Max: math.Log10(s.Domain.Max)}
	} else {
		s.lin = scale.Linear{Min: s.Domain.Min, Max: s.Domain.Max}
	}
	return s, nil
}

func (s *Scale) String() string {
	if s.Type.IsDiscrete() {
		return fmt.Sprintf("%s %v => [%g,%g]", s.Type, s.Domain.Categories, s.RangeMin, s.RangeMax)
	}
	return fmt.Sprintf("%s [%g,%g] => [%g,%g]", s.Type, s.Domain.Min, s.Domain.Max, s.RangeMin, s.RangeMax)
}

// step is the width of one band of a discrete scale.
func (s *Scale) step() float64 {
	n := s.cats.Len()
	if n == 0 {
		return 0
	}
	return (s.RangeMax - s.RangeMin) / float64(n)
}

// Map returns the pixel position of v. Values outside a continuous
// domain extrapolate. Unknown categories, non-positive values on a
// log scale and invalid values map to NaN.
func (s *Scale) Map(v Value) float64 {
	if !v.IsValid() {
		return math.NaN()
	}
	switch s.Type {
	case OrdinalScale:
		i := s.cats.Find(v.Key())
		if i < 0 {
			return math.NaN()
		}
		// Point scale with padding 0.5: centers of n equal bands.
		return s.RangeMin + s.step()*(float64(i)+0.5)
	case CategoryScale:
		i := s.cats.Find(v.Key())
		if i < 0 {
			return math.NaN()
		}
		return float64(i)
	}
	if v.Kind() == Categorical {
		return math.NaN()
	}
	return s.MapFloat(v.Float())
}

// MapFloat maps a numerical (or millisecond) value of a continuous scale.
func (s *Scale) MapFloat(x float64) float64 {
	switch s.Type {
	case LiteralScale:
		return x
	case LogScale:
		if !(x > 0) {
			return math.NaN()
		}
		x = math.Log10(x)
	case OrdinalScale, CategoryScale:
		return math.NaN()
	}
	u := s.lin.Map(x)
	return s.RangeMin + u*(s.RangeMax-s.RangeMin)
}

// Invert maps the pixel position px back to the domain. Discrete
// scales return the category whose band contains px, clamped to the
// first and last category.
func (s *Scale) Invert(px float64) Value {
	switch s.Type {
	case LiteralScale:
		return Num(px)
	case CategoryScale:
		i := int(math.Round(px))
		if i < 0 || i >= s.cats.Len() {
			return Value{}
		}
		return Cat(s.cats.Get(i))
	case OrdinalScale:
		n, step := s.cats.Len(), s.step()
		if n == 0 || step == 0 {
			return Value{}
		}
		i := int(math.Floor((px - s.RangeMin) / step))
		if i < 0 {
			i = 0
		} else if i >= n {
			i = n - 1
		}
		return Cat(s.cats.Get(i))
	}
	if s.RangeMax == s.RangeMin {
		return Value{}
	}
	u := (px - s.RangeMin) / (s.RangeMax - s.RangeMin)
	x := s.lin.Min + u*(s.lin.Max-s.lin.Min)
	switch s.Type {
	case LogScale:
		return Num(math.Pow(10, x))
	case TimeScale, TimeUTCScale:
		return Millis(x)
	}
	return Num(x)
}

// Distance is the pixel width available to one bar: the band width of
// an ordinal scale or the pixel distance of the smallest step between
// bar positions on a continuous scale. It is 0 if unknown.
func (s *Scale) Distance() float64 {
	switch s.Type {
	case OrdinalScale:
		return math.Abs(s.step())
	case CategoryScale, LiteralScale:
		return 1
	}
	step := s.Domain.Step
	if math.IsNaN(step) || step <= 0 {
		return 0
	}
	// On log scales this is the width of the first step.
	return math.Abs(s.MapFloat(s.Domain.Min+step) - s.MapFloat(s.Domain.Min))
}

// Categories returns the ordered categories of a discrete scale.
func (s *Scale) Categories() []string {
	if s.cats == nil {
		return nil
	}
	return s.cats.Strings()
}

// ColorScale maps values to colors: categories index into Palette,
// continuous values are normalized over Domain and fed into Gradient.
type ColorScale struct {
	Type     ScaleType
	Domain   Domain
	Palette  []color.Color
	Gradient palette.Continuous

	cats *CategoryPool
}

// NewColorScale builds a color scale whose palettes come from theme
// (DefaultTheme if nil).
func NewColorScale(t ScaleType, d Domain, theme *Theme) *ColorScale {
	if theme == nil {
		theme = &DefaultTheme
	}
	cs := &ColorScale{Type: t, Domain: d}
	if t.IsDiscrete() || d.IsDiscrete() {
		cs.cats = NewCategoryPool(d.Categories...)
		for _, c := range theme.DiscreteColors {
			cs.Palette = append(cs.Palette, String2Color(c))
		}
	} else {
		cs.Gradient = theme.Gradient()
	}
	return cs
}

// Color returns the color for v. Unknown values get the first palette
// color or the start of the gradient.
func (cs *ColorScale) Color(v Value) color.Color {
	if cs.cats != nil {
		if len(cs.Palette) == 0 {
			return BuiltinColors["black"]
		}
		i := cs.cats.Find(v.Key())
		if i < 0 {
			i = 0
		}
		return cs.Palette[i%len(cs.Palette)]
	}
	x := v.Float()
	if cs.Type == LiteralScale {
		return String2Color(v.Key())
	}
	span := cs.Domain.Max - cs.Domain.Min
	u := 0.0
	if span > 0 && !math.IsNaN(x) {
		u = (x - cs.Domain.Min) / span
	}
	u = math.Max(0, math.Min(1, u))
	return cs.Gradient.Map(u)
}
