package xyplot

import (
	"math"

	"github.com/aclements/go-moremath/scale"
	"github.com/aclements/go-moremath/stats"
)

// Domain is the range of data values a scale covers: the interval
// [Min, Max] for continuous scales or the ordered set Categories for
// discrete scales.
type Domain struct {
	Min, Max   float64
	Categories []string

	// Step is the smallest distance between neighbouring base values
	// of bar series in data units, NaN if unknown.
	Step float64
}

// EmptyDomain returns a continuous domain without any values.
func EmptyDomain() Domain {
	return Domain{Min: math.NaN(), Max: math.NaN(), Step: math.NaN()}
}

// IsDiscrete reports whether d is a set of categories.
func (d Domain) IsDiscrete() bool { return d.Categories != nil }

// IsEmpty reports whether no value has been included so far.
func (d Domain) IsEmpty() bool {
	if d.IsDiscrete() {
		return len(d.Categories) == 0
	}
	return math.IsNaN(d.Min) || math.IsNaN(d.Max)
}

// Include widens d to contain x. NaN and infinite values are ignored.
func (d *Domain) Include(x float64) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return
	}
	if math.IsNaN(d.Min) || x < d.Min {
		d.Min = x
	}
	if math.IsNaN(d.Max) || x > d.Max {
		d.Max = x
	}
}

// Span is Max-Min.
func (d Domain) Span() float64 { return d.Max - d.Min }

// Pad widens d by fraction of its span on both sides.
func (d *Domain) Pad(fraction float64) {
	if d.IsDiscrete() || d.IsEmpty() {
		return
	}
	p := d.Span() * fraction
	d.Min -= p
	d.Max += p
}

// Nice extends d outward to multiples of the tick step chosen for at
// most ticks ticks.
func (d *Domain) Nice(ticks int) {
	if d.IsDiscrete() || d.IsEmpty() || d.Span() <= 0 || ticks < 2 {
		return
	}
	ls := scale.Linear{Min: d.Min, Max: d.Max}
	major, _ := ls.Ticks(scale.TickOptions{Max: ticks})
	if len(major) < 2 {
		return
	}
	step := major[1] - major[0]
	d.Min = math.Floor(d.Min/step) * step
	d.Max = math.Ceil(d.Max/step) * step
}

// widen makes degenerate continuous domains usable.
func (d *Domain) widen(t ScaleType) {
	if d.IsDiscrete() {
		return
	}
	switch {
	case d.IsEmpty():
		d.Min, d.Max = 0, 1
		if t == LogScale {
			d.Min, d.Max = 1, 10
		}
	case d.Min == d.Max:
		v := d.Min
		switch t {
		case LogScale:
			d.Min, d.Max = v/10, v*10
		case TimeScale, TimeUTCScale:
			d.Min, d.Max = v-3600e3, v+3600e3
		default:
			d.Min, d.Max = v-1, v+1
		}
	}
}

// ContinuousDomain returns the bounds of the finite values in xs.
func ContinuousDomain(xs []float64) (min, max float64, ok bool) {
	finite := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			finite = append(finite, x)
		}
	}
	if len(finite) == 0 {
		return math.NaN(), math.NaN(), false
	}
	min, max = stats.Bounds(finite)
	return min, max, true
}

// ComputeDomain derives the domain of attribute attr (AttrX or AttrY)
// for a scale of type t from all enabled series. The base attribute
// (x0 or y0) contributes as well.
//
// Bar series extend their base axis by half the smallest distance
// between distinct base values so the outermost bars fit. The value
// axis of bar, rect and area series always contains zero. On log
// scales non-positive values are dropped.
func ComputeDomain(attr Attr, t ScaleType, series []*Series) Domain {
	base := attr.Base()

	if t.IsDiscrete() {
		pool := NewCategoryPool()
		for _, s := range series {
			if !s.Enabled() {
				continue
			}
			for _, p := range s.Data {
				for _, a := range []Attr{attr, base} {
					if v := p.Get(a); v.IsValid() {
						pool.Add(v.Key())
					}
				}
			}
		}
		return Domain{Categories: pool.Strings(), Step: 1}
	}

	var values []float64
	add := func(x float64) {
		if t == LogScale && !(x > 0) {
			return
		}
		values = append(values, x)
	}
	barBase := NewFloatSet()
	hasBars, includeZero := false, false
	for _, s := range series {
		if !s.Enabled() {
			continue
		}
		onBase := s.Kind.IsBar() && s.Kind.ValueAttr().Other() == attr
		if s.Kind.ValueAttr() == attr && len(s.Data) > 0 {
			includeZero = true
		}
		hasBars = hasBars || onBase
		for _, p := range s.Data {
			if v := p.Get(attr); v.IsValid() && v.Kind() != Categorical {
				add(v.Float())
				if onBase {
					barBase.Add(v.Float())
				}
			}
			if v := p.Get(base); v.IsValid() && v.Kind() != Categorical {
				add(v.Float())
			}
		}
	}
	if includeZero {
		add(0)
	}

	d := EmptyDomain()
	if min, max, ok := ContinuousDomain(values); ok {
		d.Min, d.Max = min, max
	}
	if hasBars {
		if step := barStep(barBase); !math.IsNaN(step) {
			d.Step = step
			d.Min -= step / 2
			d.Max += step / 2
		}
	}
	d.widen(t)
	return d
}

// barStep is the smallest distance between bar positions. A single bar
// gets the full width of a unit domain; no bars yield NaN.
func barStep(positions FloatSet) float64 {
	if gap := minGap(positions); !math.IsNaN(gap) {
		return gap
	}
	if len(positions) == 1 {
		return 1
	}
	return math.NaN()
}

// BarStep returns the spacing of the bars positioned along attr, the
// Step that ComputeDomain would record, or NaN without bars.
func BarStep(attr Attr, t ScaleType, series []*Series) float64 {
	positions := NewFloatSet()
	for _, s := range series {
		if !s.Enabled() || !s.Kind.IsBar() || s.Kind.ValueAttr().Other() != attr {
			continue
		}
		for _, p := range s.Data {
			v := p.Get(attr)
			if !v.IsValid() || v.Kind() == Categorical || (t == LogScale && !(v.Float() > 0)) {
				continue
			}
			positions.Add(v.Float())
		}
	}
	return barStep(positions)
}

// ExplicitDomain converts user supplied domain values: the categories
// for discrete scales, the first and last value otherwise.
func ExplicitDomain(t ScaleType, values []Value) (Domain, bool) {
	if len(values) == 0 {
		return Domain{}, false
	}
	if t.IsDiscrete() {
		pool := NewCategoryPool()
		for _, v := range values {
			if v.IsValid() {
				pool.Add(v.Key())
			}
		}
		return Domain{Categories: pool.Strings(), Step: 1}, true
	}
	d := EmptyDomain()
	first, last := values[0], values[len(values)-1]
	if !first.IsValid() || !last.IsValid() || first.Kind() == Categorical || last.Kind() == Categorical {
		return Domain{}, false
	}
	d.Min, d.Max = first.Float(), last.Float()
	if d.Min > d.Max {
		d.Min, d.Max = d.Max, d.Min
	}
	d.widen(t)
	return d, true
}
