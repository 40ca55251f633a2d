package xyplot

import (
	"iter"
	"math"
	"strconv"

	"github.com/aclements/go-moremath/scale"
	"gonum.org/v1/plot"
)

// Tick is a labeled reference mark. Pos is the pixel position given by
// the scale.
type Tick struct {
	Value Value
	Pos   float64
	Label string
}

// TicksTotalFromSize returns the number of ticks suitable for an axis
// of size pixels.
func TicksTotalFromSize(size float64) int {
	if size <= 300 {
		return 5
	} else if size < 700 {
		return 10
	}
	return 20
}

// Ticks generates at most total ticks covering the domain of s. The
// sequence is computed lazily when iterated; each iteration yields the
// same ticks.
func (s *Scale) Ticks(total int) iter.Seq[Tick] {
	if total < 1 {
		total = 1
	}
	return func(yield func(Tick) bool) {
		var (
			values []Value
			labels []string
		)
		switch s.Type {
		case OrdinalScale, CategoryScale:
			values = s.categoryTicks(total)
		case LogScale:
			values, labels = s.logTicks(total)
		case TimeScale, TimeUTCScale:
			for tk := range s.timeTicks(total) {
				if !yield(tk) {
					return
				}
			}
			return
		default:
			values, labels = s.linearTicks(total)
		}
		for i, v := range values {
			label := ""
			if s.Format != nil {
				label = s.Format(v)
			} else if labels != nil {
				label = labels[i]
			} else {
				label = v.Key()
			}
			if !yield(Tick{Value: v, Pos: s.Map(v), Label: label}) {
				return
			}
		}
	}
}

// TicksFor yields ticks at the given values. Values outside the
// domain are kept; invalid ones are skipped.
func (s *Scale) TicksFor(values []Value) iter.Seq[Tick] {
	return func(yield func(Tick) bool) {
		for _, v := range values {
			if !v.IsValid() {
				continue
			}
			if !yield(Tick{Value: v, Pos: s.Map(v), Label: s.label(v)}) {
				return
			}
		}
	}
}

// label formats a single value without knowledge of the tick spacing.
func (s *Scale) label(v Value) string {
	if s.Format != nil {
		return s.Format(v)
	}
	if s.Type.IsTime() && v.Kind() != Categorical {
		return v.Time().In(s.location()).Format("2006-01-02 15:04:05")
	}
	if v.Kind() == Number {
		return strconv.FormatFloat(v.Float(), 'g', 6, 64)
	}
	return v.Key()
}

func (s *Scale) categoryTicks(total int) []Value {
	cats := s.Categories()
	k := 1
	if len(cats) > total {
		k = (len(cats) + total - 1) / total
	}
	values := make([]Value, 0, len(cats)/k+1)
	for i := 0; i < len(cats); i += k {
		values = append(values, Cat(cats[i]))
	}
	return values
}

func (s *Scale) linearTicks(total int) ([]Value, []string) {
	lo, hi := s.Domain.Min, s.Domain.Max
	if lo > hi {
		lo, hi = hi, lo
	}
	ls := scale.Linear{Min: lo, Max: hi}
	major, _ := ls.Ticks(scale.TickOptions{Max: total})

	// Guard against rounding at the domain ends.
	eps := (hi - lo) * 1e-9
	in := major[:0:0]
	for _, x := range major {
		if x >= lo-eps && x <= hi+eps {
			in = append(in, x)
		}
	}
	if len(in) == 0 {
		in = []float64{lo}
	}

	step := 0.0
	if len(in) > 1 {
		step = in[1] - in[0]
	}
	values := make([]Value, len(in))
	labels := make([]string, len(in))
	for i, x := range in {
		if step > 0 {
			// Snap to the step grid to avoid 0.30000000000000004.
			x = math.Round(x/step) * step
		}
		values[i] = Num(x)
		labels[i] = formatStep(x, step)
	}
	return values, labels
}

// formatStep formats x with as many decimals as the tick step needs.
func formatStep(x, step float64) string {
	if x == 0 {
		return "0"
	}
	prec := 0
	if step > 0 && step < 1 {
		prec = int(math.Ceil(-math.Log10(step) - 1e-9))
	} else if step == 0 {
		return strconv.FormatFloat(x, 'g', 6, 64)
	}
	if math.Abs(x) >= 1e15 {
		return strconv.FormatFloat(x, 'g', 6, 64)
	}
	return strconv.FormatFloat(x, 'f', prec, 64)
}

func (s *Scale) logTicks(total int) ([]Value, []string) {
	lo, hi := s.Domain.Min, s.Domain.Max
	if lo > hi {
		lo, hi = hi, lo
	}
	if !(lo > 0) {
		return nil, nil
	}
	var ticks []plot.Tick
	for _, t := range (plot.LogTicks{}).Ticks(lo, hi) {
		if t.Label == "" || t.Value < lo*(1-1e-9) || t.Value > hi*(1+1e-9) {
			continue
		}
		ticks = append(ticks, t)
	}
	if len(ticks) == 0 {
		// Less than a decade: fall back to linear ticks.
		return s.linearTicks(total)
	}
	k := 1
	if len(ticks) > total {
		k = (len(ticks) + total - 1) / total
	}
	var (
		values []Value
		labels []string
	)
	for i := 0; i < len(ticks); i += k {
		values = append(values, Num(ticks[i].Value))
		labels = append(labels, ticks[i].Label)
	}
	return values, labels
}
