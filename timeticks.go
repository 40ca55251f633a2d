package xyplot

import (
	"iter"
	"time"

	"github.com/aclements/go-moremath/scale"
)

type timeUnit int

const (
	unitSecond timeUnit = iota
	unitMinute
	unitHour
	unitDay
	unitWeek
	unitMonth
	unitYear
)

// timeInterval is one level of calendar tick spacing.
type timeInterval struct {
	unit   timeUnit
	step   int
	approx float64 // seconds
}

const (
	second = 1.0
	minute = 60 * second
	hour   = 60 * minute
	day    = 24 * hour
	year   = 365 * day
)

var timeIntervals = []timeInterval{
	{unitSecond, 1, second},
	{unitSecond, 5, 5 * second},
	{unitSecond, 15, 15 * second},
	{unitSecond, 30, 30 * second},
	{unitMinute, 1, minute},
	{unitMinute, 5, 5 * minute},
	{unitMinute, 15, 15 * minute},
	{unitMinute, 30, 30 * minute},
	{unitHour, 1, hour},
	{unitHour, 3, 3 * hour},
	{unitHour, 6, 6 * hour},
	{unitHour, 12, 12 * hour},
	{unitDay, 1, day},
	{unitDay, 2, 2 * day},
	{unitWeek, 1, 7 * day},
	{unitMonth, 1, 30 * day},
	{unitMonth, 3, 91 * day},
	{unitYear, 1, year},
	{unitYear, 2, 2 * year},
	{unitYear, 5, 5 * year},
	{unitYear, 10, 10 * year},
	{unitYear, 20, 20 * year},
	{unitYear, 50, 50 * year},
	{unitYear, 100, 100 * year},
	{unitYear, 250, 250 * year},
	{unitYear, 500, 500 * year},
	{unitYear, 1000, 1000 * year},
}

func (s *Scale) location() *time.Location {
	if s.Location != nil {
		return s.Location
	}
	if s.Type == TimeUTCScale {
		return time.UTC
	}
	return time.Local
}

// floor truncates t to the start of its interval in loc.
func (ti timeInterval) floor(t time.Time) time.Time {
	y, mo, d := t.Date()
	h, mi, sec := t.Clock()
	loc := t.Location()
	switch ti.unit {
	case unitSecond:
		return time.Date(y, mo, d, h, mi, sec-sec%ti.step, 0, loc)
	case unitMinute:
		return time.Date(y, mo, d, h, mi-mi%ti.step, 0, 0, loc)
	case unitHour:
		return time.Date(y, mo, d, h-h%ti.step, 0, 0, 0, loc)
	case unitDay:
		return time.Date(y, mo, d-(d-1)%ti.step, 0, 0, 0, 0, loc)
	case unitWeek:
		// Weeks start on Sunday.
		return time.Date(y, mo, d-int(t.Weekday()), 0, 0, 0, 0, loc)
	case unitMonth:
		m := int(mo) - 1
		return time.Date(y, time.Month(m-m%ti.step+1), 1, 0, 0, 0, 0, loc)
	}
	return time.Date(y-y%ti.step, time.January, 1, 0, 0, 0, 0, loc)
}

func (ti timeInterval) next(t time.Time) time.Time {
	switch ti.unit {
	case unitSecond:
		return t.Add(time.Duration(ti.step) * time.Second)
	case unitMinute:
		return t.Add(time.Duration(ti.step) * time.Minute)
	case unitHour:
		return t.Add(time.Duration(ti.step) * time.Hour)
	case unitDay:
		// Restart at the first of the month like calendar day ticks do.
		n := t.AddDate(0, 0, ti.step)
		if n.Month() != t.Month() && ti.step > 1 {
			y, m, _ := n.Date()
			n = time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
		}
		return n
	case unitWeek:
		return t.AddDate(0, 0, 7*ti.step)
	case unitMonth:
		return t.AddDate(0, ti.step, 0)
	}
	return t.AddDate(ti.step, 0, 0)
}

// instants enumerates the interval boundaries within [min, max].
func (ti timeInterval) instants(min, max time.Time) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		t := ti.floor(min)
		for !t.After(max) {
			if !t.Before(min) {
				if !yield(t) {
					return
				}
			}
			n := ti.next(t)
			if !n.After(t) {
				return
			}
			t = n
		}
	}
}

// timeTicker implements scale.Ticker over the calendar intervals for
// the domain [min, max].
type timeTicker struct {
	min, max time.Time
}

func (tt timeTicker) CountTicks(level int) int {
	if level >= len(timeIntervals) {
		return 0
	}
	span := tt.max.Sub(tt.min).Seconds()
	return int(span/timeIntervals[level].approx) + 1
}

func (tt timeTicker) TicksAtLevel(level int) interface{} {
	var out []float64
	for t := range timeIntervals[level].instants(tt.min, tt.max) {
		out = append(out, Time(t).Float())
	}
	return out
}

// timeLevel finds the finest calendar interval producing at most total
// ticks for the domain [min, max].
func timeLevel(min, max time.Time, total int) int {
	tt := timeTicker{min: min, max: max}
	o := scale.TickOptions{Max: total, MinLevel: 0, MaxLevel: len(timeIntervals) - 1}
	level, ok := o.FindLevel(tt, len(timeIntervals)/2)
	if !ok {
		return len(timeIntervals) - 1
	}
	// The estimate may be off by one at uneven calendar units.
	for level < len(timeIntervals)-1 && len(tt.TicksAtLevel(level).([]float64)) > total {
		level++
	}
	return level
}

func (s *Scale) timeTicks(total int) iter.Seq[Tick] {
	return func(yield func(Tick) bool) {
		loc := s.location()
		lo, hi := s.Domain.Min, s.Domain.Max
		if lo > hi {
			lo, hi = hi, lo
		}
		min, max := Millis(lo).Time().In(loc), Millis(hi).Time().In(loc)
		ti := timeIntervals[timeLevel(min, max, total)]
		for t := range ti.instants(min, max) {
			v := Time(t)
			label := ""
			if s.Format != nil {
				label = s.Format(v)
			} else {
				label = timeLabel(t, ti)
			}
			if !yield(Tick{Value: v, Pos: s.Map(v), Label: label}) {
				return
			}
		}
	}
}

// timeLabel uses the coarsest format that still distinguishes t, e.g.
// the year at the first of January even on a monthly axis.
func timeLabel(t time.Time, ti timeInterval) string {
	switch {
	case t.Second() != 0:
		return t.Format(":05")
	case t.Minute() != 0 || t.Hour() != 0:
		return t.Format("15:04")
	case t.Day() != 1:
		if ti.unit <= unitWeek {
			return t.Format("Mon 02")
		}
		return t.Format("Jan 02")
	case t.Month() != time.January:
		return t.Format("January")
	}
	return t.Format("2006")
}
