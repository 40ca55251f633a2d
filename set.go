package xyplot

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"
)

// Set is a set of ordered values.
type Set[T cmp.Ordered] map[T]struct{}

// FloatSet collects distinct numerical values, e.g. bar positions.
type FloatSet = Set[float64]

// StringSet collects distinct names, e.g. cluster names.
type StringSet = Set[string]

// NewSet returns a set containing init.
func NewSet[T cmp.Ordered](init ...T) Set[T] {
	s := make(Set[T], len(init))
	for _, x := range init {
		s[x] = struct{}{}
	}
	return s
}

func NewFloatSet(init ...float64) FloatSet { return NewSet(init...) }
func NewStringSet(init ...string) StringSet { return NewSet(init...) }

func (s Set[T]) String() string {
	parts := make([]string, 0, len(s))
	for _, x := range s.Elements() {
		parts = append(parts, fmt.Sprint(x))
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Add adds x to s.
func (s Set[T]) Add(x T) { s[x] = struct{}{} }

// Contains reports membership of x in s.
func (s Set[T]) Contains(x T) bool {
	_, ok := s[x]
	return ok
}

// Elements returns the members of s in ascending order.
func (s Set[T]) Elements() []T {
	elems := make([]T, 0, len(s))
	for x := range s {
		elems = append(elems, x)
	}
	slices.Sort(elems)
	return elems
}

// minGap returns the smallest distance between two distinct members
// of s, or NaN if s has fewer than two members.
func minGap(s FloatSet) float64 {
	elems := s.Elements()
	gap := math.NaN()
	for i := 1; i < len(elems); i++ {
		if d := elems[i] - elems[i-1]; math.IsNaN(gap) || d < gap {
			gap = d
		}
	}
	return gap
}
