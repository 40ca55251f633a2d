package xyplot

import (
	"fmt"
	"strings"
)

// PositionAdjust selects how series sharing a base value are combined.
type PositionAdjust int

const (
	PosIdentity PositionAdjust = iota // draw as given
	PosStack                          // stack onto each other
	PosFill                           // stack and normalize to [0,1]
)

func (p PositionAdjust) String() string {
	switch p {
	case PosStack:
		return "stack"
	case PosFill:
		return "fill"
	}
	return "identity"
}

// ParsePositionAdjust parses "identity", "stack" or "fill".
func ParsePositionAdjust(s string) (PositionAdjust, error) {
	switch strings.ToLower(s) {
	case "", "identity", "none":
		return PosIdentity, nil
	case "stack":
		return PosStack, nil
	case "fill", "normalize":
		return PosFill, nil
	}
	return PosIdentity, fmt.Errorf("unknown position adjustment %q", s)
}

// stackKey identifies one stack: the bars at one base value in one cluster.
type stackKey struct {
	cluster string
	base    Value
}

// runningSum holds the current top of the positive and the bottom of
// the negative part of a stack.
type runningSum struct {
	pos, neg float64
}

// Stack stacks the attribute by (AttrX or AttrY) of the series onto
// each other. Points are keyed by their value of the other attribute
// and the series cluster. The result holds fresh copies of the points
// with by set to the top and by's base attribute set to the bottom of
// the stacked interval; the input series are not modified.
//
// Positive values grow away from zero upward, negative values downward,
// so stacked intervals never overlap. If any series has Stack set, only
// those series take part. Nil and disabled series yield nil.
func Stack(series []*Series, by Attr) [][]Point {
	return stack(series, by, PosStack)
}

// StackNormalized is like Stack but scales every stack to [0,1]
// (positive part) and [-1,0] (negative part).
func StackNormalized(series []*Series, by Attr) [][]Point {
	return stack(series, by, PosFill)
}

func stack(series []*Series, by Attr, adj PositionAdjust) [][]Point {
	out := make([][]Point, len(series))
	someStacked := false
	for _, s := range series {
		if s.Enabled() && s.Stack {
			someStacked = true
			break
		}
	}
	base := by.Other()
	running := make(map[stackKey]runningSum)
	stacked := make([][]bool, len(series))

	for i, s := range series {
		if !s.Enabled() {
			continue
		}
		out[i] = append([]Point(nil), s.Data...)
		if adj == PosIdentity || base == "" || (someStacked && !s.Stack) {
			continue
		}
		stacked[i] = make([]bool, len(s.Data))
		for j := range out[i] {
			p := &out[i][j]
			v, b := p.Get(by), p.Get(base)
			if !v.IsValid() || v.Kind() == Categorical || !b.IsValid() {
				continue
			}
			k := stackKey{cluster: s.Cluster, base: b}
			r := running[k]
			y := v.Float()
			var bottom float64
			if y >= 0 {
				bottom = r.pos
				r.pos += y
			} else {
				bottom = r.neg
				r.neg += y
			}
			running[k] = r
			p.Set(by.Base(), Num(bottom))
			p.Set(by, Num(bottom+y))
			stacked[i][j] = true
		}
	}

	if adj != PosFill {
		return out
	}
	for i, s := range series {
		for j := range stacked[i] {
			if !stacked[i][j] {
				continue
			}
			p := &out[i][j]
			r := running[stackKey{cluster: s.Cluster, base: p.Get(base)}]
			lo, hi := p.Get(by.Base()).Float(), p.Get(by).Float()
			total := r.pos
			if hi < lo {
				total = -r.neg
			}
			if total == 0 {
				continue
			}
			p.Set(by.Base(), Num(lo/total))
			p.Set(by, Num(hi/total))
		}
	}
	return out
}

// ClusterInfo places a bar series within the band of its base value.
type ClusterInfo struct {
	Index int // position of the series' cluster among its kind
	Total int // number of clusters of the same kind
}

// Clusters computes the side-by-side placement of bar series. When
// stacked is true, stacked series sharing a Cluster name (including the
// empty one) share one slot; every other bar series gets its own slot.
// Non-bar series get {0, 1}.
func Clusters(series []*Series, stacked bool) []ClusterInfo {
	someStacked := false
	for _, s := range series {
		someStacked = someStacked || (s.Enabled() && s.Stack)
	}
	info := make([]ClusterInfo, len(series))
	names := make(map[SeriesKind][]string)
	seen := make(map[SeriesKind]StringSet)
	slot := make([]string, len(series))
	for i, s := range series {
		info[i] = ClusterInfo{Index: 0, Total: 1}
		if !s.Enabled() || !s.Kind.IsBar() {
			continue
		}
		name := fmt.Sprintf("#%d", i)
		if stacked && (!someStacked || s.Stack) {
			name = "c:" + s.Cluster
		}
		slot[i] = name
		if seen[s.Kind] == nil {
			seen[s.Kind] = NewStringSet()
		}
		if !seen[s.Kind].Contains(name) {
			seen[s.Kind].Add(name)
			names[s.Kind] = append(names[s.Kind], name)
		}
	}
	for i, s := range series {
		if slot[i] == "" {
			continue
		}
		all := names[s.Kind]
		for j, n := range all {
			if n == slot[i] {
				info[i] = ClusterInfo{Index: j, Total: len(all)}
			}
		}
	}
	return info
}
