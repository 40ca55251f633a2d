// Package sankey lays out and draws Sankey diagrams: nodes in columns
// connected by links whose width is proportional to the flow.
package sankey

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/vdobler/xyplot/internal/logging"
)

var (
	ErrCycle    = errors.New("sankey: links form a cycle")
	ErrBadLink  = errors.New("sankey: link references unknown node")
	ErrBadValue = errors.New("sankey: negative link value")
)

// Align selects the column of nodes which are not fixed by the
// longest path from the sources.
type Align int

const (
	Justify Align = iota // sinks in the last column
	AlignLeft            // every node at its distance from the sources
	AlignRight           // every node at its distance to the sinks
	Center               // sources right before their nearest target
)

var alignNames = []string{"justify", "left", "right", "center"}

func (a Align) String() string {
	if a < 0 || int(a) >= len(alignNames) {
		return fmt.Sprintf("Align(%d)", int(a))
	}
	return alignNames[a]
}

func ParseAlign(s string) (Align, error) {
	if s == "" {
		return Justify, nil
	}
	for i, n := range alignNames {
		if strings.EqualFold(n, s) {
			return Align(i), nil
		}
	}
	return Justify, fmt.Errorf("sankey: unknown alignment %q", s)
}

// Node is a node of the diagram. The layout fields are set by Layout.
type Node struct {
	Name    string
	Color   string  // defaults to the first theme color
	Opacity float64 // 0 means 1

	Value  float64 // max of incoming and outgoing flow
	Column int
	X, Y   float64 // top left corner
	DX, DY float64

	sourceLinks []int // outgoing
	targetLinks []int // incoming
	depth       int
	height      int
}

// Center returns the center of the node's rectangle.
func (n *Node) Center() (x, y float64) { return n.X + n.DX/2, n.Y + n.DY/2 }

func (n *Node) centerY() float64 { return n.Y + n.DY/2 }

// Link is a flow of Value from node Source to node Target (indices).
type Link struct {
	Source, Target int
	Value          float64
	Color          string  // defaults to the second theme color
	Opacity        float64 // 0 means 0.7

	DY     float64 // width of the link
	SY, TY float64 // offsets from the top of the source and target node
}

// Diagram holds nodes and links and the layout parameters. Zero
// parameters take their defaults when Layout runs.
type Diagram struct {
	Nodes []Node
	Links []Link

	Width, Height float64
	NodeWidth     float64 // default 10
	NodePadding   float64 // default 10
	Iterations    int     // relaxation rounds, default 50; negative for none
	Align         Align
	Margin        float64 // default 20
	Labels        bool    // draw node names

	columns int
}

func (d *Diagram) nodeWidth() float64 {
	if d.NodeWidth <= 0 {
		return 10
	}
	return d.NodeWidth
}

func (d *Diagram) nodePadding() float64 {
	if d.NodePadding <= 0 {
		return 10
	}
	return d.NodePadding
}

func (d *Diagram) iterations() int {
	switch {
	case d.Iterations < 0:
		return 0
	case d.Iterations == 0:
		return 50
	}
	return d.Iterations
}

func (d *Diagram) margin() float64 {
	if d.Margin <= 0 {
		return 20
	}
	return d.Margin
}

// Columns returns the number of columns after Layout.
func (d *Diagram) Columns() int { return d.columns }

// Layout positions all nodes and links inside Width × Height.
func (d *Diagram) Layout() error {
	if err := d.computeNodeLinks(); err != nil {
		return err
	}
	d.computeNodeValues()
	if err := d.computeNodeBreadths(); err != nil {
		return err
	}
	d.computeNodeDepths()
	d.computeLinkDepths()
	logging.Debug().
		Add(logging.Component("sankey")).
		Add(logging.Count("nodes", len(d.Nodes))).
		Add(logging.Count("columns", d.columns)).
		Msg("layout done")
	return nil
}

func (d *Diagram) computeNodeLinks() error {
	for i := range d.Nodes {
		d.Nodes[i].sourceLinks = nil
		d.Nodes[i].targetLinks = nil
	}
	for i, l := range d.Links {
		if l.Source < 0 || l.Source >= len(d.Nodes) || l.Target < 0 || l.Target >= len(d.Nodes) {
			return fmt.Errorf("%w: link %d (%d -> %d)", ErrBadLink, i, l.Source, l.Target)
		}
		if l.Value < 0 || math.IsNaN(l.Value) {
			return fmt.Errorf("%w: link %d has value %g", ErrBadValue, i, l.Value)
		}
		if l.Source == l.Target {
			return fmt.Errorf("%w: link %d loops on node %d", ErrCycle, i, l.Source)
		}
		d.Nodes[l.Source].sourceLinks = append(d.Nodes[l.Source].sourceLinks, i)
		d.Nodes[l.Target].targetLinks = append(d.Nodes[l.Target].targetLinks, i)
	}
	return nil
}

func (d *Diagram) computeNodeValues() {
	for i := range d.Nodes {
		n := &d.Nodes[i]
		var in, out float64
		for _, l := range n.sourceLinks {
			out += d.Links[l].Value
		}
		for _, l := range n.targetLinks {
			in += d.Links[l].Value
		}
		n.Value = math.Max(in, out)
	}
}

// walk assigns the longest path length along next to every node. It
// fails on cycles.
func (d *Diagram) walk(next func(n *Node) []int, set func(n *Node, x int)) (int, error) {
	remaining := make([]int, len(d.Nodes))
	for i := range remaining {
		remaining[i] = i
	}
	x := 0
	for len(remaining) > 0 {
		if x > len(d.Nodes) {
			return 0, ErrCycle
		}
		seen := make(map[int]bool)
		var following []int
		for _, i := range remaining {
			set(&d.Nodes[i], x)
			for _, j := range next(&d.Nodes[i]) {
				if !seen[j] {
					seen[j] = true
					following = append(following, j)
				}
			}
		}
		remaining = following
		x++
	}
	return x, nil
}

func (d *Diagram) computeNodeBreadths() error {
	targets := func(n *Node) []int {
		out := make([]int, len(n.sourceLinks))
		for i, l := range n.sourceLinks {
			out[i] = d.Links[l].Target
		}
		return out
	}
	sources := func(n *Node) []int {
		out := make([]int, len(n.targetLinks))
		for i, l := range n.targetLinks {
			out[i] = d.Links[l].Source
		}
		return out
	}
	columns, err := d.walk(targets, func(n *Node, x int) { n.depth = x })
	if err != nil {
		return err
	}
	if _, err := d.walk(sources, func(n *Node, x int) { n.height = x }); err != nil {
		return err
	}
	d.columns = columns

	for i := range d.Nodes {
		n := &d.Nodes[i]
		switch d.Align {
		case AlignLeft:
			n.Column = n.depth
		case AlignRight:
			n.Column = columns - 1 - n.height
		case Center:
			n.Column = n.depth
			if len(n.targetLinks) == 0 && len(n.sourceLinks) > 0 {
				min := columns
				for _, l := range n.sourceLinks {
					min = intMin(min, d.Nodes[d.Links[l].Target].depth)
				}
				n.Column = min - 1
			}
		default:
			n.Column = n.depth
			if len(n.sourceLinks) == 0 {
				n.Column = columns - 1
			}
		}
	}

	kx := 0.0
	if columns > 1 {
		kx = (d.Width - d.nodeWidth()) / float64(columns-1)
	}
	for i := range d.Nodes {
		d.Nodes[i].X = float64(d.Nodes[i].Column) * kx
		d.Nodes[i].DX = d.nodeWidth()
	}
	return nil
}

func intMin(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// byColumn returns the node indices grouped by column.
func (d *Diagram) byColumn() [][]int {
	cols := make([][]int, d.columns)
	for i, n := range d.Nodes {
		if n.Column >= 0 && n.Column < len(cols) {
			cols[n.Column] = append(cols[n.Column], i)
		}
	}
	return cols
}

func (d *Diagram) computeNodeDepths() {
	cols := d.byColumn()
	padding := d.nodePadding()

	ky := math.Inf(1)
	for _, col := range cols {
		sum := 0.0
		for _, i := range col {
			sum += d.Nodes[i].Value
		}
		if sum > 0 {
			ky = math.Min(ky, (d.Height-float64(len(col)-1)*padding)/sum)
		}
	}
	if math.IsInf(ky, 0) || ky < 0 {
		ky = 0
	}
	for _, col := range cols {
		for j, i := range col {
			d.Nodes[i].Y = float64(j)
			d.Nodes[i].DY = d.Nodes[i].Value * ky
		}
	}
	for i := range d.Links {
		d.Links[i].DY = d.Links[i].Value * ky
	}

	d.resolveCollisions(cols)
	alpha := 1.0
	for it := d.iterations(); it > 0; it-- {
		alpha *= 0.99
		d.relaxRightToLeft(cols, alpha)
		d.resolveCollisions(cols)
		d.relaxLeftToRight(cols, alpha)
		d.resolveCollisions(cols)
	}
}

// relaxLeftToRight moves every node with incoming links towards the
// value weighted center of its sources.
func (d *Diagram) relaxLeftToRight(cols [][]int, alpha float64) {
	for _, col := range cols {
		for _, i := range col {
			n := &d.Nodes[i]
			if len(n.targetLinks) == 0 {
				continue
			}
			var sum, weight float64
			for _, l := range n.targetLinks {
				link := d.Links[l]
				sum += d.Nodes[link.Source].centerY() * link.Value
				weight += link.Value
			}
			if weight > 0 {
				n.Y += (sum/weight - n.centerY()) * alpha
			}
		}
	}
}

// relaxRightToLeft moves every node with outgoing links towards the
// value weighted center of its targets.
func (d *Diagram) relaxRightToLeft(cols [][]int, alpha float64) {
	for c := len(cols) - 1; c >= 0; c-- {
		for _, i := range cols[c] {
			n := &d.Nodes[i]
			if len(n.sourceLinks) == 0 {
				continue
			}
			var sum, weight float64
			for _, l := range n.sourceLinks {
				link := d.Links[l]
				sum += d.Nodes[link.Target].centerY() * link.Value
				weight += link.Value
			}
			if weight > 0 {
				n.Y += (sum/weight - n.centerY()) * alpha
			}
		}
	}
}

// resolveCollisions pushes overlapping nodes of a column apart and
// back up if the column overflows the bottom.
func (d *Diagram) resolveCollisions(cols [][]int) {
	padding := d.nodePadding()
	for _, col := range cols {
		if len(col) == 0 {
			continue
		}
		slices.SortStableFunc(col, func(a, b int) int {
			switch ya, yb := d.Nodes[a].Y, d.Nodes[b].Y; {
			case ya < yb:
				return -1
			case ya > yb:
				return 1
			}
			return 0
		})
		y0 := 0.0
		for _, i := range col {
			n := &d.Nodes[i]
			if dy := y0 - n.Y; dy > 0 {
				n.Y += dy
			}
			y0 = n.Y + n.DY + padding
		}
		if dy := y0 - padding - d.Height; dy > 0 {
			last := &d.Nodes[col[len(col)-1]]
			last.Y -= dy
			y0 = last.Y
			for j := len(col) - 2; j >= 0; j-- {
				n := &d.Nodes[col[j]]
				if dy := n.Y + n.DY + padding - y0; dy > 0 {
					n.Y -= dy
				}
				y0 = n.Y
			}
		}
	}
}

// computeLinkDepths stacks the links at each node ordered by the
// position of the node at their other end.
func (d *Diagram) computeLinkDepths() {
	byY := func(end func(Link) int) func(a, b int) int {
		return func(a, b int) int {
			ya, yb := d.Nodes[end(d.Links[a])].Y, d.Nodes[end(d.Links[b])].Y
			switch {
			case ya < yb:
				return -1
			case ya > yb:
				return 1
			}
			return 0
		}
	}
	target := func(l Link) int { return l.Target }
	source := func(l Link) int { return l.Source }
	for i := range d.Nodes {
		n := &d.Nodes[i]
		slices.SortStableFunc(n.sourceLinks, byY(target))
		slices.SortStableFunc(n.targetLinks, byY(source))
		sy := 0.0
		for _, l := range n.sourceLinks {
			d.Links[l].SY = sy
			sy += d.Links[l].DY
		}
		ty := 0.0
		for _, l := range n.targetLinks {
			d.Links[l].TY = ty
			ty += d.Links[l].DY
		}
	}
}

// NodeAt returns the node whose center is closest to (x, y), given in
// diagram coordinates. Points further than Margin outside the diagram
// hit nothing.
func (d *Diagram) NodeAt(x, y float64) (int, bool) {
	m := d.margin()
	if x < -m || y < -m || x > d.Width+m || y > d.Height+m {
		return -1, false
	}
	best, dist := -1, math.Inf(1)
	for i := range d.Nodes {
		cx, cy := d.Nodes[i].Center()
		if dd := math.Hypot(cx-x, cy-y); dd < dist {
			best, dist = i, dd
		}
	}
	return best, best >= 0
}
