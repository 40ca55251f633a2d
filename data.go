package xyplot

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Attr names a positional attribute of a Point.
type Attr string

const (
	AttrX  Attr = "x"
	AttrY  Attr = "y"
	AttrX0 Attr = "x0"
	AttrY0 Attr = "y0"
)

// Base returns the base attribute of a: x0 for x and y0 for y.
func (a Attr) Base() Attr {
	switch a {
	case AttrX, AttrX0:
		return AttrX0
	case AttrY, AttrY0:
		return AttrY0
	}
	return ""
}

// Other returns the orthogonal attribute: y for x and x for y.
func (a Attr) Other() Attr {
	switch a {
	case AttrX, AttrX0:
		return AttrY
	case AttrY, AttrY0:
		return AttrX
	}
	return ""
}

// Point is one observation of a series.
type Point struct {
	X, Y   Value
	X0, Y0 Value // base values; invalid means "from zero"

	Color   string
	Size    float64
	Opacity float64
}

// XY is a shorthand for a point with numerical x and y.
func XY(x, y float64) Point { return Point{X: Num(x), Y: Num(y)} }

// Get returns the positional attribute a of p.
func (p Point) Get(a Attr) Value {
	switch a {
	case AttrX:
		return p.X
	case AttrY:
		return p.Y
	case AttrX0:
		return p.X0
	case AttrY0:
		return p.Y0
	}
	return Value{}
}

// Set sets the positional attribute a of p.
func (p *Point) Set(a Attr, v Value) {
	switch a {
	case AttrX:
		p.X = v
	case AttrY:
		p.Y = v
	case AttrX0:
		p.X0 = v
	case AttrY0:
		p.Y0 = v
	}
}

// SeriesKind determines how a series is drawn and how it contributes
// to the domains of the scales.
type SeriesKind int

const (
	LineSeries SeriesKind = iota
	MarkSeries
	LineMarkSeries
	VerticalBarSeries
	HorizontalBarSeries
	AreaSeries
	VerticalRectSeries
	HorizontalRectSeries
)

var seriesKindNames = []string{
	"line", "mark", "line-mark", "vertical-bar", "horizontal-bar",
	"area", "vertical-rect", "horizontal-rect",
}

func (k SeriesKind) String() string {
	if k < 0 || int(k) >= len(seriesKindNames) {
		return fmt.Sprintf("SeriesKind(%d)", int(k))
	}
	return seriesKindNames[k]
}

// ParseSeriesKind parses names like "line", "vertical-bar" or "verticalBar".
func ParseSeriesKind(s string) (SeriesKind, error) {
	n := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(s))
	for i, name := range seriesKindNames {
		if strings.ReplaceAll(name, "-", "") == n {
			return SeriesKind(i), nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownSeries, s)
}

// IsBar reports whether k is drawn as bars whose width derives from
// the distance between neighbouring base values.
func (k SeriesKind) IsBar() bool {
	return k == VerticalBarSeries || k == HorizontalBarSeries
}

// ValueAttr is the attribute which carries the magnitude of a bar,
// area or rect series; the empty Attr for the other kinds.
func (k SeriesKind) ValueAttr() Attr {
	switch k {
	case VerticalBarSeries, VerticalRectSeries, AreaSeries:
		return AttrY
	case HorizontalBarSeries, HorizontalRectSeries:
		return AttrX
	}
	return ""
}

// Series is an ordered sequence of points drawn in one style.
type Series struct {
	Title    string
	Kind     SeriesKind
	Data     []Point
	Cluster  string // bar series in the same cluster stack onto each other
	Stack    bool
	Disabled bool

	Color       string // stroke, defaults to the theme palette
	Fill        string // defaults to Color
	Opacity     float64
	StrokeWidth float64
	LineStyle   string  // "solid", "dashed", "dotted", ...
	Size        float64 // mark radius
}

// NewSeries loads data via PointsFrom into a new series of the given kind.
func NewSeries(kind SeriesKind, title string, data interface{}) (*Series, error) {
	points, err := PointsFrom(data)
	if err != nil {
		var de *DataError
		if errors.As(err, &de) {
			de.Series = title
			return nil, de
		}
		return nil, &DataError{Series: title, Index: -1, Err: err}
	}
	return &Series{Title: title, Kind: kind, Data: points}, nil
}

// Enabled reports whether s takes part in domains and drawing.
func (s *Series) Enabled() bool { return s != nil && !s.Disabled }

// fieldAccess reads one attribute from an element of a slice.
type fieldAccess struct {
	name  string
	value func(elem reflect.Value) reflect.Value
}

// PointsFrom converts data to points. Data may be nil, a slice of Point,
// a slice of maps with string keys or a slice of structs (or pointers
// to structs). Struct fields and argument-less methods named X, Y, X0,
// Y0, Color, Size or Opacity are used; a field tag `xyplot:"y"` selects
// a differently named field.
func PointsFrom(data interface{}) ([]Point, error) {
	if data == nil {
		return nil, nil
	}
	if pts, ok := data.([]Point); ok {
		out := make([]Point, len(pts))
		copy(out, pts)
		return out, nil
	}

	v := reflect.ValueOf(data)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return nil, fmt.Errorf("%w: cannot convert %s to points", ErrBadData, v.Type())
	}
	t := v.Type().Elem()
	switch {
	case t.Kind() == reflect.Map && t.Key().Kind() == reflect.String:
		return pointsFromMaps(v)
	case t.Kind() == reflect.Struct,
		t.Kind() == reflect.Ptr && t.Elem().Kind() == reflect.Struct:
		return pointsFromStructs(v)
	case t.Kind() == reflect.Interface:
		// Mixed slices as from JSON decoding; each element must be a map.
		out := make([]Point, v.Len())
		for i := range out {
			e := v.Index(i).Elem()
			if !e.IsValid() {
				continue
			}
			if e.Kind() != reflect.Map {
				return nil, &DataError{Index: i, Err: fmt.Errorf("%w: element is %s", ErrBadData, e.Type())}
			}
			p, err := pointFromMap(e)
			if err != nil {
				return nil, &DataError{Index: i, Err: err}
			}
			out[i] = p
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: cannot convert slice of %s to points", ErrBadData, t)
}

func pointsFromMaps(v reflect.Value) ([]Point, error) {
	out := make([]Point, v.Len())
	for i := range out {
		m := v.Index(i)
		if m.IsNil() {
			continue
		}
		p, err := pointFromMap(m)
		if err != nil {
			return nil, &DataError{Index: i, Err: err}
		}
		out[i] = p
	}
	return out, nil
}

func pointFromMap(m reflect.Value) (Point, error) {
	var p Point
	iter := m.MapRange()
	for iter.Next() {
		if err := p.assign(iter.Key().String(), iter.Value()); err != nil {
			return p, err
		}
	}
	return p, nil
}

// isPointAttr reports whether name (in any case) is an attribute that
// assign stores.
func isPointAttr(name string) bool {
	switch strings.ToLower(name) {
	case "x", "y", "x0", "y0", "color", "size", "opacity":
		return true
	}
	return false
}

// assign stores rv into the attribute called name. Unknown names are ignored.
func (p *Point) assign(name string, rv reflect.Value) error {
	var x interface{}
	if rv.IsValid() && rv.CanInterface() {
		x = rv.Interface()
	}
	switch strings.ToLower(name) {
	case "x", "y", "x0", "y0":
		v, err := ValueOf(x)
		if err != nil {
			return fmt.Errorf("attribute %s: %w", name, err)
		}
		p.Set(Attr(strings.ToLower(name)), v)
	case "color":
		if x != nil {
			p.Color = fmt.Sprint(x)
		}
	case "size", "opacity":
		v, err := ValueOf(x)
		if err != nil {
			return fmt.Errorf("attribute %s: %w", name, err)
		}
		if v.Kind() != Number && v.IsValid() {
			return fmt.Errorf("%w: %s must be numeric", ErrBadData, name)
		}
		if v.IsValid() {
			if strings.ToLower(name) == "size" {
				p.Size = v.Float()
			} else {
				p.Opacity = v.Float()
			}
		}
	}
	return nil
}

func pointsFromStructs(v reflect.Value) ([]Point, error) {
	t := v.Type().Elem()
	ptr := t.Kind() == reflect.Ptr
	st := t
	if ptr {
		st = t.Elem()
	}

	var fields []fieldAccess
	// Fields first.
	for i := 0; i < st.NumField(); i++ {
		f := st.Field(i)
		if f.PkgPath != "" {
			continue // unexported
		}
		name := f.Name
		if tag := f.Tag.Get("xyplot"); tag != "" {
			if tag == "-" {
				continue
			}
			name = tag
		}
		if !isPointAttr(name) {
			continue
		}
		idx := i
		fields = append(fields, fieldAccess{
			name:  name,
			value: func(e reflect.Value) reflect.Value { return e.Field(idx) },
		})
	}

	// The same for methods with signatures like "func(elemtype) T".
	mt := t
	if !ptr {
		mt = reflect.PtrTo(t) // allow pointer receivers, elements are addressable
	}
	for i := 0; i < mt.NumMethod(); i++ {
		m := mt.Method(i)
		if m.Type.NumIn() != 1 || m.Type.NumOut() != 1 || !isPointAttr(m.Name) {
			continue
		}
		fn := m.Func
		fields = append(fields, fieldAccess{
			name: m.Name,
			value: func(e reflect.Value) reflect.Value {
				return fn.Call([]reflect.Value{e.Addr()})[0]
			},
		})
	}

	out := make([]Point, v.Len())
	for i := range out {
		e := v.Index(i)
		if ptr {
			if e.IsNil() {
				continue
			}
			e = e.Elem()
		}
		if !e.CanAddr() {
			// Arrays passed by value are not addressable.
			c := reflect.New(st).Elem()
			c.Set(e)
			e = c
		}
		for _, f := range fields {
			if err := out[i].assign(f.name, f.value(e)); err != nil {
				return nil, &DataError{Index: i, Err: err}
			}
		}
	}
	return out, nil
}
