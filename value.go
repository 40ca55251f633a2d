package xyplot

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"
)

// Kind is the basic type of a Value.
type Kind uint8

const (
	Invalid Kind = iota // missing or unusable value
	Number
	Temporal
	Categorical
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case Temporal:
		return "time"
	case Categorical:
		return "category"
	}
	return "invalid"
}

// Value is a single datum of a series. Internally numbers and times are
// float64, times being milliseconds since the Unix epoch. Categories are
// kept as strings.
//
// The zero Value is Invalid and is treated as missing data.
type Value struct {
	kind Kind
	num  float64
	str  string
}

// Num returns the numerical value x.
func Num(x float64) Value { return Value{kind: Number, num: x} }

// Time returns t as a temporal value.
func Time(t time.Time) Value {
	ms := float64(t.UnixMilli()) + float64(t.Nanosecond()%1e6)/1e6
	return Value{kind: Temporal, num: ms}
}

// Millis returns the temporal value ms milliseconds after the Unix epoch.
func Millis(ms float64) Value { return Value{kind: Temporal, num: ms} }

// Cat returns the categorical value s.
func Cat(s string) Value { return Value{kind: Categorical, str: s} }

func (v Value) Kind() Kind { return v.kind }

// IsValid reports whether v can be placed on a scale.
func (v Value) IsValid() bool {
	switch v.kind {
	case Number, Temporal:
		return !math.IsNaN(v.num) && !math.IsInf(v.num, 0)
	case Categorical:
		return true
	}
	return false
}

// Float returns the numerical representation of v: the number itself or
// the milliseconds since the epoch. Categories and invalid values yield NaN.
func (v Value) Float() float64 {
	if v.kind == Number || v.kind == Temporal {
		return v.num
	}
	return math.NaN()
}

// Time returns v as time. Only meaningful for temporal values.
func (v Value) Time() time.Time {
	ms := math.Floor(v.num)
	frac := time.Duration(math.Round((v.num - ms) * 1e6))
	return time.UnixMilli(int64(ms)).Add(frac)
}

func (v Value) String() string {
	switch v.kind {
	case Number:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case Temporal:
		return v.Time().UTC().Format(time.RFC3339Nano)
	case Categorical:
		return v.str
	}
	return "NA"
}

// Key returns v as category name. Numbers and times are formatted.
func (v Value) Key() string {
	if v.kind == Categorical {
		return v.str
	}
	return v.String()
}

// ValueOf converts x to a Value. Integers, unsigned integers and floats
// become numbers, strings become categories and time.Time becomes a
// temporal value. A nil x yields the invalid Value.
func ValueOf(x interface{}) (Value, error) {
	switch x := x.(type) {
	case nil:
		return Value{}, nil
	case Value:
		return x, nil
	case float64:
		return Num(x), nil
	case int:
		return Num(float64(x)), nil
	case string:
		return Cat(x), nil
	case time.Time:
		return Time(x), nil
	case *time.Time:
		if x == nil {
			return Value{}, nil
		}
		return Time(*x), nil
	}
	return valueOfReflect(reflect.ValueOf(x))
}

func valueOfReflect(rv reflect.Value) (Value, error) {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Num(float64(rv.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		// May lose precision for huge uint64.
		return Num(float64(rv.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return Num(rv.Float()), nil
	case reflect.String:
		return Cat(rv.String()), nil
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return Value{}, nil
		}
		return valueOfReflect(rv.Elem())
	case reflect.Struct:
		if t, ok := rv.Interface().(time.Time); ok {
			return Time(t), nil
		}
	}
	return Value{}, fmt.Errorf("%w: cannot use %s as value", ErrBadData, rv.Type())
}
