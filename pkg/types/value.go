package types

import (
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"

	json "github.com/goccy/go-json"
)

// Value holds exactly one validated value of one column type. Values are
// immutable and comparable; == is structural equality. The zero Value has no
// type and fails ParseValue's type check everywhere, so it never enters a
// table.
//
// Integer is a signed 64-bit integer. Real is an IEEE-754 double with NaN and
// infinities excluded. Char is a single Unicode code point. String, HtmlFile,
// and the interval bounds are arbitrary Go strings.
type Value struct {
	kind ColumnType
	i    int64
	f    float64
	s    string
	low  string
	high string
}

// Interval is the raw form of a StringInterval value: a pair of strings with
// Low <= High under lexical ordering.
type Interval struct {
	Low  string
	High string
}

// IntegerValue returns an Integer value.
func IntegerValue(n int64) Value {
	return Value{kind: TypeInteger, i: n}
}

// RealValue returns a Real value. NaN and infinities are rejected.
func RealValue(f float64) (Value, error) {
	if math.IsNaN(f) {
		return Value{}, fmt.Errorf("real must not be NaN")
	}
	if math.IsInf(f, 0) {
		return Value{}, fmt.Errorf("real must be finite")
	}
	return Value{kind: TypeReal, f: f}, nil
}

// CharValue returns a Char value. The input must be exactly one Unicode
// code point.
func CharValue(s string) (Value, error) {
	if utf8.RuneCountInString(s) != 1 {
		return Value{}, fmt.Errorf("expected exactly one character, got %d", utf8.RuneCountInString(s))
	}
	return Value{kind: TypeChar, s: s}, nil
}

// StringValue returns a String value. Any string is valid, including empty.
func StringValue(s string) Value {
	return Value{kind: TypeString, s: s}
}

// HTMLValue returns an HtmlFile value. Content must not be empty.
func HTMLValue(s string) (Value, error) {
	if s == "" {
		return Value{}, fmt.Errorf("HTML content must not be empty")
	}
	return Value{kind: TypeHTMLFile, s: s}, nil
}

// IntervalValue returns a StringInterval value.
// Returns an error when low > high under lexical ordering.
func IntervalValue(low, high string) (Value, error) {
	if low > high {
		return Value{}, fmt.Errorf("interval low %q exceeds high %q", low, high)
	}
	return Value{kind: TypeStringInterval, low: low, high: high}, nil
}

// Type returns the column type this value carries.
func (v Value) Type() ColumnType {
	return v.kind
}

// Int returns the Integer payload. Valid only when Type is TypeInteger.
func (v Value) Int() int64 {
	return v.i
}

// Real returns the Real payload. Valid only when Type is TypeReal.
func (v Value) Real() float64 {
	return v.f
}

// Text returns the textual payload of a Char, String, or HtmlFile value.
func (v Value) Text() string {
	return v.s
}

// Interval returns the pair payload. Valid only when Type is
// TypeStringInterval.
func (v Value) Interval() Interval {
	return Interval{Low: v.low, High: v.high}
}

// Compare orders v against other. Defined only for two values of the same
// type; returns an error on a type mismatch.
func (v Value) Compare(other Value) (int, error) {
	if v.kind != other.kind {
		return 0, fmt.Errorf("cannot compare %s with %s", v.kind, other.kind)
	}
	ops, ok := registry[v.kind]
	if !ok {
		return 0, fmt.Errorf("unknown column type %q", v.kind)
	}
	return ops.compare(v, other), nil
}

// CanonicalText returns the type-specific textual encoding used for display
// and storage. Integer and Real render via strconv so the text round-trips
// without locale or precision ambiguity; StringInterval renders as the JSON
// object {"low":...,"high":...}.
func (v Value) CanonicalText() string {
	switch v.kind {
	case TypeInteger:
		return strconv.FormatInt(v.i, 10)
	case TypeReal:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case TypeChar, TypeString, TypeHTMLFile:
		return v.s
	case TypeStringInterval:
		b, err := json.Marshal(struct {
			Low  string `json:"low"`
			High string `json:"high"`
		}{v.low, v.high})
		if err != nil {
			// Marshaling two plain strings cannot fail.
			return ""
		}
		return string(b)
	default:
		return ""
	}
}

// String implements fmt.Stringer using the canonical text.
func (v Value) String() string {
	return v.CanonicalText()
}
